package intern

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boshu2/agentmri/internal/llm"
	"github.com/boshu2/agentmri/internal/rules"
	"github.com/boshu2/agentmri/internal/trace"
)

func TestLogger_MonotonicStepIDs(t *testing.T) {
	l := NewLogger("tester", "query")
	l.LogThought("first", nil)
	callID := l.LogToolCall("web_search", map[string]any{"query": "q"})
	l.LogToolResult("web_search", callID, "ok", "")
	l.LogFinalAnswer("done", nil)

	run := l.Run()
	require.Len(t, run.Steps, 4)
	for i, s := range run.Steps {
		assert.Equal(t, i+1, s.StepID)
		assert.NotEmpty(t, s.Timestamp)
	}
	assert.Equal(t, "call-2", callID)
	assert.NotEmpty(t, run.TimestampFinished)
}

func TestLogger_RunFinishStampedOnce(t *testing.T) {
	l := NewLogger("tester", "query")
	first := l.Run().TimestampFinished
	assert.Equal(t, first, l.Run().TimestampFinished)
}

func TestLoggerOutputParses(t *testing.T) {
	l := NewLogger("tester", "what is going on")
	l.LogMemoryUpdate("set", "k", "v")
	l.LogThought("thinking", map[string]any{"stage": "planning"})
	l.LogFinalAnswer("answer", nil)

	data, err := json.Marshal(l.Run())
	require.NoError(t, err)

	parsed, err := trace.ParseLog(data)
	require.NoError(t, err)
	assert.Equal(t, "tester", parsed.AgentName)
	require.Len(t, parsed.Steps, 3)
	assert.Equal(t, trace.StepMemoryUpdate, parsed.Steps[0].Type)
	assert.Equal(t, trace.StepFinalAnswer, parsed.Steps[2].Type)
}

func TestInferTaskDomain(t *testing.T) {
	assert.Equal(t, "ai_security", InferTaskDomain("Summarize the top AI security risks"))
	assert.Equal(t, "finance", InferTaskDomain("Review our trading portfolio exposure"))
	assert.Equal(t, "governance", InferTaskDomain("Draft a compliance memo for regulators"))
	assert.Equal(t, "general", InferTaskDomain("What should I cook tonight"))
}

func TestRun_DefaultMode(t *testing.T) {
	res, err := Run(context.Background(), llm.NewMockClient(), "Summarize top AI security risks", ModeDefault)
	require.NoError(t, err)
	require.NotNil(t, res.Run)

	run := res.Run
	assert.Equal(t, "chaos_intern", run.AgentName)
	assert.Equal(t, "ai_security", run.TaskDomain())
	assert.Equal(t, ModeDefault, run.Metadata["mode"])

	// memory_update, thought, tool_call, tool_result, thought, final_answer
	require.Len(t, run.Steps, 6)
	assert.Equal(t, trace.StepMemoryUpdate, run.Steps[0].Type)
	assert.Equal(t, trace.StepToolCall, run.Steps[2].Type)
	assert.Equal(t, run.Steps[2].CallID, run.Steps[3].CallID)
	assert.Equal(t, trace.StepFinalAnswer, run.Steps[5].Type)
	assert.Equal(t, res.FinalAnswer, run.Steps[5].Content)

	// Default mode keeps the tool call on topic.
	assert.Equal(t, "ai_security", run.Steps[2].ToolDomain())
}

func TestRun_ToolMisuseModeTriggersMisusePass(t *testing.T) {
	res, err := Run(context.Background(), llm.NewMockClient(), "Summarize top AI security risks", ModeToolMisuse)
	require.NoError(t, err)

	assert.Equal(t, "office_ops", res.Run.Steps[2].ToolDomain())

	steps, summary := rules.Evaluate(res.Run, nil)
	require.NotEmpty(t, steps)
	assert.Positive(t, summary.ByFailureType[rules.TagToolMisuse])
}

func TestRun_MemoryLossModeDivergesSearch(t *testing.T) {
	res, err := Run(context.Background(), llm.NewMockClient(), "Summarize top AI security risks", ModeMemoryLoss)
	require.NoError(t, err)

	call := res.Run.Steps[2]
	args, ok := call.Arguments["query"].(string)
	require.True(t, ok)
	assert.Contains(t, args, "romantic comedy")
	// Domain label stays aligned; only the query drifts.
	assert.Equal(t, "ai_security", call.ToolDomain())
}

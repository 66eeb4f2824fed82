// Package intern implements the synthetic "chaos intern" agent: a scripted
// run that exercises the model client and emits a run log in the canonical
// input format, deliberately seeded with the failure modes the rules engine
// looks for.
package intern

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/boshu2/agentmri/internal/trace"
)

// logSchemaVersion is the schema_version stamped on generated logs.
const logSchemaVersion = "1.0"

// Logger incrementally builds a run log. Step ids start at 1 and increase
// monotonically in log order; timestamps are RFC3339 UTC.
type Logger struct {
	run    *trace.Run
	nextID int
}

// NewLogger starts a fresh run log for the given agent and query.
func NewLogger(agentName, userQuery string) *Logger {
	return &Logger{
		run: &trace.Run{
			SchemaVersion:    logSchemaVersion,
			RunID:            uuid.NewString(),
			AgentName:        agentName,
			TimestampStarted: now(),
			UserQuery:        userQuery,
			Metadata:         map[string]any{},
		},
		nextID: 1,
	}
}

// SetMetadata records a run-level metadata value.
func (l *Logger) SetMetadata(key string, value any) {
	l.run.Metadata[key] = value
}

// LogThought appends an agent thought step.
func (l *Logger) LogThought(content string, state map[string]any) {
	l.append(&trace.Step{
		Type:    trace.StepThought,
		Role:    trace.RoleAgent,
		Content: content,
		State:   state,
	})
}

// LogToolCall appends a tool_call step and returns its call id for
// correlating the result.
func (l *Logger) LogToolCall(toolName string, arguments map[string]any) string {
	callID := fmt.Sprintf("call-%d", l.nextID)
	l.append(&trace.Step{
		Type:      trace.StepToolCall,
		Role:      trace.RoleAgent,
		ToolName:  toolName,
		CallID:    callID,
		Arguments: arguments,
	})
	return callID
}

// LogToolResult appends a tool_result step correlated to a prior call.
func (l *Logger) LogToolResult(toolName, callID string, result any, errText string) {
	l.append(&trace.Step{
		Type:     trace.StepToolResult,
		Role:     trace.RoleTool,
		ToolName: toolName,
		CallID:   callID,
		Result:   result,
		Error:    errText,
	})
}

// LogMemoryUpdate appends a memory_update step.
func (l *Logger) LogMemoryUpdate(operation, key string, value any) {
	l.append(&trace.Step{
		Type:      trace.StepMemoryUpdate,
		Role:      trace.RoleAgent,
		Operation: operation,
		Key:       key,
		Value:     value,
	})
}

// LogFinalAnswer appends a final_answer step.
func (l *Logger) LogFinalAnswer(content string, state map[string]any) {
	l.append(&trace.Step{
		Type:    trace.StepFinalAnswer,
		Role:    trace.RoleAgent,
		Content: content,
		State:   state,
	})
}

// Run stamps the finish timestamp (once) and returns the built log.
func (l *Logger) Run() *trace.Run {
	if l.run.TimestampFinished == "" {
		l.run.TimestampFinished = now()
	}
	return l.run
}

func (l *Logger) append(s *trace.Step) {
	s.StepID = l.nextID
	s.Timestamp = now()
	l.nextID++
	l.run.Steps = append(l.run.Steps, s)
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

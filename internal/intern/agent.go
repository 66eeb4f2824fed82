package intern

import (
	"context"
	"fmt"
	"strings"

	"github.com/boshu2/agentmri/internal/llm"
	"github.com/boshu2/agentmri/internal/trace"
)

// Chaos modes. Each mode scripts a different class of failure into the run.
const (
	ModeDefault       = "default"
	ModeHallucination = "hallucination"
	ModeToolMisuse    = "tool_misuse"
	ModeMemoryLoss    = "memory_loss"
)

// agentName identifies the chaos intern in generated logs.
const agentName = "chaos_intern"

// Result is the outcome of one chaos intern run.
type Result struct {
	FinalAnswer string
	Run         *trace.Run
}

// Run executes the scripted chaos intern: a planning thought, one web_search
// call with a fabricated result, a post-tool thought, and a final answer.
// The mode steers the prompts (and, for tool_misuse, the declared tool
// domain) so that the generated log exhibits the corresponding failure mode.
func Run(ctx context.Context, client llm.Client, userQuery, mode string) (*Result, error) {
	logger := NewLogger(agentName, userQuery)

	taskDomain := InferTaskDomain(userQuery)
	logger.SetMetadata(trace.MetaTaskDomain, taskDomain)
	logger.SetMetadata(trace.MetaMode, mode)
	logger.LogMemoryUpdate("set", "chaos_mode", mode)

	thought1, err := client.Complete(ctx, llm.CompletionRequest{
		Prompt:      planningPrompt(userQuery, mode),
		Temperature: planningTemperature(mode),
	})
	if err != nil {
		return nil, fmt.Errorf("planning thought: %w", err)
	}
	logger.LogThought(thought1, map[string]any{"stage": "planning"})

	toolDomain, searchQuery := toolUsage(userQuery, taskDomain, mode)
	callID := logger.LogToolCall("web_search", map[string]any{
		"query":             searchQuery,
		trace.ArgToolDomain: toolDomain,
	})
	searchResult := fakeWebSearch(searchQuery)
	logger.LogToolResult("web_search", callID, searchResult, "")

	thought2, err := client.Complete(ctx, llm.CompletionRequest{
		Prompt:      reasoningPrompt(userQuery, searchResult, mode),
		Temperature: reasoningTemperature(mode),
	})
	if err != nil {
		return nil, fmt.Errorf("post-tool thought: %w", err)
	}
	logger.LogThought(thought2, map[string]any{"stage": "post_tool_reasoning"})

	finalAnswer, err := client.Complete(ctx, llm.CompletionRequest{
		Prompt:      finalPrompt(userQuery, mode),
		Temperature: finalTemperature(mode),
	})
	if err != nil {
		return nil, fmt.Errorf("final answer: %w", err)
	}
	logger.LogFinalAnswer(finalAnswer, map[string]any{
		"goals":       []string{userQuery},
		"mode":        mode,
		"task_domain": taskDomain,
	})

	return &Result{FinalAnswer: finalAnswer, Run: logger.Run()}, nil
}

// InferTaskDomain tags what domain a query belongs to, so the tool-misuse
// pass can reason about domain mismatch. Small keyword heuristic, same
// boundary as everything else in the diagnostic pipeline.
func InferTaskDomain(userQuery string) string {
	q := strings.ToLower(userQuery)
	switch {
	case containsAny(q, "security", "threat", "risk", "attack", "breach"):
		return "ai_security"
	case containsAny(q, "finance", "trading", "portfolio", "market"):
		return "finance"
	case containsAny(q, "policy", "governance", "compliance", "regulation"):
		return "governance"
	default:
		return "general"
	}
}

// toolUsage decides the declared tool domain and the (possibly corrupted)
// search query for the mode.
func toolUsage(userQuery, taskDomain, mode string) (toolDomain, searchQuery string) {
	switch mode {
	case ModeToolMisuse:
		// Deliberately mislabeled domain and an irrelevant query.
		return "office_ops", userQuery + " but mostly about cute cat memes and pizza discounts"
	case ModeMemoryLoss:
		// Domain still aligned, but the query ignores the original task.
		return taskDomain, "top 5 romantic comedy movies about hackers and dogs"
	default:
		return taskDomain, userQuery + " latest 2025 analysis"
	}
}

// fakeWebSearch pretends to search the web.
func fakeWebSearch(query string) string {
	return fmt.Sprintf("[fake_search_results for: '%s']", query)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

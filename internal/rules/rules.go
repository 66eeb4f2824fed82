// Package rules implements the multi-pass risk classification engine for
// agent run logs. Each pass is an independent heuristic that inspects one
// step (plus optional run-level context) and annotates its StepAnalysis with
// failure tags, a score floor, and an explanatory note. Passes never read
// each other's output for the same step; the only shared input is the
// run-level stats computed once before evaluation starts.
package rules

import (
	"strings"

	"github.com/boshu2/agentmri/internal/config"
	"github.com/boshu2/agentmri/internal/trace"
)

// Failure tags produced by the built-in passes. The tag set is open:
// additional passes may introduce new string tags without touching the core
// types.
const (
	TagToolError     = "tool_error"
	TagApology       = "apology"
	TagWeakGrounding = "weak_grounding"
	TagToolMisuse    = "tool_misuse"
	TagMemoryDrift   = "memory_drift"
	TagSpeculative   = "speculative_metrics"
	TagOverconfident = "overconfident_no_citation"
	TagHallucination = "hallucination_risk"
)

// Score floors asserted by the built-in passes. Floors merge via max, so a
// later pass can only raise a step's score.
const (
	floorToolError     = 0.9
	floorApology       = 0.4
	floorWeakGrounding = 0.3
	floorToolMisuse    = 0.6
	floorMemoryDrift   = 0.6
	floorSpeculative   = 0.4
	floorOverconfident = 0.5
	floorHallucination = 0.75
)

// longAnswerThreshold is the content length above which a confident,
// ungrounded final answer is considered a hallucination risk. The compound
// condition is deliberately conjunctive so long-but-sourced answers are not
// flagged.
const longAnswerThreshold = 600

// maxGroundedToolResults is the tool_result count at or below which a final
// answer counts as weakly evidenced.
const maxGroundedToolResults = 1

// RunStats holds the run-level counts computed once before any pass runs.
// They are read-only inputs to the final-answer pass.
type RunStats struct {
	ToolCalls      int
	ToolResults    int
	Thoughts       int
	HasFinalAnswer bool
}

// ComputeRunStats tallies step types across the whole run.
func ComputeRunStats(run *trace.Run) RunStats {
	var stats RunStats
	for _, s := range run.Steps {
		switch s.Type {
		case trace.StepToolCall:
			stats.ToolCalls++
		case trace.StepToolResult:
			stats.ToolResults++
		case trace.StepThought:
			stats.Thoughts++
		case trace.StepFinalAnswer:
			stats.HasFinalAnswer = true
		}
	}
	return stats
}

// PassContext carries the read-only inputs every pass may consult.
type PassContext struct {
	Run     *trace.Run
	Markers *config.Markers
	Stats   RunStats
}

// Pass is one independent classification rule. Apply must be idempotent and
// side-effect-free beyond mutating the target step's Analysis.
type Pass struct {
	Name  string
	Apply func(s *trace.Step, pc PassContext)
}

// Passes returns the built-in pass sequence in its fixed evaluation order.
// The order within a step is significant only for note ordering; scores and
// tags merge monotonically either way.
func Passes() []Pass {
	return []Pass{
		{Name: "tool-error", Apply: passToolError},
		{Name: "apology", Apply: passApology},
		{Name: "weak-grounding", Apply: passWeakGrounding},
		{Name: "tool-misuse", Apply: passToolMisuse},
		{Name: "memory-drift", Apply: passMemoryDrift},
		{Name: "final-answer", Apply: passFinalAnswer},
	}
}

// Evaluate runs every pass over every step in log order and folds the
// annotated steps into a Summary. Steps are annotated in place; each step is
// visited exactly once. A nil markers config falls back to the stock
// vocabularies.
func Evaluate(run *trace.Run, markers *config.Markers) ([]*trace.Step, trace.Summary) {
	if markers == nil {
		m := config.DefaultMarkers()
		markers = &m
	}

	pc := PassContext{
		Run:     run,
		Markers: markers,
		Stats:   ComputeRunStats(run),
	}

	passes := Passes()
	for _, step := range run.Steps {
		for _, p := range passes {
			p.Apply(step, pc)
		}
	}

	return run.Steps, Summarize(run.Steps)
}

// containsAny reports whether text contains any of the markers. Matching is
// substring-based; callers lowercase the text first.
func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(text, m) {
			return true
		}
	}
	return false
}

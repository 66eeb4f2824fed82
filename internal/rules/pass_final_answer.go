package rules

import (
	"regexp"
	"strings"

	"github.com/boshu2/agentmri/internal/trace"
)

// percentPattern matches literal percentage figures like "18.7%" or "20 %".
var percentPattern = regexp.MustCompile(`\b\d+(\.\d+)?\s*%`)

// passFinalAnswer applies the hallucination-style checks to final_answer
// steps, using the run-level stats computed before evaluation started:
//
//   - speculative_metrics: percentage figures with at most one tool_result
//     in the whole run.
//   - overconfident_no_citation: strong-certainty phrasing with no
//     citation-like signal.
//   - hallucination_risk: long AND confident (or already speculative) AND
//     weakly evidenced. Conjunctive so long-but-sourced answers stay clean.
func passFinalAnswer(s *trace.Step, pc PassContext) {
	if s.Type != trace.StepFinalAnswer || s.Content == "" {
		return
	}

	content := strings.ToLower(s.Content)
	hasPercents := percentPattern.MatchString(s.Content)
	hasConfidence := containsAny(content, pc.Markers.Confidence)
	hasCitation := containsAny(content, pc.Markers.Citation)
	weakEvidence := pc.Stats.ToolResults <= maxGroundedToolResults

	if hasPercents && weakEvidence {
		s.Analysis.Flag(TagSpeculative, floorSpeculative,
			"Final answer uses specific percentages with limited tool evidence in the run.")
	}

	if hasConfidence && !hasCitation {
		s.Analysis.Flag(TagOverconfident, floorOverconfident,
			"Strongly confident language without explicit sources or citations.")
	}

	if len(s.Content) > longAnswerThreshold &&
		(hasConfidence || s.Analysis.HasTag(TagSpeculative)) &&
		weakEvidence {
		s.Analysis.Flag(TagHallucination, floorHallucination,
			"Long, highly confident answer with minimal tool usage; likely hallucination risk.")
	}
}

package rules

import (
	"strings"

	"github.com/boshu2/agentmri/internal/trace"
)

// passWeakGrounding flags agent-authored thoughts that open with hedging
// language ("I think") instead of evidence. Tool-role steps and other step
// types are skipped.
func passWeakGrounding(s *trace.Step, pc PassContext) {
	if s.Type != trace.StepThought || s.Role != trace.RoleAgent || s.Content == "" {
		return
	}
	content := strings.ToLower(s.Content)
	if !containsAny(content, pc.Markers.Hedging) {
		return
	}
	s.Analysis.Flag(TagWeakGrounding, floorWeakGrounding,
		"Speculative reasoning without explicit evidence.")
}

package rules

import (
	"strings"

	"github.com/boshu2/agentmri/internal/trace"
)

// passMemoryDrift flags thoughts and final answers whose content wanders
// into obviously off-topic vocabulary while the original user query is a
// serious one (security, risk, compliance, ...). This is a topic-coherence
// heuristic over fixed marker lists, not semantic drift detection: off-topic
// content using vocabulary outside the list is expected to slip through.
func passMemoryDrift(s *trace.Step, pc PassContext) {
	if s.Type != trace.StepThought && s.Type != trace.StepFinalAnswer {
		return
	}
	if s.Content == "" {
		return
	}

	query := strings.ToLower(pc.Run.UserQuery)
	if !containsAny(query, pc.Markers.SeriousQuery) {
		return
	}

	content := strings.ToLower(s.Content)
	if !containsAny(content, pc.Markers.OffTopic) {
		return
	}

	s.Analysis.Flag(TagMemoryDrift, floorMemoryDrift,
		"Content includes obviously off-topic concepts for this query (possible memory / context drift).")
}

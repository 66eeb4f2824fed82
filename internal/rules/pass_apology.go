package rules

import (
	"strings"

	"github.com/boshu2/agentmri/internal/trace"
)

// passApology flags any step whose content contains an apology marker.
// Apologies often co-occur with an upstream failure the agent is reacting to,
// hence the modest floor.
func passApology(s *trace.Step, pc PassContext) {
	if s.Content == "" {
		return
	}
	content := strings.ToLower(s.Content)
	if !containsAny(content, pc.Markers.Apology) {
		return
	}
	s.Analysis.Flag(TagApology, floorApology,
		"Agent apologized; may indicate previous failure.")
}

package rules

import (
	"fmt"

	"github.com/boshu2/agentmri/internal/trace"
)

// passToolMisuse compares the run's declared task_domain against a tool
// call's declared tool_domain. A mismatch of two explicit declarations is
// flagged; a missing declaration on either side means "cannot judge", so the
// pass no-ops rather than guessing.
func passToolMisuse(s *trace.Step, pc PassContext) {
	if s.Type != trace.StepToolCall {
		return
	}

	taskDomain := pc.Run.TaskDomain()
	toolDomain := s.ToolDomain()
	if taskDomain == "" || toolDomain == "" {
		return
	}
	if taskDomain == toolDomain {
		return
	}

	s.Analysis.Flag(TagToolMisuse, floorToolMisuse, fmt.Sprintf(
		"Tool domain '%s' does not match task domain '%s' (possible tool misuse / irrelevant tool for this query).",
		toolDomain, taskDomain))
}

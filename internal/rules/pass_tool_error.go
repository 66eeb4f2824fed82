package rules

import (
	"fmt"

	"github.com/boshu2/agentmri/internal/trace"
)

// passToolError flags any tool_result step carrying a non-empty error. The
// note quotes the error text verbatim so the report preserves the original
// failure message.
func passToolError(s *trace.Step, _ PassContext) {
	if s.Type != trace.StepToolResult || s.Error == "" {
		return
	}
	s.Analysis.Flag(TagToolError, floorToolError, fmt.Sprintf("Tool error: %s", s.Error))
}

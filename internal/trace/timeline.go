package trace

import "strings"

// TimelineStep is the JSON-friendly projection of an annotated Step used by
// the HTTP service and CLI output. It carries high-level display fields
// (label, short, text, tags) on top of the raw log fields so the same object
// serves both timeline rendering and debugging.
type TimelineStep struct {
	StepID int      `json:"step_id"`
	Type   string   `json:"type"`
	Label  string   `json:"label"`
	Short  string   `json:"short"`
	Text   string   `json:"text"`
	Tags   []string `json:"tags"`

	Role      string         `json:"role"`
	Timestamp string         `json:"timestamp"`
	Content   string         `json:"content,omitempty"`
	ToolName  string         `json:"tool_name,omitempty"`
	CallID    string         `json:"call_id,omitempty"`
	Arguments map[string]any `json:"arguments,omitempty"`
	Result    any            `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`
	Operation string         `json:"operation,omitempty"`
	Key       string         `json:"key,omitempty"`
	Value     any            `json:"value,omitempty"`

	Analysis StepAnalysis `json:"analysis"`
}

// Timeline converts annotated steps into their timeline projection,
// preserving log order.
func Timeline(steps []*Step) []TimelineStep {
	out := make([]TimelineStep, 0, len(steps))
	for _, s := range steps {
		out = append(out, timelineStep(s))
	}
	return out
}

func timelineStep(s *Step) TimelineStep {
	tags := s.Analysis.FailureTags
	if tags == nil {
		tags = []string{}
	}

	return TimelineStep{
		StepID:    s.StepID,
		Type:      s.Type,
		Label:     stepLabel(s),
		Short:     strings.TrimSpace(s.Analysis.Notes),
		Text:      s.Content,
		Tags:      tags,
		Role:      s.Role,
		Timestamp: s.Timestamp,
		Content:   s.Content,
		ToolName:  s.ToolName,
		CallID:    s.CallID,
		Arguments: s.Arguments,
		Result:    s.Result,
		Error:     s.Error,
		Operation: s.Operation,
		Key:       s.Key,
		Value:     s.Value,
		Analysis:  s.Analysis,
	}
}

// stepLabel produces a human-friendly label for a step.
func stepLabel(s *Step) string {
	switch s.Type {
	case StepFinalAnswer:
		return "Final answer"
	case StepToolCall:
		if s.ToolName != "" {
			return s.ToolName
		}
		return "Tool call"
	case StepMemoryUpdate:
		return "Memory operation"
	default:
		return capitalize(s.Type)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Package trace defines the canonical in-memory model for an agent run log:
// a Run, its ordered Steps, and the mutable per-step StepAnalysis record that
// the rules engine fills in during evaluation.
package trace

// Known step types. The set is open-ended: a Step may carry any type string,
// and unrecognized types flow through the pipeline untouched.
const (
	StepThought      = "thought"
	StepToolCall     = "tool_call"
	StepToolResult   = "tool_result"
	StepMemoryUpdate = "memory_update"
	StepFinalAnswer  = "final_answer"
)

// Known step roles.
const (
	RoleAgent = "agent"
	RoleTool  = "tool"
)

// Metadata keys recognized by the rules engine.
const (
	MetaTaskDomain = "task_domain"
	MetaMode       = "mode"
)

// ArgToolDomain is the tool_call argument key holding the tool's declared domain.
const ArgToolDomain = "tool_domain"

// Run is one recorded agent execution with its full step trace.
// Runs are immutable after parsing except for each Step's Analysis record.
type Run struct {
	SchemaVersion     string         `json:"schema_version"`
	RunID             string         `json:"run_id"`
	AgentName         string         `json:"agent_name"`
	TimestampStarted  string         `json:"timestamp_started"`
	TimestampFinished string         `json:"timestamp_finished,omitempty"`
	UserQuery         string         `json:"user_query"`
	Metadata          map[string]any `json:"metadata,omitempty"`
	Steps             []*Step        `json:"steps"`
}

// TaskDomain returns the declared task domain from run metadata, or "" when absent.
func (r *Run) TaskDomain() string {
	if r.Metadata == nil {
		return ""
	}
	if v, ok := r.Metadata[MetaTaskDomain].(string); ok {
		return v
	}
	return ""
}

// Step is one atomic logged event. StepID is positive, unique within a run,
// and monotonically increasing in log order. Optional fields are zero-valued
// when absent; Content empty means absent.
type Step struct {
	StepID    int    `json:"step_id"`
	Type      string `json:"type"`
	Role      string `json:"role"`
	Timestamp string `json:"timestamp"`
	Content   string `json:"content,omitempty"`

	State map[string]any `json:"state,omitempty"`

	// Tool fields (tool_call / tool_result).
	ToolName  string         `json:"tool_name,omitempty"`
	CallID    string         `json:"call_id,omitempty"`
	Arguments map[string]any `json:"arguments,omitempty"`
	Result    any            `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`

	// Memory fields (memory_update).
	Operation string `json:"operation,omitempty"`
	Key       string `json:"key,omitempty"`
	Value     any    `json:"value,omitempty"`

	Analysis StepAnalysis `json:"analysis"`
}

// ToolDomain returns the declared tool domain from the step arguments, or ""
// when absent.
func (s *Step) ToolDomain() string {
	if s.Arguments == nil {
		return ""
	}
	if v, ok := s.Arguments[ArgToolDomain].(string); ok {
		return v
	}
	return ""
}

// StepAnalysis is the mutable annotation attached 1:1 to a Step. It starts
// empty and accumulates output from the rule passes via monotonic merge:
// the score never decreases, tags never duplicate, notes only append.
type StepAnalysis struct {
	RiskScore   float64  `json:"risk_score"`
	FailureTags []string `json:"failure_tags"`
	Notes       string   `json:"notes"`
}

// AddTag inserts a failure tag, preserving insertion order. Re-adding an
// existing tag is a no-op.
func (a *StepAnalysis) AddTag(tag string) {
	for _, t := range a.FailureTags {
		if t == tag {
			return
		}
	}
	a.FailureTags = append(a.FailureTags, tag)
}

// HasTag reports whether the tag has already been added.
func (a *StepAnalysis) HasTag(tag string) bool {
	for _, t := range a.FailureTags {
		if t == tag {
			return true
		}
	}
	return false
}

// RaiseScore merges a score floor: score = max(score, floor).
func (a *StepAnalysis) RaiseScore(floor float64) {
	if floor > a.RiskScore {
		a.RiskScore = floor
	}
}

// AppendNote concatenates a note sentence with a single separating space,
// skipping empty contributions. Existing notes are never overwritten.
func (a *StepAnalysis) AppendNote(note string) {
	if note == "" {
		return
	}
	if a.Notes == "" {
		a.Notes = note
		return
	}
	a.Notes += " " + note
}

// Flag applies the uniform merge rule of the rules engine in one call:
// tag set-insert, score max-merge, note append.
func (a *StepAnalysis) Flag(tag string, floor float64, note string) {
	a.AddTag(tag)
	a.RaiseScore(floor)
	a.AppendNote(note)
}

// Summary is the run-level fold over all annotated steps.
type Summary struct {
	TotalSteps    int            `json:"total_steps"`
	FlaggedSteps  int            `json:"flagged_steps"`
	ByFailureType map[string]int `json:"by_failure_type"`
}

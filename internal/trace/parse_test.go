package trace

import (
	"errors"
	"testing"
)

// minimalLog returns a valid log with all required run fields and no steps.
func minimalLog() map[string]any {
	return map[string]any{
		"schema_version":    "1.0",
		"run_id":            "run-1",
		"agent_name":        "test_agent",
		"timestamp_started": "2026-02-15T10:00:00Z",
		"user_query":        "what is the plan",
		"steps":             []any{},
	}
}

// minimalStep returns a valid step map with all required fields.
func minimalStep() map[string]any {
	return map[string]any{
		"step_id":   float64(1),
		"type":      "thought",
		"role":      "agent",
		"timestamp": "2026-02-15T10:00:01Z",
	}
}

func TestParseRunMap_MinimalLog(t *testing.T) {
	run, err := ParseRunMap(minimalLog())
	if err != nil {
		t.Fatalf("ParseRunMap failed: %v", err)
	}
	if run.RunID != "run-1" {
		t.Errorf("expected run id run-1, got %s", run.RunID)
	}
	if len(run.Steps) != 0 {
		t.Errorf("expected zero steps, got %d", len(run.Steps))
	}
}

func TestParseRunMap_MissingRunFields(t *testing.T) {
	for _, field := range []string{"schema_version", "run_id", "agent_name", "timestamp_started", "user_query", "steps"} {
		t.Run(field, func(t *testing.T) {
			raw := minimalLog()
			delete(raw, field)

			_, err := ParseRunMap(raw)
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if parseErr.Field != field {
				t.Errorf("expected field %q, got %q", field, parseErr.Field)
			}
			if parseErr.Scope != ScopeRun {
				t.Errorf("expected run scope, got %q", parseErr.Scope)
			}
		})
	}
}

func TestParseRunMap_MissingStepFields(t *testing.T) {
	for _, field := range []string{"step_id", "type", "role", "timestamp"} {
		t.Run(field, func(t *testing.T) {
			step := minimalStep()
			delete(step, field)
			raw := minimalLog()
			raw["steps"] = []any{step}

			_, err := ParseRunMap(raw)
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if parseErr.Field != field {
				t.Errorf("expected field %q, got %q", field, parseErr.Field)
			}
			if parseErr.Scope != ScopeStep {
				t.Errorf("expected step scope, got %q", parseErr.Scope)
			}
		})
	}
}

func TestParseRunMap_NumericStringStepID(t *testing.T) {
	step := minimalStep()
	step["step_id"] = "7"
	raw := minimalLog()
	raw["steps"] = []any{step}

	run, err := ParseRunMap(raw)
	if err != nil {
		t.Fatalf("ParseRunMap failed: %v", err)
	}
	if run.Steps[0].StepID != 7 {
		t.Errorf("expected step id 7, got %d", run.Steps[0].StepID)
	}
}

func TestParseRunMap_UnknownTypeAccepted(t *testing.T) {
	step := minimalStep()
	step["type"] = "telepathy"
	step["role"] = "oracle"
	raw := minimalLog()
	raw["steps"] = []any{step}

	run, err := ParseRunMap(raw)
	if err != nil {
		t.Fatalf("unknown type should be accepted; got %v", err)
	}
	if run.Steps[0].Type != "telepathy" {
		t.Errorf("expected type preserved, got %s", run.Steps[0].Type)
	}
}

func TestParseRunMap_OptionalFields(t *testing.T) {
	step := minimalStep()
	step["type"] = "tool_result"
	step["role"] = "tool"
	step["tool_name"] = "web_search"
	step["call_id"] = "call-2"
	step["result"] = "hits"
	step["error"] = "timeout contacting upstream"
	raw := minimalLog()
	raw["metadata"] = map[string]any{"task_domain": "ai_security", "mode": "default"}
	raw["steps"] = []any{step}

	run, err := ParseRunMap(raw)
	if err != nil {
		t.Fatalf("ParseRunMap failed: %v", err)
	}

	s := run.Steps[0]
	if s.Error != "timeout contacting upstream" {
		t.Errorf("expected error preserved, got %q", s.Error)
	}
	if s.CallID != "call-2" {
		t.Errorf("expected call id preserved, got %q", s.CallID)
	}
	if run.TaskDomain() != "ai_security" {
		t.Errorf("expected task domain ai_security, got %q", run.TaskDomain())
	}
}

func TestParseRunMap_NullErrorIsAbsent(t *testing.T) {
	step := minimalStep()
	step["type"] = "tool_result"
	step["error"] = nil
	raw := minimalLog()
	raw["steps"] = []any{step}

	run, err := ParseRunMap(raw)
	if err != nil {
		t.Fatalf("ParseRunMap failed: %v", err)
	}
	if run.Steps[0].Error != "" {
		t.Errorf("expected null error to parse as empty, got %q", run.Steps[0].Error)
	}
}

func TestParseLog_InvalidJSON(t *testing.T) {
	_, err := ParseLog([]byte("{not json"))
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestParseLog_Bytes(t *testing.T) {
	data := []byte(`{
		"schema_version": "1.0",
		"run_id": "r-9",
		"agent_name": "a",
		"timestamp_started": "2026-02-15T10:00:00Z",
		"user_query": "q",
		"steps": [
			{"step_id": 1, "type": "thought", "role": "agent", "timestamp": "t", "content": "hello"}
		]
	}`)

	run, err := ParseLog(data)
	if err != nil {
		t.Fatalf("ParseLog failed: %v", err)
	}
	if len(run.Steps) != 1 || run.Steps[0].Content != "hello" {
		t.Errorf("unexpected parse result: %+v", run.Steps)
	}
}

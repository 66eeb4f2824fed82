package trace

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// requiredRunFields are checked for presence on every log, in this order.
// "steps" is validated first so step-level problems surface before run-level ones.
var requiredRunFields = []string{
	"schema_version",
	"run_id",
	"agent_name",
	"timestamp_started",
	"user_query",
}

// requiredStepFields are checked for presence on every steps element.
var requiredStepFields = []string{"step_id", "type", "role", "timestamp"}

// ParseLog decodes raw JSON bytes and converts them into a Run.
// Returns a *ParseError when a required field is missing.
func ParseLog(data []byte) (*Run, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode log: %w", err)
	}
	return ParseRunMap(raw)
}

// ParseRunMap converts an already-decoded JSON object into a Run.
//
// Field presence is strict: the first missing required field aborts the parse
// with a *ParseError naming it. Value coercion is lenient (numeric-looking
// strings are accepted for step_id, scalars are stringified for string
// fields), and no semantic validation happens here: unknown step types and
// roles pass through for the rules engine to judge.
func ParseRunMap(raw map[string]any) (*Run, error) {
	stepsRaw, ok := raw["steps"].([]any)
	if !ok {
		return nil, missingRunField("steps")
	}

	steps := make([]*Step, 0, len(stepsRaw))
	for _, el := range stepsRaw {
		stepMap, _ := el.(map[string]any)
		step, err := parseStep(stepMap)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}

	for _, field := range requiredRunFields {
		if _, ok := raw[field]; !ok {
			return nil, missingRunField(field)
		}
	}

	return &Run{
		SchemaVersion:     coerceString(raw["schema_version"]),
		RunID:             coerceString(raw["run_id"]),
		AgentName:         coerceString(raw["agent_name"]),
		TimestampStarted:  coerceString(raw["timestamp_started"]),
		TimestampFinished: coerceString(raw["timestamp_finished"]),
		UserQuery:         coerceString(raw["user_query"]),
		Metadata:          coerceMap(raw["metadata"]),
		Steps:             steps,
	}, nil
}

func parseStep(raw map[string]any) (*Step, error) {
	for _, field := range requiredStepFields {
		if _, ok := raw[field]; !ok {
			return nil, missingStepField(field)
		}
	}

	id, ok := coerceInt(raw["step_id"])
	if !ok {
		return nil, missingStepField("step_id")
	}

	return &Step{
		StepID:    id,
		Type:      coerceString(raw["type"]),
		Role:      coerceString(raw["role"]),
		Timestamp: coerceString(raw["timestamp"]),
		Content:   coerceString(raw["content"]),
		State:     coerceMap(raw["state"]),
		ToolName:  coerceString(raw["tool_name"]),
		CallID:    coerceString(raw["call_id"]),
		Arguments: coerceMap(raw["arguments"]),
		Result:    raw["result"],
		Error:     coerceString(raw["error"]),
		Operation: coerceString(raw["operation"]),
		Key:       coerceString(raw["key"]),
		Value:     raw["value"],
	}, nil
}

// coerceString stringifies scalar values; nil and absent become "".
func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// coerceInt accepts JSON numbers and numeric-looking strings.
func coerceInt(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func coerceMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

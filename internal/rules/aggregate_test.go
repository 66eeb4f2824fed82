package rules

import (
	"testing"

	"github.com/boshu2/agentmri/internal/trace"
)

func TestSummarize_Histogram(t *testing.T) {
	s1 := &trace.Step{StepID: 1, Type: trace.StepThought}
	s1.Analysis.Flag(TagApology, 0.4, "")
	s2 := &trace.Step{StepID: 2, Type: trace.StepThought}
	s2.Analysis.Flag(TagApology, 0.4, "")
	s3 := &trace.Step{StepID: 3, Type: trace.StepToolResult}
	s3.Analysis.Flag(TagToolError, 0.9, "")
	s4 := &trace.Step{StepID: 4, Type: trace.StepThought} // clean

	summary := Summarize([]*trace.Step{s1, s2, s3, s4})

	if summary.TotalSteps != 4 {
		t.Errorf("expected total 4, got %d", summary.TotalSteps)
	}
	if summary.FlaggedSteps != 3 {
		t.Errorf("expected 3 flagged, got %d", summary.FlaggedSteps)
	}
	if summary.ByFailureType[TagApology] != 2 {
		t.Errorf("expected apology count 2, got %d", summary.ByFailureType[TagApology])
	}
	if summary.ByFailureType[TagToolError] != 1 {
		t.Errorf("expected tool_error count 1, got %d", summary.ByFailureType[TagToolError])
	}
}

func TestSummarize_MultiTagStepCountsOncePerBucket(t *testing.T) {
	s := &trace.Step{StepID: 1, Type: trace.StepFinalAnswer}
	s.Analysis.Flag(TagSpeculative, 0.4, "")
	s.Analysis.Flag(TagOverconfident, 0.5, "")
	s.Analysis.Flag(TagHallucination, 0.75, "")

	summary := Summarize([]*trace.Step{s})

	if summary.FlaggedSteps != 1 {
		t.Errorf("one step with three tags is still one flagged step, got %d", summary.FlaggedSteps)
	}
	for _, tag := range []string{TagSpeculative, TagOverconfident, TagHallucination} {
		if summary.ByFailureType[tag] != 1 {
			t.Errorf("expected %s count 1, got %d", tag, summary.ByFailureType[tag])
		}
	}
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalSteps != 0 || summary.FlaggedSteps != 0 {
		t.Errorf("unexpected summary for empty input: %+v", summary)
	}
	if summary.ByFailureType == nil {
		t.Error("histogram should be an empty map, not nil")
	}
}

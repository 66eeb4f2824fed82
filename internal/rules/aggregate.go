package rules

import "github.com/boshu2/agentmri/internal/trace"

// Summarize folds annotated steps into a run-level Summary. A step counts as
// flagged when its risk score is positive; every tag on every step
// contributes to its own histogram bucket, so a step with three tags feeds
// three buckets but is still one flagged step. No weighting happens here;
// that belongs to the overall risk classifier consuming the Summary.
func Summarize(steps []*trace.Step) trace.Summary {
	summary := trace.Summary{
		TotalSteps:    len(steps),
		ByFailureType: make(map[string]int),
	}

	for _, s := range steps {
		if s.Analysis.RiskScore > 0 {
			summary.FlaggedSteps++
		}
		for _, tag := range s.Analysis.FailureTags {
			summary.ByFailureType[tag]++
		}
	}

	return summary
}

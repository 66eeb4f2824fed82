// Package report renders an annotated run into a markdown incident report.
// Rendering is pure and total: no I/O, deterministic output, and no failure
// path for a structurally valid annotated run.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/boshu2/agentmri/internal/trace"
)

// Render produces the incident report for a run: a header naming the agent,
// run id and user query, a summary block with the tag histogram, and a
// flagged-steps block listing every step with a positive risk score in
// ascending step-id order. Zero-risk steps are omitted entirely.
func Render(run *trace.Run, steps []*trace.Step, summary trace.Summary) string {
	var b strings.Builder

	b.WriteString("# Agent MRI Incident Report\n\n")
	fmt.Fprintf(&b, "**Agent:** `%s`\n", run.AgentName)
	fmt.Fprintf(&b, "**Run ID:** `%s`\n", run.RunID)
	fmt.Fprintf(&b, "**User query:** %s\n\n", run.UserQuery)

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Total steps: %d\n", summary.TotalSteps)
	fmt.Fprintf(&b, "- Flagged steps: %d\n", summary.FlaggedSteps)

	if len(summary.ByFailureType) > 0 {
		b.WriteString("- Issues by type:\n")
		for _, tc := range sortedHistogram(summary.ByFailureType) {
			fmt.Fprintf(&b, "  - **%s**: %d\n", tc.tag, tc.count)
		}
	} else {
		b.WriteString("- No obvious issues detected.\n")
	}

	b.WriteString("\n## Flagged Steps\n\n")
	for _, s := range flaggedAscending(steps) {
		fmt.Fprintf(&b, "### Step %d (%s)\n", s.StepID, s.Type)
		if s.Content != "" {
			fmt.Fprintf(&b, "> %s\n", s.Content)
		}
		if len(s.Analysis.FailureTags) > 0 {
			fmt.Fprintf(&b, "- Tags: %s\n", strings.Join(s.Analysis.FailureTags, ", "))
		}
		if s.Analysis.Notes != "" {
			fmt.Fprintf(&b, "- Notes: %s\n", s.Analysis.Notes)
		}
		b.WriteString("\n")
	}

	return b.String()
}

type tagCount struct {
	tag   string
	count int
}

// sortedHistogram orders the tag histogram count-descending, breaking ties
// by tag name so output is deterministic.
func sortedHistogram(hist map[string]int) []tagCount {
	out := make([]tagCount, 0, len(hist))
	for tag, count := range hist {
		out = append(out, tagCount{tag: tag, count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].tag < out[j].tag
	})
	return out
}

// flaggedAscending returns only the positive-risk steps, sorted by step id.
func flaggedAscending(steps []*trace.Step) []*trace.Step {
	var flagged []*trace.Step
	for _, s := range steps {
		if s.Analysis.RiskScore > 0 {
			flagged = append(flagged, s)
		}
	}
	sort.Slice(flagged, func(i, j int) bool {
		return flagged[i].StepID < flagged[j].StepID
	})
	return flagged
}

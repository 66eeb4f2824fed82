// Package critic turns an analysis summary and incident report into prose
// feedback from a "senior risk manager" persona. The output is unconstrained
// advisory text; the core pipeline has no contract obligations toward it.
package critic

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/boshu2/agentmri/internal/llm"
	"github.com/boshu2/agentmri/internal/trace"
)

// Advise produces markdown feedback on a run. With a mock model client it
// returns the deterministic offline advice instead of a canned echo, so
// offline runs still read like a review.
func Advise(ctx context.Context, client llm.Client, summary trace.Summary, reportMD string) (string, error) {
	if _, ok := client.(*llm.MockClient); ok {
		return Fallback(summary), nil
	}

	summaryJSON, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}

	text, err := client.Complete(ctx, llm.CompletionRequest{
		Prompt:      criticPrompt(string(summaryJSON), reportMD),
		Temperature: 0.6,
	})
	if err != nil {
		return "", fmt.Errorf("critic completion: %w", err)
	}
	return text, nil
}

// Fallback is the deterministic offline critique built purely from the
// summary: executive summary, diagnosis, recommendations, and one experiment.
func Fallback(summary trace.Summary) string {
	var b strings.Builder

	b.WriteString("**Executive summary**\n")
	if summary.FlaggedSteps == 0 {
		b.WriteString("- Main failure: none detected.\n")
		b.WriteString("- Key action: continue normal operations.\n")
	} else {
		fmt.Fprintf(&b, "- Main failure: **%s**.\n", dominantTag(summary.ByFailureType))
		b.WriteString("- Key action: tighten prompts and tool selection discipline.\n")
	}

	b.WriteString("\n---\n\n")
	b.WriteString("**Diagnosis - what went wrong**\n")
	if summary.FlaggedSteps == 0 {
		b.WriteString("- No steps were flagged as risky in this run.\n")
	} else {
		fmt.Fprintf(&b, "- %d steps were flagged with MRI issues:\n", summary.FlaggedSteps)
		for _, tag := range sortedTags(summary.ByFailureType) {
			fmt.Fprintf(&b, "  - `%s`: %d occurrence(s)\n", tag, summary.ByFailureType[tag])
		}
	}

	b.WriteString("\n**Recommendations - how to improve**\n")
	b.WriteString("- Require at least one grounding or tool step for factual tasks.\n")
	b.WriteString("- Penalise irrelevant or speculative tool use.\n")
	b.WriteString("- Add a self-check pass before the final answer is returned to the user.\n")

	b.WriteString("\n**Simple experiment**\n")
	b.WriteString("- Re-run the same query with a stricter, grounding-required prompt and " +
		"compare how many MRI tags are triggered.\n")

	return b.String()
}

// dominantTag returns the most frequent tag, ties broken by name.
func dominantTag(hist map[string]int) string {
	best := "unknown"
	bestCount := -1
	for _, tag := range sortedTags(hist) {
		if hist[tag] > bestCount {
			best = tag
			bestCount = hist[tag]
		}
	}
	return best
}

func sortedTags(hist map[string]int) []string {
	tags := make([]string, 0, len(hist))
	for tag := range hist {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func criticPrompt(summaryJSON, reportMD string) string {
	return fmt.Sprintf(`You are a Senior AI Risk Manager reviewing an AI agent run.

You will receive:
1. A JSON summary of the agent run.
2. A detailed incident report.

Provide feedback in **markdown** following this structure exactly, using section titles as plain text or bold, not markdown headings:

Executive summary
- Overall: one-sentence evaluation of the run.
- Main failure: the dominant MRI tag.
- Key fix: one concrete improvement.

---

Diagnosis (What went wrong?)
- 3-5 bullet points.

Recommendations (How to improve?)
- 3-6 bullets or a small table.

Simple experiment/test
- Propose one small test that could validate whether improvements work.

Here is the JSON summary:

`+"```json\n%s\n```"+`

Here is the detailed MRI incident report:

`+"```\n%s\n```\n", summaryJSON, reportMD)
}

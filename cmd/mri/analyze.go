package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boshu2/agentmri/internal/report"
	"github.com/boshu2/agentmri/internal/risk"
	"github.com/boshu2/agentmri/internal/rules"
	"github.com/boshu2/agentmri/internal/trace"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <log.json>",
	Short: "Analyze an agent run log",
	Long: `Analyze a run log file with the Agent MRI rules engine.

The log is parsed, every step is annotated with risk tags and scores,
and the result is folded into an incident summary plus a markdown report.

Output modes:
  -o json      Annotated timeline steps, summary, report, and overall risk
  -o markdown  The incident report only
  default      A plain-text summary table

Examples:
  mri analyze run.json
  mri analyze run.json -o json
  mri analyze run.json -o markdown`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read log file: %w", err)
	}

	run, err := trace.ParseLog(data)
	if err != nil {
		return fmt.Errorf("parse log: %w", err)
	}

	VerbosePrintf("parsed run %s with %d steps\n", run.RunID, len(run.Steps))

	steps, summary := rules.Evaluate(run, &cfg.Markers)
	reportMD := report.Render(run, steps, summary)
	rating := risk.Classify(summary, cfg.RiskWeights)

	switch cfg.Output {
	case "json":
		return printJSON(map[string]any{
			"steps":           trace.Timeline(steps),
			"summary":         summary,
			"report_markdown": reportMD,
			"risk":            rating,
		})
	case "markdown":
		fmt.Println(reportMD)
		return nil
	default:
		printAnalysisTable(run, steps, summary, rating)
		return nil
	}
}

// printAnalysisTable prints the plain-text summary view.
func printAnalysisTable(run *trace.Run, steps []*trace.Step, summary trace.Summary, rating risk.Rating) {
	fmt.Println()
	fmt.Printf("Run %s (%s)\n", run.RunID, run.AgentName)
	fmt.Printf("Query: %s\n", run.UserQuery)
	fmt.Println()
	fmt.Printf("Overall risk: %d/100 (%s)\n", rating.Score, rating.Level)
	fmt.Printf("Steps: %d total, %d flagged\n", summary.TotalSteps, summary.FlaggedSteps)
	fmt.Println()

	if summary.FlaggedSteps == 0 {
		fmt.Println("No issues detected")
		fmt.Println()
		return
	}

	fmt.Println("Flagged steps:")
	for _, s := range steps {
		if s.Analysis.RiskScore <= 0 {
			continue
		}
		fmt.Printf("  [%0.2f] step %d (%s): %s\n",
			s.Analysis.RiskScore, s.StepID, s.Type,
			strings.Join(s.Analysis.FailureTags, ", "))
		if s.Analysis.Notes != "" {
			fmt.Printf("         %s\n", s.Analysis.Notes)
		}
	}
	fmt.Println()
}

// printJSON marshals v with indentation to stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

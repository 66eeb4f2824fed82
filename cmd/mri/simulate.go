package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boshu2/agentmri/internal/critic"
	"github.com/boshu2/agentmri/internal/intern"
	"github.com/boshu2/agentmri/internal/llm"
	"github.com/boshu2/agentmri/internal/report"
	"github.com/boshu2/agentmri/internal/risk"
	"github.com/boshu2/agentmri/internal/rules"
	"github.com/boshu2/agentmri/internal/trace"
)

var (
	simulateMode    string
	simulateLogOnly bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <query>",
	Short: "Run the chaos intern and analyze its log",
	Long: `Run the synthetic chaos intern on a query, analyze the resulting
log, and print the full diagnostic output including critic feedback.

Chaos modes:
  default        mildly chaotic, somewhat on-task
  hallucination  confidently fabricates facts
  tool_misuse    misuses tools and mislabels their domain
  memory_loss    forgets the task and drifts off-topic

Without an API key (or with AGENTMRI_FAKE_MODE=1) the intern runs against
a deterministic offline model client.

Examples:
  mri simulate "Summarize top AI security risks"
  mri simulate "Summarize top AI security risks" --mode hallucination
  mri simulate "audit our tool policy" --mode tool_misuse --log-only -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().StringVar(&simulateMode, "mode", intern.ModeDefault, "Chaos mode (default, hallucination, tool_misuse, memory_loss)")
	simulateCmd.Flags().BoolVar(&simulateLogOnly, "log-only", false, "Emit the generated run log without analyzing it")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := llm.New(cfg.LLM)
	ctx := context.Background()

	result, err := intern.Run(ctx, client, args[0], simulateMode)
	if err != nil {
		return fmt.Errorf("intern run failed: %w", err)
	}

	if simulateLogOnly {
		return printJSON(result.Run)
	}

	steps, summary := rules.Evaluate(result.Run, &cfg.Markers)
	reportMD := report.Render(result.Run, steps, summary)
	rating := risk.Classify(summary, cfg.RiskWeights)

	criticMD, err := critic.Advise(ctx, client, summary, reportMD)
	if err != nil {
		return fmt.Errorf("critic failed: %w", err)
	}

	if cfg.Output == "json" {
		return printJSON(map[string]any{
			"final_answer_md": result.FinalAnswer,
			"summary":         summary,
			"risk":            rating,
			"timeline_steps":  trace.Timeline(steps),
			"report_markdown": reportMD,
			"critic_markdown": criticMD,
		})
	}

	fmt.Println(reportMD)
	fmt.Println("## Critic Feedback")
	fmt.Println()
	fmt.Println(criticMD)
	return nil
}

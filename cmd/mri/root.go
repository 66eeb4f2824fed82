package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boshu2/agentmri/internal/config"
)

var (
	// Global flags
	verbose bool
	output  string
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mri",
	Short: "Agent MRI diagnostic CLI",
	Long: `mri is the CLI for Agent MRI, an observability and diagnostic suite
for AI agent run logs.

Core Commands:
  analyze      Analyze a run log and produce an incident report
  simulate     Run the chaos intern and analyze its log
  serve        Start the HTTP service
  version      Show version information

A run log is annotated step by step with risk tags, folded into an
incident summary, and rendered as a markdown report.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		syncConfigFlagToEnv()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format (json, markdown, table)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: .agentmri/config.yaml)")
}

// loadConfig resolves configuration and applies global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if output != "" {
		cfg.Output = output
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// VerbosePrintf prints only when verbose mode is enabled.
func VerbosePrintf(format string, args ...interface{}) {
	if verbose {
		fmt.Printf(format, args...)
	}
}

func syncConfigFlagToEnv() {
	path := strings.TrimSpace(cfgFile)
	if path == "" {
		return
	}
	_ = os.Setenv("AGENTMRI_CONFIG", path)
}

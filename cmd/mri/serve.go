package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/boshu2/agentmri/internal/llm"
	"github.com/boshu2/agentmri/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Agent MRI HTTP service",
	Long: `Start the HTTP service exposing the diagnostic pipeline.

Endpoints:
  POST /v1/analyze     Analyze a submitted run log
  POST /v1/intern/run  Run the chaos intern end to end
  GET  /health         Health check

Examples:
  mri serve
  mri serve --port 9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	client := llm.New(cfg.LLM)
	e := server.New(cfg, client)

	log.Printf("starting Agent MRI service on port %d", cfg.Server.Port)
	return e.Start(fmt.Sprintf(":%d", cfg.Server.Port))
}

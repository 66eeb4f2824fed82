package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/boshu2/agentmri/internal/config"
	"github.com/boshu2/agentmri/internal/critic"
	"github.com/boshu2/agentmri/internal/intern"
	"github.com/boshu2/agentmri/internal/llm"
	"github.com/boshu2/agentmri/internal/report"
	"github.com/boshu2/agentmri/internal/risk"
	"github.com/boshu2/agentmri/internal/rules"
	"github.com/boshu2/agentmri/internal/trace"
)

// Handler handles HTTP requests.
type Handler struct {
	cfg    *config.Config
	client llm.Client
}

// NewHandler creates a new handler.
func NewHandler(cfg *config.Config, client llm.Client) *Handler {
	return &Handler{cfg: cfg, client: client}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/v1/analyze", h.Analyze)
	e.POST("/v1/intern/run", h.RunIntern)
	e.GET("/health", h.Health)
}

// AnalyzeRequest is the body for POST /v1/analyze. Log is an already-decoded
// run log in the canonical input format.
type AnalyzeRequest struct {
	Log map[string]any `json:"log"`
}

// AnalyzeResponse carries the core's three outputs plus the derived overall
// risk rating.
type AnalyzeResponse struct {
	Steps          []trace.TimelineStep `json:"steps"`
	Summary        trace.Summary        `json:"summary"`
	ReportMarkdown string               `json:"report_markdown"`
	Risk           risk.Rating          `json:"risk"`
}

// InternRunRequest is the body for POST /v1/intern/run.
type InternRunRequest struct {
	Query string `json:"query"`
	Mode  string `json:"mode"`
}

// InternRunResponse is the full-pipeline response: the intern's answer, its
// analyzed log, the overall risk, and the critic's feedback.
type InternRunResponse struct {
	FinalAnswerMD  string               `json:"final_answer_md"`
	Summary        trace.Summary        `json:"summary"`
	Risk           risk.Rating          `json:"risk"`
	TimelineSteps  []trace.TimelineStep `json:"timeline_steps"`
	ReportMarkdown string               `json:"report_markdown"`
	CriticMarkdown string               `json:"critic_markdown"`
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// Analyze runs the diagnostic pipeline over a submitted run log.
func (h *Handler) Analyze(c echo.Context) error {
	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Log == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing log"})
	}

	run, err := trace.ParseRunMap(req.Log)
	if err != nil {
		var parseErr *trace.ParseError
		if errors.As(err, &parseErr) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": parseErr.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, h.analyze(run))
}

// RunIntern executes the chaos intern, analyzes its log, and asks the critic
// for feedback.
func (h *Handler) RunIntern(c echo.Context) error {
	var req InternRunRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Query == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing query"})
	}
	if req.Mode == "" {
		req.Mode = intern.ModeDefault
	}

	ctx := c.Request().Context()

	result, err := intern.Run(ctx, h.client, req.Query, req.Mode)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	analysis := h.analyze(result.Run)

	criticMD, err := critic.Advise(ctx, h.client, analysis.Summary, analysis.ReportMarkdown)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, InternRunResponse{
		FinalAnswerMD:  result.FinalAnswer,
		Summary:        analysis.Summary,
		Risk:           analysis.Risk,
		TimelineSteps:  analysis.Steps,
		ReportMarkdown: analysis.ReportMarkdown,
		CriticMarkdown: criticMD,
	})
}

// analyze runs evaluate -> summarize -> render -> classify over a
// materialized run.
func (h *Handler) analyze(run *trace.Run) AnalyzeResponse {
	steps, summary := rules.Evaluate(run, &h.cfg.Markers)
	reportMD := report.Render(run, steps, summary)

	return AnalyzeResponse{
		Steps:          trace.Timeline(steps),
		Summary:        summary,
		ReportMarkdown: reportMD,
		Risk:           risk.Classify(summary, h.cfg.RiskWeights),
	}
}

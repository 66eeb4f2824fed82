package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boshu2/agentmri/internal/config"
	"github.com/boshu2/agentmri/internal/llm"
)

func newTestHandler() (*Handler, *echo.Echo) {
	cfg := config.Default()
	cfg.LLM.FakeMode = true
	return NewHandler(cfg, llm.NewMockClient()), echo.New()
}

func doJSON(h *Handler, e *echo.Echo, method, path, body string,
	fn func(echo.Context) error) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := fn(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestHealth(t *testing.T) {
	h, e := newTestHandler()
	rec := doJSON(h, e, http.MethodGet, "/health", "", h.Health)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestAnalyze_HappyPath(t *testing.T) {
	h, e := newTestHandler()
	payload := `{"log": {
		"schema_version": "1.0",
		"run_id": "r-1",
		"agent_name": "chaos_intern",
		"timestamp_started": "2026-02-15T10:00:00Z",
		"user_query": "Summarize AI security risks",
		"steps": [
			{"step_id": 1, "type": "thought", "role": "agent",
			 "timestamp": "2026-02-15T10:00:01Z", "content": "Sorry, I am not sure."},
			{"step_id": 2, "type": "tool_result", "role": "tool",
			 "timestamp": "2026-02-15T10:00:02Z", "tool_name": "web_search",
			 "call_id": "call-1", "error": "timeout"}
		]
	}}`

	rec := doJSON(h, e, http.MethodPost, "/v1/analyze", payload, h.Analyze)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Summary.TotalSteps)
	assert.Equal(t, 2, resp.Summary.FlaggedSteps)
	assert.Equal(t, 1, resp.Summary.ByFailureType["apology"])
	assert.Equal(t, 1, resp.Summary.ByFailureType["tool_error"])
	assert.Contains(t, resp.ReportMarkdown, "# Agent MRI Incident Report")
	assert.Len(t, resp.Steps, 2)
	assert.NotEmpty(t, resp.Risk.Level)
}

func TestAnalyze_MissingLog(t *testing.T) {
	h, e := newTestHandler()
	rec := doJSON(h, e, http.MethodPost, "/v1/analyze", `{}`, h.Analyze)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing log")
}

func TestAnalyze_MalformedLog(t *testing.T) {
	h, e := newTestHandler()
	payload := `{"log": {"run_id": "r-1"}}`

	rec := doJSON(h, e, http.MethodPost, "/v1/analyze", payload, h.Analyze)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "missing required run field: steps", body["error"])
}

func TestAnalyze_BadStep(t *testing.T) {
	h, e := newTestHandler()
	payload := `{"log": {
		"schema_version": "1.0",
		"run_id": "r-1",
		"agent_name": "a",
		"timestamp_started": "2026-02-15T10:00:00Z",
		"user_query": "q",
		"steps": [{"step_id": 1, "type": "thought", "role": "agent"}]
	}}`

	rec := doJSON(h, e, http.MethodPost, "/v1/analyze", payload, h.Analyze)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing required step field: timestamp")
}

func TestRunIntern_MissingQuery(t *testing.T) {
	h, e := newTestHandler()
	rec := doJSON(h, e, http.MethodPost, "/v1/intern/run", `{"mode": "default"}`, h.RunIntern)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing query")
}

func TestRunIntern_MockPipeline(t *testing.T) {
	h, e := newTestHandler()
	payload := `{"query": "Summarize top AI security risks", "mode": "tool_misuse"}`

	rec := doJSON(h, e, http.MethodPost, "/v1/intern/run", payload, h.RunIntern)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp InternRunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.FinalAnswerMD)
	assert.Len(t, resp.TimelineSteps, 6)
	assert.Positive(t, resp.Summary.ByFailureType["tool_misuse"])
	assert.Contains(t, resp.CriticMarkdown, "Executive summary")
	assert.NotEmpty(t, resp.Risk.Level)
}

func TestNew_RegistersRoutes(t *testing.T) {
	e := New(config.Default(), llm.NewMockClient())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

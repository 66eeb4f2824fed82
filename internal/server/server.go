// Package server exposes the Agent MRI pipeline over HTTP. It is a thin
// shim: logs are fully materialized before the core is called, and the
// core's three outputs are returned unmodified, with the derived overall
// risk rating added alongside.
package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/boshu2/agentmri/internal/config"
	"github.com/boshu2/agentmri/internal/llm"
)

// New creates and configures the HTTP server.
func New(cfg *config.Config, client llm.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	h := NewHandler(cfg, client)
	h.RegisterRoutes(e)

	return e
}

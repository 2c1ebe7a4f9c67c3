package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"userapi/internal/repository"
)

const (
	rootMessage  = "Let's Get Rusty!"
	debugMessage = "API is up and running!"
)

// SystemHandler serves liveness, diagnostic and readiness endpoints.
type SystemHandler struct {
	repo repository.UserRepository
	log  zerolog.Logger
}

// NewSystemHandler creates a new system handler.
func NewSystemHandler(repo repository.UserRepository, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{repo: repo, log: log}
}

// Root godoc
// @Summary Liveness
// @Tags system
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func (h *SystemHandler) Root(c echo.Context) error {
	return c.String(http.StatusOK, rootMessage)
}

// Debug godoc
// @Summary Diagnostic text reachable from any origin
// @Tags system
// @Produce plain
// @Success 200 {string} string
// @Router /debug [get]
func (h *SystemHandler) Debug(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderAccessControlAllowOrigin, "*")
	return c.String(http.StatusOK, debugMessage)
}

// Health godoc
// @Summary Readiness, pings the database
// @Tags system
// @Produce plain
// @Success 200 {string} string
// @Failure 503 {object} errors.ErrorResponse
// @Router /healthz [get]
func (h *SystemHandler) Health(c echo.Context) error {
	if err := h.repo.Ping(c.Request().Context()); err != nil {
		return respondError(c, h.log, err)
	}
	return c.String(http.StatusOK, "ok")
}

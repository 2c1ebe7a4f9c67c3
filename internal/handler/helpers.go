package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	apperrors "userapi/internal/errors"
)

// respondError converts err into the JSON error body. Server-side failures
// are logged with their detail, which the client never sees.
func respondError(c echo.Context, log zerolog.Logger, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	event := log.Debug()
	if httpErr.StatusCode >= 500 {
		event = log.Error()
	}
	event.Err(err).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Str("method", c.Request().Method).
		Str("route", c.Path()).
		Int("status", httpErr.StatusCode).
		Msg("request failed")
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medicare/hms/internal/platform/auth"
)

// Logger emits one structured line per request. Identity fields are read
// after the handler chain runs, so the user and department resolved by
// the auth middleware downstream are included for authenticated routes.
func Logger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			status := c.Response().Status
			var evt *zerolog.Event
			switch {
			case err != nil || status >= 500:
				evt = logger.Error().Err(err)
			case status >= 400:
				evt = logger.Warn()
			default:
				evt = logger.Info()
			}

			rid, _ := c.Get("request_id").(string)
			evt = evt.
				Str("request_id", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", status).
				Int64("bytes_out", c.Response().Size).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP())
			if user := auth.UserIDFromContext(req.Context()); user != "" {
				evt = evt.
					Str("user", user).
					Str("department", auth.DepartmentFromContext(req.Context()))
			}
			evt.Msg("request")

			return err
		}
	}
}

package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
)

// Snapshotter reads the current session
type Snapshotter interface {
	Snapshot(ctx context.Context) (entities.Session, error)
}

// RequireIdle rejects the request before its body is read while a recording
// or a file upload is in progress.
func RequireIdle(sessions Snapshotter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, err := sessions.Snapshot(c.Request().Context())
			if err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
					"error":   "session_unavailable",
					"message": err.Error(),
				})
			}
			if s.IsRecording() {
				return c.JSON(http.StatusConflict, map[string]interface{}{
					"error":   "recording_active",
					"message": "Stop recording before uploading a file",
				})
			}
			if s.IsProcessing {
				return c.JSON(http.StatusConflict, map[string]interface{}{
					"error":   "upload_in_progress",
					"message": "A file is already being processed",
				})
			}
			return next(c)
		}
	}
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
)

type snapshotFunc func(ctx context.Context) (entities.Session, error)

func (f snapshotFunc) Snapshot(ctx context.Context) (entities.Session, error) { return f(ctx) }

func TestRequireIdle(t *testing.T) {
	tests := []struct {
		name     string
		session  entities.Session
		err      error
		wantCode int
		wantBody string
	}{
		{"idle", entities.Session{State: entities.SessionIdle}, nil, http.StatusNoContent, ""},
		{"recording", entities.Session{State: entities.SessionRecording}, nil, http.StatusConflict, "recording_active"},
		{"processing", entities.Session{State: entities.SessionIdle, IsProcessing: true}, nil, http.StatusConflict, "upload_in_progress"},
		{"closed", entities.Session{}, errors.New("controller closed"), http.StatusServiceUnavailable, "controller closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			called := false
			h := RequireIdle(snapshotFunc(func(context.Context) (entities.Session, error) {
				return tt.session, tt.err
			}))(func(c echo.Context) error {
				called = true
				return c.NoContent(http.StatusNoContent)
			})

			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/v1/uploads", nil), rec)
			assert.NoError(t, h(c))
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantCode == http.StatusNoContent, called)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

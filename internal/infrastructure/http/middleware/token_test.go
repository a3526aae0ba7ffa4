package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runToken(t *testing.T, token string, headers map[string]string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	return EchoToken(token)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
}

func TestEchoToken(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		headers map[string]string
		wantErr string
	}{
		{"disabled", "", nil, ""},
		{"missing", "abc", nil, "Missing authorization token"},
		{"bearer", "abc", map[string]string{"Authorization": "Bearer abc"}, ""},
		{"lowercase scheme", "abc", map[string]string{"Authorization": "bearer abc"}, ""},
		{"api key", "abc", map[string]string{"X-API-Key": "abc"}, ""},
		{"wrong", "abc", map[string]string{"Authorization": "Bearer abd"}, "Invalid token"},
		{"basic scheme", "abc", map[string]string{"Authorization": "Basic abc"}, "Missing authorization token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runToken(t, tt.token, tt.headers)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, http.StatusUnauthorized, he.Code)
			assert.Equal(t, tt.wantErr, he.Message)
		})
	}
}

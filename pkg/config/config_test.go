package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8090", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	assert.Equal(t, "none", cfg.Speech.Provider)
	assert.Equal(t, "You", cfg.Speech.Speaker)
	assert.Equal(t, 3*time.Second, cfg.Session.NoticeTTL)
	assert.Equal(t, int64(1<<30), cfg.Upload.MaxBytes)
	assert.Equal(t, "stream", cfg.Upload.Mode)
	assert.Equal(t, "127.0.0.1:8090", cfg.GetServerAddr())
	assert.True(t, cfg.IsDevelopment())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("BACKEND_BASE_URL", "http://backend.test:8000")
	t.Setenv("BACKEND_WS_URL", "ws://backend.test:8000")
	t.Setenv("SPEECH_PROVIDER", "realtime-video")
	t.Setenv("SPEECH_AUDIO_INPUT", "-")
	t.Setenv("SESSION_USER_ID", "user-42")
	t.Setenv("SESSION_NOTICE_TTL", "5s")
	t.Setenv("UPLOAD_MODE", "batch")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_HOST", "cache.test")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "ws://backend.test:8000", cfg.Backend.WSURL)
	assert.Equal(t, "realtime-video", cfg.Speech.Provider)
	assert.Equal(t, "user-42", cfg.Session.UserID)
	assert.Equal(t, 5*time.Second, cfg.Session.NoticeTTL)
	assert.Equal(t, "batch", cfg.Upload.Mode)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache.test:6379", cfg.GetRedisAddr())
}

func TestFromEnv_RejectsInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown provider":       {"SPEECH_PROVIDER": "browser"},
		"assemblyai without key": {"SPEECH_PROVIDER": "assemblyai"},
		"bad upload mode":        {"UPLOAD_MODE": "chunked"},
		"bad log level":          {"LOG_LEVEL": "trace"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

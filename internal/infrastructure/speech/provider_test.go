package speech

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
	"github.com/johnquangdev/meeting-assistant-client/internal/infrastructure/realtime"
	"github.com/johnquangdev/meeting-assistant-client/pkg/config"
)

func testConfig(provider, input string) *config.Config {
	return &config.Config{
		Backend: config.BackendConfig{WSURL: "ws://localhost:8000", MaxRetries: 1},
		Speech: config.SpeechConfig{
			Provider:   provider,
			AudioInput: input,
			SampleRate: 16000,
			ChunkBytes: 4096,
			Speaker:    "You",
		},
	}
}

func TestAcquireUnavailable(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		input    string
		apiKey   string
	}{
		{"disabled", ProviderNone, "-", ""},
		{"empty provider", "", "-", ""},
		{"no audio input", ProviderRealtimeVideo, "", ""},
		{"assemblyai without key", ProviderAssemblyAI, "-", ""},
		{"unknown provider", "whisper", "-", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(tt.provider, tt.input)
			cfg.Speech.AssemblyAIAPIKey = tt.apiKey

			rec, err := NewProvider(cfg, zaptest.NewLogger(t), nil).Acquire()
			assert.Nil(t, rec)
			assert.ErrorIs(t, err, entities.ErrCapabilityUnavailable)
		})
	}
}

func TestAcquireRecognizers(t *testing.T) {
	for _, name := range []string{ProviderRealtimeVideo, ProviderMeeting} {
		p := NewProvider(testConfig(name, "-"), zaptest.NewLogger(t), nil)
		assert.Equal(t, name, p.Name())

		rec, err := p.Acquire()
		require.NoError(t, err)
		assert.IsType(t, &realtime.SocketRecognizer{}, rec)
	}

	cfg := testConfig(ProviderAssemblyAI, "-")
	cfg.Speech.AssemblyAIAPIKey = "test-key"
	rec, err := NewProvider(cfg, zaptest.NewLogger(t), nil).Acquire()
	require.NoError(t, err)
	assert.IsType(t, &AssemblyAIRecognizer{}, rec)

	// Stop before Start is harmless.
	assert.NoError(t, rec.Stop())
	assert.NoError(t, rec.Stop())
}

func TestWithOpener(t *testing.T) {
	p := NewProvider(testConfig(ProviderMeeting, ""), zaptest.NewLogger(t), nil)
	_, err := p.Acquire()
	require.ErrorIs(t, err, entities.ErrCapabilityUnavailable)

	p.WithOpener(func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(nil)), nil
	})
	rec, err := p.Acquire()
	require.NoError(t, err)
	assert.NotNil(t, rec)
}

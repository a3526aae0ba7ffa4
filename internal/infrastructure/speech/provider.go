package speech

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/ports"
	"github.com/johnquangdev/meeting-assistant-client/internal/infrastructure/audio"
	"github.com/johnquangdev/meeting-assistant-client/internal/infrastructure/realtime"
	"github.com/johnquangdev/meeting-assistant-client/pkg/config"
	"github.com/johnquangdev/meeting-assistant-client/pkg/metrics"
)

// Provider names accepted by SPEECH_PROVIDER
const (
	ProviderNone          = "none"
	ProviderAssemblyAI    = "assemblyai"
	ProviderRealtimeVideo = "realtime-video"
	ProviderMeeting       = "meeting"
)

// Provider hands out one recognizer per capture
type Provider struct {
	name    string
	speech  config.SpeechConfig
	backend config.BackendConfig
	open    audio.Opener
	logger  *zap.Logger
	metrics *metrics.AssistantMetrics
}

var _ ports.RecognizerProvider = (*Provider)(nil)

// NewProvider builds the provider configured in cfg.Speech. Acquire fails
// when the provider is none or there is no audio input to capture from.
func NewProvider(cfg *config.Config, logger *zap.Logger, m *metrics.AssistantMetrics) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	name := cfg.Speech.Provider
	if name == "" {
		name = ProviderNone
	}

	p := &Provider{
		name:    name,
		speech:  cfg.Speech,
		backend: cfg.Backend,
		logger:  logger.With(zap.String("component", "speech")),
		metrics: m,
	}
	if cfg.Speech.AudioInput != "" {
		p.open = audio.OpenInput(cfg.Speech.AudioInput)
	}
	return p
}

// WithOpener replaces the audio source, mainly for tests.
func (p *Provider) WithOpener(open audio.Opener) *Provider {
	p.open = open
	return p
}

// Name returns the configured provider name
func (p *Provider) Name() string {
	return p.name
}

// Acquire returns a fresh recognizer
func (p *Provider) Acquire() (ports.Recognizer, error) {
	if p.name == ProviderNone {
		return nil, fmt.Errorf("speech provider disabled: %w", entities.ErrCapabilityUnavailable)
	}
	if p.open == nil {
		return nil, fmt.Errorf("no audio input configured: %w", entities.ErrCapabilityUnavailable)
	}

	switch p.name {
	case ProviderAssemblyAI:
		if p.speech.AssemblyAIAPIKey == "" {
			return nil, fmt.Errorf("assemblyai api key missing: %w", entities.ErrCapabilityUnavailable)
		}
		return newAssemblyAIRecognizer(
			p.speech.AssemblyAIAPIKey,
			p.speech.SampleRate,
			p.speech.ChunkBytes,
			p.speech.Speaker,
			p.open,
			p.logger,
		), nil
	case ProviderRealtimeVideo, ProviderMeeting:
		return realtime.NewSocketRecognizer(realtime.Options{
			BaseURL:    p.backend.WSURL,
			APIKey:     p.backend.APIKey,
			Route:      realtime.Route(p.name),
			Speaker:    p.speech.Speaker,
			ChunkBytes: p.speech.ChunkBytes,
			Pace:       audio.ChunkDuration(p.speech.ChunkBytes, p.speech.SampleRate),
			MaxRetries: p.backend.MaxRetries,
			Open:       p.open,
		}, p.logger, p.metrics), nil
	default:
		return nil, fmt.Errorf("unknown speech provider %q: %w", p.name, entities.ErrCapabilityUnavailable)
	}
}

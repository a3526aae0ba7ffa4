package speech

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-assistant-client/internal/domain/ports"
	"github.com/johnquangdev/meeting-assistant-client/internal/infrastructure/audio"
)

// AssemblyAIRecognizer streams captured audio to AssemblyAI real-time
// transcription. Partial transcripts become interim text, final ones
// finalized utterances.
type AssemblyAIRecognizer struct {
	apiKey     string
	sampleRate int
	chunkBytes int
	speaker    string
	open       audio.Opener
	logger     *zap.Logger

	mu     sync.Mutex
	client *aai.RealTimeClient
	input  io.ReadCloser
	cancel context.CancelFunc
	once   sync.Once
}

var _ ports.Recognizer = (*AssemblyAIRecognizer)(nil)

func newAssemblyAIRecognizer(apiKey string, sampleRate, chunkBytes int, speaker string, open audio.Opener, logger *zap.Logger) *AssemblyAIRecognizer {
	return &AssemblyAIRecognizer{
		apiKey:     apiKey,
		sampleRate: sampleRate,
		chunkBytes: chunkBytes,
		speaker:    speaker,
		open:       open,
		logger:     logger.With(zap.String("recognizer", "assemblyai")),
	}
}

func (r *AssemblyAIRecognizer) transcriber(sink ports.RecognitionSink) *aai.RealTimeTranscriber {
	return &aai.RealTimeTranscriber{
		OnSessionBegins: func(event aai.SessionBegins) {
			r.logger.Info("🎧 assemblyai session began", zap.String("assemblyai_session", event.SessionID))
		},
		OnPartialTranscript: func(event aai.PartialTranscript) {
			if text := strings.TrimSpace(event.Text); text != "" {
				sink(ports.Recognition{Kind: ports.RecognitionInterim, Speaker: r.speaker, Text: text})
			}
		},
		OnFinalTranscript: func(event aai.FinalTranscript) {
			if text := strings.TrimSpace(event.Text); text != "" {
				sink(ports.Recognition{Kind: ports.RecognitionFinal, Speaker: r.speaker, Text: text})
			}
		},
		OnError: func(err error) {
			sink(ports.Recognition{Kind: ports.RecognitionError, Err: fmt.Errorf("assemblyai: %w", err)})
		},
	}
}

// Start connects and begins streaming audio.
func (r *AssemblyAIRecognizer) Start(ctx context.Context, sessionID string, sink ports.RecognitionSink) error {
	input, err := r.open()
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	client := aai.NewRealTimeClientWithOptions(
		aai.WithRealTimeAPIKey(r.apiKey),
		aai.WithRealTimeSampleRate(r.sampleRate),
		aai.WithRealTimeTranscriber(r.transcriber(sink)),
	)

	if err := client.Connect(runCtx); err != nil {
		cancel()
		input.Close()
		return fmt.Errorf("failed to connect to assemblyai: %w", err)
	}

	r.mu.Lock()
	r.client, r.input, r.cancel = client, input, cancel
	r.mu.Unlock()

	r.logger.Info("🎙️ streaming audio to assemblyai", zap.String("session_id", sessionID))

	go func() {
		err := audio.Pump(runCtx, input, r.chunkBytes, audio.ChunkDuration(r.chunkBytes, r.sampleRate), func(chunk []byte) error {
			return client.Send(runCtx, chunk)
		})
		if runCtx.Err() != nil {
			return
		}
		if err != nil {
			sink(ports.Recognition{Kind: ports.RecognitionError, Err: fmt.Errorf("audio stream: %w", err)})
			return
		}
		sink(ports.Recognition{Kind: ports.RecognitionStatus, Text: "Audio input ended"})
	}()

	return nil
}

// Stop disconnects and closes the audio input. Safe to call more than once.
func (r *AssemblyAIRecognizer) Stop() error {
	var err error
	r.once.Do(func() {
		r.mu.Lock()
		client, input, cancel := r.client, r.input, r.cancel
		r.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		if input != nil {
			input.Close()
		}
		if client != nil {
			ctx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			err = client.Disconnect(ctx, false)
		}
	})
	return err
}

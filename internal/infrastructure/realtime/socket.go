package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/ports"
	"github.com/johnquangdev/meeting-assistant-client/internal/infrastructure/audio"
	"github.com/johnquangdev/meeting-assistant-client/pkg/jobcontext"
	"github.com/johnquangdev/meeting-assistant-client/pkg/metrics"
)

// Route selects which backend socket a recognizer talks to
type Route string

const (
	// RouteRealtimeVideo sends PCM16 audio and receives interim and final lines.
	RouteRealtimeVideo Route = "realtime-video"
	// RouteMeeting sends audio chunks and receives final lines and action items.
	RouteMeeting Route = "meeting"
)

const (
	writeWait     = 10 * time.Second
	closeWait     = time.Second
	maxFrameBytes = 1 << 20
)

// Options configure a socket recognizer
type Options struct {
	BaseURL    string
	APIKey     string
	Route      Route
	Speaker    string
	ChunkBytes int
	// Pace is the minimum gap between audio chunks. Zero sends as fast as
	// the input reads.
	Pace       time.Duration
	MaxRetries int
	RetryDelay time.Duration
	Open       audio.Opener
	Dialer     *websocket.Dialer
}

// SocketRecognizer streams audio to a backend WebSocket and turns the
// frames it sends back into recognitions.
type SocketRecognizer struct {
	opts    Options
	logger  *zap.Logger
	metrics *metrics.AssistantMetrics

	mu      sync.Mutex
	conn    *websocket.Conn
	input   io.ReadCloser
	cancel  context.CancelFunc
	writeMu sync.Mutex
	once    sync.Once
	done    chan struct{}
}

var _ ports.Recognizer = (*SocketRecognizer)(nil)

// NewSocketRecognizer creates a recognizer for one capture
func NewSocketRecognizer(opts Options, logger *zap.Logger, m *metrics.AssistantMetrics) *SocketRecognizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Route == "" {
		opts.Route = RouteRealtimeVideo
	}
	if opts.Dialer == nil {
		opts.Dialer = websocket.DefaultDialer
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	return &SocketRecognizer{
		opts:    opts,
		logger:  logger.With(zap.String("recognizer", string(opts.Route))),
		metrics: m,
		done:    make(chan struct{}),
	}
}

// Endpoint builds the socket URL for a session
func Endpoint(baseURL string, route Route, sessionID string) (string, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid websocket base url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported websocket scheme %q", u.Scheme)
	}
	u.Path = u.Path + "/ws/" + string(route) + "/" + url.PathEscape(sessionID)
	return u.String(), nil
}

func (r *SocketRecognizer) dial(ctx context.Context, endpoint string) (*websocket.Conn, error) {
	header := http.Header{}
	if r.opts.APIKey != "" {
		header.Set("X-API-Key", r.opts.APIKey)
	}

	dialCtx := jobcontext.SetMaxRetries(ctx, r.opts.MaxRetries)
	if r.opts.RetryDelay > 0 {
		dialCtx = jobcontext.SetRetryBaseDelay(dialCtx, r.opts.RetryDelay)
	}

	var conn *websocket.Conn
	started := time.Now()
	err := jobcontext.JobEnd(dialCtx, func(ctx context.Context) error {
		if attempt := jobcontext.GetRetryAttempt(ctx); attempt > 0 {
			r.metrics.ObserveRetry("ws_dial")
			r.logger.Warn("🔄 retrying websocket dial", zap.Int("attempt", attempt))
		}
		c, resp, err := r.opts.Dialer.DialContext(ctx, endpoint, header)
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		if err != nil {
			if resp != nil {
				return fmt.Errorf("websocket dial failed with status %d: %w", resp.StatusCode, err)
			}
			return err
		}
		conn = c
		return nil
	})
	r.metrics.ObserveCall("ws_dial", started, err)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Start dials the backend socket and starts the read and audio loops.
func (r *SocketRecognizer) Start(ctx context.Context, sessionID string, sink ports.RecognitionSink) error {
	endpoint, err := Endpoint(r.opts.BaseURL, r.opts.Route, sessionID)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	conn, err := r.dial(runCtx, endpoint)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to connect to %s: %w", endpoint, err)
	}
	conn.SetReadLimit(maxFrameBytes)

	var input io.ReadCloser
	if r.opts.Open != nil {
		if input, err = r.opts.Open(); err != nil {
			cancel()
			conn.Close()
			return err
		}
	}

	r.mu.Lock()
	r.conn, r.input, r.cancel = conn, input, cancel
	r.mu.Unlock()

	r.logger.Info("🔌 websocket connected", zap.String("session_id", sessionID), zap.String("endpoint", endpoint))

	go r.readLoop(runCtx, conn, sink)
	if input != nil {
		go r.audioLoop(runCtx, conn, input, sink)
	}
	return nil
}

func (r *SocketRecognizer) readLoop(ctx context.Context, conn *websocket.Conn, sink ports.RecognitionSink) {
	defer close(r.done)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				sink(ports.Recognition{Kind: ports.RecognitionError, Err: fmt.Errorf("websocket closed: %w", err)})
			}
			return
		}

		var ev entities.StreamEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			r.metrics.ObserveFrame("")
			r.logger.Debug("skipping malformed frame", zap.Error(err))
			continue
		}
		r.metrics.ObserveFrame(string(ev.Type))
		if rec, ok := r.translate(ev); ok {
			sink(rec)
		}
	}
}

// translate maps a backend frame to a recognition. The meeting socket only
// sends finalized lines.
func (r *SocketRecognizer) translate(ev entities.StreamEvent) (ports.Recognition, bool) {
	switch ev.Type {
	case entities.StreamStatus, entities.StreamComplete:
		if text := ev.Text(); text != "" {
			return ports.Recognition{Kind: ports.RecognitionStatus, Text: text}, true
		}
	case entities.StreamTranscript:
		line, ok := ev.TranscriptLine()
		if !ok {
			return ports.Recognition{}, false
		}
		speaker := line.Speaker
		if speaker == "" {
			speaker = r.opts.Speaker
		}
		kind := ports.RecognitionFinal
		if r.opts.Route == RouteRealtimeVideo && !line.Final() {
			kind = ports.RecognitionInterim
		}
		return ports.Recognition{Kind: kind, Speaker: speaker, Text: line.Body(), Emotion: line.Emotions}, true
	case entities.StreamActionItems:
		if items := ev.Items(); len(items) > 0 {
			return ports.Recognition{Kind: ports.RecognitionActionItems, ActionItems: items}, true
		}
	case entities.StreamError:
		msg := ev.Text()
		if msg == "" {
			msg = "Realtime transcription failed"
		}
		return ports.Recognition{Kind: ports.RecognitionError, Err: errors.New(msg)}, true
	}
	return ports.Recognition{}, false
}

func (r *SocketRecognizer) audioLoop(ctx context.Context, conn *websocket.Conn, input io.Reader, sink ports.RecognitionSink) {
	err := audio.Pump(ctx, input, r.opts.ChunkBytes, r.opts.Pace, func(chunk []byte) error {
		return r.write(conn, websocket.BinaryMessage, chunk)
	})
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		sink(ports.Recognition{Kind: ports.RecognitionError, Err: fmt.Errorf("audio stream: %w", err)})
		return
	}
	sink(ports.Recognition{Kind: ports.RecognitionStatus, Text: "Audio input ended"})
}

func (r *SocketRecognizer) write(conn *websocket.Conn, messageType int, data []byte) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(messageType, data)
}

// Stop closes the socket and the audio input. Safe to call more than once.
func (r *SocketRecognizer) Stop() error {
	var err error
	r.once.Do(func() {
		r.mu.Lock()
		conn, input, cancel := r.conn, r.input, r.cancel
		r.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		if input != nil {
			input.Close()
		}
		if conn == nil {
			return
		}

		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		if writeErr := r.write(conn, websocket.CloseMessage, msg); writeErr == nil {
			select {
			case <-r.done:
			case <-time.After(closeWait):
			}
		}
		err = conn.Close()
		<-r.done
		r.logger.Info("🔌 websocket closed")
	})
	return err
}

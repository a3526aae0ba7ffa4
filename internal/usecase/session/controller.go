package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-assistant-client/errors"
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/ports"
	"github.com/johnquangdev/meeting-assistant-client/internal/usecase/enrichment"
	usecaseErrors "github.com/johnquangdev/meeting-assistant-client/internal/usecase/errors"
	"github.com/johnquangdev/meeting-assistant-client/internal/usecase/transcript"
	"github.com/johnquangdev/meeting-assistant-client/pkg/metrics"
)

// Controller owns the meeting session. Every field below the channels is
// touched only by the run goroutine; public methods send it closures.
type Controller struct {
	provider  ports.RecognizerProvider
	enrich    enrichment.Service
	notifier  ports.Notifier
	notices   NoticeStore
	logger    *zap.Logger
	metrics   *metrics.AssistantMetrics
	noticeTTL time.Duration
	jobTTL    time.Duration
	tick      time.Duration

	cmds      chan func()
	quit      chan struct{}
	done      chan struct{}
	publishCh chan entities.Session
	closeOnce sync.Once
	stops     sync.WaitGroup

	id           string
	number       int
	recording    bool
	starting     bool
	processing   bool
	duration     int
	startedAt    *time.Time
	asm          *transcript.Assembler
	actionItems  []entities.ActionItem
	insights     []string
	questions    []entities.Question
	personalized string
	errMsg       string

	// generation changes whenever a recording starts or stops, so ticks and
	// recognizer output from an earlier capture are dropped.
	generation  uint64
	recognizer  ports.Recognizer
	stopCapture context.CancelFunc
	// abortStart cancels a recognizer that is still starting.
	abortStart context.CancelFunc
}

// epoch identifies the session content an async result was computed for.
type epoch struct {
	id     string
	number int
}

// NewController starts the session event loop
func NewController(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.NoticeTTL <= 0 {
		opts.NoticeTTL = defaultNoticeTTL
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}

	c := &Controller{
		provider:  opts.Provider,
		enrich:    opts.Enrichment,
		notifier:  opts.Notifier,
		notices:   opts.Notices,
		logger:    logger.With(zap.String("component", "session")),
		metrics:   opts.Metrics,
		noticeTTL: opts.NoticeTTL,
		jobTTL:    opts.EnrichmentTimeout,
		tick:      opts.TickInterval,
		cmds:      make(chan func(), 64),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
		number:    1,
		asm:       transcript.NewAssembler(),
	}

	if c.notifier != nil {
		c.publishCh = make(chan entities.Session, 1)
		go c.publishLoop()
	}
	go c.run()

	return c
}

func (c *Controller) run() {
	defer close(c.done)
	for {
		select {
		case fn := <-c.cmds:
			fn()
		case <-c.quit:
			if c.abortStart != nil {
				c.abortStart()
				c.abortStart = nil
			}
			c.releaseCapture()
			c.logger.Info("🛑 session controller stopped", zap.String("session_id", c.id))
			return
		}
	}
}

// do runs fn on the loop and waits for it. ctx only bounds the hand-off:
// once the loop has accepted fn, do waits for it to finish so callers never
// see a half-applied command.
func (c *Controller) do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	cmd := func() {
		defer close(finished)
		fn()
	}

	select {
	case c.cmds <- cmd:
	case <-c.done:
		return usecaseErrors.ErrControllerClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-c.done:
		select {
		case <-finished:
			return nil
		default:
			return usecaseErrors.ErrControllerClosed
		}
	}
}

// post queues fn without waiting. It gives up once the loop is gone.
func (c *Controller) post(fn func()) {
	select {
	case c.cmds <- fn:
	case <-c.done:
	}
}

// postScoped is post for producers owned by a capture: it also gives up
// when that capture is cancelled, so stopping never waits on them.
func (c *Controller) postScoped(ctx context.Context, fn func()) {
	select {
	case c.cmds <- fn:
	case <-ctx.Done():
	case <-c.done:
	}
}

// Snapshot returns a copy of the session
func (c *Controller) Snapshot(ctx context.Context) (entities.Session, error) {
	var snap entities.Session
	err := c.do(ctx, func() { snap = c.snapshot() })
	return snap, err
}

func (c *Controller) snapshot() entities.Session {
	state := entities.SessionIdle
	if c.recording {
		state = entities.SessionRecording
	}
	snap := entities.Session{
		ID:                  c.id,
		Number:              c.number,
		State:               state,
		DurationSeconds:     c.duration,
		IsProcessing:        c.processing,
		Transcript:          c.asm.Entries(),
		ActionItems:         append([]entities.ActionItem{}, c.actionItems...),
		Insights:            append([]string{}, c.insights...),
		Questions:           append([]entities.Question{}, c.questions...),
		PersonalizedMessage: c.personalized,
		Error:               c.errMsg,
	}
	if c.startedAt != nil {
		t := *c.startedAt
		snap.StartedAt = &t
	}
	if notice, ok := c.notices.Get(noticeKey); ok {
		snap.Notice = notice
	}
	return snap
}

// changed publishes the new state to the notifier, replacing any snapshot
// the publisher has not picked up yet.
func (c *Controller) changed() {
	if c.publishCh == nil {
		return
	}
	snap := c.snapshot()
	select {
	case c.publishCh <- snap:
		return
	default:
	}
	select {
	case <-c.publishCh:
	default:
	}
	select {
	case c.publishCh <- snap:
	default:
	}
}

func (c *Controller) publishLoop() {
	for {
		select {
		case <-c.done:
			return
		case snap := <-c.publishCh:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := c.notifier.Publish(ctx, snap); err != nil {
				c.logger.Debug("snapshot not published", zap.Error(err))
			}
			cancel()
		}
	}
}

func (c *Controller) setNotice(msg string) {
	c.notices.Set(noticeKey, msg, c.noticeTTL)
}

func (c *Controller) setError(err error) {
	c.errMsg = userMessage(err)
}

func (c *Controller) current() epoch {
	return epoch{id: c.id, number: c.number}
}

// StartRecording acquires a recognizer and starts a new recording session.
// It is a no-op while already recording.
func (c *Controller) StartRecording(ctx context.Context) error {
	var (
		rec     ports.Recognizer
		capture context.Context
		cancel  context.CancelFunc
		gen     uint64
		id      string
		err     error
		skip    bool
	)

	if doErr := c.do(ctx, func() {
		if c.recording || c.starting {
			skip = true
			return
		}
		if c.processing {
			err = apperrors.ErrSessionActive("A file is being processed. Wait for it to finish before recording.")
			c.setError(err)
			c.changed()
			return
		}
		rec, err = c.acquire()
		if err != nil {
			c.setError(err)
			c.changed()
			return
		}
		c.starting = true
		c.generation++
		gen = c.generation
		id = entities.NewSessionID()
		capture, cancel = context.WithCancel(context.Background())
		c.abortStart = cancel
	}); doErr != nil {
		return doErr
	}
	if skip || err != nil {
		return err
	}

	startErr := rec.Start(capture, id, c.sink(capture, gen))

	var result error
	doErr := c.do(context.Background(), func() {
		c.starting = false
		c.abortStart = nil
		if startErr != nil || gen != c.generation {
			cancel()
			c.stopRecognizer(rec)
			if startErr != nil && gen == c.generation {
				result = apperrors.ErrCapabilityUnavailable(c.providerName(), startErr)
				c.setError(result)
				c.changed()
			}
			return
		}

		now := time.Now()
		c.id = id
		c.recording = true
		c.duration = 0
		c.startedAt = &now
		c.errMsg = ""
		c.recognizer = rec
		c.stopCapture = cancel
		c.startTicker(capture, gen)
		c.metrics.SessionStarted()
		c.logger.Info("🎙️ recording started",
			zap.String("session_id", id),
			zap.String("provider", c.providerName()),
		)
		c.changed()
	})
	if doErr != nil {
		cancel()
		_ = rec.Stop()
		return doErr
	}
	return result
}

func (c *Controller) acquire() (ports.Recognizer, error) {
	if c.provider == nil {
		return nil, apperrors.ErrCapabilityUnavailable("speech", entities.ErrCapabilityUnavailable)
	}
	rec, err := c.provider.Acquire()
	if err != nil {
		return nil, apperrors.ErrCapabilityUnavailable(c.provider.Name(), err)
	}
	return rec, nil
}

func (c *Controller) providerName() string {
	if c.provider == nil {
		return "none"
	}
	return c.provider.Name()
}

// sink turns recognizer output into loop messages for generation gen.
func (c *Controller) sink(capture context.Context, gen uint64) ports.RecognitionSink {
	return func(r ports.Recognition) {
		c.postScoped(capture, func() {
			if gen != c.generation || !c.recording {
				return
			}
			c.onRecognition(r)
		})
	}
}

func (c *Controller) startTicker(capture context.Context, gen uint64) {
	go func() {
		ticker := time.NewTicker(c.tick)
		defer ticker.Stop()
		for {
			select {
			case <-capture.Done():
				return
			case <-ticker.C:
				c.postScoped(capture, func() {
					if gen != c.generation || !c.recording {
						return
					}
					c.duration++
					c.changed()
				})
			}
		}
	}()
}

// StopRecording releases the recognizer. A recognizer that is still starting
// is cancelled and released once its Start returns. It is a no-op when idle.
func (c *Controller) StopRecording(ctx context.Context) error {
	return c.do(ctx, func() {
		if c.starting {
			c.generation++
			if c.abortStart != nil {
				c.abortStart()
				c.abortStart = nil
			}
			c.logger.Info("⏹️ recording cancelled while starting")
			c.changed()
			return
		}
		if !c.recording {
			return
		}
		c.releaseCapture()
		c.logger.Info("⏹️ recording stopped",
			zap.String("session_id", c.id),
			zap.Int("duration_seconds", c.duration),
		)
		c.changed()
	})
}

func (c *Controller) releaseCapture() {
	if !c.recording {
		return
	}
	c.generation++
	c.recording = false
	if c.stopCapture != nil {
		c.stopCapture()
		c.stopCapture = nil
	}
	if c.recognizer != nil {
		c.stopRecognizer(c.recognizer)
		c.recognizer = nil
	}
	c.asm.DiscardLive()
	c.metrics.SessionStopped()
}

// stopRecognizer releases rec off the loop, since Stop may wait on the network.
// The capture context must already be cancelled.
func (c *Controller) stopRecognizer(rec ports.Recognizer) {
	c.stops.Add(1)
	go func() {
		defer c.stops.Done()
		if err := rec.Stop(); err != nil {
			c.logger.Warn("⚠️ failed to release recognizer", zap.Error(err))
		}
	}()
}

// ClearSession empties the session and bumps its number
func (c *Controller) ClearSession(ctx context.Context) error {
	var err error
	doErr := c.do(ctx, func() {
		if c.recording || c.starting {
			c.errMsg = usecaseErrors.ClearWhileRecordingMessage
			err = usecaseErrors.ErrRecordingActive
			c.changed()
			return
		}
		cleared := c.number
		c.resetContent()
		c.number++
		c.setNotice(fmt.Sprintf("Session %d cleared!", cleared))
		c.metrics.SessionCleared()
		c.logger.Info("🧹 session cleared", zap.Int("number", cleared))
		c.changed()
	})
	if doErr != nil {
		return doErr
	}
	return err
}

func (c *Controller) resetContent() {
	c.asm.Reset()
	c.actionItems = nil
	c.insights = nil
	c.questions = nil
	c.personalized = ""
	c.errMsg = ""
	c.duration = 0
	c.startedAt = nil
}

// Close stops capture and the loop, and waits for recognizers to be released.
// Results of in-flight backend calls are dropped.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() { close(c.quit) })
	<-c.done
	c.stops.Wait()
	return nil
}

// userMessage is the text shown in the session error field.
func userMessage(err error) string {
	var appErr apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

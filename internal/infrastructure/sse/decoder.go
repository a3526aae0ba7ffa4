package sse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
	"github.com/johnquangdev/meeting-assistant-client/pkg/metrics"
)

const (
	dataPrefix    = "data: "
	readChunkSize = 32 * 1024
)

// Decoder turns a chunked byte stream of "data: {json}" lines into events.
// Chunk boundaries do not matter: an incomplete trailing line is kept until
// the next chunk completes it.
type Decoder struct {
	buf     []byte
	logger  *zap.Logger
	metrics *metrics.AssistantMetrics
	skipped int
}

// NewDecoder creates a decoder. logger and m may be nil.
func NewDecoder(logger *zap.Logger, m *metrics.AssistantMetrics) *Decoder {
	return &Decoder{logger: logger, metrics: m}
}

// Feed appends chunk and returns the events completed by it.
func (d *Decoder) Feed(chunk []byte) []entities.StreamEvent {
	d.buf = append(d.buf, chunk...)

	var events []entities.StreamEvent
	for {
		i := bytes.IndexByte(d.buf, '\n')
		if i < 0 {
			break
		}
		line := d.buf[:i]
		if ev, ok := d.parseLine(line); ok {
			events = append(events, ev)
		}
		d.buf = d.buf[i+1:]
	}

	// Compact so the retained fragment doesn't pin the old backing array.
	if len(d.buf) == 0 {
		d.buf = nil
	} else {
		d.buf = append([]byte(nil), d.buf...)
	}
	return events
}

// Close flushes a final unterminated line once the stream has ended.
func (d *Decoder) Close() []entities.StreamEvent {
	rest := d.buf
	d.buf = nil
	if len(bytes.TrimSpace(rest)) == 0 {
		return nil
	}
	if ev, ok := d.parseLine(rest); ok {
		return []entities.StreamEvent{ev}
	}
	return nil
}

// Pending reports how many bytes are buffered awaiting a newline.
func (d *Decoder) Pending() int {
	return len(d.buf)
}

// Skipped counts data lines that failed to parse.
func (d *Decoder) Skipped() int {
	return d.skipped
}

func (d *Decoder) parseLine(line []byte) (entities.StreamEvent, bool) {
	line = bytes.TrimSuffix(line, []byte("\r"))
	if !bytes.HasPrefix(line, []byte(dataPrefix)) {
		return entities.StreamEvent{}, false
	}
	payload := bytes.TrimSpace(line[len(dataPrefix):])
	if len(payload) == 0 {
		return entities.StreamEvent{}, false
	}

	var ev entities.StreamEvent
	if err := json.Unmarshal(payload, &ev); err != nil || ev.Type == "" {
		d.skipped++
		d.metrics.ObserveFrame("")
		if d.logger != nil {
			d.logger.Warn("⚠️ skipping malformed stream line",
				zap.ByteString("line", truncate(payload, 200)),
				zap.Error(err),
			)
		}
		return entities.StreamEvent{}, false
	}

	d.metrics.ObserveFrame(string(ev.Type))
	return ev, true
}

// Decode reads r to EOF, handing every event to handle in order. An error
// event does not stop reading. It returns nil at EOF.
func (d *Decoder) Decode(ctx context.Context, r io.Reader, handle func(entities.StreamEvent)) error {
	chunk := make([]byte, readChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := r.Read(chunk)
		if n > 0 {
			for _, ev := range d.Feed(chunk[:n]) {
				handle(ev)
			}
		}
		if errors.Is(err, io.EOF) {
			for _, ev := range d.Close() {
				handle(ev)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("read stream: %w", err)
		}
	}
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}

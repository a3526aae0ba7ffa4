// Package audio reads raw PCM16 mono capture input in fixed-size chunks.
package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// Opener opens a fresh PCM16 mono audio stream for one capture.
type Opener func() (io.ReadCloser, error)

// OpenInput returns an opener for a file path, or stdin when input is "-".
func OpenInput(input string) Opener {
	return func() (io.ReadCloser, error) {
		if input == "-" {
			return io.NopCloser(os.Stdin), nil
		}
		f, err := os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("failed to open audio input: %w", err)
		}
		return f, nil
	}
}

// ChunkDuration is how long a chunk of PCM16 mono audio plays at sampleRate.
func ChunkDuration(chunkBytes, sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	samples := chunkBytes / 2
	return time.Duration(samples) * time.Second / time.Duration(sampleRate)
}

// Pump reads chunkBytes at a time from r and hands each chunk to send, no
// faster than real time when pace > 0. It returns nil at end of input.
func Pump(ctx context.Context, r io.Reader, chunkBytes int, pace time.Duration, send func([]byte) error) error {
	if chunkBytes <= 0 {
		chunkBytes = 8192
	}

	var tick <-chan time.Time
	if pace > 0 {
		ticker := time.NewTicker(pace)
		defer ticker.Stop()
		tick = ticker.C
	}

	buf := make([]byte, chunkBytes)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := io.ReadFull(r, buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			if sendErr := send(chunk); sendErr != nil {
				return sendErr
			}
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}
	}
}

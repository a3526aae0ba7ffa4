package audio

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPumpChunks(t *testing.T) {
	input := bytes.Repeat([]byte{1}, 1000)

	var sizes []int
	var total []byte
	err := Pump(context.Background(), bytes.NewReader(input), 256, 0, func(chunk []byte) error {
		sizes = append(sizes, len(chunk))
		total = append(total, chunk...)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{256, 256, 256, 232}, sizes)
	assert.Equal(t, input, total)
}

func TestPumpOneByteReader(t *testing.T) {
	input := []byte("0123456789")

	var sizes []int
	err := Pump(context.Background(), iotest.OneByteReader(bytes.NewReader(input)), 4, 0, func(chunk []byte) error {
		sizes = append(sizes, len(chunk))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 4, 2}, sizes)
}

func TestPumpSendError(t *testing.T) {
	boom := errors.New("socket gone")
	calls := 0
	err := Pump(context.Background(), bytes.NewReader(make([]byte, 100)), 10, 0, func([]byte) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestPumpReadError(t *testing.T) {
	boom := errors.New("device unplugged")
	err := Pump(context.Background(), iotest.ErrReader(boom), 10, 0, func([]byte) error { return nil })
	assert.ErrorIs(t, err, boom)
}

func TestPumpCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Pump(ctx, bytes.NewReader(make([]byte, 100)), 10, time.Hour, func([]byte) error {
		calls++
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestChunkDuration(t *testing.T) {
	assert.Equal(t, 256*time.Millisecond, ChunkDuration(8192, 16000))
	assert.Equal(t, time.Duration(0), ChunkDuration(8192, 0))
}

func TestOpenInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.pcm")
	require.NoError(t, os.WriteFile(path, []byte("pcm"), 0o600))

	r, err := OpenInput(path)()
	require.NoError(t, err)
	defer r.Close()

	buf := make([]byte, 3)
	_, err = r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "pcm", string(buf))

	_, err = OpenInput(filepath.Join(t.TempDir(), "missing.pcm"))()
	assert.Error(t, err)

	stdin, err := OpenInput("-")()
	require.NoError(t, err)
	assert.NoError(t, stdin.Close())
}

package jobcontext

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJob(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := JobBegin(context.Background(), uuid.New(), "analyze_emotion", "session_1", time.Second)
	t.Cleanup(cancel)
	return SetRetryBaseDelay(ctx, time.Millisecond)
}

func TestJobBegin_Metadata(t *testing.T) {
	id := uuid.New()
	ctx, cancel := JobBegin(context.Background(), id, "regenerate_action_items", "session_9", 0)
	defer cancel()

	meta := GetJobMetadata(ctx)
	assert.Equal(t, id, meta.JobID)
	assert.Equal(t, "regenerate_action_items", meta.JobType)
	assert.Equal(t, "session_9", meta.SessionID)
	assert.Equal(t, defaultMaxRetries, meta.MaxRetries)
	assert.False(t, meta.StartTime.IsZero())

	_, hasDeadline := ctx.Deadline()
	assert.True(t, hasDeadline)
}

func TestJobEnd_RetriesRetryableErrors(t *testing.T) {
	ctx := newJob(t)
	calls := 0

	err := JobEnd(ctx, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("backend returned status 503")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestJobEnd_StopsOnPermanentError(t *testing.T) {
	ctx := newJob(t)
	calls := 0

	err := JobEnd(ctx, func(ctx context.Context) error {
		calls++
		return errors.New("backend returned status 400")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestJobEnd_HonoursMaxRetries(t *testing.T) {
	ctx := SetMaxRetries(newJob(t), 2)
	calls := 0

	err := JobEnd(ctx, func(ctx context.Context) error {
		calls++
		return errors.New("connection refused")
	})

	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestJobEnd_RecoversPanic(t *testing.T) {
	ctx := newJob(t)

	err := JobEnd(ctx, func(ctx context.Context) error {
		panic("nil map")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic recovered")
}

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("dial tcp: connection refused"), true},
		{errors.New("backend returned status 502"), true},
		{errors.New("backend returned status 429"), true},
		{errors.New("backend returned status 404"), false},
		{context.DeadlineExceeded, false},
		{errors.New("invalid character 'x'"), false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, IsRetryableError(tc.err), "%v", tc.err)
	}
}

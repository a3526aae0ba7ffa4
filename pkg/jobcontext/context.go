package jobcontext

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

type KeyContext string

var (
	keyJobID          KeyContext = "job_id"
	keyJobType        KeyContext = "job_type"
	keySessionID      KeyContext = "session_id"
	keyRetryAttempt   KeyContext = "retry_attempt"
	keyJobStartTime   KeyContext = "job_start_time"
	keyMaxRetries     KeyContext = "max_retries"
	keyRetryBaseDelay KeyContext = "retry_base_delay"
)

const (
	defaultMaxRetries     = 3
	defaultRetryBaseDelay = 500 * time.Millisecond
	maxRetryInterval      = 10 * time.Second
)

// JobMetadata holds metadata for one enrichment job
type JobMetadata struct {
	JobID        uuid.UUID
	JobType      string
	SessionID    string
	RetryAttempt int
	MaxRetries   int
	StartTime    time.Time
}

// JobBegin derives a job context with metadata and a timeout.
// A non-positive timeout falls back to 30 seconds.
func JobBegin(parentCtx context.Context, jobID uuid.UUID, jobType, sessionID string, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(parentCtx, timeout)

	ctx = context.WithValue(ctx, keyJobID, jobID)
	ctx = context.WithValue(ctx, keyJobType, jobType)
	ctx = context.WithValue(ctx, keySessionID, sessionID)
	ctx = context.WithValue(ctx, keyRetryAttempt, 0)
	ctx = context.WithValue(ctx, keyJobStartTime, time.Now())

	return ctx, cancel
}

// JobEnd runs jobFunc with panic recovery, retrying retryable failures with
// exponential backoff until max retries or the context deadline.
func JobEnd(ctx context.Context, jobFunc func(context.Context) error) error {
	maxRetries := GetMaxRetries(ctx)
	attempt := 0

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = GetRetryBaseDelay(ctx)
	bo.MaxInterval = maxRetryInterval
	bo.MaxElapsedTime = 0

	var policy backoff.BackOff = bo
	if maxRetries > 0 {
		policy = backoff.WithMaxRetries(bo, uint64(maxRetries-1))
	}

	operation := func() (err error) {
		runCtx := SetRetryAttempt(ctx, attempt)
		attempt++

		defer func() {
			if p := recover(); p != nil {
				err = backoff.Permanent(fmt.Errorf("panic recovered: %v", p))
			}
		}()

		if runCtx.Err() != nil {
			return backoff.Permanent(fmt.Errorf("context cancelled before job execution: %w", runCtx.Err()))
		}

		err = jobFunc(runCtx)
		if err != nil && !IsRetryableError(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		if attempt > 1 {
			return fmt.Errorf("job failed after %d attempts: %w", attempt, err)
		}
		return err
	}
	return nil
}

// GetJobID extracts job ID from context
func GetJobID(ctx context.Context) (uuid.UUID, bool) {
	jobID, ok := ctx.Value(keyJobID).(uuid.UUID)
	return jobID, ok
}

// GetJobType extracts job type from context
func GetJobType(ctx context.Context) (string, bool) {
	jobType, ok := ctx.Value(keyJobType).(string)
	return jobType, ok
}

// GetSessionID extracts the owning session ID from context
func GetSessionID(ctx context.Context) string {
	sessionID, _ := ctx.Value(keySessionID).(string)
	return sessionID
}

// GetRetryAttempt extracts current retry attempt from context
func GetRetryAttempt(ctx context.Context) int {
	attempt, ok := ctx.Value(keyRetryAttempt).(int)
	if !ok {
		return 0
	}
	return attempt
}

// SetRetryAttempt updates retry attempt in context
func SetRetryAttempt(ctx context.Context, attempt int) context.Context {
	return context.WithValue(ctx, keyRetryAttempt, attempt)
}

// GetMaxRetries extracts max retries from context
func GetMaxRetries(ctx context.Context) int {
	maxRetries, ok := ctx.Value(keyMaxRetries).(int)
	if !ok {
		return defaultMaxRetries
	}
	return maxRetries
}

// SetMaxRetries updates max retries in context. 1 disables retrying.
func SetMaxRetries(ctx context.Context, maxRetries int) context.Context {
	return context.WithValue(ctx, keyMaxRetries, maxRetries)
}

// GetRetryBaseDelay extracts the first backoff interval from context
func GetRetryBaseDelay(ctx context.Context) time.Duration {
	d, ok := ctx.Value(keyRetryBaseDelay).(time.Duration)
	if !ok || d <= 0 {
		return defaultRetryBaseDelay
	}
	return d
}

// SetRetryBaseDelay updates the first backoff interval in context
func SetRetryBaseDelay(ctx context.Context, d time.Duration) context.Context {
	return context.WithValue(ctx, keyRetryBaseDelay, d)
}

// GetJobStartTime extracts job start time from context
func GetJobStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(keyJobStartTime).(time.Time)
	return startTime, ok
}

// GetJobMetadata extracts all job metadata from context
func GetJobMetadata(ctx context.Context) *JobMetadata {
	jobID, _ := GetJobID(ctx)
	jobType, _ := GetJobType(ctx)
	startTime, _ := GetJobStartTime(ctx)

	return &JobMetadata{
		JobID:        jobID,
		JobType:      jobType,
		SessionID:    GetSessionID(ctx),
		RetryAttempt: GetRetryAttempt(ctx),
		MaxRetries:   GetMaxRetries(ctx),
		StartTime:    startTime,
	}
}

// IsRetryableError checks if an error should trigger a retry
// Retryable errors include: network errors, timeouts, rate limits, 5xx
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	// The job's own deadline is final.
	if strings.Contains(errStr, "context deadline exceeded") ||
		strings.Contains(errStr, "context canceled") {
		return false
	}

	// Network errors
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "network unreachable") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "i/o timeout") ||
		strings.Contains(errStr, "eof") {
		return true
	}

	// API rate limiting
	if strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "status 429") {
		return true
	}

	// Server errors (5xx)
	if strings.Contains(errStr, "status 5") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "service unavailable") ||
		strings.Contains(errStr, "bad gateway") {
		return true
	}

	// Temporary failures
	if strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "try again") {
		return true
	}

	return false
}

package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
)

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	defer store.Close()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set("notice", "Session 1 cleared!", 3*time.Second)

	v, ok := store.Get("notice")
	require.True(t, ok)
	assert.Equal(t, "Session 1 cleared!", v)

	now = now.Add(3 * time.Second)
	_, ok = store.Get("notice")
	assert.False(t, ok)

	assert.Equal(t, 1, store.Len())
	store.removeExpired()
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_OverwriteAndDelete(t *testing.T) {
	store := NewMemoryStore(0)
	defer store.Close()

	store.Set("k", "a", time.Minute)
	store.Set("k", "b", time.Minute)
	v, _ := store.Get("k")
	assert.Equal(t, "b", v)

	exp, ok := store.Expiry("k")
	require.True(t, ok)
	assert.True(t, exp.After(time.Now()))

	store.Delete("k")
	_, ok = store.Get("k")
	assert.False(t, ok)

	store.Close()
	store.Close()
}

func TestSessionChannel(t *testing.T) {
	assert.Equal(t, "meeting-assistant:session:session_1", SessionChannel("meeting-assistant", "session_1"))
	assert.Equal(t, "session:session_1", SessionChannel("", "session_1"))
}

func TestEncodeSnapshot(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	data, err := encodeSnapshot(entities.Session{ID: "session_1", Number: 2, State: entities.SessionRecording}, at)
	require.NoError(t, err)

	var ev SessionUpdatedEvent
	require.NoError(t, json.Unmarshal(data, &ev))
	assert.Equal(t, "session.updated", ev.EventType)
	assert.Equal(t, "session_1", ev.Session.ID)
	assert.Equal(t, 2, ev.Session.Number)
	assert.True(t, ev.Timestamp.Equal(at))
}

func TestRedisNotifier_PublishFailure(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	n := NewRedisNotifier(client, "test", zaptest.NewLogger(t))
	defer n.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := n.Publish(ctx, entities.Session{ID: "session_1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test:session:session_1")
}

func TestNopNotifier(t *testing.T) {
	var n NopNotifier
	assert.NoError(t, n.Publish(context.Background(), entities.Session{}))
	assert.NoError(t, n.Close())
}

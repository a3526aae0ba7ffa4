package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
)

const ts = "2026-03-01T10:00:00Z"

func TestInterimThenFinalize(t *testing.T) {
	a := NewAssembler()

	a.ApplyInterim("You", "hello")
	require.Equal(t, 1, a.Len())
	assert.Equal(t, "[LIVE] hello...", a.Entries()[0].Text)

	a.ApplyInterim("You", "hello world")
	require.Equal(t, 1, a.Len())
	assert.Equal(t, "[LIVE] hello world...", a.Entries()[0].Text)

	n := a.Finalize(entities.NewTranscriptEntry("You", "hello world", ts))
	assert.Equal(t, 1, n)

	got := a.Entries()
	require.Len(t, got, 1)
	assert.Equal(t, "You", got[0].Speaker)
	assert.Equal(t, "hello world", got[0].Text)
	assert.Equal(t, ts, got[0].Timestamp)
	assert.False(t, got[0].IsLive())
}

func TestApplyInterimIsIdempotent(t *testing.T) {
	a := NewAssembler()
	a.ApplyInterim("You", "same")
	first := a.Entries()
	a.ApplyInterim("You", "same")
	assert.Equal(t, first, a.Entries())
}

func TestFinalizeWithoutLiveTailAppends(t *testing.T) {
	a := NewAssembler()
	a.Finalize(entities.NewTranscriptEntry("A", "one", ts))
	n := a.Finalize(entities.NewTranscriptEntry("B", "two", ts))
	assert.Equal(t, 2, n)
	assert.Equal(t, "two", a.Entries()[1].Text)
}

func TestDiscardLive(t *testing.T) {
	a := NewAssembler()
	a.Finalize(entities.NewTranscriptEntry("A", "one", ts))
	a.ApplyInterim("You", "half a sen")

	assert.True(t, a.DiscardLive())
	assert.False(t, a.DiscardLive())
	require.Equal(t, 1, a.Len())
	assert.Equal(t, "one", a.Entries()[0].Text)
}

func TestAppendServerEventKeepsLiveTailLast(t *testing.T) {
	a := NewAssembler()
	a.ApplyInterim("You", "typing")

	entry, ok := a.AppendServerEvent(entities.StreamEvent{
		Type: entities.StreamTranscript,
		Line: &entities.BackendLine{Speaker: "Bob", Text: "Hi"},
	})
	require.True(t, ok)
	assert.Equal(t, "Bob", entry.Speaker)

	got := a.Entries()
	require.Len(t, got, 2)
	assert.Equal(t, "Hi", got[0].Text)
	assert.True(t, got[1].IsLive())
}

func TestAppendServerEventIgnoresOtherFrames(t *testing.T) {
	a := NewAssembler()
	_, ok := a.AppendServerEvent(entities.StreamEvent{Type: entities.StreamStatus, Message: "working"})
	assert.False(t, ok)
	_, ok = a.AppendServerEvent(entities.StreamEvent{Type: entities.StreamTranscript})
	assert.False(t, ok)
	assert.Zero(t, a.Len())
}

func TestAnnotateOnce(t *testing.T) {
	a := NewAssembler()
	entry := entities.NewTranscriptEntry("You", "great news", ts)
	a.Finalize(entry)

	assert.True(t, a.Annotate(entry.ID, entities.Emotion{Sentiment: "positive"}))
	assert.False(t, a.Annotate(entry.ID, entities.Emotion{Sentiment: "negative"}))
	assert.False(t, a.Annotate("missing", entities.Emotion{}))

	got := a.Entries()[0]
	require.NotNil(t, got.Emotion)
	assert.Equal(t, "positive", got.Emotion.Sentiment)
	assert.Equal(t, "great news", got.Text)
}

func TestRecent(t *testing.T) {
	a := NewAssembler()
	var ids []string
	for _, text := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		e := entities.NewTranscriptEntry("S", text, ts)
		ids = append(ids, e.ID)
		a.Finalize(e)
	}
	a.ApplyInterim("You", "live")

	last := a.Recent(5, "")
	require.Len(t, last, 5)
	assert.Equal(t, "c", last[0].Text)
	assert.Equal(t, "g", last[4].Text)

	before := a.Recent(5, ids[6])
	require.Len(t, before, 5)
	assert.Equal(t, "b", before[0].Text)
	assert.Equal(t, "f", before[4].Text)

	assert.Empty(t, a.Recent(5, ids[0]))
}

func TestReplaceAndReset(t *testing.T) {
	a := NewAssembler()
	a.ApplyInterim("You", "x")
	a.Replace([]entities.TranscriptEntry{
		{Speaker: "A", Text: "one"},
		{Speaker: "B", Text: entities.LiveText("dropped"), Live: true},
	})
	got := a.Entries()
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].ID)

	a.Reset()
	assert.Zero(t, a.Len())
}

// Any run of interim updates followed by finalize leaves exactly one more
// committed entry and no live entry.
func TestInterimRunCollapsesToOneEntry(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := NewAssembler()
		prior := rapid.IntRange(0, 5).Draw(rt, "prior")
		for i := 0; i < prior; i++ {
			a.Finalize(entities.NewTranscriptEntry("S", "line", ts))
		}

		interims := rapid.SliceOfN(rapid.StringMatching(`[a-z ]{1,20}`), 0, 10).Draw(rt, "interims")
		for _, text := range interims {
			a.ApplyInterim("You", text)
			entries := a.Entries()
			for i, e := range entries {
				if e.IsLive() && i != len(entries)-1 {
					rt.Fatalf("live entry at %d of %d", i, len(entries))
				}
			}
		}

		final := rapid.StringMatching(`[a-z]{1,20}`).Draw(rt, "final")
		n := a.Finalize(entities.NewTranscriptEntry("You", final, ts))

		if n != prior+1 {
			rt.Fatalf("length %d, want %d", n, prior+1)
		}
		for _, e := range a.Entries() {
			if e.IsLive() {
				rt.Fatalf("live entry survived finalize")
			}
		}
		if got := a.Entries()[n-1].Text; got != final {
			rt.Fatalf("tail %q, want %q", got, final)
		}
	})
}

func TestFinalizedLineWithLiveMarkerStaysCommitted(t *testing.T) {
	a := NewAssembler()
	a.Finalize(entities.NewTranscriptEntry("Bob", "[LIVE] demo starts now", ts))
	bob := a.Entries()[0]

	a.ApplyInterim("You", "hello")

	got := a.Entries()
	require.Len(t, got, 2)
	assert.Equal(t, "[LIVE] demo starts now", got[0].Text)
	assert.True(t, got[1].IsLive())

	committed := a.Committed()
	require.Len(t, committed, 1)
	assert.Equal(t, "Bob", committed[0].Speaker)

	assert.True(t, a.Annotate(bob.ID, entities.Emotion{Sentiment: "positive"}))

	n := a.Insert(entities.NewTranscriptEntry("Server", "late line", ts))
	assert.Equal(t, 3, n)
	got = a.Entries()
	assert.Equal(t, "late line", got[1].Text)
	assert.True(t, got[2].IsLive())

	assert.True(t, a.DiscardLive())
	assert.Len(t, a.Committed(), 2)
	assert.False(t, a.DiscardLive())
}

func TestFinalizeClearsLiveFlagOnEntry(t *testing.T) {
	a := NewAssembler()
	a.Finalize(entities.NewLiveEntry("You", "oops"))
	a.ApplyInterim("You", "next")

	require.Equal(t, 2, a.Len())
	assert.False(t, a.Entries()[0].IsLive())
	assert.Len(t, a.Committed(), 1)
}

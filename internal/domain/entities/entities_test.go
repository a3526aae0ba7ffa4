package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCategorizeInsight(t *testing.T) {
	cases := map[string]InsightCategory{
		"You should follow up with legal":        InsightSuggestion,
		"We RECOMMEND a second review":           InsightSuggestion,
		"Concern: budget is unclear":             InsightWarning,
		"Warning - deadline conflict":            InsightWarning,
		"There is an issue but you should check": InsightSuggestion,
		"Team mood is positive":                  InsightInfo,
		"":                                       InsightInfo,
	}

	for text, want := range cases {
		assert.Equal(t, want, CategorizeInsight(text), text)
	}
}

func TestCategorizeInsightIsTotal(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.String().Draw(rt, "text")
		got := CategorizeInsight(text)
		if got != CategorizeInsight(text) {
			rt.Fatalf("not deterministic for %q", text)
		}
		switch got {
		case InsightSuggestion, InsightWarning, InsightInfo:
		default:
			rt.Fatalf("unknown category %q", got)
		}
	})
}

func TestLiveEntry(t *testing.T) {
	live := NewLiveEntry("You", "hello")

	assert.Equal(t, "[LIVE] hello...", live.Text)
	assert.True(t, live.IsLive())
	assert.Equal(t, "hello", live.InterimText())

	final := NewTranscriptEntry("You", "hello world", "")
	assert.False(t, final.IsLive())
	assert.NotEmpty(t, final.ID)
	assert.NotEmpty(t, final.Timestamp)
	assert.Equal(t, "hello world", final.InterimText())

	marked := NewTranscriptEntry("Bob", "[LIVE] demo starts now", "")
	assert.False(t, marked.IsLive())
	assert.Equal(t, "[LIVE] demo starts now", marked.InterimText())
}

func TestNewTranscriptEntryDefaultsSpeaker(t *testing.T) {
	e := NewTranscriptEntry(" ", "hi", "2026-01-01T00:00:00Z")
	assert.Equal(t, DefaultSpeaker, e.Speaker)
	assert.Equal(t, "2026-01-01T00:00:00Z", e.Timestamp)
}

func TestStreamEventPayloads(t *testing.T) {
	t.Run("line field", func(t *testing.T) {
		var ev StreamEvent
		require.NoError(t, json.Unmarshal([]byte(`{"type":"transcript","line":{"speaker":"Bob","text":"Hi"}}`), &ev))
		line, ok := ev.TranscriptLine()
		require.True(t, ok)
		assert.Equal(t, "Bob", line.Speaker)
		assert.Equal(t, "Hi", line.Body())
		assert.True(t, line.Final())
	})

	t.Run("data field with interim flag", func(t *testing.T) {
		var ev StreamEvent
		require.NoError(t, json.Unmarshal([]byte(`{"type":"transcript","data":{"speaker":"Ann","text":"so","is_final":false}}`), &ev))
		line, ok := ev.TranscriptLine()
		require.True(t, ok)
		assert.False(t, line.Final())
	})

	t.Run("content fallback", func(t *testing.T) {
		line := BackendLine{Content: "from content"}
		entry := line.ToEntry()
		assert.Equal(t, "from content", entry.Text)
		assert.Equal(t, DefaultSpeaker, entry.Speaker)
	})

	t.Run("items in data", func(t *testing.T) {
		var ev StreamEvent
		require.NoError(t, json.Unmarshal([]byte(`{"type":"action_items","data":[{"text":"Ship","assignee":null,"priority":"high"}]}`), &ev))
		items := ev.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "Ship", items[0].Text)
	})

	t.Run("items named", func(t *testing.T) {
		var ev StreamEvent
		require.NoError(t, json.Unmarshal([]byte(`{"type":"action_items","action_items":[{"text":"Ship","priority":"low"}]}`), &ev))
		assert.Len(t, ev.Items(), 1)
	})

	t.Run("error text", func(t *testing.T) {
		assert.Equal(t, "boom", StreamEvent{Type: StreamError, Error: " boom "}.Text())
		assert.Equal(t, "Transcribing", StreamEvent{Type: StreamStatus, Message: "Transcribing"}.Text())
	})
}

func TestSessionHelpers(t *testing.T) {
	s := Session{
		Transcript: []TranscriptEntry{
			{ID: "1", Speaker: "A", Text: "done"},
			{ID: "2", Speaker: "You", Text: LiveText("typing"), Live: true},
		},
		ActionItems: []ActionItem{{ID: "x", Text: "Ship"}},
	}

	assert.Len(t, s.CommittedTranscript(), 1)
	item, ok := s.FindActionItem("x")
	assert.True(t, ok)
	assert.Equal(t, "Ship", item.Text)
	_, ok = s.FindActionItem("missing")
	assert.False(t, ok)
	assert.Contains(t, NewSessionID(), "session_")
}

func TestPersonalizedContextMessage(t *testing.T) {
	assert.Equal(t, "a", PersonalizedContext{DisplayMessage: "a", Explanation: "b"}.Message())
	assert.Equal(t, "b", PersonalizedContext{Explanation: "b"}.Message())
	assert.Equal(t, "", PersonalizedContext{}.Message())
}

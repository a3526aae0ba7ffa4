package presenter

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
)

const clockLayout = "3:04 PM"

// SpeakerPalette is the fixed avatar palette
var SpeakerPalette = []string{
	"#5B5FC7",
	"#00897B",
	"#6264A7",
	"#C239B3",
	"#00B7C3",
	"#8764B8",
}

// SpeakerColor picks a palette color from the sum of the name's character codes.
func SpeakerColor(name string) string {
	sum := 0
	for _, r := range name {
		sum += int(r)
	}
	return SpeakerPalette[sum%len(SpeakerPalette)]
}

// SpeakerInitials returns the first letters of the first two words, or the
// first two characters of a single-word name.
func SpeakerInitials(name string) string {
	words := strings.Fields(name)
	if len(words) >= 2 {
		first, _ := utf8.DecodeRuneInString(words[0])
		second, _ := utf8.DecodeRuneInString(words[1])
		return string([]rune{first, second})
	}
	runes := []rune(strings.TrimSpace(name))
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return string(runes)
}

// FormatDuration renders seconds as MM:SS. Minutes are not capped at 60.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatClock renders an RFC 3339 timestamp as a local wall-clock time.
// An empty timestamp means now.
func FormatClock(timestamp string) string {
	return formatClock(timestamp, time.Local, time.Now())
}

func formatClock(timestamp string, loc *time.Location, now time.Time) string {
	if timestamp == "" {
		return now.In(loc).Format(clockLayout)
	}
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return timestamp
	}
	return t.In(loc).Format(clockLayout)
}

// EmotionEmoji maps a 0-100 happiness level to a face.
func EmotionEmoji(level float64) string {
	switch {
	case level >= 70:
		return "😊"
	case level >= 55:
		return "🙂"
	case level >= 40:
		return "😐"
	case level >= 25:
		return "🙁"
	default:
		return "😔"
	}
}

// LiveDisplay strips the live decoration from an entry and reports whether
// it was the live tail.
func LiveDisplay(e entities.TranscriptEntry) (string, bool) {
	if !e.IsLive() {
		return e.Text, false
	}
	return e.InterimText(), true
}

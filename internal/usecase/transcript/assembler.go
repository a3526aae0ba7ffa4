package transcript

import (
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
)

// Assembler keeps the ordered transcript of one session. At most one live
// entry exists and it is always the last one. Not safe for concurrent use;
// the session controller owns it from a single goroutine.
type Assembler struct {
	entries []entities.TranscriptEntry
	// live is set while the last entry is the provisional tail.
	live bool
}

// NewAssembler returns an empty assembler
func NewAssembler() *Assembler {
	return &Assembler{}
}

func (a *Assembler) hasLiveTail() bool {
	return a.live && len(a.entries) > 0
}

func (a *Assembler) isLiveAt(i int) bool {
	return a.hasLiveTail() && i == len(a.entries)-1
}

// ApplyInterim replaces the live tail in place, or appends one.
func (a *Assembler) ApplyInterim(speaker, text string) {
	live := entities.NewLiveEntry(speaker, text)
	if a.hasLiveTail() {
		live.ID = a.entries[len(a.entries)-1].ID
		a.entries[len(a.entries)-1] = live
		return
	}
	live.ID = "live"
	a.entries = append(a.entries, live)
	a.live = true
}

// Finalize drops the live tail and commits entry. It returns the new length.
func (a *Assembler) Finalize(entry entities.TranscriptEntry) int {
	a.dropLive()
	if entry.ID == "" {
		entry = withID(entry)
	}
	entry.Live = false
	a.entries = append(a.entries, entry)
	return len(a.entries)
}

// AppendServerEvent commits a transcript line pushed by the backend. It
// reports false for frames that carry no line. A live tail stays last.
func (a *Assembler) AppendServerEvent(ev entities.StreamEvent) (entities.TranscriptEntry, bool) {
	if ev.Type != entities.StreamTranscript {
		return entities.TranscriptEntry{}, false
	}
	line, ok := ev.TranscriptLine()
	if !ok {
		return entities.TranscriptEntry{}, false
	}
	entry := line.ToEntry()
	a.Insert(entry)
	return entry, true
}

// Insert commits entry ahead of any live tail and returns the committed count.
func (a *Assembler) Insert(entry entities.TranscriptEntry) int {
	entry.Live = false
	if !a.hasLiveTail() {
		a.entries = append(a.entries, entry)
		return len(a.entries)
	}
	live := a.entries[len(a.entries)-1]
	a.entries[len(a.entries)-1] = entry
	a.entries = append(a.entries, live)
	return len(a.entries) - 1
}

// Annotate attaches emotion to a committed entry that has none yet.
func (a *Assembler) Annotate(id string, emotion entities.Emotion) bool {
	for i := range a.entries {
		if a.entries[i].ID != id || a.isLiveAt(i) {
			continue
		}
		if a.entries[i].Emotion != nil {
			return false
		}
		e := emotion
		a.entries[i].Emotion = &e
		return true
	}
	return false
}

// Recent returns up to n committed entries preceding the entry with the
// given id, or the last n committed entries when id is empty.
func (a *Assembler) Recent(n int, beforeID string) []entities.TranscriptEntry {
	committed := a.Committed()
	if beforeID != "" {
		for i, e := range committed {
			if e.ID == beforeID {
				committed = committed[:i]
				break
			}
		}
	}
	if len(committed) > n {
		committed = committed[len(committed)-n:]
	}
	return committed
}

// Committed returns a copy of the finalized entries.
func (a *Assembler) Committed() []entities.TranscriptEntry {
	out := make([]entities.TranscriptEntry, 0, len(a.entries))
	for i, e := range a.entries {
		if !a.isLiveAt(i) {
			out = append(out, e)
		}
	}
	return out
}

// Entries returns a copy of everything, live tail included.
func (a *Assembler) Entries() []entities.TranscriptEntry {
	out := make([]entities.TranscriptEntry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Len counts all entries, live tail included.
func (a *Assembler) Len() int {
	return len(a.entries)
}

// Replace swaps the whole transcript, as a batch processing result does.
func (a *Assembler) Replace(entries []entities.TranscriptEntry) {
	a.entries = make([]entities.TranscriptEntry, 0, len(entries))
	a.live = false
	for _, e := range entries {
		if e.IsLive() {
			continue
		}
		if e.ID == "" {
			e = withID(e)
		}
		a.entries = append(a.entries, e)
	}
}

// DiscardLive drops an unfinished live tail, as when capture stops mid-utterance.
func (a *Assembler) DiscardLive() bool {
	if !a.hasLiveTail() {
		return false
	}
	a.dropLive()
	return true
}

// Reset empties the transcript.
func (a *Assembler) Reset() {
	a.entries = nil
	a.live = false
}

func (a *Assembler) dropLive() {
	if a.hasLiveTail() {
		a.entries = a.entries[:len(a.entries)-1]
	}
	a.live = false
}

func withID(e entities.TranscriptEntry) entities.TranscriptEntry {
	fresh := entities.NewTranscriptEntry(e.Speaker, e.Text, e.Timestamp)
	fresh.Emotion = e.Emotion
	return fresh
}

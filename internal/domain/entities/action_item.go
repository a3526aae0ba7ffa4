package entities

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Priority of an action item
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

const (
	// CompletedMarker is appended to the display form once a ticket exists.
	CompletedMarker = "✅"

	// DefaultConfidence is what a reconstituted item is sent back with.
	DefaultConfidence = 0.8
	// ParsedJiraConfidence is sent for Jira when the display string parsed cleanly.
	ParsedJiraConfidence = 0.9
)

var actionItemPattern = regexp.MustCompile(`^(.+?)(?:\s*\(([^)]+)\))?\s*\[([^\]]+)\](.*)$`)

// NormalizePriority lower-cases p and maps anything unknown to medium.
func NormalizePriority(p string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(p))) {
	case PriorityLow:
		return PriorityLow
	case PriorityHigh:
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

// ActionItem is a follow-up task extracted from the meeting.
// ID is client-side only and survives regeneration when text and assignee match.
type ActionItem struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Assignee  *string  `json:"assignee,omitempty"`
	Priority  Priority `json:"priority"`
	Completed bool     `json:"completed"`
	TicketKey string   `json:"ticket_key,omitempty"`
}

// BackendActionItem is the structured form exchanged with the backend
type BackendActionItem struct {
	Text       string   `json:"text"`
	Assignee   *string  `json:"assignee"`
	Priority   Priority `json:"priority"`
	Confidence float64  `json:"confidence,omitempty"`
}

// NewActionItem assigns a fresh ID to a backend item.
func NewActionItem(b BackendActionItem) ActionItem {
	return ActionItem{
		ID:       uuid.NewString(),
		Text:     strings.TrimSpace(b.Text),
		Assignee: cleanAssignee(b.Assignee),
		Priority: NormalizePriority(string(b.Priority)),
	}
}

// String renders the display form "text (assignee) [priority]".
func (a ActionItem) String() string {
	return FormatActionItem(a)
}

// Key identifies an item across regenerations.
func (a ActionItem) Key() string {
	key := strings.ToLower(strings.TrimSpace(a.Text))
	if a.Assignee != nil {
		key += "|" + strings.ToLower(*a.Assignee)
	}
	return key
}

// ToBackend reconstitutes the structured form from the display string, the
// way items travel back for regeneration. Confidence is not part of the
// display form, so it is always the default.
func (a ActionItem) ToBackend() BackendActionItem {
	parsed := ParseActionItem(a.String())
	return BackendActionItem{
		Text:       parsed.Text,
		Assignee:   parsed.Assignee,
		Priority:   parsed.Priority,
		Confidence: DefaultConfidence,
	}
}

// ToJira builds the payload for ticket creation.
func (a ActionItem) ToJira() BackendActionItem {
	display := a.String()
	confidence := DefaultConfidence
	if actionItemPattern.MatchString(display) {
		confidence = ParsedJiraConfidence
	}
	parsed := ParseActionItem(display)
	return BackendActionItem{
		Text:       parsed.Text,
		Assignee:   parsed.Assignee,
		Priority:   parsed.Priority,
		Confidence: confidence,
	}
}

// FormatActionItem is the inverse of ParseActionItem.
func FormatActionItem(a ActionItem) string {
	var b strings.Builder
	b.WriteString(a.Text)
	if a.Assignee != nil && *a.Assignee != "" {
		b.WriteString(" (")
		b.WriteString(*a.Assignee)
		b.WriteString(")")
	}
	b.WriteString(" [")
	b.WriteString(string(NormalizePriority(string(a.Priority))))
	b.WriteString("]")
	if a.Completed {
		b.WriteString(" ")
		b.WriteString(CompletedMarker)
	}
	return b.String()
}

// ParseActionItem reads a display string back into structured form. It never
// fails: a string without a priority bracket becomes the text itself.
func ParseActionItem(raw string) ActionItem {
	item := ActionItem{
		Priority:  PriorityMedium,
		Completed: strings.Contains(raw, CompletedMarker),
	}

	m := actionItemPattern.FindStringSubmatch(raw)
	if m == nil {
		text := strings.TrimSpace(raw)
		text = strings.TrimSpace(strings.TrimSuffix(text, CompletedMarker))
		item.Text = text
		return item
	}

	item.Text = strings.TrimSpace(m[1])
	if m[2] != "" {
		assignee := strings.TrimSpace(m[2])
		item.Assignee = &assignee
	}
	item.Priority = NormalizePriority(m[3])
	return item
}

// MergeActionItems replaces current with next, keeping the ID and completion
// of items whose key is unchanged. Duplicate keys in next collapse to one.
func MergeActionItems(current []ActionItem, next []BackendActionItem) []ActionItem {
	byKey := make(map[string]ActionItem, len(current))
	for _, item := range current {
		byKey[item.Key()] = item
	}

	seen := make(map[string]bool, len(next))
	merged := make([]ActionItem, 0, len(next))
	for _, b := range next {
		if strings.TrimSpace(b.Text) == "" {
			continue
		}
		item := NewActionItem(b)
		key := item.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		if prev, ok := byKey[key]; ok {
			item.ID = prev.ID
			item.Completed = prev.Completed
			item.TicketKey = prev.TicketKey
		}
		merged = append(merged, item)
	}
	return merged
}

// AppendActionItems adds items that are not already present.
func AppendActionItems(current []ActionItem, extra []BackendActionItem) []ActionItem {
	seen := make(map[string]bool, len(current))
	out := make([]ActionItem, len(current), len(current)+len(extra))
	copy(out, current)
	for _, item := range current {
		seen[item.Key()] = true
	}
	for _, b := range extra {
		if strings.TrimSpace(b.Text) == "" {
			continue
		}
		item := NewActionItem(b)
		if seen[item.Key()] {
			continue
		}
		seen[item.Key()] = true
		out = append(out, item)
	}
	return out
}

func cleanAssignee(a *string) *string {
	if a == nil {
		return nil
	}
	v := strings.TrimSpace(*a)
	if v == "" {
		return nil
	}
	return &v
}

package presenter

import (
	"time"

	dto "github.com/johnquangdev/meeting-assistant-client/internal/adapter/dto/session"
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
	"github.com/johnquangdev/meeting-assistant-client/internal/usecase/media"
)

// ToSessionView converts a session snapshot to its display model
func ToSessionView(s entities.Session) *dto.SessionView {
	view := &dto.SessionView{
		SessionID:           s.ID,
		Number:              s.Number,
		State:               string(s.State),
		Duration:            FormatDuration(s.DurationSeconds),
		DurationSeconds:     s.DurationSeconds,
		IsRecording:         s.IsRecording(),
		IsProcessing:        s.IsProcessing,
		Transcript:          make([]dto.TranscriptLine, 0, len(s.Transcript)),
		ActionItems:         make([]dto.ActionItemView, 0, len(s.ActionItems)),
		Insights:            make([]dto.InsightView, 0, len(s.Insights)),
		Questions:           make([]dto.QuestionView, 0, len(s.Questions)),
		PersonalizedMessage: s.PersonalizedMessage,
		Error:               s.Error,
		Notice:              s.Notice,
	}

	for _, e := range s.Transcript {
		view.Transcript = append(view.Transcript, ToTranscriptLine(e))
	}
	for _, item := range s.ActionItems {
		view.ActionItems = append(view.ActionItems, ToActionItemView(item))
	}
	for _, text := range s.Insights {
		view.Insights = append(view.Insights, dto.InsightView{
			Text:     text,
			Category: string(entities.CategorizeInsight(text)),
		})
	}
	for _, q := range s.Questions {
		view.Questions = append(view.Questions, ToQuestionView(q))
	}

	return view
}

// ToTranscriptLine renders one entry. The live tail carries no emotion tag.
func ToTranscriptLine(e entities.TranscriptEntry) dto.TranscriptLine {
	text, live := LiveDisplay(e)
	line := dto.TranscriptLine{
		ID:       e.ID,
		Speaker:  e.Speaker,
		Initials: SpeakerInitials(e.Speaker),
		Color:    SpeakerColor(e.Speaker),
		Text:     text,
		Time:     FormatClock(e.Timestamp),
		Live:     live,
	}

	if e.Emotion != nil && !live {
		line.Emotion = &dto.EmotionView{
			Sentiment:   e.Emotion.Sentiment,
			Emoji:       EmotionEmoji(e.Emotion.HappinessLevel),
			Happiness:   e.Emotion.HappinessLevel,
			Confidence:  e.Emotion.Confidence,
			KeyEmotions: e.Emotion.KeyEmotions,
			MoodSummary: e.Emotion.MoodSummary,
		}
	}
	return line
}

// ToActionItemView renders one action item
func ToActionItemView(item entities.ActionItem) dto.ActionItemView {
	return dto.ActionItemView{
		ID:        item.ID,
		Text:      item.Text,
		Assignee:  item.Assignee,
		Priority:  string(item.Priority),
		Completed: item.Completed,
		TicketKey: item.TicketKey,
		Display:   entities.FormatActionItem(item),
	}
}

// ToQuestionView renders one Q&A entry
func ToQuestionView(q entities.Question) dto.QuestionView {
	return dto.QuestionView{
		ID:       q.ID,
		Question: q.Question,
		Answer:   q.Answer,
		Time:     FormatClock(q.AskedAt.Format(time.RFC3339)),
	}
}

// ToUploadResponse converts a media result
func ToUploadResponse(r *media.Result) *dto.UploadResponse {
	if r == nil {
		return nil
	}
	return &dto.UploadResponse{
		SessionID:  r.SessionID,
		Mode:       string(r.Mode),
		ArchiveKey: r.ArchiveKey,
		Events:     r.Events,
		Skipped:    r.Skipped,
	}
}

package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/ports"
	"github.com/johnquangdev/meeting-assistant-client/internal/usecase/enrichment"
	usecaseErrors "github.com/johnquangdev/meeting-assistant-client/internal/usecase/errors"
	"github.com/johnquangdev/meeting-assistant-client/pkg/jobcontext"
)

func (c *Controller) onRecognition(r ports.Recognition) {
	switch r.Kind {
	case ports.RecognitionInterim:
		if strings.TrimSpace(r.Text) == "" {
			return
		}
		c.asm.ApplyInterim(r.Speaker, r.Text)
	case ports.RecognitionFinal:
		if strings.TrimSpace(r.Text) == "" {
			return
		}
		entry := entities.NewTranscriptEntry(r.Speaker, strings.TrimSpace(r.Text), "")
		entry.Emotion = r.Emotion
		c.commit(entry)
	case ports.RecognitionStatus:
		c.setNotice(r.Text)
	case ports.RecognitionActionItems:
		c.actionItems = entities.AppendActionItems(c.actionItems, r.ActionItems)
	case ports.RecognitionError:
		if r.Err != nil {
			c.setError(r.Err)
		} else {
			c.errMsg = r.Text
		}
		c.logger.Warn("⚠️ recognizer reported an error", zap.String("error", c.errMsg))
	}
	c.changed()
}

// commit finalizes entry and fans out its enrichment. The entry is in the
// transcript before any backend call is made.
func (c *Controller) commit(entry entities.TranscriptEntry) {
	n := c.asm.Finalize(entry)
	c.metrics.SetTranscriptEntries(n)

	if entry.Emotion == nil {
		c.dispatchEmotion(entry, c.asm.Recent(enrichment.EmotionContextSize, entry.ID))
	}
	if c.enrich.PersonalizedEnabled() {
		c.dispatchPersonalized(entry.Text, c.asm.Recent(enrichment.PersonalizedContextSize, ""))
	}
	if n%regenerationCadence == 0 {
		c.dispatchRegeneration()
	}
}

// job runs fn off the loop with its own deadline. The parent is not the
// capture context: a call already sent is allowed to finish and its result
// is discarded if its target is gone.
func (c *Controller) job(jobType string, fn func(ctx context.Context)) {
	sessionID := c.id
	go func() {
		ctx, cancel := jobcontext.JobBegin(context.Background(), uuid.New(), jobType, sessionID, c.jobTTL)
		defer cancel()
		fn(ctx)
	}()
}

func (c *Controller) dispatchEmotion(entry entities.TranscriptEntry, recent []entities.TranscriptEntry) {
	c.job("analyze_emotion", func(ctx context.Context) {
		res, err := c.enrich.AnalyzeUtterance(ctx, entry, recent)
		if err != nil {
			c.logger.Warn("⚠️ emotion analysis failed",
				zap.String("entry_id", entry.ID),
				zap.Error(err),
			)
			return
		}
		c.post(func() {
			if !c.asm.Annotate(entry.ID, res.Emotion) {
				return
			}
			for _, insight := range res.RealtimeInsights {
				if insight = strings.TrimSpace(insight); insight != "" {
					c.insights = append(c.insights, insight)
				}
			}
			c.changed()
		})
	})
}

func (c *Controller) dispatchPersonalized(latest string, recent []entities.TranscriptEntry) {
	owner := c.current()
	c.job("personalized_context", func(ctx context.Context) {
		msg, err := c.enrich.FetchPersonalizedContext(ctx, latest, recent)
		if err != nil {
			c.logger.Warn("⚠️ personalized context failed", zap.Error(err))
			return
		}
		if msg == "" {
			return
		}
		c.post(func() {
			if c.current() != owner {
				return
			}
			c.personalized = msg
			c.changed()
		})
	})
}

func (c *Controller) dispatchRegeneration() {
	owner := c.current()
	transcript := c.asm.Committed()
	existing := append([]entities.ActionItem{}, c.actionItems...)

	c.job("generate_action_items", func(ctx context.Context) {
		items, err := c.enrich.RegenerateActionItems(ctx, transcript, existing)
		c.post(func() {
			if c.current() != owner {
				return
			}
			if err != nil {
				c.logger.Warn("⚠️ action item regeneration failed", zap.Error(err))
				c.setError(err)
				c.changed()
				return
			}
			c.actionItems = entities.MergeActionItems(c.actionItems, items)
			c.changed()
		})
	})
}

// GenerateActionItems regenerates the list now and waits for the result
func (c *Controller) GenerateActionItems(ctx context.Context) ([]entities.ActionItem, error) {
	var (
		owner      epoch
		transcript []entities.TranscriptEntry
		existing   []entities.ActionItem
	)
	if err := c.do(ctx, func() {
		owner = c.current()
		transcript = c.asm.Committed()
		existing = append([]entities.ActionItem{}, c.actionItems...)
		c.errMsg = ""
	}); err != nil {
		return nil, err
	}

	items, genErr := c.enrich.RegenerateActionItems(ctx, transcript, existing)

	var merged []entities.ActionItem
	if err := c.do(context.Background(), func() {
		if genErr != nil {
			c.setError(genErr)
			c.changed()
			return
		}
		if c.current() != owner {
			merged = append([]entities.ActionItem{}, c.actionItems...)
			return
		}
		c.actionItems = entities.MergeActionItems(c.actionItems, items)
		merged = append([]entities.ActionItem{}, c.actionItems...)
		c.changed()
	}); err != nil {
		return nil, err
	}
	if genErr != nil {
		return nil, genErr
	}
	return merged, nil
}

// CreateJiraTicket creates a ticket for the item with the given id. On
// success that item, and only that item, is marked completed. A failure is
// returned to the caller and leaves the session untouched.
func (c *Controller) CreateJiraTicket(ctx context.Context, itemID string) (*entities.JiraTicket, error) {
	var (
		item  entities.ActionItem
		found bool
	)
	if err := c.do(ctx, func() {
		for _, it := range c.actionItems {
			if it.ID == itemID {
				item, found = it, true
				return
			}
		}
	}); err != nil {
		return nil, err
	}
	if !found {
		return nil, usecaseErrors.ErrActionItemNotFound
	}

	ticket, err := c.enrich.CreateJiraTicket(ctx, item)
	if err != nil {
		c.logger.Warn("⚠️ jira ticket creation failed", zap.String("item_id", itemID), zap.Error(err))
		return nil, err
	}

	err = c.do(context.Background(), func() {
		for i := range c.actionItems {
			if c.actionItems[i].ID != itemID {
				continue
			}
			c.actionItems[i].Completed = true
			c.actionItems[i].TicketKey = ticket.TicketKey
			c.setNotice(fmt.Sprintf("Created Jira ticket %s", ticket.TicketKey))
			c.changed()
			return
		}
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// Ask answers question from the committed transcript and logs the exchange
func (c *Controller) Ask(ctx context.Context, question string) (entities.Question, error) {
	var transcript []entities.TranscriptEntry
	if err := c.do(ctx, func() { transcript = c.asm.Committed() }); err != nil {
		return entities.Question{}, err
	}

	answer, askErr := c.enrich.AskQuestion(ctx, question, transcript)
	if askErr != nil {
		c.post(func() {
			c.setError(askErr)
			c.changed()
		})
		return entities.Question{}, askErr
	}

	q := entities.Question{
		ID:       uuid.NewString(),
		Question: strings.TrimSpace(question),
		Answer:   answer.Answer,
		AskedAt:  time.Now().UTC(),
	}
	if err := c.do(context.Background(), func() {
		c.questions = append(c.questions, q)
		c.changed()
	}); err != nil {
		return entities.Question{}, err
	}
	return q, nil
}

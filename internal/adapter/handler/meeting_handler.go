package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	dto "github.com/johnquangdev/meeting-assistant-client/internal/adapter/dto/session"
	"github.com/johnquangdev/meeting-assistant-client/internal/usecase/enrichment"
	usecaseErrors "github.com/johnquangdev/meeting-assistant-client/internal/usecase/errors"
	"github.com/johnquangdev/meeting-assistant-client/internal/usecase/session"
)

// Meeting forwards meeting-level operations to the backend
type Meeting struct {
	gateway  enrichment.Service
	sessions session.Service
	logger   *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(gateway enrichment.Service, sessions session.Service, logger *zap.Logger) *Meeting {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Meeting{gateway: gateway, sessions: sessions, logger: logger}
}

// sessionID picks the requested session, else the current one.
func (h *Meeting) sessionID(ctx context.Context, requested string) (string, error) {
	if requested != "" {
		return requested, nil
	}
	s, err := h.sessions.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	if s.ID == "" {
		return "", usecaseErrors.ErrNoSession
	}
	return s.ID, nil
}

// End asks the backend to close out the meeting and summarize it
// @Summary      End meeting
// @Tags         Meeting
// @Accept       json
// @Produce      json
// @Param        request  body      dto.MeetingRequest  false  "Session to end, defaults to the current one"
// @Success      200      {object}  entities.MeetingSummary
// @Failure      404      {object}  map[string]interface{}  "No session"
// @Failure      502      {object}  map[string]interface{}  "Backend call failed"
// @Router       /meeting/end [post]
func (h *Meeting) End(c echo.Context) error {
	var req dto.MeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	ctx := c.Request().Context()
	id, err := h.sessionID(ctx, req.SessionID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	summary, err := h.gateway.EndMeeting(ctx, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	h.logger.Info("🏁 meeting ended", zap.String("session_id", id))
	return HandleSuccess(h.logger, c, summary)
}

// JiraTasks files every action item of the meeting in Jira
// @Summary      Create Jira tasks
// @Tags         Meeting
// @Accept       json
// @Produce      json
// @Param        request  body      dto.MeetingRequest  false  "Session, defaults to the current one"
// @Success      200      {object}  entities.JiraTasksResult
// @Router       /meeting/jira-tasks [post]
func (h *Meeting) JiraTasks(c echo.Context) error {
	var req dto.MeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	ctx := c.Request().Context()
	id, err := h.sessionID(ctx, req.SessionID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	res, err := h.gateway.CreateJiraTasks(ctx, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, res)
}

// PostSummary posts the meeting summary to Teams or Slack
// @Summary      Post summary
// @Tags         Meeting
// @Accept       json
// @Produce      json
// @Param        request  body      dto.PostSummaryRequest  true  "Platform and optional session"
// @Success      200      {object}  entities.PostSummaryResult
// @Failure      400      {object}  map[string]interface{}  "Unsupported platform"
// @Router       /meeting/post-summary [post]
func (h *Meeting) PostSummary(c echo.Context) error {
	var req dto.PostSummaryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	ctx := c.Request().Context()
	id, err := h.sessionID(ctx, req.SessionID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	res, err := h.gateway.PostSummary(ctx, id, req.Platform)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, res)
}

// BackendHealth reports which backend integrations are configured
// @Summary      Backend health
// @Tags         Meeting
// @Produce      json
// @Success      200  {object}  entities.BackendHealth
// @Failure      502  {object}  map[string]interface{}  "Backend unreachable"
// @Router       /backend/health [get]
func (h *Meeting) BackendHealth(c echo.Context) error {
	health, err := h.gateway.Health(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, health)
}

package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-assistant-client/errors"
	dto "github.com/johnquangdev/meeting-assistant-client/internal/adapter/dto/session"
	"github.com/johnquangdev/meeting-assistant-client/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/ports"
	"github.com/johnquangdev/meeting-assistant-client/internal/usecase/media"
	"github.com/johnquangdev/meeting-assistant-client/internal/usecase/session"
)

// Session handles the recording session endpoints
type Session struct {
	sessions session.Service
	media    media.Service
	logger   *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions session.Service, mediaSvc media.Service, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{sessions: sessions, media: mediaSvc, logger: logger}
}

// Get returns the raw session snapshot
// @Summary      Get session
// @Description  Returns the current session snapshot
// @Tags         Session
// @Produce      json
// @Success      200  {object}  entities.Session
// @Router       /session [get]
func (h *Session) Get(c echo.Context) error {
	s, err := h.sessions.Snapshot(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, s)
}

// View returns the display-ready session
// @Summary      Get session view
// @Description  Returns the session with speaker colors, initials, clock times and insight categories
// @Tags         Session
// @Produce      json
// @Success      200  {object}  dto.SessionView
// @Router       /session/view [get]
func (h *Session) View(c echo.Context) error {
	s, err := h.sessions.Snapshot(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionView(s))
}

// Start begins recording
// @Summary      Start recording
// @Description  Acquires the speech capability and starts a new recording session
// @Tags         Session
// @Produce      json
// @Success      200  {object}  dto.SessionView
// @Failure      409  {object}  map[string]interface{}  "A file is being processed"
// @Failure      503  {object}  map[string]interface{}  "Speech recognition is not available"
// @Router       /session/start [post]
func (h *Session) Start(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.sessions.StartRecording(ctx); err != nil {
		return HandleError(h.logger, c, err)
	}
	return h.View(c)
}

// Stop ends recording
// @Summary      Stop recording
// @Tags         Session
// @Produce      json
// @Success      200  {object}  dto.SessionView
// @Router       /session/stop [post]
func (h *Session) Stop(c echo.Context) error {
	if err := h.sessions.StopRecording(c.Request().Context()); err != nil {
		return HandleError(h.logger, c, err)
	}
	return h.View(c)
}

// Clear wipes the session content
// @Summary      Clear session
// @Description  Clears transcript, action items, insights and questions. Refused while recording.
// @Tags         Session
// @Produce      json
// @Success      200  {object}  dto.SessionView
// @Failure      409  {object}  map[string]interface{}  "Recording is active"
// @Router       /session/clear [post]
func (h *Session) Clear(c echo.Context) error {
	if err := h.sessions.ClearSession(c.Request().Context()); err != nil {
		return HandleError(h.logger, c, err)
	}
	return h.View(c)
}

// Upload processes a meeting recording
// @Summary      Upload media
// @Description  Uploads an audio or video file for transcription and action item extraction
// @Tags         Uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file    true   "Audio or video file"
// @Param        mode  query     string  false  "stream or batch"
// @Success      200   {object}  dto.UploadResponse
// @Failure      400   {object}  map[string]interface{}  "Unsupported file"
// @Failure      409   {object}  map[string]interface{}  "Recording or another upload in progress"
// @Failure      413   {object}  map[string]interface{}  "File too large"
// @Router       /uploads [post]
func (h *Session) Upload(c echo.Context) error {
	var q dto.UploadQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := validate(c, &q); err != nil {
		return HandleError(h.logger, c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("multipart field \"file\" is required"))
	}
	contentType := fh.Header.Get(echo.HeaderContentType)
	if err := h.media.Validate(fh.Filename, contentType, fh.Size); err != nil {
		return HandleError(h.logger, c, err)
	}

	f, err := fh.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	defer f.Close()

	res, err := h.media.Process(c.Request().Context(), ports.Upload{
		Filename:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Body:        f,
	}, entities.UploadMode(q.Mode))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToUploadResponse(res))
}

// GenerateActionItems regenerates action items from the transcript
// @Summary      Generate action items
// @Tags         Action Items
// @Produce      json
// @Success      200  {array}   dto.ActionItemView
// @Failure      422  {object}  map[string]interface{}  "No action items could be generated"
// @Router       /action-items/generate [post]
func (h *Session) GenerateActionItems(c echo.Context) error {
	items, err := h.sessions.GenerateActionItems(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	views := make([]dto.ActionItemView, 0, len(items))
	for _, item := range items {
		views = append(views, presenter.ToActionItemView(item))
	}
	return HandleSuccess(h.logger, c, views)
}

// CreateJiraTicket files one action item in Jira
// @Summary      Create Jira ticket
// @Tags         Action Items
// @Produce      json
// @Param        id   path      string  true  "Action item ID"
// @Success      200  {object}  entities.JiraTicket
// @Failure      404  {object}  map[string]interface{}  "Action item not found"
// @Failure      502  {object}  map[string]interface{}  "Jira call failed"
// @Router       /action-items/{id}/jira [post]
func (h *Session) CreateJiraTicket(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("action item id is required"))
	}
	ticket, err := h.sessions.CreateJiraTicket(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, ticket)
}

// Ask answers a question about the meeting
// @Summary      Ask a question
// @Tags         Q&A
// @Accept       json
// @Produce      json
// @Param        request  body      dto.AskRequest  true  "Question"
// @Success      200      {object}  dto.QuestionView
// @Router       /qa [post]
func (h *Session) Ask(c echo.Context) error {
	var req dto.AskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	q, err := h.sessions.Ask(c.Request().Context(), req.Question)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToQuestionView(q))
}

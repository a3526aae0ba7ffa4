package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-assistant-client/errors"
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meeting-assistant-client/internal/usecase/errors"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Debug("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)
	err = toAppError(err)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code.String()),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
			Details: appErr.Details,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
		Info:    err.Error(),
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// toAppError maps use case and domain sentinels onto AppErrors. AppErrors
// pass through untouched.
func toAppError(err error) error {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return err
	}

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrRecordingActive):
		return errors.ErrSessionActive(usecaseErrors.ClearWhileRecordingMessage)
	case stdErrors.Is(err, usecaseErrors.ErrUploadWhileRecording):
		return errors.ErrSessionActive("Stop recording before uploading a file")
	case stdErrors.Is(err, usecaseErrors.ErrUploadInProgress):
		return errors.ErrSessionActive("A file is already being processed")
	case stdErrors.Is(err, usecaseErrors.ErrControllerClosed):
		return errors.ErrSessionClosed()
	case stdErrors.Is(err, usecaseErrors.ErrNoSession):
		return errors.ErrNotFound("session")
	case stdErrors.Is(err, usecaseErrors.ErrActionItemNotFound):
		return errors.ErrNotFound("action item")
	case stdErrors.Is(err, usecaseErrors.ErrNotFound):
		return errors.ErrNotFound("resource")
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, entities.ErrCapabilityUnavailable):
		return errors.ErrCapabilityUnavailable("speech", err)
	case stdErrors.Is(err, entities.ErrNoActionItems):
		return errors.ErrNoActionItems()
	case stdErrors.Is(err, entities.ErrEmptyTranscript):
		return errors.ErrInvalidArgument("The transcript is empty")
	case stdErrors.Is(err, entities.ErrUnsupportedMedia):
		return errors.ErrInvalidMedia("", err)
	}
	return err
}

// bindAndValidate binds the request into req and runs the registered validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	return validate(c, req)
}

func validate(c echo.Context, req interface{}) error {
	if c.Echo().Validator == nil {
		return nil
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidArgument(err.Error())
	}
	return nil
}

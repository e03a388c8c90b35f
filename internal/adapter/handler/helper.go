package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lovweb/transcript-studio/errors"
	"github.com/lovweb/transcript-studio/internal/domain/entities"
	usecaseErrors "github.com/lovweb/transcript-studio/internal/usecase/errors"
	"github.com/lovweb/transcript-studio/internal/usecase/segmenter"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
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
	return c.Request().Header.Get("X-Request-ID")
}

// userIDFromContext reads the authenticated user id set by the auth
// middleware
func userIDFromContext(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get("user_id").(uuid.UUID)
	return userID, ok
}

// HandleSuccess writes a standardized success response
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleError centralizes error handling and logging
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			logger.Error("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
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

	// Non-AppError => internal server error
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

// mapDomainError translates usecase and segmenter failures into AppErrors so
// HandleError renders a client-appropriate status. Unknown errors pass
// through and end up as 500.
func mapDomainError(err error) error {
	var unsupported *segmenter.UnsupportedFormatError
	if stdErrors.As(err, &unsupported) {
		return errors.ErrUnsupportedFormat(unsupported.FileType)
	}
	var parse *segmenter.ParseError
	if stdErrors.As(err, &parse) {
		return errors.ErrParseFailed(err)
	}

	switch {
	case stdErrors.Is(err, entities.ErrTranscriptNotFound),
		stdErrors.Is(err, usecaseErrors.ErrTranscriptNotFound):
		return errors.ErrNotFound("Transcript")
	case stdErrors.Is(err, entities.ErrUtteranceNotFound),
		stdErrors.Is(err, usecaseErrors.ErrUtteranceNotFound):
		return errors.ErrUtteranceNotFound()
	case stdErrors.Is(err, usecaseErrors.ErrTooFewUtterances):
		return errors.ErrMergeTooFewUtterances()
	case stdErrors.Is(err, usecaseErrors.ErrCrossTranscript):
		return errors.ErrMergeCrossTranscript()
	case stdErrors.Is(err, usecaseErrors.ErrInvalidRelabelScope):
		return errors.ErrInvalidRelabelScope("")
	case stdErrors.Is(err, usecaseErrors.ErrEmptySpeaker),
		stdErrors.Is(err, usecaseErrors.ErrInvalidInput):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, entities.ErrUserNotFound):
		return errors.ErrNotFound("User")
	default:
		return err
	}
}

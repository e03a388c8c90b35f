package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lovweb/transcript-studio/errors"
	transcriptDto "github.com/lovweb/transcript-studio/internal/adapter/dto/transcript"
	"github.com/lovweb/transcript-studio/internal/usecase/transcript"
)

// TranscriptHandler exposes the transcript lifecycle over HTTP
type TranscriptHandler struct {
	service        transcript.Service
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewTranscriptHandler creates a new transcript handler
func NewTranscriptHandler(service transcript.Service, maxUploadBytes int64, logger *zap.Logger) *TranscriptHandler {
	return &TranscriptHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Upload handles POST /v1/transcripts. The document arrives as the
// multipart "file" part; an optional "title" field overrides the file name.
func (h *TranscriptHandler) Upload(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req transcriptDto.UploadRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrMissingFile())
	}
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(
			fmt.Sprintf("File exceeds the %d byte upload limit", h.maxUploadBytes)))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	created, err := h.service.Upload(c.Request().Context(), userID, transcript.UploadInput{
		FileName: fileHeader.Filename,
		Title:    req.Title,
		Data:     data,
	})
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, transcriptDto.FromEntity(created))
}

// List handles GET /v1/transcripts
func (h *TranscriptHandler) List(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	transcripts, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	resp := make([]transcriptDto.Response, len(transcripts))
	for i, t := range transcripts {
		resp[i] = transcriptDto.FromEntity(t)
	}

	return HandleSuccess(h.logger, c, resp)
}

// Get handles GET /v1/transcripts/:id
func (h *TranscriptHandler) Get(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	transcriptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid transcript ID"))
	}

	t, utterances, err := h.service.Get(c.Request().Context(), userID, transcriptID)
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	detail := transcriptDto.DetailResponse{
		Transcript: transcriptDto.FromEntity(t),
		Utterances: make([]transcriptDto.UtteranceResponse, len(utterances)),
	}
	for i, u := range utterances {
		detail.Utterances[i] = transcriptDto.UtteranceFromEntity(u)
	}

	return HandleSuccess(h.logger, c, detail)
}

// Delete handles DELETE /v1/transcripts/:id
func (h *TranscriptHandler) Delete(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	transcriptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid transcript ID"))
	}

	if err := h.service.Delete(c.Request().Context(), userID, transcriptID); err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, map[string]string{"id": transcriptID.String()})
}

// Export handles GET /v1/transcripts/:id/export and streams the transcript
// as a markdown attachment.
func (h *TranscriptHandler) Export(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	transcriptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid transcript ID"))
	}

	fileName, markdown, err := h.service.Export(c.Request().Context(), userID, transcriptID)
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	if h.logger != nil {
		h.logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.String("file_name", fileName),
		)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, fileName))
	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(markdown))
}

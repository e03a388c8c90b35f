package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lovweb/transcript-studio/errors"
	transcriptDto "github.com/lovweb/transcript-studio/internal/adapter/dto/transcript"
	utteranceDto "github.com/lovweb/transcript-studio/internal/adapter/dto/utterance"
	"github.com/lovweb/transcript-studio/internal/domain/entities"
	"github.com/lovweb/transcript-studio/internal/usecase/consolidator"
)

// UtteranceHandler exposes utterance editing, relabeling and merging
type UtteranceHandler struct {
	service consolidator.Service
	logger  *zap.Logger
}

// NewUtteranceHandler creates a new utterance handler
func NewUtteranceHandler(service consolidator.Service, logger *zap.Logger) *UtteranceHandler {
	return &UtteranceHandler{
		service: service,
		logger:  logger,
	}
}

// Update handles PUT /v1/utterances/:id
func (h *UtteranceHandler) Update(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	utteranceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid utterance ID"))
	}

	var req utteranceDto.UpdateRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}
	if req.Speaker == nil && req.Content == nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Nothing to update"))
	}

	updated, err := h.service.Update(c.Request().Context(), userID, utteranceID, req.Speaker, req.Content)
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, transcriptDto.UtteranceFromEntity(updated))
}

// Relabel handles POST /v1/utterances/relabel
func (h *UtteranceHandler) Relabel(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req utteranceDto.RelabelRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	utteranceID, err := uuid.Parse(req.UtteranceID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid utterance ID"))
	}

	count, err := h.service.Relabel(c.Request().Context(), userID, consolidator.RelabelInput{
		UtteranceID: utteranceID,
		Speaker:     req.Speaker,
		Scope:       entities.RelabelScope(req.Scope),
	})
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, utteranceDto.RelabelResponse{UpdatedCount: count})
}

// Merge handles POST /v1/utterances/merge
func (h *UtteranceHandler) Merge(c echo.Context) error {
	userID, ok := userIDFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req utteranceDto.MergeRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	utteranceIDs := make([]uuid.UUID, len(req.UtteranceIDs))
	for i, raw := range req.UtteranceIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid utterance ID"))
		}
		utteranceIDs[i] = id
	}

	survivorID, err := h.service.Merge(c.Request().Context(), userID, utteranceIDs)
	if err != nil {
		return HandleError(h.logger, c, mapDomainError(err))
	}

	return HandleSuccess(h.logger, c, utteranceDto.MergeResponse{MergedUtteranceID: survivorID.String()})
}

package consolidator

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lovweb/transcript-studio/internal/domain/entities"
	"github.com/lovweb/transcript-studio/internal/domain/repositories"
	usecaseErrors "github.com/lovweb/transcript-studio/internal/usecase/errors"
)

// Service mutates a transcript's utterance collection while preserving the
// dense zero-based ordering invariant.
type Service interface {
	// Relabel corrects a speaker label with single, forward or all scope and
	// returns the number of rows updated. Order indices are untouched.
	Relabel(ctx context.Context, userID uuid.UUID, input RelabelInput) (int64, error)

	// Merge collapses at least two utterances of one transcript into the one
	// with the lowest order index and renumbers the remainder densely.
	// Returns the surviving utterance's id.
	Merge(ctx context.Context, userID uuid.UUID, utteranceIDs []uuid.UUID) (uuid.UUID, error)

	// Update applies a partial edit (speaker and/or content) to a single
	// utterance and returns the updated row.
	Update(ctx context.Context, userID uuid.UUID, utteranceID uuid.UUID, speaker, content *string) (*entities.Utterance, error)
}

// RelabelInput carries a speaker correction request
type RelabelInput struct {
	UtteranceID uuid.UUID
	Speaker     string
	Scope       entities.RelabelScope
}

type consolidatorService struct {
	utteranceRepo repositories.UtteranceRepository
	logger        *zap.Logger
}

// NewService creates a new consolidator service
func NewService(utteranceRepo repositories.UtteranceRepository, logger *zap.Logger) Service {
	return &consolidatorService{
		utteranceRepo: utteranceRepo,
		logger:        logger,
	}
}

// Relabel captures the target's original speaker before writing, so the
// scoped updates match on the value the user saw, not whatever a concurrent
// edit may have produced.
func (s *consolidatorService) Relabel(ctx context.Context, userID uuid.UUID, input RelabelInput) (int64, error) {
	if strings.TrimSpace(input.Speaker) == "" {
		return 0, usecaseErrors.ErrEmptySpeaker
	}
	if !input.Scope.IsValid() {
		return 0, usecaseErrors.ErrInvalidRelabelScope
	}

	target, err := s.utteranceRepo.FindOwnedByID(ctx, input.UtteranceID, userID)
	if err != nil {
		return 0, err
	}

	var updated int64
	switch input.Scope {
	case entities.RelabelSingle:
		if err := s.utteranceRepo.UpdateSpeaker(ctx, target.ID, input.Speaker); err != nil {
			return 0, err
		}
		updated = 1
	case entities.RelabelForward:
		updated, err = s.utteranceRepo.RelabelForward(ctx, target.TranscriptID, target.OrderIndex, target.Speaker, input.Speaker)
		if err != nil {
			return 0, err
		}
	case entities.RelabelAll:
		updated, err = s.utteranceRepo.RelabelAll(ctx, target.TranscriptID, target.Speaker, input.Speaker)
		if err != nil {
			return 0, err
		}
	}

	if s.logger != nil {
		s.logger.Info("utterance.relabel",
			zap.String("transcript_id", target.TranscriptID.String()),
			zap.String("scope", string(input.Scope)),
			zap.Int64("updated_count", updated),
		)
	}
	return updated, nil
}

// Merge trusts document order, not selection order: the resolved rows are
// taken in ascending order index regardless of how the ids were supplied.
func (s *consolidatorService) Merge(ctx context.Context, userID uuid.UUID, utteranceIDs []uuid.UUID) (uuid.UUID, error) {
	if len(utteranceIDs) < 2 {
		return uuid.Nil, usecaseErrors.ErrTooFewUtterances
	}

	targets, err := s.utteranceRepo.FindOwnedByIDs(ctx, utteranceIDs, userID)
	if err != nil {
		return uuid.Nil, err
	}
	if len(targets) != len(utteranceIDs) {
		return uuid.Nil, usecaseErrors.ErrUtteranceNotFound
	}

	transcriptID := targets[0].TranscriptID
	for _, u := range targets {
		if u.TranscriptID != transcriptID {
			return uuid.Nil, usecaseErrors.ErrCrossTranscript
		}
	}

	contents := make([]string, len(targets))
	for i, u := range targets {
		contents[i] = u.Content
	}
	mergedContent := strings.Join(contents, " ")

	survivor := targets[0]
	last := targets[len(targets)-1]

	deleteIDs := make([]uuid.UUID, 0, len(targets)-1)
	for _, u := range targets[1:] {
		deleteIDs = append(deleteIDs, u.ID)
	}

	if err := s.utteranceRepo.MergeGroup(ctx, transcriptID, survivor.ID, mergedContent, last.EndTime, deleteIDs); err != nil {
		return uuid.Nil, err
	}

	if s.logger != nil {
		s.logger.Info("utterance.merge",
			zap.String("transcript_id", transcriptID.String()),
			zap.String("merged_utterance_id", survivor.ID.String()),
			zap.Int("group_size", len(targets)),
		)
	}
	return survivor.ID, nil
}

// Update applies a partial edit to one utterance
func (s *consolidatorService) Update(ctx context.Context, userID uuid.UUID, utteranceID uuid.UUID, speaker, content *string) (*entities.Utterance, error) {
	if _, err := s.utteranceRepo.FindOwnedByID(ctx, utteranceID, userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if speaker != nil {
		if strings.TrimSpace(*speaker) == "" {
			return nil, usecaseErrors.ErrEmptySpeaker
		}
		fields["speaker"] = *speaker
	}
	if content != nil {
		if strings.TrimSpace(*content) == "" {
			return nil, usecaseErrors.ErrInvalidInput
		}
		fields["content"] = *content
	}

	if len(fields) > 0 {
		if err := s.utteranceRepo.UpdateFields(ctx, utteranceID, fields); err != nil {
			return nil, err
		}
	}

	return s.utteranceRepo.FindOwnedByID(ctx, utteranceID, userID)
}

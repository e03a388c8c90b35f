package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lovweb/transcript-studio/internal/domain/entities"
)

// UtteranceRepository implements the utterance repository interface using GORM
type UtteranceRepository struct {
	db *gorm.DB
}

// NewUtteranceRepository creates a new utterance repository
func NewUtteranceRepository(db *gorm.DB) *UtteranceRepository {
	return &UtteranceRepository{db: db}
}

// BulkCreate inserts the utterances of a freshly segmented transcript
func (r *UtteranceRepository) BulkCreate(ctx context.Context, utterances []*entities.Utterance) error {
	if len(utterances) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(utterances).Error; err != nil {
		return fmt.Errorf("failed to create utterances: %w", err)
	}
	return nil
}

// ListByTranscript returns utterances in ascending order index
func (r *UtteranceRepository) ListByTranscript(ctx context.Context, transcriptID uuid.UUID) ([]*entities.Utterance, error) {
	var utterances []*entities.Utterance
	if err := r.db.WithContext(ctx).
		Where("transcript_id = ?", transcriptID).
		Order("order_index ASC").
		Find(&utterances).Error; err != nil {
		return nil, fmt.Errorf("failed to list utterances: %w", err)
	}
	return utterances, nil
}

// FindOwnedByID finds an utterance whose transcript belongs to the user
func (r *UtteranceRepository) FindOwnedByID(ctx context.Context, id, userID uuid.UUID) (*entities.Utterance, error) {
	var utterance entities.Utterance
	if err := r.db.WithContext(ctx).
		Joins("JOIN transcripts ON transcripts.id = utterances.transcript_id").
		Where("utterances.id = ? AND transcripts.user_id = ?", id, userID).
		First(&utterance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrUtteranceNotFound
		}
		return nil, fmt.Errorf("failed to find utterance: %w", err)
	}
	return &utterance, nil
}

// FindOwnedByIDs resolves a set of utterances owned by the user, in
// ascending order index
func (r *UtteranceRepository) FindOwnedByIDs(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) ([]*entities.Utterance, error) {
	var utterances []*entities.Utterance
	if err := r.db.WithContext(ctx).
		Joins("JOIN transcripts ON transcripts.id = utterances.transcript_id").
		Where("utterances.id IN ? AND transcripts.user_id = ?", ids, userID).
		Order("utterances.order_index ASC").
		Find(&utterances).Error; err != nil {
		return nil, fmt.Errorf("failed to find utterances: %w", err)
	}
	return utterances, nil
}

// UpdateFields applies a partial update (speaker and/or content)
func (r *UtteranceRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Utterance{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return fmt.Errorf("failed to update utterance: %w", err)
	}
	return nil
}

// UpdateSpeaker sets the speaker of a single utterance
func (r *UtteranceRepository) UpdateSpeaker(ctx context.Context, id uuid.UUID, speaker string) error {
	if err := r.db.WithContext(ctx).
		Model(&entities.Utterance{}).
		Where("id = ?", id).
		Update("speaker", speaker).Error; err != nil {
		return fmt.Errorf("failed to update speaker: %w", err)
	}
	return nil
}

// RelabelForward updates the target and every later utterance still
// carrying the captured original speaker, in a single conditional UPDATE.
func (r *UtteranceRepository) RelabelForward(ctx context.Context, transcriptID uuid.UUID, fromIndex int, originalSpeaker, newSpeaker string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Utterance{}).
		Where("transcript_id = ? AND order_index >= ? AND speaker = ?", transcriptID, fromIndex, originalSpeaker).
		Update("speaker", newSpeaker)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to relabel forward: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// RelabelAll updates every utterance of the transcript carrying the
// captured original speaker
func (r *UtteranceRepository) RelabelAll(ctx context.Context, transcriptID uuid.UUID, originalSpeaker, newSpeaker string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Utterance{}).
		Where("transcript_id = ? AND speaker = ?", transcriptID, originalSpeaker).
		Update("speaker", newSpeaker)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to relabel all: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// MergeGroup applies the write half of a merge inside one transaction:
// survivor update, group delete, then dense renumbering of the whole
// transcript in order-index order. A concurrent merge sees either the old
// or the new sequence.
func (r *UtteranceRepository) MergeGroup(ctx context.Context, transcriptID, survivorID uuid.UUID, mergedContent string, endTime *int, deleteIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Utterance{}).
			Where("id = ?", survivorID).
			Updates(map[string]interface{}{
				"content":  mergedContent,
				"end_time": endTime,
			}).Error; err != nil {
			return fmt.Errorf("failed to update merged utterance: %w", err)
		}

		if len(deleteIDs) > 0 {
			if err := tx.Where("id IN ?", deleteIDs).
				Delete(&entities.Utterance{}).Error; err != nil {
				return fmt.Errorf("failed to delete absorbed utterances: %w", err)
			}
		}

		var remaining []entities.Utterance
		if err := tx.Select("id", "order_index").
			Where("transcript_id = ?", transcriptID).
			Order("order_index ASC").
			Find(&remaining).Error; err != nil {
			return fmt.Errorf("failed to load remaining utterances: %w", err)
		}

		for i, u := range remaining {
			if u.OrderIndex == i {
				continue
			}
			if err := tx.Model(&entities.Utterance{}).
				Where("id = ?", u.ID).
				Update("order_index", i).Error; err != nil {
				return fmt.Errorf("failed to reindex utterance: %w", err)
			}
		}
		return nil
	})
}

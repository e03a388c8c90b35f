package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lovweb/transcript-studio/internal/domain/entities"
)

// TranscriptRepository implements the transcript repository interface using GORM
type TranscriptRepository struct {
	db *gorm.DB
}

// NewTranscriptRepository creates a new transcript repository
func NewTranscriptRepository(db *gorm.DB) *TranscriptRepository {
	return &TranscriptRepository{db: db}
}

// Create creates a new transcript
func (r *TranscriptRepository) Create(ctx context.Context, transcript *entities.Transcript) error {
	if err := r.db.WithContext(ctx).Create(transcript).Error; err != nil {
		return fmt.Errorf("failed to create transcript: %w", err)
	}
	return nil
}

// FindOwnedByID finds a transcript by ID, scoped to its owning user
func (r *TranscriptRepository) FindOwnedByID(ctx context.Context, id, userID uuid.UUID) (*entities.Transcript, error) {
	var transcript entities.Transcript
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&transcript).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrTranscriptNotFound
		}
		return nil, fmt.Errorf("failed to find transcript: %w", err)
	}
	return &transcript, nil
}

// ListByUser returns the user's transcripts, newest first
func (r *TranscriptRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Transcript, error) {
	var transcripts []*entities.Transcript
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&transcripts).Error; err != nil {
		return nil, fmt.Errorf("failed to list transcripts: %w", err)
	}
	return transcripts, nil
}

// UpdateStatus flips the lifecycle status
func (r *TranscriptRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.TranscriptStatus) error {
	if err := r.db.WithContext(ctx).
		Model(&entities.Transcript{}).
		Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return fmt.Errorf("failed to update transcript status: %w", err)
	}
	return nil
}

// DeleteOwned deletes a transcript owned by the user; utterances cascade
// through the foreign key.
func (r *TranscriptRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.Transcript{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transcript: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrTranscriptNotFound
	}
	return nil
}

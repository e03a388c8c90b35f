package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/lovweb/transcript-studio/internal/domain/entities"
)

// TranscriptRepository defines the interface for transcript data access
type TranscriptRepository interface {
	// Create creates a new transcript
	Create(ctx context.Context, transcript *entities.Transcript) error

	// FindOwnedByID finds a transcript by ID, scoped to its owning user
	FindOwnedByID(ctx context.Context, id, userID uuid.UUID) (*entities.Transcript, error)

	// ListByUser returns the user's transcripts, newest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Transcript, error)

	// UpdateStatus flips the lifecycle status. Safe to retry on its own.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.TranscriptStatus) error

	// DeleteOwned deletes a transcript owned by the user; utterances cascade
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) error
}

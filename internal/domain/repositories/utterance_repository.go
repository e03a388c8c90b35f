package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/lovweb/transcript-studio/internal/domain/entities"
)

// UtteranceRepository defines the interface for utterance data access.
// Multi-row writes are single statements; MergeGroup runs as one
// transaction so concurrent callers observe either the old or the new
// ordering, never a mix.
type UtteranceRepository interface {
	// BulkCreate inserts the utterances of a freshly segmented transcript
	BulkCreate(ctx context.Context, utterances []*entities.Utterance) error

	// ListByTranscript returns utterances in ascending order index
	ListByTranscript(ctx context.Context, transcriptID uuid.UUID) ([]*entities.Utterance, error)

	// FindOwnedByID finds an utterance whose transcript belongs to the user
	FindOwnedByID(ctx context.Context, id, userID uuid.UUID) (*entities.Utterance, error)

	// FindOwnedByIDs resolves a set of utterances owned by the user, in
	// ascending order index. Unresolvable ids are simply absent from the
	// result; the caller decides whether that is an error.
	FindOwnedByIDs(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) ([]*entities.Utterance, error)

	// UpdateFields applies a partial update (speaker and/or content)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error

	// UpdateSpeaker sets the speaker of a single utterance
	UpdateSpeaker(ctx context.Context, id uuid.UUID, speaker string) error

	// RelabelForward updates every utterance of the transcript at or after
	// fromIndex that still carries originalSpeaker. Returns rows updated.
	RelabelForward(ctx context.Context, transcriptID uuid.UUID, fromIndex int, originalSpeaker, newSpeaker string) (int64, error)

	// RelabelAll updates every utterance of the transcript carrying
	// originalSpeaker, regardless of position. Returns rows updated.
	RelabelAll(ctx context.Context, transcriptID uuid.UUID, originalSpeaker, newSpeaker string) (int64, error)

	// MergeGroup performs the write half of a merge as one unit: the
	// survivor takes the merged content and end time, the absorbed rows are
	// deleted, and the transcript's order indices are renumbered densely
	// from zero.
	MergeGroup(ctx context.Context, transcriptID, survivorID uuid.UUID, mergedContent string, endTime *int, deleteIDs []uuid.UUID) error
}

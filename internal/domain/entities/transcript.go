package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TranscriptStatus is the lifecycle status of an imported document
type TranscriptStatus string

const (
	TranscriptStatusProcessing TranscriptStatus = "processing"
	TranscriptStatusCompleted  TranscriptStatus = "completed"
	TranscriptStatusError      TranscriptStatus = "error"
)

// IsValid checks if the transcript status is valid
func (s TranscriptStatus) IsValid() bool {
	switch s {
	case TranscriptStatusProcessing, TranscriptStatusCompleted, TranscriptStatusError:
		return true
	}
	return false
}

// Transcript identifies one imported document and owns its utterances
type Transcript struct {
	ID               uuid.UUID        `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID           uuid.UUID        `json:"user_id" gorm:"type:uuid;not null;index"`
	Title            string           `json:"title" gorm:"type:varchar(500);not null"`
	OriginalFileName *string          `json:"original_file_name,omitempty" gorm:"type:varchar(500)"`
	FileType         *string          `json:"file_type,omitempty" gorm:"type:varchar(50)"`
	Metadata         datatypes.JSON   `json:"metadata,omitempty" gorm:"type:jsonb;default:'{}'"`
	Status           TranscriptStatus `json:"status" gorm:"type:varchar(50);default:'processing';not null"`
	CreatedAt        time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time        `json:"updated_at" gorm:"autoUpdateTime"`

	// Loaded on demand; cascade delete is enforced by the FK in the schema.
	Utterances []Utterance `json:"utterances,omitempty" gorm:"foreignKey:TranscriptID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (Transcript) TableName() string {
	return "transcripts"
}

// NewTranscript creates a new transcript in the processing state
func NewTranscript(userID uuid.UUID, title string) *Transcript {
	return &Transcript{
		ID:     uuid.New(),
		UserID: userID,
		Title:  title,
		Status: TranscriptStatusProcessing,
	}
}

// IsOwnedBy reports whether the transcript belongs to the given user
func (t *Transcript) IsOwnedBy(userID uuid.UUID) bool {
	return t.UserID == userID
}

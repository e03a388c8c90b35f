package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DefaultSpeaker is the label assigned to content that precedes any
// recognizable speaker prefix.
const DefaultSpeaker = "Speaker"

// Utterance is one speaker turn within a transcript. OrderIndex values form
// a dense, zero-based ascending sequence within a transcript.
type Utterance struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TranscriptID uuid.UUID      `json:"transcript_id" gorm:"type:uuid;not null;index"`
	Speaker      string         `json:"speaker" gorm:"type:varchar(255);default:'Speaker';not null"`
	Content      string         `json:"content" gorm:"type:text;not null"`
	StartTime    *int           `json:"start_time,omitempty"` // milliseconds
	EndTime      *int           `json:"end_time,omitempty"`   // milliseconds
	OrderIndex   int            `json:"order_index" gorm:"not null"`
	Metadata     datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Utterance) TableName() string {
	return "utterances"
}

// RelabelScope controls how many utterances a speaker correction affects
type RelabelScope string

const (
	// RelabelSingle updates only the target utterance.
	RelabelSingle RelabelScope = "single"
	// RelabelForward updates the target and every later utterance that still
	// carries the target's original speaker label.
	RelabelForward RelabelScope = "forward"
	// RelabelAll updates every utterance in the transcript carrying the
	// target's original speaker label.
	RelabelAll RelabelScope = "all"
)

// IsValid checks if the relabel scope is valid
func (s RelabelScope) IsValid() bool {
	switch s {
	case RelabelSingle, RelabelForward, RelabelAll:
		return true
	}
	return false
}

package transcript

import (
	"encoding/json"
	"time"

	"github.com/lovweb/transcript-studio/internal/domain/entities"
)

// Response represents one transcript in API responses
type Response struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	OriginalFileName *string         `json:"original_file_name,omitempty"`
	FileType         *string         `json:"file_type,omitempty"`
	Status           string          `json:"status"`
	Metadata         json.RawMessage `json:"metadata,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// DetailResponse is a transcript with its ordered utterances
type DetailResponse struct {
	Transcript Response            `json:"transcript"`
	Utterances []UtteranceResponse `json:"utterances"`
}

// UtteranceResponse represents one utterance in API responses
type UtteranceResponse struct {
	ID           string          `json:"id"`
	TranscriptID string          `json:"transcript_id"`
	Speaker      string          `json:"speaker"`
	Content      string          `json:"content"`
	StartTime    *int            `json:"start_time,omitempty"`
	EndTime      *int            `json:"end_time,omitempty"`
	OrderIndex   int             `json:"order_index"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// FromEntity maps a transcript entity to its response shape
func FromEntity(t *entities.Transcript) Response {
	return Response{
		ID:               t.ID.String(),
		Title:            t.Title,
		OriginalFileName: t.OriginalFileName,
		FileType:         t.FileType,
		Status:           string(t.Status),
		Metadata:         json.RawMessage(t.Metadata),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

// UtteranceFromEntity maps an utterance entity to its response shape
func UtteranceFromEntity(u *entities.Utterance) UtteranceResponse {
	return UtteranceResponse{
		ID:           u.ID.String(),
		TranscriptID: u.TranscriptID.String(),
		Speaker:      u.Speaker,
		Content:      u.Content,
		StartTime:    u.StartTime,
		EndTime:      u.EndTime,
		OrderIndex:   u.OrderIndex,
		Metadata:     json.RawMessage(u.Metadata),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

package utterance

// RelabelRequest corrects a speaker label with a chosen scope
type RelabelRequest struct {
	UtteranceID string `json:"utterance_id" validate:"required,uuid"`
	Speaker     string `json:"speaker" validate:"required,min=1,max=255"`
	Scope       string `json:"scope" validate:"required,oneof=single forward all"`
}

// MergeRequest merges at least two utterances of one transcript
type MergeRequest struct {
	UtteranceIDs []string `json:"utterance_ids" validate:"required,min=2,dive,uuid"`
}

// UpdateRequest partially edits a single utterance
type UpdateRequest struct {
	Speaker *string `json:"speaker,omitempty" validate:"omitempty,min=1,max=255"`
	Content *string `json:"content,omitempty" validate:"omitempty,min=1"`
}

package utterance

// RelabelResponse reports how many rows a relabel touched
type RelabelResponse struct {
	UpdatedCount int64 `json:"updated_count"`
}

// MergeResponse identifies the surviving utterance of a merge
type MergeResponse struct {
	MergedUtteranceID string `json:"merged_utterance_id"`
}

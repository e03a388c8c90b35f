package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden access")
	ErrNotFound      = errors.New("resource not found")
	ErrInternalError = errors.New("internal server error")
)

// Transcript errors
var (
	ErrTranscriptNotFound = errors.New("transcript not found")
	ErrUploadFailed       = errors.New("failed to upload transcript")
)

// Utterance errors
var (
	ErrUtteranceNotFound   = errors.New("utterance not found or unauthorized")
	ErrEmptySpeaker        = errors.New("speaker must not be empty")
	ErrInvalidRelabelScope = errors.New("invalid relabel scope")
	ErrTooFewUtterances    = errors.New("at least 2 utterance ids required")
	ErrCrossTranscript     = errors.New("all utterances must be from the same transcript")
)

package entities

import "errors"

// Domain errors
var (
	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrUserNotActive = errors.New("user is not active")

	// Transcript errors
	ErrTranscriptNotFound = errors.New("transcript not found")
	ErrInvalidStatus      = errors.New("invalid transcript status")

	// Utterance errors
	ErrUtteranceNotFound = errors.New("utterance not found")
	ErrInvalidScope      = errors.New("invalid relabel scope")

	// Generic errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRequest = errors.New("invalid request")
)

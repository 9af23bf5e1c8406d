package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrConflict      = errors.New("resource conflict")
	ErrInternalError = errors.New("internal server error")
)

// Campaign errors
var (
	ErrCampaignNotFound  = errors.New("campaign not found")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrCharacterNotFound = errors.New("character not found")
)

// Session errors
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionCompleted = errors.New("session already completed")
)

// Recording errors
var (
	ErrRecordingNotFound    = errors.New("recording not found")
	ErrRecordingEmpty       = errors.New("recording file is empty")
	ErrUnsupportedMimeType  = errors.New("unsupported audio mime type")
	ErrTranscriptionExists  = errors.New("recording already transcribed")
	ErrTranscriptionMissing = errors.New("recording has no transcription")
	ErrTranscriptionFailed  = errors.New("transcription failed")
)

// Speaker errors
var (
	ErrSpeakerNotFound    = errors.New("speaker not found")
	ErrSpeakerGroupEmpty  = errors.New("speaker group key is empty")
	ErrInvalidSpeakerType = errors.New("invalid speaker type")
	ErrCharacterOwnership = errors.New("character does not belong to the selected player")
	ErrIdentityIncomplete = errors.New("player is required when a character is assigned")
)

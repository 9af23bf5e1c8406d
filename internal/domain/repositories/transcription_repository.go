package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
)

// TranscriptionRepository defines the interface for transcription data access
type TranscriptionRepository interface {
	// Create creates a new transcription
	Create(ctx context.Context, transcription *entities.Transcription) error

	// FindByID finds a transcription by ID, with speakers and their
	// player/character assignments preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Transcription, error)

	// FindByRecordingID finds the transcription of a recording
	FindByRecordingID(ctx context.Context, recordingID uuid.UUID) (*entities.Transcription, error)

	// CompleteWithSpeakers stores the successful ASR result and its extracted
	// speaker records in a single transaction
	CompleteWithSpeakers(ctx context.Context, transcription *entities.Transcription, speakers []*entities.Speaker) error

	// MarkFailed records a failed transcription attempt
	MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string) error

	// Delete deletes a transcription and its speakers
	Delete(ctx context.Context, id uuid.UUID) error
}

// SpeakerRepository defines the interface for speaker record data access
type SpeakerRepository interface {
	// FindByID finds a speaker by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Speaker, error)

	// FindBySessionID returns every speaker record of every recording in a
	// session, joined with the recording's name and upload order, ordered by
	// upload order then speaker index
	FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]entities.SessionSpeakerRecord, error)

	// UpdateIdentity sets role/player/character on a single speaker
	UpdateIdentity(ctx context.Context, speaker *entities.Speaker) error

	// UpdateIdentities applies a set of identity writes atomically; either
	// every write is applied or none is
	UpdateIdentities(ctx context.Context, updates []SpeakerIdentityUpdate) error
}

// SpeakerIdentityUpdate is one identity write targeting a speaker row
type SpeakerIdentityUpdate struct {
	SpeakerID   uuid.UUID
	SpeakerType entities.SpeakerType
	PlayerID    *uuid.UUID
	CharacterID *uuid.UUID
}

// SummaryRepository defines the interface for summary data access
type SummaryRepository interface {
	// Create creates a new summary
	Create(ctx context.Context, summary *entities.Summary) error

	// FindBySessionID lists a session's summaries, newest first
	FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*entities.Summary, error)

	// Delete deletes a summary
	Delete(ctx context.Context, id uuid.UUID) error
}

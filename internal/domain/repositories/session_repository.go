package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
)

// SessionRepository defines the interface for game session data access
type SessionRepository interface {
	// Create creates a new game session
	Create(ctx context.Context, session *entities.GameSession) error

	// FindByID finds a session by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.GameSession, error)

	// FindByCampaignID lists sessions of a campaign, newest session number first
	FindByCampaignID(ctx context.Context, campaignID uuid.UUID) ([]*entities.GameSession, error)

	// NextSessionNumber returns the next free session number for a campaign
	NextSessionNumber(ctx context.Context, campaignID uuid.UUID) (int, error)

	// Update updates a session
	Update(ctx context.Context, session *entities.GameSession) error

	// Delete deletes a session
	Delete(ctx context.Context, id uuid.UUID) error
}

// RecordingRepository defines the interface for recording data access
type RecordingRepository interface {
	// Create creates a new recording
	Create(ctx context.Context, recording *entities.Recording) error

	// FindByID finds a recording by ID, with its transcription preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Recording, error)

	// FindBySessionID lists a session's recordings in upload order
	FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*entities.Recording, error)

	// NextRecordingOrder returns the next upload order slot for a session
	NextRecordingOrder(ctx context.Context, sessionID uuid.UUID) (int, error)

	// Delete deletes a recording
	Delete(ctx context.Context, id uuid.UUID) error
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
)

// SessionRepository handles game session data operations
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create creates a new game session
func (r *SessionRepository) Create(ctx context.Context, session *entities.GameSession) error {
	if session == nil {
		return errors.New("session cannot be nil")
	}
	return r.db.WithContext(ctx).Create(session).Error
}

// FindByID finds a session by ID, with recordings in upload order
func (r *SessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.GameSession, error) {
	var session entities.GameSession
	if err := r.db.WithContext(ctx).
		Preload("Recordings", func(db *gorm.DB) *gorm.DB {
			return db.Order("recording_order ASC")
		}).
		Preload("Recordings.Transcription").
		Where("id = ?", id).
		First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// FindByCampaignID lists sessions of a campaign, newest session number first
func (r *SessionRepository) FindByCampaignID(ctx context.Context, campaignID uuid.UUID) ([]*entities.GameSession, error) {
	var sessions []*entities.GameSession
	if err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("session_number DESC").
		Order("session_date DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// NextSessionNumber returns the next free session number for a campaign
func (r *SessionRepository) NextSessionNumber(ctx context.Context, campaignID uuid.UUID) (int, error) {
	var max int
	if err := r.db.WithContext(ctx).
		Model(&entities.GameSession{}).
		Where("campaign_id = ?", campaignID).
		Select("COALESCE(MAX(session_number), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max + 1, nil
}

// Update updates a session
func (r *SessionRepository) Update(ctx context.Context, session *entities.GameSession) error {
	if session == nil {
		return errors.New("session cannot be nil")
	}
	return r.db.WithContext(ctx).
		Model(&entities.GameSession{}).
		Where("id = ?", session.ID).
		Save(session).Error
}

// Delete deletes a session
func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.GameSession{}, "id = ?", id).Error
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
)

// RecordingRepository handles recording data operations
type RecordingRepository struct {
	db *gorm.DB
}

// NewRecordingRepository creates a new recording repository
func NewRecordingRepository(db *gorm.DB) *RecordingRepository {
	return &RecordingRepository{db: db}
}

// Create creates a new recording
func (r *RecordingRepository) Create(ctx context.Context, recording *entities.Recording) error {
	if recording == nil {
		return errors.New("recording cannot be nil")
	}
	return r.db.WithContext(ctx).Create(recording).Error
}

// FindByID finds a recording by ID, with its transcription preloaded
func (r *RecordingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Recording, error) {
	var recording entities.Recording
	if err := r.db.WithContext(ctx).
		Preload("Transcription").
		Where("id = ?", id).
		First(&recording).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &recording, nil
}

// FindBySessionID lists a session's recordings in upload order
func (r *RecordingRepository) FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*entities.Recording, error) {
	var recordings []*entities.Recording
	if err := r.db.WithContext(ctx).
		Preload("Transcription").
		Where("game_session_id = ?", sessionID).
		Order("recording_order ASC").
		Find(&recordings).Error; err != nil {
		return nil, err
	}
	return recordings, nil
}

// NextRecordingOrder returns the next upload order slot for a session
func (r *RecordingRepository) NextRecordingOrder(ctx context.Context, sessionID uuid.UUID) (int, error) {
	var max int
	if err := r.db.WithContext(ctx).
		Model(&entities.Recording{}).
		Where("game_session_id = ?", sessionID).
		Select("COALESCE(MAX(recording_order), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max + 1, nil
}

// Delete deletes a recording
func (r *RecordingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.Recording{}, "id = ?", id).Error
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
)

// TranscriptionRepository handles transcription data operations
type TranscriptionRepository struct {
	db *gorm.DB
}

// NewTranscriptionRepository creates a new transcription repository
func NewTranscriptionRepository(db *gorm.DB) *TranscriptionRepository {
	return &TranscriptionRepository{db: db}
}

// Create creates a new transcription
func (r *TranscriptionRepository) Create(ctx context.Context, transcription *entities.Transcription) error {
	if transcription == nil {
		return errors.New("transcription cannot be nil")
	}
	return r.db.WithContext(ctx).Create(transcription).Error
}

// FindByID finds a transcription by ID, with speakers and their
// player/character assignments preloaded
func (r *TranscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Transcription, error) {
	var transcription entities.Transcription
	if err := r.db.WithContext(ctx).
		Preload("Recording").
		Preload("Speakers", func(db *gorm.DB) *gorm.DB {
			return db.Order("speaker_index ASC")
		}).
		Preload("Speakers.Player").
		Preload("Speakers.Character").
		Where("id = ?", id).
		First(&transcription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transcription, nil
}

// FindByRecordingID finds the transcription of a recording
func (r *TranscriptionRepository) FindByRecordingID(ctx context.Context, recordingID uuid.UUID) (*entities.Transcription, error) {
	var transcription entities.Transcription
	if err := r.db.WithContext(ctx).
		Where("recording_id = ?", recordingID).
		First(&transcription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transcription, nil
}

// CompleteWithSpeakers stores the successful ASR result and its extracted
// speaker records in a single transaction
func (r *TranscriptionRepository) CompleteWithSpeakers(ctx context.Context, transcription *entities.Transcription, speakers []*entities.Speaker) error {
	if transcription == nil {
		return errors.New("transcription cannot be nil")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Transcription{}).
			Where("id = ?", transcription.ID).
			Save(transcription).Error; err != nil {
			return err
		}
		for _, speaker := range speakers {
			if err := tx.Create(speaker).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// MarkFailed records a failed transcription attempt
func (r *TranscriptionRepository) MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Transcription{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        entities.TranscriptionStatusFailed,
			"error_message": errorMessage,
			"updated_at":    time.Now(),
		}).Error
}

// Delete deletes a transcription and its speakers
func (r *TranscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transcription_id = ?", id).Delete(&entities.Speaker{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Transcription{}, "id = ?", id).Error
	})
}

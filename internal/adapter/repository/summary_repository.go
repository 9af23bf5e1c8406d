package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
)

// SummaryRepository handles summary data operations
type SummaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Create creates a new summary
func (r *SummaryRepository) Create(ctx context.Context, summary *entities.Summary) error {
	if summary == nil {
		return errors.New("summary cannot be nil")
	}
	return r.db.WithContext(ctx).Create(summary).Error
}

// FindBySessionID lists a session's summaries, newest first
func (r *SummaryRepository) FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*entities.Summary, error) {
	var summaries []*entities.Summary
	if err := r.db.WithContext(ctx).
		Where("game_session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

// Delete deletes a summary
func (r *SummaryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.Summary{}, "id = ?", id).Error
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
)

// CampaignRepository handles campaign data operations
type CampaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// Create creates a new campaign
func (r *CampaignRepository) Create(ctx context.Context, campaign *entities.Campaign) error {
	if campaign == nil {
		return errors.New("campaign cannot be nil")
	}
	return r.db.WithContext(ctx).Create(campaign).Error
}

// FindByID finds a campaign by ID
func (r *CampaignRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Campaign, error) {
	var campaign entities.Campaign
	if err := r.db.WithContext(ctx).
		Preload("Players.Characters").
		Where("id = ?", id).
		First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

// FindAll lists all campaigns
func (r *CampaignRepository) FindAll(ctx context.Context) ([]*entities.Campaign, error) {
	var campaigns []*entities.Campaign
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&campaigns).Error; err != nil {
		return nil, err
	}
	return campaigns, nil
}

// Update updates a campaign
func (r *CampaignRepository) Update(ctx context.Context, campaign *entities.Campaign) error {
	if campaign == nil {
		return errors.New("campaign cannot be nil")
	}
	return r.db.WithContext(ctx).
		Model(&entities.Campaign{}).
		Where("id = ?", campaign.ID).
		Save(campaign).Error
}

// Delete deletes a campaign
func (r *CampaignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.Campaign{}, "id = ?", id).Error
}

package entities

import (
	"time"

	"github.com/google/uuid"
)

// Campaign is a long-running game grouping sessions, players and characters
type Campaign struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	GameSystem  string    `json:"game_system,omitempty" gorm:"type:varchar(100)"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Sessions []GameSession `json:"sessions,omitempty" gorm:"foreignKey:CampaignID"`
	Players  []Player      `json:"players,omitempty" gorm:"many2many:campaign_players"`
}

// TableName specifies the table name for GORM
func (Campaign) TableName() string {
	return "campaigns"
}

// NewCampaign creates a new campaign
func NewCampaign(name, gameSystem string) *Campaign {
	return &Campaign{
		ID:         uuid.New(),
		Name:       name,
		GameSystem: gameSystem,
		IsActive:   true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

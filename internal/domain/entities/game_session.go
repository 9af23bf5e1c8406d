package entities

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus is the lifecycle state of a game session
type SessionStatus string

const (
	SessionStatusPlanned    SessionStatus = "planned"
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusCancelled  SessionStatus = "cancelled"
)

// GameSession is a single play event that may contain multiple audio recordings
type GameSession struct {
	ID              uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CampaignID      uuid.UUID     `json:"campaign_id" gorm:"type:uuid;not null;index"`
	Title           string        `json:"title" gorm:"type:varchar(255);not null"`
	Description     string        `json:"description,omitempty" gorm:"type:text"`
	SessionNumber   int           `json:"session_number,omitempty"`
	SessionDate     *time.Time    `json:"session_date,omitempty"`
	DurationMinutes int           `json:"duration_minutes,omitempty"`
	Status          SessionStatus `json:"status" gorm:"type:varchar(20);default:'planned'"`
	Notes           []string      `json:"notes,omitempty" gorm:"type:jsonb;serializer:json"`
	CreatedAt       time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	Campaign   *Campaign   `json:"campaign,omitempty" gorm:"foreignKey:CampaignID"`
	Recordings []Recording `json:"recordings,omitempty" gorm:"foreignKey:GameSessionID"`
}

// TableName specifies the table name for GORM
func (GameSession) TableName() string {
	return "game_sessions"
}

// NewGameSession creates a new session for a campaign
func NewGameSession(campaignID uuid.UUID, title string) *GameSession {
	return &GameSession{
		ID:         uuid.New(),
		CampaignID: campaignID,
		Title:      title,
		Status:     SessionStatusPlanned,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

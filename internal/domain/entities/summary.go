package entities

import (
	"time"

	"github.com/google/uuid"
)

// Summary is LLM-generated prose for a game session
type Summary struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	GameSessionID uuid.UUID `json:"game_session_id" gorm:"type:uuid;not null;index"`
	Content       string    `json:"content" gorm:"type:text;not null"`
	ModelUsed     string    `json:"model_used,omitempty" gorm:"type:varchar(100)"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Summary) TableName() string {
	return "summaries"
}

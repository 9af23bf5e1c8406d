package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Character is a fictional persona played by one player
type Character struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PlayerID  uuid.UUID `json:"player_id" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Race      string    `json:"race,omitempty" gorm:"type:varchar(100)"`
	Class     string    `json:"class,omitempty" gorm:"type:varchar(100)"`
	Level     int       `json:"level,omitempty" gorm:"default:1"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Player *Player `json:"player,omitempty" gorm:"foreignKey:PlayerID"`
}

// TableName specifies the table name for GORM
func (Character) TableName() string {
	return "characters"
}

// BelongsTo reports whether the character is owned by the given player
func (c *Character) BelongsTo(playerID uuid.UUID) bool {
	return c.PlayerID == playerID
}

// DisplayName returns the character name with race/class when available
func (c *Character) DisplayName() string {
	parts := []string{c.Name}
	var detail []string
	if c.Race != "" {
		detail = append(detail, c.Race)
	}
	if c.Class != "" {
		detail = append(detail, c.Class)
	}
	if len(detail) > 0 {
		parts = append(parts, "("+strings.Join(detail, " ")+")")
	}
	return strings.Join(parts, " ")
}

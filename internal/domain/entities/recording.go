package entities

import (
	"time"

	"github.com/google/uuid"
)

// Recording is one uploaded audio file belonging to a game session.
// RecordingOrder is the upload order within the session and drives the
// stable iteration order used when grouping speakers session-wide.
type Recording struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	GameSessionID    uuid.UUID `json:"game_session_id" gorm:"type:uuid;not null;index"`
	Name             string    `json:"name" gorm:"type:varchar(255);not null"`
	OriginalFilename string    `json:"original_filename" gorm:"type:varchar(255)"`
	StorageKey       string    `json:"storage_key" gorm:"type:varchar(512);not null"`
	FileSize         int64     `json:"file_size,omitempty"`
	MimeType         string    `json:"mime_type,omitempty" gorm:"type:varchar(100)"`
	RecordingOrder   int       `json:"recording_order" gorm:"not null;default:0"`
	DurationSeconds  float64   `json:"duration_seconds,omitempty"`
	Notes            string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	GameSession   *GameSession   `json:"game_session,omitempty" gorm:"foreignKey:GameSessionID"`
	Transcription *Transcription `json:"transcription,omitempty" gorm:"foreignKey:RecordingID"`
}

// TableName specifies the table name for GORM
func (Recording) TableName() string {
	return "recordings"
}

// NewRecording creates a new recording for a session
func NewRecording(sessionID uuid.UUID, name, storageKey string, order int) *Recording {
	return &Recording{
		ID:             uuid.New(),
		GameSessionID:  sessionID,
		Name:           name,
		StorageKey:     storageKey,
		RecordingOrder: order,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

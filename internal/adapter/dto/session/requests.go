package session

import "time"

// CreateSessionRequest is the payload for creating a game session
type CreateSessionRequest struct {
	CampaignID  string     `json:"campaign_id" validate:"required,uuid"`
	Title       string     `json:"title" validate:"required,min=1,max=255"`
	Description string     `json:"description,omitempty"`
	SessionDate *time.Time `json:"session_date,omitempty"`
}

// UpdateSessionRequest is the payload for partially updating a session
type UpdateSessionRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description,omitempty"`
	SessionDate *time.Time `json:"session_date,omitempty"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=planned in_progress completed cancelled"`
}

// AssignSpeakerRequest is the payload for assigning an identity to a whole
// speaker group of a session
type AssignSpeakerRequest struct {
	GroupKey    string  `json:"group_key" validate:"required"`
	SpeakerType string  `json:"speaker_type" validate:"required,speaker_type"`
	PlayerID    *string `json:"player_id,omitempty" validate:"omitempty,uuid"`
	CharacterID *string `json:"character_id,omitempty" validate:"omitempty,uuid"`
}

// UpdateSpeakerRequest is the payload for editing a single speaker record
type UpdateSpeakerRequest struct {
	SpeakerType string  `json:"speaker_type" validate:"required,speaker_type"`
	PlayerID    *string `json:"player_id,omitempty" validate:"omitempty,uuid"`
	CharacterID *string `json:"character_id,omitempty" validate:"omitempty,uuid"`
}

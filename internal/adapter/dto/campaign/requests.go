package campaign

// CreateCampaignRequest is the payload for creating a campaign
type CreateCampaignRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	GameSystem  string `json:"game_system,omitempty" validate:"max=100"`
	Description string `json:"description,omitempty"`
}

// UpdateCampaignRequest is the payload for partially updating a campaign
type UpdateCampaignRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	GameSystem  *string `json:"game_system,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
}

// CreatePlayerRequest is the payload for creating a player
type CreatePlayerRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Notes string `json:"notes,omitempty"`
}

// CreateCharacterRequest is the payload for creating a character
type CreateCharacterRequest struct {
	PlayerID string `json:"player_id" validate:"required,uuid"`
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Race     string `json:"race,omitempty" validate:"max=100"`
	Class    string `json:"class,omitempty" validate:"max=100"`
	Level    int    `json:"level,omitempty" validate:"omitempty,min=1,max=30"`
}

package campaign

import "time"

// CampaignResponse is the API shape of a campaign
type CampaignResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	GameSystem  string    `json:"game_system,omitempty"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CampaignListResponse wraps a list of campaigns
type CampaignListResponse struct {
	Campaigns []*CampaignResponse `json:"campaigns"`
	Total     int                 `json:"total"`
}

// PlayerResponse is the API shape of a player
type PlayerResponse struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Email      string               `json:"email,omitempty"`
	Notes      string               `json:"notes,omitempty"`
	Characters []*CharacterResponse `json:"characters,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

// PlayerListResponse wraps a list of players
type PlayerListResponse struct {
	Players []*PlayerResponse `json:"players"`
	Total   int               `json:"total"`
}

// CharacterResponse is the API shape of a character
type CharacterResponse struct {
	ID       string `json:"id"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Race     string `json:"race,omitempty"`
	Class    string `json:"class,omitempty"`
	Level    int    `json:"level,omitempty"`
	IsActive bool   `json:"is_active"`
}

// CharacterListResponse wraps a list of characters
type CharacterListResponse struct {
	Characters []*CharacterResponse `json:"characters"`
	Total      int                  `json:"total"`
}

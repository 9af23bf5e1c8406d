package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
)

// CampaignRepository defines the interface for campaign data access
type CampaignRepository interface {
	// Create creates a new campaign
	Create(ctx context.Context, campaign *entities.Campaign) error

	// FindByID finds a campaign by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Campaign, error)

	// FindAll lists all campaigns
	FindAll(ctx context.Context) ([]*entities.Campaign, error)

	// Update updates a campaign
	Update(ctx context.Context, campaign *entities.Campaign) error

	// Delete deletes a campaign
	Delete(ctx context.Context, id uuid.UUID) error
}

// PlayerRepository defines the interface for player data access
type PlayerRepository interface {
	// Create creates a new player
	Create(ctx context.Context, player *entities.Player) error

	// FindByID finds a player by ID, with characters preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Player, error)

	// FindAll lists all players
	FindAll(ctx context.Context) ([]*entities.Player, error)

	// Update updates a player
	Update(ctx context.Context, player *entities.Player) error

	// Delete deletes a player
	Delete(ctx context.Context, id uuid.UUID) error
}

// CharacterRepository defines the interface for character data access
type CharacterRepository interface {
	// Create creates a new character
	Create(ctx context.Context, character *entities.Character) error

	// FindByID finds a character by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Character, error)

	// FindByPlayerID lists a player's characters
	FindByPlayerID(ctx context.Context, playerID uuid.UUID) ([]*entities.Character, error)

	// Update updates a character
	Update(ctx context.Context, character *entities.Character) error

	// Delete deletes a character
	Delete(ctx context.Context, id uuid.UUID) error
}

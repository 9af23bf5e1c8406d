package campaign

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
	"github.com/campaign-scribe/campaign-scribe/internal/domain/repositories"
	usecaseErrors "github.com/campaign-scribe/campaign-scribe/internal/usecase/errors"
)

// Service handles campaign, player and character business logic
type Service struct {
	campaignRepo  repositories.CampaignRepository
	playerRepo    repositories.PlayerRepository
	characterRepo repositories.CharacterRepository
}

// NewService creates a new campaign service
func NewService(
	campaignRepo repositories.CampaignRepository,
	playerRepo repositories.PlayerRepository,
	characterRepo repositories.CharacterRepository,
) *Service {
	return &Service{
		campaignRepo:  campaignRepo,
		playerRepo:    playerRepo,
		characterRepo: characterRepo,
	}
}

// CreateCampaignInput represents input for creating a campaign
type CreateCampaignInput struct {
	Name        string
	GameSystem  string
	Description string
}

// CreateCampaign creates a new campaign
func (s *Service) CreateCampaign(ctx context.Context, input CreateCampaignInput) (*entities.Campaign, error) {
	campaign := entities.NewCampaign(input.Name, input.GameSystem)
	campaign.Description = input.Description

	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	return campaign, nil
}

// GetCampaign retrieves a campaign by ID
func (s *Service) GetCampaign(ctx context.Context, id uuid.UUID) (*entities.Campaign, error) {
	campaign, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	if campaign == nil {
		return nil, usecaseErrors.ErrCampaignNotFound
	}
	return campaign, nil
}

// ListCampaigns lists all campaigns
func (s *Service) ListCampaigns(ctx context.Context) ([]*entities.Campaign, error) {
	campaigns, err := s.campaignRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

// UpdateCampaignInput represents input for updating a campaign
type UpdateCampaignInput struct {
	Name        *string
	GameSystem  *string
	Description *string
}

// UpdateCampaign applies partial updates to a campaign
func (s *Service) UpdateCampaign(ctx context.Context, id uuid.UUID, input UpdateCampaignInput) (*entities.Campaign, error) {
	campaign, err := s.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		campaign.Name = *input.Name
	}
	if input.GameSystem != nil {
		campaign.GameSystem = *input.GameSystem
	}
	if input.Description != nil {
		campaign.Description = *input.Description
	}

	if err := s.campaignRepo.Update(ctx, campaign); err != nil {
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}
	return campaign, nil
}

// DeleteCampaign deletes a campaign
func (s *Service) DeleteCampaign(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCampaign(ctx, id); err != nil {
		return err
	}
	return s.campaignRepo.Delete(ctx, id)
}

// CreatePlayerInput represents input for creating a player
type CreatePlayerInput struct {
	Name  string
	Email string
	Notes string
}

// CreatePlayer creates a new player
func (s *Service) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*entities.Player, error) {
	player := entities.NewPlayer(input.Name)
	player.Email = input.Email
	player.Notes = input.Notes

	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

// GetPlayer retrieves a player by ID
func (s *Service) GetPlayer(ctx context.Context, id uuid.UUID) (*entities.Player, error) {
	player, err := s.playerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if player == nil {
		return nil, usecaseErrors.ErrPlayerNotFound
	}
	return player, nil
}

// ListPlayers lists all players
func (s *Service) ListPlayers(ctx context.Context) ([]*entities.Player, error) {
	players, err := s.playerRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// DeletePlayer deletes a player
func (s *Service) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetPlayer(ctx, id); err != nil {
		return err
	}
	return s.playerRepo.Delete(ctx, id)
}

// CreateCharacterInput represents input for creating a character
type CreateCharacterInput struct {
	PlayerID uuid.UUID
	Name     string
	Race     string
	Class    string
	Level    int
}

// CreateCharacter creates a new character owned by a player
func (s *Service) CreateCharacter(ctx context.Context, input CreateCharacterInput) (*entities.Character, error) {
	if _, err := s.GetPlayer(ctx, input.PlayerID); err != nil {
		return nil, err
	}

	level := input.Level
	if level <= 0 {
		level = 1
	}
	character := &entities.Character{
		ID:       uuid.New(),
		PlayerID: input.PlayerID,
		Name:     input.Name,
		Race:     input.Race,
		Class:    input.Class,
		Level:    level,
		IsActive: true,
	}

	if err := s.characterRepo.Create(ctx, character); err != nil {
		return nil, fmt.Errorf("failed to create character: %w", err)
	}

	return character, nil
}

// GetCharacter retrieves a character by ID
func (s *Service) GetCharacter(ctx context.Context, id uuid.UUID) (*entities.Character, error) {
	character, err := s.characterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	if character == nil {
		return nil, usecaseErrors.ErrCharacterNotFound
	}
	return character, nil
}

// ListCharactersByPlayer lists a player's characters
func (s *Service) ListCharactersByPlayer(ctx context.Context, playerID uuid.UUID) ([]*entities.Character, error) {
	characters, err := s.characterRepo.FindByPlayerID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return characters, nil
}

// DeleteCharacter deletes a character
func (s *Service) DeleteCharacter(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCharacter(ctx, id); err != nil {
		return err
	}
	return s.characterRepo.Delete(ctx, id)
}

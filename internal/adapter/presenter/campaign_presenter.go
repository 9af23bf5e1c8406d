package presenter

import (
	"github.com/campaign-scribe/campaign-scribe/internal/adapter/dto/campaign"
	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
)

// ToCampaignResponse converts a Campaign entity to CampaignResponse DTO
func ToCampaignResponse(c *entities.Campaign) *campaign.CampaignResponse {
	if c == nil {
		return nil
	}
	return &campaign.CampaignResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		GameSystem:  c.GameSystem,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToCampaignListResponse converts a slice of Campaign entities
func ToCampaignListResponse(campaigns []*entities.Campaign) *campaign.CampaignListResponse {
	responses := make([]*campaign.CampaignResponse, len(campaigns))
	for i, c := range campaigns {
		responses[i] = ToCampaignResponse(c)
	}
	return &campaign.CampaignListResponse{
		Campaigns: responses,
		Total:     len(responses),
	}
}

// ToPlayerResponse converts a Player entity to PlayerResponse DTO
func ToPlayerResponse(p *entities.Player) *campaign.PlayerResponse {
	if p == nil {
		return nil
	}
	response := &campaign.PlayerResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Email:     p.Email,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
	for i := range p.Characters {
		response.Characters = append(response.Characters, ToCharacterResponse(&p.Characters[i]))
	}
	return response
}

// ToPlayerListResponse converts a slice of Player entities
func ToPlayerListResponse(players []*entities.Player) *campaign.PlayerListResponse {
	responses := make([]*campaign.PlayerResponse, len(players))
	for i, p := range players {
		responses[i] = ToPlayerResponse(p)
	}
	return &campaign.PlayerListResponse{
		Players: responses,
		Total:   len(responses),
	}
}

// ToCharacterResponse converts a Character entity to CharacterResponse DTO
func ToCharacterResponse(c *entities.Character) *campaign.CharacterResponse {
	if c == nil {
		return nil
	}
	return &campaign.CharacterResponse{
		ID:       c.ID.String(),
		PlayerID: c.PlayerID.String(),
		Name:     c.Name,
		Race:     c.Race,
		Class:    c.Class,
		Level:    c.Level,
		IsActive: c.IsActive,
	}
}

// ToCharacterListResponse converts a slice of Character entities
func ToCharacterListResponse(characters []*entities.Character) *campaign.CharacterListResponse {
	responses := make([]*campaign.CharacterResponse, len(characters))
	for i, c := range characters {
		responses[i] = ToCharacterResponse(c)
	}
	return &campaign.CharacterListResponse{
		Characters: responses,
		Total:      len(responses),
	}
}

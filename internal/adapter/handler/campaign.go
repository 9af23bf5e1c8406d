package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/campaign-scribe/campaign-scribe/errors"
	campaignDto "github.com/campaign-scribe/campaign-scribe/internal/adapter/dto/campaign"
	"github.com/campaign-scribe/campaign-scribe/internal/adapter/presenter"
	"github.com/campaign-scribe/campaign-scribe/internal/usecase/campaign"
)

// Campaign handles campaign, player and character endpoints
type Campaign struct {
	service *campaign.Service
	logger  *zap.Logger
}

// NewCampaign creates a new campaign handler
func NewCampaign(service *campaign.Service, logger *zap.Logger) *Campaign {
	return &Campaign{service: service, logger: logger}
}

// Create handles POST /campaigns
func (h *Campaign) Create(c echo.Context) error {
	var req campaignDto.CreateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	created, err := h.service.CreateCampaign(c.Request().Context(), campaign.CreateCampaignInput{
		Name:        req.Name,
		GameSystem:  req.GameSystem,
		Description: req.Description,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusCreated, presenter.ToCampaignResponse(created))
}

// Get handles GET /campaigns/:id
func (h *Campaign) Get(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	found, err := h.service.GetCampaign(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToCampaignResponse(found))
}

// List handles GET /campaigns
func (h *Campaign) List(c echo.Context) error {
	campaigns, err := h.service.ListCampaigns(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToCampaignListResponse(campaigns))
}

// Update handles PATCH /campaigns/:id
func (h *Campaign) Update(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req campaignDto.UpdateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	updated, err := h.service.UpdateCampaign(c.Request().Context(), id, campaign.UpdateCampaignInput{
		Name:        req.Name,
		GameSystem:  req.GameSystem,
		Description: req.Description,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToCampaignResponse(updated))
}

// Delete handles DELETE /campaigns/:id
func (h *Campaign) Delete(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.service.DeleteCampaign(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreatePlayer handles POST /players
func (h *Campaign) CreatePlayer(c echo.Context) error {
	var req campaignDto.CreatePlayerRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	created, err := h.service.CreatePlayer(c.Request().Context(), campaign.CreatePlayerInput{
		Name:  req.Name,
		Email: req.Email,
		Notes: req.Notes,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusCreated, presenter.ToPlayerResponse(created))
}

// GetPlayer handles GET /players/:id
func (h *Campaign) GetPlayer(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	player, err := h.service.GetPlayer(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToPlayerResponse(player))
}

// ListPlayers handles GET /players
func (h *Campaign) ListPlayers(c echo.Context) error {
	players, err := h.service.ListPlayers(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToPlayerListResponse(players))
}

// CreateCharacter handles POST /characters
func (h *Campaign) CreateCharacter(c echo.Context) error {
	var req campaignDto.CreateCharacterRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	playerID, err := parseOptionalUUID(&req.PlayerID, "player_id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	created, err := h.service.CreateCharacter(c.Request().Context(), campaign.CreateCharacterInput{
		PlayerID: *playerID,
		Name:     req.Name,
		Race:     req.Race,
		Class:    req.Class,
		Level:    req.Level,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusCreated, presenter.ToCharacterResponse(created))
}

// ListCharacters handles GET /players/:id/characters
func (h *Campaign) ListCharacters(c echo.Context) error {
	playerID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	characters, err := h.service.ListCharactersByPlayer(c.Request().Context(), playerID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToCharacterListResponse(characters))
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/campaign-scribe/campaign-scribe/errors"
	sessionDto "github.com/campaign-scribe/campaign-scribe/internal/adapter/dto/session"
	"github.com/campaign-scribe/campaign-scribe/internal/adapter/presenter"
	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
	"github.com/campaign-scribe/campaign-scribe/internal/usecase/session"
	"github.com/campaign-scribe/campaign-scribe/internal/usecase/summary"
)

// Session handles game session and session speaker endpoints
type Session struct {
	sessions  *session.Service
	summaries *summary.Service
	logger    *zap.Logger
}

// NewSession creates a new session handler
func NewSession(sessions *session.Service, summaries *summary.Service, logger *zap.Logger) *Session {
	return &Session{sessions: sessions, summaries: summaries, logger: logger}
}

// Create handles POST /sessions
func (h *Session) Create(c echo.Context) error {
	var req sessionDto.CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	campaignID, err := parseOptionalUUID(&req.CampaignID, "campaign_id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	created, err := h.sessions.CreateSession(c.Request().Context(), session.CreateSessionInput{
		CampaignID:  *campaignID,
		Title:       req.Title,
		Description: req.Description,
		SessionDate: req.SessionDate,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusCreated, presenter.ToSessionResponse(created))
}

// Get handles GET /sessions/:id
func (h *Session) Get(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	found, err := h.sessions.GetSession(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToSessionResponse(found))
}

// ListByCampaign handles GET /campaigns/:id/sessions
func (h *Session) ListByCampaign(c echo.Context) error {
	campaignID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	sessions, err := h.sessions.ListSessions(c.Request().Context(), campaignID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToSessionListResponse(sessions))
}

// Update handles PATCH /sessions/:id
func (h *Session) Update(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req sessionDto.UpdateSessionRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	input := session.UpdateSessionInput{
		Title:       req.Title,
		Description: req.Description,
		SessionDate: req.SessionDate,
	}
	if req.Status != nil {
		status := entities.SessionStatus(*req.Status)
		input.Status = &status
	}

	updated, err := h.sessions.UpdateSession(c.Request().Context(), id, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToSessionResponse(updated))
}

// Delete handles DELETE /sessions/:id
func (h *Session) Delete(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.sessions.DeleteSession(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Speakers handles GET /sessions/:id/speakers. It returns the session-wide
// speaker groups, with identified speakers merged across recordings.
func (h *Session) Speakers(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	groups, err := h.sessions.GetSessionSpeakers(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	stats, err := h.sessions.GetSessionStats(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToSessionSpeakerListResponse(groups, stats))
}

// AssignSpeaker handles PUT /sessions/:id/speakers. The edit targets a whole
// speaker group and is propagated to every matching record.
func (h *Session) AssignSpeaker(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req sessionDto.AssignSpeakerRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	playerID, err := parseOptionalUUID(req.PlayerID, "player_id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	characterID, err := parseOptionalUUID(req.CharacterID, "character_id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	updated, err := h.sessions.AssignIdentity(c.Request().Context(), id, session.AssignIdentityInput{
		GroupKey:    req.GroupKey,
		SpeakerType: entities.SpeakerType(req.SpeakerType),
		PlayerID:    playerID,
		CharacterID: characterID,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, &sessionDto.AssignSpeakerResponse{
		GroupKey:       req.GroupKey,
		RecordsUpdated: updated,
	})
}

// UpdateSpeaker handles PUT /sessions/:id/speakers/:speakerId for editing a
// single underlying record without touching the rest of its group
func (h *Session) UpdateSpeaker(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	speakerID, err := parseUUIDParam(c, "speakerId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req sessionDto.UpdateSpeakerRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	playerID, err := parseOptionalUUID(req.PlayerID, "player_id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	characterID, err := parseOptionalUUID(req.CharacterID, "character_id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	speaker, err := h.sessions.UpdateSpeaker(c.Request().Context(), id, speakerID, session.UpdateSpeakerInput{
		SpeakerType: entities.SpeakerType(req.SpeakerType),
		PlayerID:    playerID,
		CharacterID: characterID,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToSpeakerResponse(speaker))
}

// GenerateSummary handles POST /sessions/:id/summaries
func (h *Session) GenerateSummary(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	generated, err := h.summaries.Generate(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusCreated, presenter.ToSummaryResponse(generated))
}

// ListSummaries handles GET /sessions/:id/summaries
func (h *Session) ListSummaries(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	summaries, err := h.summaries.List(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToSummaryListResponse(summaries))
}

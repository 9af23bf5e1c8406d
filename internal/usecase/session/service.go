package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
	"github.com/campaign-scribe/campaign-scribe/internal/domain/repositories"
	"github.com/campaign-scribe/campaign-scribe/internal/infrastructure/cache"
	"github.com/campaign-scribe/campaign-scribe/internal/usecase/diarization"
	usecaseErrors "github.com/campaign-scribe/campaign-scribe/internal/usecase/errors"
)

// Service handles game session business logic, including the session-wide
// speaker view and identity assignment
type Service struct {
	campaignRepo  repositories.CampaignRepository
	sessionRepo   repositories.SessionRepository
	recordingRepo repositories.RecordingRepository
	speakerRepo   repositories.SpeakerRepository
	playerRepo    repositories.PlayerRepository
	characterRepo repositories.CharacterRepository
	grouper       *diarization.Grouper
	propagator    *diarization.Propagator
	store         cache.Store
	cacheTTL      time.Duration
	logger        *zap.Logger
}

// NewService creates a new session service
func NewService(
	campaignRepo repositories.CampaignRepository,
	sessionRepo repositories.SessionRepository,
	recordingRepo repositories.RecordingRepository,
	speakerRepo repositories.SpeakerRepository,
	playerRepo repositories.PlayerRepository,
	characterRepo repositories.CharacterRepository,
	store cache.Store,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Service{
		campaignRepo:  campaignRepo,
		sessionRepo:   sessionRepo,
		recordingRepo: recordingRepo,
		speakerRepo:   speakerRepo,
		playerRepo:    playerRepo,
		characterRepo: characterRepo,
		grouper:       diarization.NewGrouper(nil),
		propagator:    diarization.NewPropagator(nil),
		store:         store,
		cacheTTL:      cacheTTL,
		logger:        logger,
	}
}

// CreateSessionInput represents input for creating a session
type CreateSessionInput struct {
	CampaignID  uuid.UUID
	Title       string
	Description string
	SessionDate *time.Time
}

// CreateSession creates a session at the campaign's next session number
func (s *Service) CreateSession(ctx context.Context, input CreateSessionInput) (*entities.GameSession, error) {
	campaign, err := s.campaignRepo.FindByID(ctx, input.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	if campaign == nil {
		return nil, usecaseErrors.ErrCampaignNotFound
	}

	number, err := s.sessionRepo.NextSessionNumber(ctx, input.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to get next session number: %w", err)
	}

	session := entities.NewGameSession(input.CampaignID, input.Title)
	session.Description = input.Description
	session.SessionNumber = number
	session.SessionDate = input.SessionDate

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// GetSession retrieves a session by ID
func (s *Service) GetSession(ctx context.Context, id uuid.UUID) (*entities.GameSession, error) {
	session, err := s.sessionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, usecaseErrors.ErrSessionNotFound
	}
	return session, nil
}

// ListSessions lists a campaign's sessions
func (s *Service) ListSessions(ctx context.Context, campaignID uuid.UUID) ([]*entities.GameSession, error) {
	sessions, err := s.sessionRepo.FindByCampaignID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// UpdateSessionInput represents input for updating a session
type UpdateSessionInput struct {
	Title       *string
	Description *string
	SessionDate *time.Time
	Status      *entities.SessionStatus
}

// UpdateSession applies partial updates to a session
func (s *Service) UpdateSession(ctx context.Context, id uuid.UUID, input UpdateSessionInput) (*entities.GameSession, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		session.Title = *input.Title
	}
	if input.Description != nil {
		session.Description = *input.Description
	}
	if input.SessionDate != nil {
		session.SessionDate = input.SessionDate
	}
	if input.Status != nil {
		session.Status = *input.Status
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	return session, nil
}

// DeleteSession deletes a session
func (s *Service) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetSession(ctx, id); err != nil {
		return err
	}
	s.invalidateSpeakerCache(ctx, id)
	return s.sessionRepo.Delete(ctx, id)
}

// speakerCacheKey builds the cache key of a session's computed speaker view
func speakerCacheKey(sessionID uuid.UUID) string {
	return "session_speakers:" + sessionID.String()
}

// GetSessionSpeakers returns the session-wide speaker aggregates, grouping
// identified speakers across recordings. The computed view is cached; any
// identity edit invalidates it.
func (s *Service) GetSessionSpeakers(ctx context.Context, sessionID uuid.UUID) ([]diarization.SessionSpeaker, error) {
	key := speakerCacheKey(sessionID)
	if cached, ok, err := s.store.Get(ctx, key); err == nil && ok {
		var groups []diarization.SessionSpeaker
		if err := json.Unmarshal([]byte(cached), &groups); err == nil {
			return groups, nil
		}
		// Stale or corrupt entry, fall through to recompute
		s.invalidateSpeakerCache(ctx, sessionID)
	}

	records, err := s.speakerRecords(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	groups := s.grouper.Group(records)

	if encoded, err := json.Marshal(groups); err == nil {
		if err := s.store.Set(ctx, key, string(encoded), s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache session speakers",
				zap.String("session_id", sessionID.String()),
				zap.Error(err))
		}
	}

	return groups, nil
}

// SessionStats summarizes a session's recording and identification progress
type SessionStats struct {
	TotalRecordings       int
	TranscribedRecordings int
	UniqueSpeakers        int
	IdentifiedSpeakers    int
}

// GetSessionStats computes recording and speaker identification counts for a
// session. UniqueSpeakers counts session-wide groups, not per-recording rows.
func (s *Service) GetSessionStats(ctx context.Context, sessionID uuid.UUID) (*SessionStats, error) {
	groups, err := s.GetSessionSpeakers(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	recordings, err := s.recordingRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recordings: %w", err)
	}

	stats := &SessionStats{
		TotalRecordings: len(recordings),
		UniqueSpeakers:  len(groups),
	}
	for _, rec := range recordings {
		if rec.Transcription != nil && rec.Transcription.IsCompleted() {
			stats.TranscribedRecordings++
		}
	}
	for _, g := range groups {
		if g.PlayerID != nil || g.CharacterID != nil {
			stats.IdentifiedSpeakers++
		}
	}
	return stats, nil
}

// GetSessionSpeakerRecords returns the raw per-recording speaker rows of a
// session, in recording upload order then speaker index
func (s *Service) GetSessionSpeakerRecords(ctx context.Context, sessionID uuid.UUID) ([]entities.SessionSpeakerRecord, error) {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	rows, err := s.speakerRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session speakers: %w", err)
	}
	return rows, nil
}

// speakerRecords loads the session's speaker rows as grouping snapshots
func (s *Service) speakerRecords(ctx context.Context, sessionID uuid.UUID) ([]diarization.Record, error) {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	rows, err := s.speakerRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session speakers: %w", err)
	}
	records := make([]diarization.Record, len(rows))
	for i, row := range rows {
		records[i] = diarization.RecordFromRow(row)
	}
	return records, nil
}

// AssignIdentityInput represents an identity edit targeting a speaker group
type AssignIdentityInput struct {
	GroupKey    string
	SpeakerType entities.SpeakerType
	PlayerID    *uuid.UUID
	CharacterID *uuid.UUID
}

// AssignIdentity applies an identity edit to every speaker record in the
// targeted group, across all of the session's recordings. The write set is
// computed against the group membership before the edit and applied
// atomically. A key matching no records is a successful no-op.
func (s *Service) AssignIdentity(ctx context.Context, sessionID uuid.UUID, input AssignIdentityInput) (int, error) {
	if input.GroupKey == "" {
		return 0, usecaseErrors.ErrSpeakerGroupEmpty
	}
	if input.CharacterID != nil && input.PlayerID == nil {
		return 0, usecaseErrors.ErrIdentityIncomplete
	}

	records, err := s.speakerRecords(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	if err := s.checkPlayer(ctx, input.PlayerID); err != nil {
		return 0, err
	}
	character, err := s.resolveCharacter(ctx, input.CharacterID)
	if err != nil {
		return 0, err
	}

	assignment := diarization.Assignment{
		GroupKey:    diarization.GroupingKey(input.GroupKey),
		SpeakerType: input.SpeakerType,
		PlayerID:    input.PlayerID,
		CharacterID: input.CharacterID,
	}

	updates, err := s.propagator.Propagate(records, assignment, character)
	if err != nil {
		return 0, err
	}
	if len(updates) == 0 {
		return 0, nil
	}

	writes := make([]repositories.SpeakerIdentityUpdate, len(updates))
	for i, u := range updates {
		writes[i] = repositories.SpeakerIdentityUpdate{
			SpeakerID:   u.SpeakerID,
			SpeakerType: u.SpeakerType,
			PlayerID:    u.PlayerID,
			CharacterID: u.CharacterID,
		}
	}

	if err := s.speakerRepo.UpdateIdentities(ctx, writes); err != nil {
		return 0, fmt.Errorf("failed to apply identity updates: %w", err)
	}

	s.invalidateSpeakerCache(ctx, sessionID)

	s.logger.Info("speaker identity assigned",
		zap.String("session_id", sessionID.String()),
		zap.String("group_key", input.GroupKey),
		zap.Int("records_updated", len(writes)))

	return len(writes), nil
}

// UpdateSpeakerInput represents an identity edit for a single speaker record
type UpdateSpeakerInput struct {
	SpeakerType entities.SpeakerType
	PlayerID    *uuid.UUID
	CharacterID *uuid.UUID
}

// UpdateSpeaker edits one speaker record without touching the rest of its
// group
func (s *Service) UpdateSpeaker(ctx context.Context, sessionID, speakerID uuid.UUID, input UpdateSpeakerInput) (*entities.Speaker, error) {
	if !entities.ValidSpeakerType(input.SpeakerType) {
		return nil, usecaseErrors.ErrInvalidSpeakerType
	}
	if input.CharacterID != nil && input.PlayerID == nil {
		return nil, usecaseErrors.ErrIdentityIncomplete
	}

	speaker, err := s.speakerRepo.FindByID(ctx, speakerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get speaker: %w", err)
	}
	if speaker == nil {
		return nil, usecaseErrors.ErrSpeakerNotFound
	}

	if err := s.checkPlayer(ctx, input.PlayerID); err != nil {
		return nil, err
	}
	character, err := s.resolveCharacter(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}
	if character != nil && !character.BelongsTo(*input.PlayerID) {
		return nil, usecaseErrors.ErrCharacterOwnership
	}

	speaker.SpeakerType = input.SpeakerType
	speaker.PlayerID = input.PlayerID
	speaker.CharacterID = input.CharacterID

	if err := s.speakerRepo.UpdateIdentity(ctx, speaker); err != nil {
		return nil, fmt.Errorf("failed to update speaker: %w", err)
	}

	s.invalidateSpeakerCache(ctx, sessionID)

	return speaker, nil
}

// checkPlayer verifies the referenced player exists, when one is set
func (s *Service) checkPlayer(ctx context.Context, playerID *uuid.UUID) error {
	if playerID == nil {
		return nil
	}
	player, err := s.playerRepo.FindByID(ctx, *playerID)
	if err != nil {
		return fmt.Errorf("failed to get player: %w", err)
	}
	if player == nil {
		return usecaseErrors.ErrPlayerNotFound
	}
	return nil
}

// resolveCharacter fetches the referenced character, when one is set
func (s *Service) resolveCharacter(ctx context.Context, characterID *uuid.UUID) (*entities.Character, error) {
	if characterID == nil {
		return nil, nil
	}
	character, err := s.characterRepo.FindByID(ctx, *characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	if character == nil {
		return nil, usecaseErrors.ErrCharacterNotFound
	}
	return character, nil
}

func (s *Service) invalidateSpeakerCache(ctx context.Context, sessionID uuid.UUID) {
	if err := s.store.Delete(ctx, speakerCacheKey(sessionID)); err != nil {
		s.logger.Warn("failed to invalidate speaker cache",
			zap.String("session_id", sessionID.String()),
			zap.Error(err))
	}
}

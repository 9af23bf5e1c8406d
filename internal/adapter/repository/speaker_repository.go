package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
	"github.com/campaign-scribe/campaign-scribe/internal/domain/repositories"
)

// SpeakerRepository handles speaker record data operations
type SpeakerRepository struct {
	db *gorm.DB
}

// NewSpeakerRepository creates a new speaker repository
func NewSpeakerRepository(db *gorm.DB) *SpeakerRepository {
	return &SpeakerRepository{db: db}
}

// FindByID finds a speaker by ID
func (r *SpeakerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Speaker, error) {
	var speaker entities.Speaker
	if err := r.db.WithContext(ctx).
		Preload("Player").
		Preload("Character").
		Where("id = ?", id).
		First(&speaker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &speaker, nil
}

// FindBySessionID returns every speaker record of every recording in a
// session, joined with the recording's name and upload order
func (r *SpeakerRepository) FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]entities.SessionSpeakerRecord, error) {
	var rows []speakerRow
	if err := r.db.WithContext(ctx).
		Model(&entities.Speaker{}).
		Select("speakers.*, recordings.id AS join_recording_id, recordings.name AS join_recording_name, recordings.recording_order AS join_recording_order").
		Joins("JOIN transcriptions ON transcriptions.id = speakers.transcription_id").
		Joins("JOIN recordings ON recordings.id = transcriptions.recording_id").
		Where("recordings.game_session_id = ?", sessionID).
		Order("recordings.recording_order ASC, speakers.speaker_index ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	players, characters, err := r.loadAssignments(ctx, rows)
	if err != nil {
		return nil, err
	}

	records := make([]entities.SessionSpeakerRecord, len(rows))
	for i, row := range rows {
		speaker := row.Speaker
		if speaker.PlayerID != nil {
			speaker.Player = players[*speaker.PlayerID]
		}
		if speaker.CharacterID != nil {
			speaker.Character = characters[*speaker.CharacterID]
		}
		records[i] = entities.SessionSpeakerRecord{
			Speaker:        speaker,
			RecordingID:    row.RecordingID,
			RecordingName:  row.RecordingName,
			RecordingOrder: row.RecordingOrder,
		}
	}
	return records, nil
}

// speakerRow is the join row of a speaker with its recording context
type speakerRow struct {
	entities.Speaker
	RecordingID    uuid.UUID `gorm:"column:join_recording_id"`
	RecordingName  string    `gorm:"column:join_recording_name"`
	RecordingOrder int       `gorm:"column:join_recording_order"`
}

// loadAssignments batch-loads the players and characters referenced by the
// given speaker rows
func (r *SpeakerRepository) loadAssignments(ctx context.Context, rows []speakerRow) (map[uuid.UUID]*entities.Player, map[uuid.UUID]*entities.Character, error) {
	playerIDs := make([]uuid.UUID, 0)
	characterIDs := make([]uuid.UUID, 0)
	for _, row := range rows {
		if row.PlayerID != nil {
			playerIDs = append(playerIDs, *row.PlayerID)
		}
		if row.CharacterID != nil {
			characterIDs = append(characterIDs, *row.CharacterID)
		}
	}

	players := make(map[uuid.UUID]*entities.Player)
	if len(playerIDs) > 0 {
		var list []*entities.Player
		if err := r.db.WithContext(ctx).Where("id IN ?", playerIDs).Find(&list).Error; err != nil {
			return nil, nil, err
		}
		for _, p := range list {
			players[p.ID] = p
		}
	}

	characters := make(map[uuid.UUID]*entities.Character)
	if len(characterIDs) > 0 {
		var list []*entities.Character
		if err := r.db.WithContext(ctx).Where("id IN ?", characterIDs).Find(&list).Error; err != nil {
			return nil, nil, err
		}
		for _, c := range list {
			characters[c.ID] = c
		}
	}

	return players, characters, nil
}

// UpdateIdentity sets role/player/character on a single speaker
func (r *SpeakerRepository) UpdateIdentity(ctx context.Context, speaker *entities.Speaker) error {
	if speaker == nil {
		return errors.New("speaker cannot be nil")
	}
	return r.db.WithContext(ctx).
		Model(&entities.Speaker{}).
		Where("id = ?", speaker.ID).
		Updates(map[string]interface{}{
			"speaker_type": speaker.SpeakerType,
			"player_id":    speaker.PlayerID,
			"character_id": speaker.CharacterID,
			"updated_at":   time.Now(),
		}).Error
}

// UpdateIdentities applies a set of identity writes atomically
func (r *SpeakerRepository) UpdateIdentities(ctx context.Context, updates []repositories.SpeakerIdentityUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			if err := tx.Model(&entities.Speaker{}).
				Where("id = ?", u.SpeakerID).
				Updates(map[string]interface{}{
					"speaker_type": u.SpeakerType,
					"player_id":    u.PlayerID,
					"character_id": u.CharacterID,
					"updated_at":   time.Now(),
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

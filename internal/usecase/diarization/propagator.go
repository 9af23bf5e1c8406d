package diarization

import (
	"github.com/google/uuid"

	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
)

// Assignment is one identity/role edit targeting a whole speaker group
type Assignment struct {
	GroupKey    GroupingKey
	SpeakerType entities.SpeakerType
	PlayerID    *uuid.UUID
	CharacterID *uuid.UUID
}

// IdentityUpdate is the resulting write for one underlying speaker record
type IdentityUpdate struct {
	SpeakerID   uuid.UUID
	SpeakerType entities.SpeakerType
	PlayerID    *uuid.UUID
	CharacterID *uuid.UUID
}

// Propagator applies an identity assignment to every speaker record whose
// current grouping key matches the target key.
type Propagator struct {
	strategy GroupingStrategy
}

// NewPropagator creates a propagator; a nil strategy selects the default
func NewPropagator(strategy GroupingStrategy) *Propagator {
	if strategy == nil {
		strategy = DefaultGroupingStrategy()
	}
	return &Propagator{strategy: strategy}
}

// Propagate selects the records matching the assignment's target key, using
// the records' pre-update identity state, and returns the identity writes for
// each of them. character must be the referenced character row when
// a.CharacterID is set, so the player/character ownership invariant can be
// checked; a violation returns a ValidationError and no updates.
//
// An assignment whose key matches zero records is a no-op success: a key can
// legitimately become empty after a prior edit, which is also what makes
// applying the same assignment twice yield the same final state. Targeting
// the post-update key instead is a new edit against that group's current
// membership, including records that carried the key before the first edit.
func (p *Propagator) Propagate(records []Record, a Assignment, character *entities.Character) ([]IdentityUpdate, error) {
	if !entities.ValidSpeakerType(a.SpeakerType) {
		return nil, &ValidationError{Field: "speaker_type", Message: "must be one of dm, player, npc, unknown"}
	}
	if a.CharacterID != nil && a.PlayerID != nil {
		if character == nil || character.ID != *a.CharacterID || !character.BelongsTo(*a.PlayerID) {
			return nil, &ValidationError{Field: "character_id", Message: "character must belong to the selected player"}
		}
	}

	updates := make([]IdentityUpdate, 0)
	for _, r := range records {
		if p.strategy.KeyFor(r) != a.GroupKey {
			continue
		}
		updates = append(updates, IdentityUpdate{
			SpeakerID:   r.SpeakerID,
			SpeakerType: a.SpeakerType,
			PlayerID:    a.PlayerID,
			CharacterID: a.CharacterID,
		})
	}
	return updates, nil
}

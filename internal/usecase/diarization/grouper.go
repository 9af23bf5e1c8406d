package diarization

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
)

// GroupingKey decides which speaker records count as the same person at the
// session level. It is derived, never stored.
type GroupingKey string

// UnidentifiedPrefix marks keys of speakers with no identity assigned
const UnidentifiedPrefix = "unidentified_speaker_"

// Record is an immutable snapshot of one stored speaker row together with its
// parent recording's display name and upload order.
type Record struct {
	SpeakerID      uuid.UUID
	RecordingID    uuid.UUID
	RecordingName  string
	RecordingOrder int
	SpeakerIndex   int
	SpeakerType    entities.SpeakerType
	PlayerID       *uuid.UUID
	CharacterID    *uuid.UUID
	Player         *entities.Player
	Character      *entities.Character
	SegmentCount   int
}

// RecordFromRow converts the repository read model into a grouping snapshot
func RecordFromRow(row entities.SessionSpeakerRecord) Record {
	return Record{
		SpeakerID:      row.Speaker.ID,
		RecordingID:    row.RecordingID,
		RecordingName:  row.RecordingName,
		RecordingOrder: row.RecordingOrder,
		SpeakerIndex:   row.Speaker.SpeakerIndex,
		SpeakerType:    row.Speaker.SpeakerType,
		PlayerID:       row.Speaker.PlayerID,
		CharacterID:    row.Speaker.CharacterID,
		Player:         row.Speaker.Player,
		Character:      row.Speaker.Character,
		SegmentCount:   row.Speaker.SegmentCount(),
	}
}

// GroupingStrategy derives the grouping key for one record. The default
// implementation can be swapped for smarter matching (voice embeddings,
// manual cross-recording links) without touching the aggregate model.
type GroupingStrategy interface {
	KeyFor(r Record) GroupingKey
}

// identityOrIndexStrategy groups identified speakers by their
// (player, character) pair and unidentified ones by raw per-recording speaker
// index. Grouping by raw index assumes the engine assigned the same index to
// the same person in every recording, which is a deliberate simplification:
// it can conflate different people sharing an index and split one person
// tagged with different indexes.
type identityOrIndexStrategy struct{}

// KeyFor implements GroupingStrategy
func (identityOrIndexStrategy) KeyFor(r Record) GroupingKey {
	if r.PlayerID != nil || r.CharacterID != nil {
		return IdentityKey(r.PlayerID, r.CharacterID)
	}
	return GroupingKey(fmt.Sprintf("%s%d", UnidentifiedPrefix, r.SpeakerIndex))
}

// DefaultGroupingStrategy returns the by-identity-or-raw-index strategy
func DefaultGroupingStrategy() GroupingStrategy {
	return identityOrIndexStrategy{}
}

// IdentityKey builds the grouping key for an identified speaker
func IdentityKey(playerID, characterID *uuid.UUID) GroupingKey {
	return GroupingKey(fmt.Sprintf("identified_%s_%s", uuidOrEmpty(playerID), uuidOrEmpty(characterID)))
}

func uuidOrEmpty(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

// SessionSpeaker is the computed aggregate of all records sharing one
// grouping key. It exists only as a view and is recomputed on every read.
type SessionSpeaker struct {
	Key           GroupingKey
	SpeakerType   entities.SpeakerType
	PlayerID      *uuid.UUID
	CharacterID   *uuid.UUID
	Player        *entities.Player
	Character     *entities.Character
	TotalSegments int
	Recordings    []string
	RecordCount   int
}

// Grouper folds session speaker records into identity-deduplicated aggregates
type Grouper struct {
	strategy GroupingStrategy
}

// NewGrouper creates a grouper; a nil strategy selects the default
func NewGrouper(strategy GroupingStrategy) *Grouper {
	if strategy == nil {
		strategy = DefaultGroupingStrategy()
	}
	return &Grouper{strategy: strategy}
}

// Group folds records into SessionSpeaker aggregates. Records are visited in
// a stable order (recording upload order, then local speaker index); output
// order is the order in which each key was first seen. When grouped records
// disagree on role or identity display fields, the last visited record wins.
func (g *Grouper) Group(records []Record) []SessionSpeaker {
	ordered := make([]Record, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].RecordingOrder != ordered[j].RecordingOrder {
			return ordered[i].RecordingOrder < ordered[j].RecordingOrder
		}
		return ordered[i].SpeakerIndex < ordered[j].SpeakerIndex
	})

	groups := make([]SessionSpeaker, 0)
	byKey := make(map[GroupingKey]int)

	for _, r := range ordered {
		key := g.strategy.KeyFor(r)
		i, seen := byKey[key]
		if !seen {
			i = len(groups)
			byKey[key] = i
			groups = append(groups, SessionSpeaker{Key: key})
		}

		grp := &groups[i]
		grp.SpeakerType = r.SpeakerType
		grp.PlayerID = r.PlayerID
		grp.CharacterID = r.CharacterID
		grp.Player = r.Player
		grp.Character = r.Character
		grp.TotalSegments += r.SegmentCount
		grp.RecordCount++
		if !contains(grp.Recordings, r.RecordingName) {
			grp.Recordings = append(grp.Recordings, r.RecordingName)
		}
	}

	return groups
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

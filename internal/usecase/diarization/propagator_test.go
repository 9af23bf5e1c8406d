package diarization

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
)

// applyUpdates simulates the persistence step: it returns a copy of records
// with the computed identity writes applied.
func applyUpdates(records []Record, updates []IdentityUpdate) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	for _, u := range updates {
		for i := range out {
			if out[i].SpeakerID == u.SpeakerID {
				out[i].SpeakerType = u.SpeakerType
				out[i].PlayerID = u.PlayerID
				out[i].CharacterID = u.CharacterID
			}
		}
	}
	return out
}

func TestPropagate_IdentifyingMergesGroupsOnRegroup(t *testing.T) {
	records, playerID := twoRecordingFixture(t)
	characterID := uuid.New()
	character := &entities.Character{ID: characterID, PlayerID: playerID, Name: "Tharn"}

	p := NewPropagator(nil)
	updates, err := p.Propagate(records, Assignment{
		GroupKey:    GroupingKey(UnidentifiedPrefix + "0"),
		SpeakerType: entities.SpeakerTypePlayer,
		PlayerID:    &playerID,
		CharacterID: &characterID,
	}, character)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updates) != 1 {
		t.Fatalf("expected 1 update (recording A speaker 0 only), got %d", len(updates))
	}
	if updates[0].SpeakerID != records[0].SpeakerID {
		t.Errorf("updated wrong record: %+v", updates[0])
	}

	// Identify B's speaker 0 with the same pair, then regroup: A's and B's
	// speaker 0 now share one identity aggregate with 3 + 4 = 7 segments.
	after := applyUpdates(records, updates)
	more, err := p.Propagate(after, Assignment{
		GroupKey:    IdentityKey(&playerID, nil),
		SpeakerType: entities.SpeakerTypePlayer,
		PlayerID:    &playerID,
		CharacterID: &characterID,
	}, character)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after = applyUpdates(after, more)

	groups := NewGrouper(nil).Group(after)
	if len(groups) != 2 {
		t.Fatalf("expected 2 aggregates after identification, got %d: %+v", len(groups), groups)
	}
	merged := findGroup(t, groups, IdentityKey(&playerID, &characterID))
	if merged.TotalSegments != 7 {
		t.Errorf("merged segments = %d, want 7", merged.TotalSegments)
	}
	if !reflect.DeepEqual(merged.Recordings, []string{"Part 1", "Part 2"}) {
		t.Errorf("merged recordings = %v", merged.Recordings)
	}
}

func TestPropagate_CharacterOwnershipViolationRejected(t *testing.T) {
	records, playerID := twoRecordingFixture(t)
	otherPlayer := uuid.New()
	characterID := uuid.New()
	// Character 99 belongs to a different player.
	character := &entities.Character{ID: characterID, PlayerID: otherPlayer, Name: "Imposter"}

	updates, err := NewPropagator(nil).Propagate(records, Assignment{
		GroupKey:    GroupingKey(UnidentifiedPrefix + "0"),
		SpeakerType: entities.SpeakerTypePlayer,
		PlayerID:    &playerID,
		CharacterID: &characterID,
	}, character)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if vErr.Field != "character_id" {
		t.Errorf("error field = %q, want character_id", vErr.Field)
	}
	if updates != nil {
		t.Errorf("no updates may be produced on validation failure, got %+v", updates)
	}
}

func TestPropagate_EmptyGroupIsNoOp(t *testing.T) {
	records, _ := twoRecordingFixture(t)

	updates, err := NewPropagator(nil).Propagate(records, Assignment{
		GroupKey:    GroupingKey(UnidentifiedPrefix + "9"),
		SpeakerType: entities.SpeakerTypeNPC,
	}, nil)
	if err != nil {
		t.Fatalf("empty group must be a no-op success, got %v", err)
	}
	if len(updates) != 0 {
		t.Errorf("expected no updates, got %+v", updates)
	}
}

func TestPropagate_Idempotent(t *testing.T) {
	records, playerID := twoRecordingFixture(t)

	p := NewPropagator(nil)
	assignment := Assignment{
		GroupKey:    GroupingKey(UnidentifiedPrefix + "0"),
		SpeakerType: entities.SpeakerTypeDM,
		PlayerID:    &playerID,
	}

	first, err := p.Propagate(records, assignment, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	once := applyUpdates(records, first)

	// The same assignment again: its pre-update group is now empty, so the
	// second run matches nothing and the final state is unchanged.
	second, err := p.Propagate(once, assignment, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second run must match zero records, got %+v", second)
	}
	twice := applyUpdates(once, second)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("propagation is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestPropagate_ReapplyThroughPostUpdateKey(t *testing.T) {
	records, _ := twoRecordingFixture(t)
	newPlayer := uuid.New()

	p := NewPropagator(nil)
	first, err := p.Propagate(records, Assignment{
		GroupKey:    GroupingKey(UnidentifiedPrefix + "1"),
		SpeakerType: entities.SpeakerTypePlayer,
		PlayerID:    &newPlayer,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	once := applyUpdates(records, first)

	// Re-submitting the same values against the key the record now lives
	// under rewrites just that record; nothing else shares the key, so the
	// state is unchanged.
	second, err := p.Propagate(once, Assignment{
		GroupKey:    IdentityKey(&newPlayer, nil),
		SpeakerType: entities.SpeakerTypePlayer,
		PlayerID:    &newPlayer,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second) != 1 || second[0].SpeakerID != records[1].SpeakerID {
		t.Fatalf("expected a single rewrite of recording A speaker 1, got %+v", second)
	}
	twice := applyUpdates(once, second)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("re-applying the same identity changed state:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestPropagate_OnlyTouchesPreUpdateGroup(t *testing.T) {
	records, playerID := twoRecordingFixture(t)

	// Assigning A's unidentified speaker 1 the same identity B already has
	// must not rewrite B's record; only the pre-update group is touched.
	updates, err := NewPropagator(nil).Propagate(records, Assignment{
		GroupKey:    GroupingKey(UnidentifiedPrefix + "1"),
		SpeakerType: entities.SpeakerTypePlayer,
		PlayerID:    &playerID,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(updates) != 1 || updates[0].SpeakerID != records[1].SpeakerID {
		t.Errorf("expected a single update for recording A speaker 1, got %+v", updates)
	}
}

func TestPropagate_InvalidSpeakerTypeRejected(t *testing.T) {
	records, _ := twoRecordingFixture(t)

	_, err := NewPropagator(nil).Propagate(records, Assignment{
		GroupKey:    GroupingKey(UnidentifiedPrefix + "0"),
		SpeakerType: entities.SpeakerType("bard"),
	}, nil)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

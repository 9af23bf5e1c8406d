package diarization

import (
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
)

// twoRecordingFixture builds the session from the cross-recording scenario:
// recording A with unidentified speakers 0 (3 segments) and 1 (2 segments),
// recording B with speaker 0 (4 segments) already identified as a player.
func twoRecordingFixture(t *testing.T) (records []Record, playerID uuid.UUID) {
	t.Helper()
	playerID = uuid.New()

	recA := uuid.New()
	recB := uuid.New()
	records = []Record{
		{
			SpeakerID:      uuid.New(),
			RecordingID:    recA,
			RecordingName:  "Part 1",
			RecordingOrder: 1,
			SpeakerIndex:   0,
			SpeakerType:    entities.SpeakerTypeUnknown,
			SegmentCount:   3,
		},
		{
			SpeakerID:      uuid.New(),
			RecordingID:    recA,
			RecordingName:  "Part 1",
			RecordingOrder: 1,
			SpeakerIndex:   1,
			SpeakerType:    entities.SpeakerTypeUnknown,
			SegmentCount:   2,
		},
		{
			SpeakerID:      uuid.New(),
			RecordingID:    recB,
			RecordingName:  "Part 2",
			RecordingOrder: 2,
			SpeakerIndex:   0,
			SpeakerType:    entities.SpeakerTypePlayer,
			PlayerID:       &playerID,
			SegmentCount:   4,
		},
	}
	return records, playerID
}

func findGroup(t *testing.T, groups []SessionSpeaker, key GroupingKey) SessionSpeaker {
	t.Helper()
	for _, g := range groups {
		if g.Key == key {
			return g
		}
	}
	t.Fatalf("no group with key %q in %+v", key, groups)
	return SessionSpeaker{}
}

func TestGrouper_UnidentifiedIndexDoesNotMergeWithIdentified(t *testing.T) {
	records, playerID := twoRecordingFixture(t)

	groups := NewGrouper(nil).Group(records)
	if len(groups) != 3 {
		t.Fatalf("expected 3 aggregates, got %d: %+v", len(groups), groups)
	}

	identified := findGroup(t, groups, IdentityKey(&playerID, nil))
	if identified.TotalSegments != 4 {
		t.Errorf("identified group segments = %d, want 4", identified.TotalSegments)
	}
	if !reflect.DeepEqual(identified.Recordings, []string{"Part 2"}) {
		t.Errorf("identified group recordings = %v", identified.Recordings)
	}

	unid0 := findGroup(t, groups, GroupingKey(UnidentifiedPrefix+"0"))
	if unid0.TotalSegments != 3 {
		t.Errorf("unidentified 0 segments = %d, want 3", unid0.TotalSegments)
	}
	unid1 := findGroup(t, groups, GroupingKey(UnidentifiedPrefix+"1"))
	if unid1.TotalSegments != 2 {
		t.Errorf("unidentified 1 segments = %d, want 2", unid1.TotalSegments)
	}
}

func TestGrouper_SharedIndexAcrossRecordingsMerges(t *testing.T) {
	// Unidentified speakers sharing a raw index in different recordings are
	// grouped together on purpose, even though they may be different people.
	records := []Record{
		{SpeakerID: uuid.New(), RecordingID: uuid.New(), RecordingName: "One", RecordingOrder: 1, SpeakerIndex: 2, SegmentCount: 5, SpeakerType: entities.SpeakerTypeUnknown},
		{SpeakerID: uuid.New(), RecordingID: uuid.New(), RecordingName: "Two", RecordingOrder: 2, SpeakerIndex: 2, SegmentCount: 7, SpeakerType: entities.SpeakerTypeUnknown},
	}

	groups := NewGrouper(nil).Group(records)
	if len(groups) != 1 {
		t.Fatalf("expected 1 aggregate, got %d", len(groups))
	}
	if groups[0].TotalSegments != 12 {
		t.Errorf("total segments = %d, want 12", groups[0].TotalSegments)
	}
	if !reflect.DeepEqual(groups[0].Recordings, []string{"One", "Two"}) {
		t.Errorf("recordings = %v", groups[0].Recordings)
	}
}

func TestGrouper_FirstSeenOrderAndStableIteration(t *testing.T) {
	records, playerID := twoRecordingFixture(t)
	// Shuffle the input; grouping must sort by recording order then index.
	shuffled := []Record{records[2], records[1], records[0]}

	groups := NewGrouper(nil).Group(shuffled)
	want := []GroupingKey{
		GroupingKey(UnidentifiedPrefix + "0"),
		GroupingKey(UnidentifiedPrefix + "1"),
		IdentityKey(&playerID, nil),
	}
	for i, g := range groups {
		if g.Key != want[i] {
			t.Errorf("group %d key = %q, want %q", i, g.Key, want[i])
		}
	}
}

func TestGrouper_Idempotent(t *testing.T) {
	records, _ := twoRecordingFixture(t)
	g := NewGrouper(nil)

	first := g.Group(records)
	second := g.Group(records)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("grouping is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestGrouper_LastContributingRecordWinsOnConflict(t *testing.T) {
	playerID := uuid.New()
	records := []Record{
		{SpeakerID: uuid.New(), RecordingName: "One", RecordingOrder: 1, SpeakerIndex: 0, SpeakerType: entities.SpeakerTypeDM, PlayerID: &playerID, SegmentCount: 1},
		{SpeakerID: uuid.New(), RecordingName: "Two", RecordingOrder: 2, SpeakerIndex: 0, SpeakerType: entities.SpeakerTypePlayer, PlayerID: &playerID, SegmentCount: 1},
	}

	groups := NewGrouper(nil).Group(records)
	if len(groups) != 1 {
		t.Fatalf("expected 1 aggregate, got %d", len(groups))
	}
	if groups[0].SpeakerType != entities.SpeakerTypePlayer {
		t.Errorf("representative type = %q, want last record's %q", groups[0].SpeakerType, entities.SpeakerTypePlayer)
	}
}

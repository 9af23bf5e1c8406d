package diarization

import (
	"math"
	"testing"

	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
)

func seg(text string, start, end float64) entities.SpeechSegment {
	return entities.SpeechSegment{Text: text, Start: &start, End: &end}
}

func TestCoalesce_ThresholdSplitsOnLongPause(t *testing.T) {
	segments := []entities.SpeechSegment{
		seg("We enter the cave.", 0, 2),
		seg("Torches out.", 2.5, 4),
		seg("What was that sound?", 9, 10),
	}

	blocks := Coalesce("Speaker 0", segments, 3)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %+v", len(blocks), blocks)
	}
	if blocks[0].Text != "We enter the cave. Torches out." {
		t.Errorf("merged text = %q", blocks[0].Text)
	}
	if *blocks[0].Start != 0 || *blocks[0].End != 4 {
		t.Errorf("merged block spans [%v-%v], want [0-4]", *blocks[0].Start, *blocks[0].End)
	}
	if blocks[0].SourceSegments != 2 {
		t.Errorf("merged block source count = %d, want 2", blocks[0].SourceSegments)
	}
	if *blocks[1].Start != 9 || *blocks[1].End != 10 {
		t.Errorf("second block spans [%v-%v], want [9-10]", *blocks[1].Start, *blocks[1].End)
	}
}

func TestCoalesce_ZeroThresholdKeepsPositiveGapsApart(t *testing.T) {
	segments := []entities.SpeechSegment{
		seg("a", 0, 1),
		seg("b", 1.1, 2),
		seg("c", 2.2, 3),
	}

	blocks := Coalesce("Speaker 0", segments, 0)
	if len(blocks) != len(segments) {
		t.Errorf("expected %d blocks with zero threshold, got %d", len(segments), len(blocks))
	}

	// A zero-length gap still merges: the threshold test is inclusive.
	touching := []entities.SpeechSegment{seg("a", 0, 1), seg("b", 1, 2)}
	blocks = Coalesce("Speaker 0", touching, 0)
	if len(blocks) != 1 {
		t.Errorf("touching segments should merge at threshold 0, got %d blocks", len(blocks))
	}
}

func TestCoalesce_InfiniteThresholdCollapsesAll(t *testing.T) {
	segments := []entities.SpeechSegment{
		seg("a", 0, 1),
		seg("b", 100, 101),
		seg("c", 5000, 5001),
	}

	blocks := Coalesce("Speaker 0", segments, math.Inf(1))
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Text != "a b c" {
		t.Errorf("text = %q", blocks[0].Text)
	}
	if blocks[0].SourceSegments != 3 {
		t.Errorf("source count = %d", blocks[0].SourceSegments)
	}
}

func TestCoalesce_MissingTimestampsAlwaysMerge(t *testing.T) {
	segments := []entities.SpeechSegment{
		{Text: "no times at all"},
		seg("timed", 50, 51),
		{Text: "tail without times"},
	}

	blocks := Coalesce("Speaker 0", segments, 1)
	if len(blocks) != 1 {
		t.Fatalf("expected unknown gaps to merge into 1 block, got %d", len(blocks))
	}
	if *blocks[0].End != 51 {
		t.Errorf("end should keep the last measured timestamp, got %v", *blocks[0].End)
	}
	if blocks[0].Start != nil {
		t.Errorf("start should stay unknown, got %v", *blocks[0].Start)
	}
}

func TestCoalesce_OutOfOrderSegmentAppendedAsIs(t *testing.T) {
	segments := []entities.SpeechSegment{
		seg("late", 10, 12),
		seg("early", 0, 1),
	}

	blocks := Coalesce("Speaker 0", segments, 3)
	// Gap is 0-12 = -12 <= 3, so the out-of-order segment merges; order of
	// the input is preserved, nothing is re-sorted.
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Text != "late early" {
		t.Errorf("text = %q", blocks[0].Text)
	}
}

func TestCoalesceFeed_SpeakerChangeBreaksMerge(t *testing.T) {
	feed := []FeedSegment{
		{SpeakerLabel: "DM", Segment: seg("The door creaks open.", 0, 2)},
		{SpeakerLabel: "DM", Segment: seg("Dust everywhere.", 2.1, 3)},
		{SpeakerLabel: "Lyra (Ana)", Segment: seg("I check for traps.", 3.2, 4)},
		{SpeakerLabel: "DM", Segment: seg("Roll investigation.", 4.1, 5)},
	}

	blocks := CoalesceFeed(feed, 10)
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d: %+v", len(blocks), blocks)
	}
	if blocks[0].SpeakerLabel != "DM" || blocks[0].SourceSegments != 2 {
		t.Errorf("first block = %+v", blocks[0])
	}
	if blocks[1].SpeakerLabel != "Lyra (Ana)" {
		t.Errorf("second block = %+v", blocks[1])
	}
	if blocks[2].Text != "Roll investigation." {
		t.Errorf("third block = %+v", blocks[2])
	}
}

func TestCoalesce_EmptyInput(t *testing.T) {
	if blocks := Coalesce("Speaker 0", nil, 1); len(blocks) != 0 {
		t.Errorf("expected no blocks for empty input, got %+v", blocks)
	}
}

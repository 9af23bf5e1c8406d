package diarization

import (
	"strings"

	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
)

// DisplayBlock is a coalesced run of segments for a human reader. Computed on
// read, never persisted.
type DisplayBlock struct {
	SpeakerLabel   string
	Text           string
	Start          *float64
	End            *float64
	SourceSegments int
}

// FeedSegment is one segment tagged with its speaker's display label, used
// when segments from different speakers are flattened into one
// global-time-ordered feed.
type FeedSegment struct {
	SpeakerLabel string
	Segment      entities.SpeechSegment
}

// Coalesce merges one speaker's time-ordered segments into display blocks.
// Consecutive segments merge when the silence between them is at most
// pauseThreshold seconds; a missing timestamp on either side counts as "no
// gap information" and always merges. Input order is preserved: an
// out-of-order segment is appended as-is, not re-sorted.
func Coalesce(speakerLabel string, segments []entities.SpeechSegment, pauseThreshold float64) []DisplayBlock {
	feed := make([]FeedSegment, len(segments))
	for i, seg := range segments {
		feed[i] = FeedSegment{SpeakerLabel: speakerLabel, Segment: seg}
	}
	return CoalesceFeed(feed, pauseThreshold)
}

// CoalesceFeed merges a time-ordered, possibly multi-speaker feed into
// display blocks. A speaker change always closes the current block; within
// one speaker the pause-threshold rule of Coalesce applies.
func CoalesceFeed(feed []FeedSegment, pauseThreshold float64) []DisplayBlock {
	blocks := make([]DisplayBlock, 0, len(feed))

	for _, fs := range feed {
		if len(blocks) > 0 {
			cur := &blocks[len(blocks)-1]
			if cur.SpeakerLabel == fs.SpeakerLabel && gapWithin(cur.End, fs.Segment.Start, pauseThreshold) {
				cur.Text = joinText(cur.Text, fs.Segment.Text)
				if fs.Segment.End != nil {
					cur.End = copyTime(fs.Segment.End)
				}
				cur.SourceSegments++
				continue
			}
		}
		blocks = append(blocks, DisplayBlock{
			SpeakerLabel:   fs.SpeakerLabel,
			Text:           strings.TrimSpace(fs.Segment.Text),
			Start:          copyTime(fs.Segment.Start),
			End:            copyTime(fs.Segment.End),
			SourceSegments: 1,
		})
	}

	return blocks
}

// gapWithin reports whether the pause between the previous block's end and
// the next segment's start permits merging. Unknown timestamps always merge.
func gapWithin(prevEnd, nextStart *float64, pauseThreshold float64) bool {
	if prevEnd == nil || nextStart == nil {
		return true
	}
	return *nextStart-*prevEnd <= pauseThreshold
}

func joinText(a, b string) string {
	b = strings.TrimSpace(b)
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + " " + b
}

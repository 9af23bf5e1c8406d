package presenter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/campaign-scribe/campaign-scribe/internal/adapter/dto/session"
	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
	"github.com/campaign-scribe/campaign-scribe/internal/usecase/diarization"
	sessionuse "github.com/campaign-scribe/campaign-scribe/internal/usecase/session"
)

// ToSessionSpeakerResponse converts one session-wide speaker group
func ToSessionSpeakerResponse(g diarization.SessionSpeaker) *session.SessionSpeakerResponse {
	recordings := g.Recordings
	if recordings == nil {
		recordings = []string{}
	}
	return &session.SessionSpeakerResponse{
		GroupKey:      string(g.Key),
		SpeakerType:   string(g.SpeakerType),
		PlayerID:      uuidString(g.PlayerID),
		CharacterID:   uuidString(g.CharacterID),
		DisplayName:   groupDisplayName(g),
		TotalSegments: g.TotalSegments,
		RecordCount:   g.RecordCount,
		Recordings:    recordings,
	}
}

// ToSessionSpeakerListResponse converts the grouped session speakers; stats
// may be nil
func ToSessionSpeakerListResponse(groups []diarization.SessionSpeaker, stats *sessionuse.SessionStats) *session.SessionSpeakerListResponse {
	responses := make([]*session.SessionSpeakerResponse, len(groups))
	for i, g := range groups {
		responses[i] = ToSessionSpeakerResponse(g)
	}
	resp := &session.SessionSpeakerListResponse{
		Speakers: responses,
		Total:    len(responses),
	}
	if stats != nil {
		resp.Stats = &session.SessionStatsResponse{
			TotalRecordings:       stats.TotalRecordings,
			TranscribedRecordings: stats.TranscribedRecordings,
			UniqueSpeakers:        stats.UniqueSpeakers,
			IdentifiedSpeakers:    stats.IdentifiedSpeakers,
		}
	}
	return resp
}

// groupDisplayName labels a speaker group:
// "Character (Player)" > character > player > "Speaker N" for unidentified keys.
func groupDisplayName(g diarization.SessionSpeaker) string {
	if g.Character != nil && g.Player != nil {
		return fmt.Sprintf("%s (%s)", g.Character.Name, g.Player.Name)
	}
	if g.Character != nil {
		return g.Character.Name
	}
	if g.Player != nil {
		return g.Player.Name
	}
	if idx, ok := strings.CutPrefix(string(g.Key), diarization.UnidentifiedPrefix); ok {
		return "Speaker " + idx
	}
	return "Unknown"
}

// BuildConversation flattens a transcription's speaker segments into one
// time-ordered feed and coalesces it into display blocks. Segments without a
// start timestamp keep their extraction order.
func BuildConversation(t *entities.Transcription, pauseThreshold float64) *session.ConversationResponse {
	var feed []diarization.FeedSegment
	for i := range t.Speakers {
		speaker := &t.Speakers[i]
		label := speaker.DisplayName()
		for _, seg := range speaker.Segments {
			feed = append(feed, diarization.FeedSegment{SpeakerLabel: label, Segment: seg})
		}
	}

	sort.SliceStable(feed, func(i, j int) bool {
		a, b := feed[i].Segment.Start, feed[j].Segment.Start
		if a == nil || b == nil {
			return false
		}
		return *a < *b
	})

	blocks := diarization.CoalesceFeed(feed, pauseThreshold)

	responses := make([]*session.ConversationBlockResponse, len(blocks))
	for i, b := range blocks {
		responses[i] = &session.ConversationBlockResponse{
			Speaker:        b.SpeakerLabel,
			Text:           b.Text,
			Start:          b.Start,
			End:            b.End,
			SourceSegments: b.SourceSegments,
		}
	}
	return &session.ConversationResponse{
		Blocks: responses,
		Total:  len(responses),
	}
}

// uuidString converts an optional UUID to an optional string
func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

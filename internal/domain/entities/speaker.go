package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SpeakerType classifies a voice at the table
type SpeakerType string

const (
	SpeakerTypeDM      SpeakerType = "dm"
	SpeakerTypePlayer  SpeakerType = "player"
	SpeakerTypeNPC     SpeakerType = "npc"
	SpeakerTypeUnknown SpeakerType = "unknown"
)

// ValidSpeakerType reports whether t is one of the known speaker types
func ValidSpeakerType(t SpeakerType) bool {
	switch t {
	case SpeakerTypeDM, SpeakerTypePlayer, SpeakerTypeNPC, SpeakerTypeUnknown:
		return true
	}
	return false
}

// SpeechSegment is one attributed stretch of speech. Start/End are seconds
// from the beginning of the recording; either may be missing. Segments are
// immutable once extracted.
type SpeechSegment struct {
	Text  string   `json:"text"`
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
}

// Speaker is one ASR-detected voice within one recording. SpeakerIndex is the
// small integer the diarization engine assigned locally; it is not stable
// across recordings. Identity fields are only ever mutated through identity
// assignment, never by re-extraction.
type Speaker struct {
	ID              uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TranscriptionID uuid.UUID       `json:"transcription_id" gorm:"type:uuid;not null;index"`
	SpeakerIndex    int             `json:"speaker_index" gorm:"not null"`
	SpeakerType     SpeakerType     `json:"speaker_type" gorm:"type:varchar(20);not null;default:'unknown'"`
	PlayerID        *uuid.UUID      `json:"player_id,omitempty" gorm:"type:uuid;index"`
	CharacterID     *uuid.UUID      `json:"character_id,omitempty" gorm:"type:uuid;index"`
	Segments        []SpeechSegment `json:"segments,omitempty" gorm:"type:jsonb;serializer:json"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	Player    *Player    `json:"player,omitempty" gorm:"foreignKey:PlayerID"`
	Character *Character `json:"character,omitempty" gorm:"foreignKey:CharacterID"`
}

// TableName specifies the table name for GORM
func (Speaker) TableName() string {
	return "speakers"
}

// SegmentCount returns the number of extracted segments
func (s *Speaker) SegmentCount() int {
	return len(s.Segments)
}

// TotalSpeakingTime sums the measured duration of all segments in seconds
func (s *Speaker) TotalSpeakingTime() float64 {
	var total float64
	for _, seg := range s.Segments {
		if seg.Start != nil && seg.End != nil {
			total += *seg.End - *seg.Start
		}
	}
	return total
}

// IsIdentified reports whether any identity has been assigned
func (s *Speaker) IsIdentified() bool {
	return s.PlayerID != nil || s.CharacterID != nil
}

// DisplayName returns the best human label for the speaker:
// "Character (Player)" > character name > player name > "Speaker N".
func (s *Speaker) DisplayName() string {
	if s.Character != nil && s.Player != nil {
		return fmt.Sprintf("%s (%s)", s.Character.Name, s.Player.Name)
	}
	if s.Character != nil {
		return s.Character.Name
	}
	if s.Player != nil {
		return s.Player.Name
	}
	return fmt.Sprintf("Speaker %d", s.SpeakerIndex)
}

// SessionSpeakerRecord is the read model for session-wide speaker grouping:
// one speaker row joined with its parent recording's name and upload order.
type SessionSpeakerRecord struct {
	Speaker        Speaker
	RecordingID    uuid.UUID
	RecordingName  string
	RecordingOrder int
}

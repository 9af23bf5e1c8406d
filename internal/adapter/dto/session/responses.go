package session

import "time"

// SessionResponse is the API shape of a game session
type SessionResponse struct {
	ID              string               `json:"id"`
	CampaignID      string               `json:"campaign_id"`
	Title           string               `json:"title"`
	Description     string               `json:"description,omitempty"`
	SessionNumber   int                  `json:"session_number,omitempty"`
	SessionDate     *time.Time           `json:"session_date,omitempty"`
	DurationMinutes int                  `json:"duration_minutes,omitempty"`
	Status          string               `json:"status"`
	Recordings      []*RecordingResponse `json:"recordings,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// SessionListResponse wraps a list of sessions
type SessionListResponse struct {
	Sessions []*SessionResponse `json:"sessions"`
	Total    int                `json:"total"`
}

// RecordingResponse is the API shape of a recording
type RecordingResponse struct {
	ID                  string    `json:"id"`
	GameSessionID       string    `json:"game_session_id"`
	Name                string    `json:"name"`
	OriginalFilename    string    `json:"original_filename,omitempty"`
	MimeType            string    `json:"mime_type,omitempty"`
	FileSize            int64     `json:"file_size,omitempty"`
	RecordingOrder      int       `json:"recording_order"`
	Notes               string    `json:"notes,omitempty"`
	TranscriptionStatus string    `json:"transcription_status,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// RecordingListResponse wraps a session's recordings
type RecordingListResponse struct {
	Recordings []*RecordingResponse `json:"recordings"`
	Total      int                  `json:"total"`
}

// TranscriptionResponse is the API shape of a transcription
type TranscriptionResponse struct {
	ID           string             `json:"id"`
	RecordingID  string             `json:"recording_id"`
	Status       string             `json:"status"`
	Transcript   string             `json:"transcript,omitempty"`
	Confidence   float64            `json:"confidence,omitempty"`
	ErrorMessage string             `json:"error_message,omitempty"`
	Speakers     []*SpeakerResponse `json:"speakers,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// SpeakerResponse is the API shape of one per-recording speaker record
type SpeakerResponse struct {
	ID           string  `json:"id"`
	SpeakerIndex int     `json:"speaker_index"`
	SpeakerType  string  `json:"speaker_type"`
	PlayerID     *string `json:"player_id,omitempty"`
	CharacterID  *string `json:"character_id,omitempty"`
	DisplayName  string  `json:"display_name"`
	SegmentCount int     `json:"segment_count"`
	SpeakingTime float64 `json:"speaking_time_seconds"`
	IsIdentified bool    `json:"is_identified"`
}

// SessionSpeakerResponse is the API shape of one session-wide speaker group
type SessionSpeakerResponse struct {
	GroupKey      string   `json:"group_key"`
	SpeakerType   string   `json:"speaker_type"`
	PlayerID      *string  `json:"player_id,omitempty"`
	CharacterID   *string  `json:"character_id,omitempty"`
	DisplayName   string   `json:"display_name"`
	TotalSegments int      `json:"total_segments"`
	RecordCount   int      `json:"record_count"`
	Recordings    []string `json:"recordings"`
}

// SessionStatsResponse summarizes a session's recordings and identification
type SessionStatsResponse struct {
	TotalRecordings       int `json:"total_recordings"`
	TranscribedRecordings int `json:"transcribed_recordings"`
	UniqueSpeakers        int `json:"unique_speakers"`
	IdentifiedSpeakers    int `json:"identified_speakers"`
}

// SessionSpeakerListResponse wraps the session-wide speaker groups
type SessionSpeakerListResponse struct {
	Speakers []*SessionSpeakerResponse `json:"speakers"`
	Total    int                       `json:"total"`
	Stats    *SessionStatsResponse     `json:"stats,omitempty"`
}

// AssignSpeakerResponse reports the outcome of a group identity assignment
type AssignSpeakerResponse struct {
	GroupKey       string `json:"group_key"`
	RecordsUpdated int    `json:"records_updated"`
}

// ConversationBlockResponse is one coalesced block of the conversation feed
type ConversationBlockResponse struct {
	Speaker        string   `json:"speaker"`
	Text           string   `json:"text"`
	Start          *float64 `json:"start,omitempty"`
	End            *float64 `json:"end,omitempty"`
	SourceSegments int      `json:"source_segments"`
}

// ConversationResponse wraps the conversation feed of a transcription
type ConversationResponse struct {
	Blocks []*ConversationBlockResponse `json:"blocks"`
	Total  int                          `json:"total"`
}

// AudioURLResponse carries a presigned streaming URL
type AudioURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in_seconds"`
}

// SummaryResponse is the API shape of a session summary
type SummaryResponse struct {
	ID            string    `json:"id"`
	GameSessionID string    `json:"game_session_id"`
	Content       string    `json:"content"`
	ModelUsed     string    `json:"model_used,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// SummaryListResponse wraps a session's summaries
type SummaryListResponse struct {
	Summaries []*SummaryResponse `json:"summaries"`
	Total     int                `json:"total"`
}

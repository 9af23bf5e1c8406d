package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TranscriptionStatus is the processing state of a transcription
type TranscriptionStatus string

const (
	TranscriptionStatusPending    TranscriptionStatus = "pending"
	TranscriptionStatusProcessing TranscriptionStatus = "processing"
	TranscriptionStatusCompleted  TranscriptionStatus = "completed"
	TranscriptionStatusFailed     TranscriptionStatus = "failed"
)

// Transcription is the stored ASR result for one recording. The raw engine
// response is kept verbatim so speaker extraction can be replayed; replaying
// creates a fresh speaker record set, it never patches existing rows.
type Transcription struct {
	ID           uuid.UUID                                  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RecordingID  uuid.UUID                                  `json:"recording_id" gorm:"type:uuid;not null;uniqueIndex"`
	Status       TranscriptionStatus                        `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	Transcript   string                                     `json:"transcript,omitempty" gorm:"type:text"`
	Confidence   float64                                    `json:"confidence,omitempty"`
	RawResponse  datatypes.JSONType[map[string]interface{}] `json:"raw_response,omitempty" gorm:"type:jsonb"`
	ErrorMessage string                                     `json:"error_message,omitempty" gorm:"type:text"`
	CreatedAt    time.Time                                  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time                                  `json:"updated_at" gorm:"autoUpdateTime"`

	Recording *Recording `json:"recording,omitempty" gorm:"foreignKey:RecordingID"`
	Speakers  []Speaker  `json:"speakers,omitempty" gorm:"foreignKey:TranscriptionID"`
}

// TableName specifies the table name for GORM
func (Transcription) TableName() string {
	return "transcriptions"
}

// NewTranscription creates a pending transcription for a recording
func NewTranscription(recordingID uuid.UUID) *Transcription {
	return &Transcription{
		ID:          uuid.New(),
		RecordingID: recordingID,
		Status:      TranscriptionStatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// SetRawResponse stores the verbatim ASR engine response
func (t *Transcription) SetRawResponse(raw []byte) error {
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}
	t.RawResponse = datatypes.NewJSONType(payload)
	return nil
}

// IsCompleted reports whether ASR processing finished successfully
func (t *Transcription) IsCompleted() bool {
	return t.Status == TranscriptionStatusCompleted
}

// IsFailed reports whether ASR processing failed
func (t *Transcription) IsFailed() bool {
	return t.Status == TranscriptionStatusFailed
}

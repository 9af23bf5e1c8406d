package presenter

import (
	"github.com/campaign-scribe/campaign-scribe/internal/adapter/dto/session"
	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
)

// ToSessionResponse converts a GameSession entity to SessionResponse DTO
func ToSessionResponse(s *entities.GameSession) *session.SessionResponse {
	if s == nil {
		return nil
	}
	response := &session.SessionResponse{
		ID:              s.ID.String(),
		CampaignID:      s.CampaignID.String(),
		Title:           s.Title,
		Description:     s.Description,
		SessionNumber:   s.SessionNumber,
		SessionDate:     s.SessionDate,
		DurationMinutes: s.DurationMinutes,
		Status:          string(s.Status),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
	for i := range s.Recordings {
		response.Recordings = append(response.Recordings, ToRecordingResponse(&s.Recordings[i]))
	}
	return response
}

// ToSessionListResponse converts a slice of GameSession entities
func ToSessionListResponse(sessions []*entities.GameSession) *session.SessionListResponse {
	responses := make([]*session.SessionResponse, len(sessions))
	for i, s := range sessions {
		responses[i] = ToSessionResponse(s)
	}
	return &session.SessionListResponse{
		Sessions: responses,
		Total:    len(responses),
	}
}

// ToRecordingResponse converts a Recording entity to RecordingResponse DTO
func ToRecordingResponse(r *entities.Recording) *session.RecordingResponse {
	if r == nil {
		return nil
	}
	response := &session.RecordingResponse{
		ID:               r.ID.String(),
		GameSessionID:    r.GameSessionID.String(),
		Name:             r.Name,
		OriginalFilename: r.OriginalFilename,
		MimeType:         r.MimeType,
		FileSize:         r.FileSize,
		RecordingOrder:   r.RecordingOrder,
		Notes:            r.Notes,
		CreatedAt:        r.CreatedAt,
	}
	if r.Transcription != nil {
		response.TranscriptionStatus = string(r.Transcription.Status)
	}
	return response
}

// ToRecordingListResponse converts a slice of Recording entities
func ToRecordingListResponse(recordings []*entities.Recording) *session.RecordingListResponse {
	responses := make([]*session.RecordingResponse, len(recordings))
	for i, r := range recordings {
		responses[i] = ToRecordingResponse(r)
	}
	return &session.RecordingListResponse{
		Recordings: responses,
		Total:      len(responses),
	}
}

// ToTranscriptionResponse converts a Transcription entity, including its
// per-recording speaker records
func ToTranscriptionResponse(t *entities.Transcription) *session.TranscriptionResponse {
	if t == nil {
		return nil
	}
	response := &session.TranscriptionResponse{
		ID:           t.ID.String(),
		RecordingID:  t.RecordingID.String(),
		Status:       string(t.Status),
		Transcript:   t.Transcript,
		Confidence:   t.Confidence,
		ErrorMessage: t.ErrorMessage,
		CreatedAt:    t.CreatedAt,
	}
	for i := range t.Speakers {
		response.Speakers = append(response.Speakers, ToSpeakerResponse(&t.Speakers[i]))
	}
	return response
}

// ToSpeakerResponse converts a Speaker entity to SpeakerResponse DTO
func ToSpeakerResponse(s *entities.Speaker) *session.SpeakerResponse {
	if s == nil {
		return nil
	}
	return &session.SpeakerResponse{
		ID:           s.ID.String(),
		SpeakerIndex: s.SpeakerIndex,
		SpeakerType:  string(s.SpeakerType),
		PlayerID:     uuidString(s.PlayerID),
		CharacterID:  uuidString(s.CharacterID),
		DisplayName:  s.DisplayName(),
		SegmentCount: s.SegmentCount(),
		SpeakingTime: s.TotalSpeakingTime(),
		IsIdentified: s.IsIdentified(),
	}
}

// ToSummaryResponse converts a Summary entity to SummaryResponse DTO
func ToSummaryResponse(s *entities.Summary) *session.SummaryResponse {
	if s == nil {
		return nil
	}
	return &session.SummaryResponse{
		ID:            s.ID.String(),
		GameSessionID: s.GameSessionID.String(),
		Content:       s.Content,
		ModelUsed:     s.ModelUsed,
		CreatedAt:     s.CreatedAt,
	}
}

// ToSummaryListResponse converts a slice of Summary entities
func ToSummaryListResponse(summaries []*entities.Summary) *session.SummaryListResponse {
	responses := make([]*session.SummaryResponse, len(summaries))
	for i, s := range summaries {
		responses[i] = ToSummaryResponse(s)
	}
	return &session.SummaryListResponse{
		Summaries: responses,
		Total:     len(responses),
	}
}

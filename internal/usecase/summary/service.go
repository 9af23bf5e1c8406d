package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
	"github.com/campaign-scribe/campaign-scribe/internal/domain/repositories"
	usecaseErrors "github.com/campaign-scribe/campaign-scribe/internal/usecase/errors"
)

// Summarizer abstracts the LLM generating session recaps
type Summarizer interface {
	GenerateSessionSummary(ctx context.Context, transcript string) (string, error)
}

// Service generates and stores LLM session recaps
type Service struct {
	sessionRepo       repositories.SessionRepository
	recordingRepo     repositories.RecordingRepository
	transcriptionRepo repositories.TranscriptionRepository
	summaryRepo       repositories.SummaryRepository
	summarizer        Summarizer
	model             string
	logger            *zap.Logger
}

// NewService creates a new summary service
func NewService(
	sessionRepo repositories.SessionRepository,
	recordingRepo repositories.RecordingRepository,
	transcriptionRepo repositories.TranscriptionRepository,
	summaryRepo repositories.SummaryRepository,
	summarizer Summarizer,
	model string,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		sessionRepo:       sessionRepo,
		recordingRepo:     recordingRepo,
		transcriptionRepo: transcriptionRepo,
		summaryRepo:       summaryRepo,
		summarizer:        summarizer,
		model:             model,
		logger:            logger,
	}
}

// Generate builds the session transcript from every completed recording
// transcription, in upload order, and stores the generated recap
func (s *Service) Generate(ctx context.Context, sessionID uuid.UUID) (*entities.Summary, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, usecaseErrors.ErrSessionNotFound
	}

	transcript, err := s.sessionTranscript(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if transcript == "" {
		return nil, usecaseErrors.ErrTranscriptionMissing
	}

	content, err := s.summarizer.GenerateSessionSummary(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("failed to generate summary: %w", err)
	}

	summary := &entities.Summary{
		ID:            uuid.New(),
		GameSessionID: sessionID,
		Content:       content,
		ModelUsed:     s.model,
	}
	if err := s.summaryRepo.Create(ctx, summary); err != nil {
		return nil, fmt.Errorf("failed to store summary: %w", err)
	}

	s.logger.Info("session summary generated",
		zap.String("session_id", sessionID.String()),
		zap.Int("transcript_chars", len(transcript)))

	return summary, nil
}

// sessionTranscript concatenates the completed transcripts of the session's
// recordings in upload order
func (s *Service) sessionTranscript(ctx context.Context, sessionID uuid.UUID) (string, error) {
	recordings, err := s.recordingRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to list recordings: %w", err)
	}

	var parts []string
	for _, recording := range recordings {
		transcription, err := s.transcriptionRepo.FindByRecordingID(ctx, recording.ID)
		if err != nil {
			return "", fmt.Errorf("failed to get transcription: %w", err)
		}
		if transcription == nil || !transcription.IsCompleted() || transcription.Transcript == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("[%s]\n%s", recording.Name, transcription.Transcript))
	}

	return strings.Join(parts, "\n\n"), nil
}

// List lists a session's summaries, newest first
func (s *Service) List(ctx context.Context, sessionID uuid.UUID) ([]*entities.Summary, error) {
	summaries, err := s.summaryRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	return summaries, nil
}

// Delete deletes a summary
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.summaryRepo.Delete(ctx, id)
}

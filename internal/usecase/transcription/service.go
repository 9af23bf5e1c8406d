package transcription

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
	"github.com/campaign-scribe/campaign-scribe/internal/domain/repositories"
	"github.com/campaign-scribe/campaign-scribe/internal/usecase/diarization"
	usecaseErrors "github.com/campaign-scribe/campaign-scribe/internal/usecase/errors"
	"github.com/campaign-scribe/campaign-scribe/pkg/asr"
)

// AudioStore abstracts the object storage holding recording audio
type AudioStore interface {
	UploadAudio(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	DownloadAudio(ctx context.Context, objectName string) ([]byte, error)
	GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	DeleteFile(ctx context.Context, objectName string) error
}

// Transcriber abstracts the ASR provider
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) ([]byte, error)
}

// Service runs the upload-transcribe-extract pipeline for recordings
type Service struct {
	sessionRepo       repositories.SessionRepository
	recordingRepo     repositories.RecordingRepository
	transcriptionRepo repositories.TranscriptionRepository
	store             AudioStore
	transcriber       Transcriber
	logger            *zap.Logger
}

// NewService creates a new transcription service
func NewService(
	sessionRepo repositories.SessionRepository,
	recordingRepo repositories.RecordingRepository,
	transcriptionRepo repositories.TranscriptionRepository,
	store AudioStore,
	transcriber Transcriber,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		sessionRepo:       sessionRepo,
		recordingRepo:     recordingRepo,
		transcriptionRepo: transcriptionRepo,
		store:             store,
		transcriber:       transcriber,
		logger:            logger,
	}
}

// UploadRecordingInput represents input for uploading a session recording
type UploadRecordingInput struct {
	SessionID uuid.UUID
	Name      string
	Filename  string
	MimeType  string
	Size      int64
	Notes     string
	Audio     io.Reader
}

// UploadRecording stores the audio file and registers the recording at the
// next upload order slot of its session
func (s *Service) UploadRecording(ctx context.Context, input UploadRecordingInput) (*entities.Recording, error) {
	session, err := s.sessionRepo.FindByID(ctx, input.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, usecaseErrors.ErrSessionNotFound
	}

	if !asr.IsSupportedMimeType(input.MimeType) {
		return nil, usecaseErrors.ErrUnsupportedMimeType
	}
	if input.Size <= 0 {
		return nil, usecaseErrors.ErrRecordingEmpty
	}

	order, err := s.recordingRepo.NextRecordingOrder(ctx, input.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get next recording order: %w", err)
	}

	name := input.Name
	if name == "" {
		name = input.Filename
	}

	objectName := fmt.Sprintf("sessions/%s/recordings/%s%s",
		input.SessionID, uuid.New().String(), filepath.Ext(input.Filename))

	if err := s.store.UploadAudio(ctx, objectName, input.Audio, input.Size, input.MimeType); err != nil {
		return nil, fmt.Errorf("failed to upload audio: %w", err)
	}

	recording := entities.NewRecording(input.SessionID, name, objectName, order)
	recording.OriginalFilename = input.Filename
	recording.MimeType = input.MimeType
	recording.FileSize = input.Size
	recording.Notes = input.Notes

	if err := s.recordingRepo.Create(ctx, recording); err != nil {
		return nil, fmt.Errorf("failed to create recording: %w", err)
	}

	s.logger.Info("recording uploaded",
		zap.String("recording_id", recording.ID.String()),
		zap.String("session_id", input.SessionID.String()),
		zap.Int("recording_order", order),
		zap.Int64("size", input.Size))

	return recording, nil
}

// GetRecording retrieves a recording by ID
func (s *Service) GetRecording(ctx context.Context, id uuid.UUID) (*entities.Recording, error) {
	recording, err := s.recordingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get recording: %w", err)
	}
	if recording == nil {
		return nil, usecaseErrors.ErrRecordingNotFound
	}
	return recording, nil
}

// ListRecordings lists a session's recordings in upload order
func (s *Service) ListRecordings(ctx context.Context, sessionID uuid.UUID) ([]*entities.Recording, error) {
	recordings, err := s.recordingRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recordings: %w", err)
	}
	return recordings, nil
}

// GetAudioURL returns a presigned URL for streaming a recording's audio
func (s *Service) GetAudioURL(ctx context.Context, recordingID uuid.UUID) (string, error) {
	recording, err := s.GetRecording(ctx, recordingID)
	if err != nil {
		return "", err
	}
	url, err := s.store.GetFileURL(ctx, recording.StorageKey, time.Hour)
	if err != nil {
		return "", fmt.Errorf("failed to generate audio URL: %w", err)
	}
	return url, nil
}

// DeleteRecording removes a recording and its stored audio
func (s *Service) DeleteRecording(ctx context.Context, recordingID uuid.UUID) error {
	recording, err := s.GetRecording(ctx, recordingID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteFile(ctx, recording.StorageKey); err != nil {
		s.logger.Warn("failed to delete audio object",
			zap.String("recording_id", recordingID.String()),
			zap.Error(err))
	}
	return s.recordingRepo.Delete(ctx, recordingID)
}

// Transcribe runs ASR on a recording and extracts its speaker records. A
// recording can only be transcribed once; delete the transcription to redo it.
func (s *Service) Transcribe(ctx context.Context, recordingID uuid.UUID) (*entities.Transcription, error) {
	recording, err := s.GetRecording(ctx, recordingID)
	if err != nil {
		return nil, err
	}

	existing, err := s.transcriptionRepo.FindByRecordingID(ctx, recordingID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing transcription: %w", err)
	}
	if existing != nil && !existing.IsFailed() {
		return nil, usecaseErrors.ErrTranscriptionExists
	}
	if existing != nil {
		// Failed attempts are replaced by a fresh run
		if err := s.transcriptionRepo.Delete(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("failed to clear failed transcription: %w", err)
		}
	}

	transcription := entities.NewTranscription(recordingID)
	transcription.Status = entities.TranscriptionStatusProcessing
	if err := s.transcriptionRepo.Create(ctx, transcription); err != nil {
		return nil, fmt.Errorf("failed to create transcription: %w", err)
	}

	s.logger.Info("transcription started",
		zap.String("recording_id", recordingID.String()),
		zap.String("transcription_id", transcription.ID.String()))

	result, err := s.runPipeline(ctx, recording, transcription)
	if err != nil {
		s.logger.Error("transcription failed",
			zap.String("transcription_id", transcription.ID.String()),
			zap.Error(err))
		if markErr := s.transcriptionRepo.MarkFailed(ctx, transcription.ID, err.Error()); markErr != nil {
			s.logger.Error("failed to mark transcription failed",
				zap.String("transcription_id", transcription.ID.String()),
				zap.Error(markErr))
		}
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	return result, nil
}

// runPipeline downloads the audio, calls the ASR provider, extracts speakers
// and persists everything atomically
func (s *Service) runPipeline(ctx context.Context, recording *entities.Recording, transcription *entities.Transcription) (*entities.Transcription, error) {
	audio, err := s.store.DownloadAudio(ctx, recording.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to download audio: %w", err)
	}

	raw, err := s.transcriber.Transcribe(ctx, audio, recording.MimeType)
	if err != nil {
		return nil, fmt.Errorf("asr request failed: %w", err)
	}

	extraction, err := diarization.Extract(raw)
	if err != nil {
		return nil, fmt.Errorf("speaker extraction failed: %w", err)
	}

	speakers := make([]*entities.Speaker, 0, len(extraction.Speakers))
	for _, index := range extraction.SpeakerIndexes() {
		speakers = append(speakers, &entities.Speaker{
			ID:              uuid.New(),
			TranscriptionID: transcription.ID,
			SpeakerIndex:    index,
			SpeakerType:     entities.SpeakerTypeUnknown,
			Segments:        extraction.Speakers[index],
		})
	}

	transcription.Status = entities.TranscriptionStatusCompleted
	transcription.Transcript = extraction.Transcript
	transcription.Confidence = extraction.Confidence
	if err := transcription.SetRawResponse(raw); err != nil {
		return nil, fmt.Errorf("failed to store raw response: %w", err)
	}

	if err := s.transcriptionRepo.CompleteWithSpeakers(ctx, transcription, speakers); err != nil {
		return nil, fmt.Errorf("failed to persist transcription: %w", err)
	}

	s.logger.Info("transcription completed",
		zap.String("transcription_id", transcription.ID.String()),
		zap.Int("speakers", len(speakers)),
		zap.Float64("confidence", extraction.Confidence))

	return transcription, nil
}

// GetTranscription retrieves the transcription of a recording
func (s *Service) GetTranscription(ctx context.Context, recordingID uuid.UUID) (*entities.Transcription, error) {
	transcription, err := s.transcriptionRepo.FindByRecordingID(ctx, recordingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transcription: %w", err)
	}
	if transcription == nil {
		return nil, usecaseErrors.ErrTranscriptionMissing
	}
	return s.transcriptionRepo.FindByID(ctx, transcription.ID)
}

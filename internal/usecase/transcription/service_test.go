package transcription

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
	usecaseErrors "github.com/campaign-scribe/campaign-scribe/internal/usecase/errors"
)

// Canned Deepgram response: two speakers in paragraph form, word list sparse
// enough that the sentence representation wins.
const cannedASRResponse = `{
	"results": {
		"channels": [{
			"alternatives": [{
				"transcript": "Roll for initiative. I got a natural twenty.",
				"confidence": 0.93,
				"words": [
					{"word": "roll", "punctuated_word": "Roll", "start": 0.1, "end": 0.4, "speaker": 0},
					{"word": "twenty", "punctuated_word": "twenty.", "start": 2.8, "end": 3.2, "speaker": 1}
				],
				"paragraphs": {
					"transcript": "Roll for initiative. I got a natural twenty.",
					"paragraphs": [
						{
							"speaker": 0,
							"sentences": [
								{"text": "Roll for initiative.", "start": 0.1, "end": 1.2, "speaker": 0}
							]
						},
						{
							"speaker": 1,
							"sentences": [
								{"text": "I got a natural twenty.", "start": 1.9, "end": 3.2, "speaker": 1}
							]
						}
					]
				}
			}]
		}]
	}
}`

// In-memory fakes

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entities.GameSession
}

func (r *fakeSessionRepo) Create(ctx context.Context, s *entities.GameSession) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *fakeSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.GameSession, error) {
	return r.sessions[id], nil
}

func (r *fakeSessionRepo) FindByCampaignID(ctx context.Context, campaignID uuid.UUID) ([]*entities.GameSession, error) {
	return nil, nil
}

func (r *fakeSessionRepo) NextSessionNumber(ctx context.Context, campaignID uuid.UUID) (int, error) {
	return 1, nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, s *entities.GameSession) error {
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type fakeRecordingRepo struct {
	recordings map[uuid.UUID]*entities.Recording
}

func (r *fakeRecordingRepo) Create(ctx context.Context, recording *entities.Recording) error {
	r.recordings[recording.ID] = recording
	return nil
}

func (r *fakeRecordingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Recording, error) {
	return r.recordings[id], nil
}

func (r *fakeRecordingRepo) FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*entities.Recording, error) {
	var out []*entities.Recording
	for _, rec := range r.recordings {
		if rec.GameSessionID == sessionID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeRecordingRepo) NextRecordingOrder(ctx context.Context, sessionID uuid.UUID) (int, error) {
	max := 0
	for _, rec := range r.recordings {
		if rec.GameSessionID == sessionID && rec.RecordingOrder > max {
			max = rec.RecordingOrder
		}
	}
	return max + 1, nil
}

func (r *fakeRecordingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.recordings, id)
	return nil
}

type fakeTranscriptionRepo struct {
	transcriptions map[uuid.UUID]*entities.Transcription
	speakers       map[uuid.UUID][]*entities.Speaker
}

func newFakeTranscriptionRepo() *fakeTranscriptionRepo {
	return &fakeTranscriptionRepo{
		transcriptions: make(map[uuid.UUID]*entities.Transcription),
		speakers:       make(map[uuid.UUID][]*entities.Speaker),
	}
}

func (r *fakeTranscriptionRepo) Create(ctx context.Context, t *entities.Transcription) error {
	r.transcriptions[t.ID] = t
	return nil
}

func (r *fakeTranscriptionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Transcription, error) {
	return r.transcriptions[id], nil
}

func (r *fakeTranscriptionRepo) FindByRecordingID(ctx context.Context, recordingID uuid.UUID) (*entities.Transcription, error) {
	for _, t := range r.transcriptions {
		if t.RecordingID == recordingID {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTranscriptionRepo) CompleteWithSpeakers(ctx context.Context, t *entities.Transcription, speakers []*entities.Speaker) error {
	r.transcriptions[t.ID] = t
	r.speakers[t.ID] = speakers
	return nil
}

func (r *fakeTranscriptionRepo) MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string) error {
	if t, ok := r.transcriptions[id]; ok {
		t.Status = entities.TranscriptionStatusFailed
		t.ErrorMessage = errorMessage
	}
	return nil
}

func (r *fakeTranscriptionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.transcriptions, id)
	delete(r.speakers, id)
	return nil
}

type fakeAudioStore struct {
	objects map[string][]byte
}

func newFakeAudioStore() *fakeAudioStore {
	return &fakeAudioStore{objects: make(map[string][]byte)}
}

func (s *fakeAudioStore) UploadAudio(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[objectName] = data
	return nil
}

func (s *fakeAudioStore) DownloadAudio(ctx context.Context, objectName string) ([]byte, error) {
	data, ok := s.objects[objectName]
	if !ok {
		return nil, errors.New("object not found")
	}
	return data, nil
}

func (s *fakeAudioStore) GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	return "https://storage.test/" + objectName, nil
}

func (s *fakeAudioStore) DeleteFile(ctx context.Context, objectName string) error {
	delete(s.objects, objectName)
	return nil
}

type fakeTranscriber struct {
	response []byte
	err      error
	calls    int
}

func (t *fakeTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) ([]byte, error) {
	t.calls++
	if t.err != nil {
		return nil, t.err
	}
	return t.response, nil
}

type testEnv struct {
	service        *Service
	session        *entities.GameSession
	recordings     *fakeRecordingRepo
	transcriptions *fakeTranscriptionRepo
	store          *fakeAudioStore
	transcriber    *fakeTranscriber
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sessionRepo := &fakeSessionRepo{sessions: make(map[uuid.UUID]*entities.GameSession)}
	session := entities.NewGameSession(uuid.New(), "Session 3")
	sessionRepo.sessions[session.ID] = session

	env := &testEnv{
		session:        session,
		recordings:     &fakeRecordingRepo{recordings: make(map[uuid.UUID]*entities.Recording)},
		transcriptions: newFakeTranscriptionRepo(),
		store:          newFakeAudioStore(),
		transcriber:    &fakeTranscriber{response: []byte(cannedASRResponse)},
	}
	env.service = NewService(sessionRepo, env.recordings, env.transcriptions, env.store, env.transcriber, nil)
	return env
}

func (e *testEnv) upload(t *testing.T, name string) *entities.Recording {
	t.Helper()
	recording, err := e.service.UploadRecording(context.Background(), UploadRecordingInput{
		SessionID: e.session.ID,
		Name:      name,
		Filename:  "table.mp3",
		MimeType:  "audio/mpeg",
		Size:      4,
		Audio:     bytes.NewReader([]byte("data")),
	})
	if err != nil {
		t.Fatalf("UploadRecording failed: %v", err)
	}
	return recording
}

func TestUploadRecording_AssignsUploadOrder(t *testing.T) {
	env := newTestEnv(t)

	first := env.upload(t, "Part 1")
	second := env.upload(t, "Part 2")

	if first.RecordingOrder != 1 || second.RecordingOrder != 2 {
		t.Fatalf("expected orders 1 and 2, got %d and %d", first.RecordingOrder, second.RecordingOrder)
	}
	if _, ok := env.store.objects[first.StorageKey]; !ok {
		t.Fatal("audio object was not stored")
	}
	if !strings.HasSuffix(first.StorageKey, ".mp3") {
		t.Fatalf("storage key should keep the file extension, got %q", first.StorageKey)
	}
}

func TestUploadRecording_RejectsUnsupportedMimeType(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.UploadRecording(context.Background(), UploadRecordingInput{
		SessionID: env.session.ID,
		Filename:  "clip.mp4",
		MimeType:  "video/mp4",
		Size:      4,
		Audio:     bytes.NewReader([]byte("data")),
	})
	if !errors.Is(err, usecaseErrors.ErrUnsupportedMimeType) {
		t.Fatalf("expected ErrUnsupportedMimeType, got %v", err)
	}
	if len(env.store.objects) != 0 {
		t.Fatal("rejected upload must not reach storage")
	}
}

func TestUploadRecording_RejectsEmptyFile(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.UploadRecording(context.Background(), UploadRecordingInput{
		SessionID: env.session.ID,
		Filename:  "empty.mp3",
		MimeType:  "audio/mpeg",
		Size:      0,
		Audio:     bytes.NewReader(nil),
	})
	if !errors.Is(err, usecaseErrors.ErrRecordingEmpty) {
		t.Fatalf("expected ErrRecordingEmpty, got %v", err)
	}
}

func TestUploadRecording_UnknownSession(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.UploadRecording(context.Background(), UploadRecordingInput{
		SessionID: uuid.New(),
		Filename:  "table.mp3",
		MimeType:  "audio/mpeg",
		Size:      4,
		Audio:     bytes.NewReader([]byte("data")),
	})
	if !errors.Is(err, usecaseErrors.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestTranscribe_ExtractsSpeakers(t *testing.T) {
	env := newTestEnv(t)
	recording := env.upload(t, "Part 1")

	transcription, err := env.service.Transcribe(context.Background(), recording.ID)
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if !transcription.IsCompleted() {
		t.Fatalf("expected completed status, got %s", transcription.Status)
	}
	if transcription.Transcript != "Roll for initiative. I got a natural twenty." {
		t.Fatalf("unexpected transcript %q", transcription.Transcript)
	}
	if transcription.Confidence != 0.93 {
		t.Fatalf("unexpected confidence %v", transcription.Confidence)
	}

	speakers := env.transcriptions.speakers[transcription.ID]
	if len(speakers) != 2 {
		t.Fatalf("expected 2 speakers, got %d", len(speakers))
	}
	for i, sp := range speakers {
		if sp.SpeakerIndex != i {
			t.Fatalf("expected ascending speaker indexes, got %d at %d", sp.SpeakerIndex, i)
		}
		if sp.SpeakerType != entities.SpeakerTypeUnknown {
			t.Fatalf("fresh speaker must start unknown, got %s", sp.SpeakerType)
		}
		if len(sp.Segments) != 1 {
			t.Fatalf("expected 1 segment per speaker, got %d", len(sp.Segments))
		}
	}
	if speakers[1].Segments[0].Text != "I got a natural twenty." {
		t.Fatalf("unexpected segment text %q", speakers[1].Segments[0].Text)
	}
}

func TestTranscribe_SecondAttemptRejected(t *testing.T) {
	env := newTestEnv(t)
	recording := env.upload(t, "Part 1")

	if _, err := env.service.Transcribe(context.Background(), recording.ID); err != nil {
		t.Fatalf("first transcription failed: %v", err)
	}

	_, err := env.service.Transcribe(context.Background(), recording.ID)
	if !errors.Is(err, usecaseErrors.ErrTranscriptionExists) {
		t.Fatalf("expected ErrTranscriptionExists, got %v", err)
	}
	if env.transcriber.calls != 1 {
		t.Fatalf("ASR must not be called again, got %d calls", env.transcriber.calls)
	}
}

func TestTranscribe_FailureMarkedAndRetryable(t *testing.T) {
	env := newTestEnv(t)
	recording := env.upload(t, "Part 1")

	env.transcriber.err = errors.New("asr unavailable")
	if _, err := env.service.Transcribe(context.Background(), recording.ID); err == nil {
		t.Fatal("expected error when ASR fails")
	}

	stored, err := env.transcriptions.FindByRecordingID(context.Background(), recording.ID)
	if err != nil || stored == nil {
		t.Fatalf("failed attempt must be recorded: %v", err)
	}
	if !stored.IsFailed() {
		t.Fatalf("expected failed status, got %s", stored.Status)
	}
	if stored.ErrorMessage == "" {
		t.Fatal("failure reason must be stored")
	}

	// A failed attempt does not block a retry
	env.transcriber.err = nil
	transcription, err := env.service.Transcribe(context.Background(), recording.ID)
	if err != nil {
		t.Fatalf("retry after failure must succeed: %v", err)
	}
	if !transcription.IsCompleted() {
		t.Fatalf("expected completed retry, got %s", transcription.Status)
	}
}

func TestGetTranscription_Missing(t *testing.T) {
	env := newTestEnv(t)
	recording := env.upload(t, "Part 1")

	_, err := env.service.GetTranscription(context.Background(), recording.ID)
	if !errors.Is(err, usecaseErrors.ErrTranscriptionMissing) {
		t.Fatalf("expected ErrTranscriptionMissing, got %v", err)
	}
}

func TestDeleteRecording_RemovesAudio(t *testing.T) {
	env := newTestEnv(t)
	recording := env.upload(t, "Part 1")

	if err := env.service.DeleteRecording(context.Background(), recording.ID); err != nil {
		t.Fatalf("DeleteRecording failed: %v", err)
	}
	if _, ok := env.store.objects[recording.StorageKey]; ok {
		t.Fatal("audio object must be deleted with the recording")
	}
	if _, err := env.service.GetRecording(context.Background(), recording.ID); !errors.Is(err, usecaseErrors.ErrRecordingNotFound) {
		t.Fatalf("expected ErrRecordingNotFound, got %v", err)
	}
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/campaign-scribe/campaign-scribe/errors"
	sessionDto "github.com/campaign-scribe/campaign-scribe/internal/adapter/dto/session"
	"github.com/campaign-scribe/campaign-scribe/internal/adapter/presenter"
	"github.com/campaign-scribe/campaign-scribe/internal/usecase/transcription"
)

// DefaultPauseThreshold is the silence gap, in seconds, above which
// consecutive segments of one speaker stay separate blocks in the
// conversation feed
const DefaultPauseThreshold = 3.0

// Recording handles recording upload, transcription and playback endpoints
type Recording struct {
	service *transcription.Service
	logger  *zap.Logger
}

// NewRecording creates a new recording handler
func NewRecording(service *transcription.Service, logger *zap.Logger) *Recording {
	return &Recording{service: service, logger: logger}
}

// Upload handles POST /sessions/:id/recordings. The audio file is read from
// the multipart field "audio".
func (h *Recording) Upload(c echo.Context) error {
	sessionID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("audio file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("open upload", err))
	}
	defer file.Close()

	recording, err := h.service.UploadRecording(c.Request().Context(), transcription.UploadRecordingInput{
		SessionID: sessionID,
		Name:      c.FormValue("name"),
		Filename:  fileHeader.Filename,
		MimeType:  fileHeader.Header.Get("Content-Type"),
		Size:      fileHeader.Size,
		Notes:     c.FormValue("notes"),
		Audio:     file,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusCreated, presenter.ToRecordingResponse(recording))
}

// Get handles GET /recordings/:id
func (h *Recording) Get(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	recording, err := h.service.GetRecording(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToRecordingResponse(recording))
}

// ListBySession handles GET /sessions/:id/recordings
func (h *Recording) ListBySession(c echo.Context) error {
	sessionID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	recordings, err := h.service.ListRecordings(c.Request().Context(), sessionID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToRecordingListResponse(recordings))
}

// Delete handles DELETE /recordings/:id
func (h *Recording) Delete(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.service.DeleteRecording(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Transcribe handles POST /recordings/:id/transcription
func (h *Recording) Transcribe(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	result, err := h.service.Transcribe(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusCreated, presenter.ToTranscriptionResponse(result))
}

// GetTranscription handles GET /recordings/:id/transcription
func (h *Recording) GetTranscription(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	result, err := h.service.GetTranscription(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToTranscriptionResponse(result))
}

// Conversation handles GET /recordings/:id/conversation. The pause_threshold
// query parameter (seconds) tunes how aggressively segments coalesce.
func (h *Recording) Conversation(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	pauseThreshold := DefaultPauseThreshold
	if raw := c.QueryParam("pause_threshold"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("pause_threshold must be a non-negative number"))
		}
		pauseThreshold = parsed
	}

	result, err := h.service.GetTranscription(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.BuildConversation(result, pauseThreshold))
}

// AudioURL handles GET /recordings/:id/audio. Returns a presigned URL for
// streaming the stored audio.
func (h *Recording) AudioURL(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	url, err := h.service.GetAudioURL(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, &sessionDto.AudioURLResponse{
		URL:       url,
		ExpiresIn: 3600,
	})
}

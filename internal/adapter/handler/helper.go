package handler

import (
	stdErrors "errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/campaign-scribe/campaign-scribe/errors"
	"github.com/campaign-scribe/campaign-scribe/internal/usecase/diarization"
	usecaseErrors "github.com/campaign-scribe/campaign-scribe/internal/usecase/errors"
)

// Response shapes
type success struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
	Info    string            `json:"info,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// parseUUIDParam reads and parses a UUID path parameter
func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument("invalid " + name)
	}
	return id, nil
}

// parseOptionalUUID parses an optional UUID string from a request body
func parseOptionalUUID(s *string, field string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, errors.ErrInvalidArgument("invalid " + field)
	}
	return &id, nil
}

// HandleSuccess writes a standardized success response
func HandleSuccess(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging. Usecase sentinel errors
// and diarization validation errors are translated to application errors
// before rendering.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)
	appErr := toAppError(err)

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Any("app_code", appErr.Code),
			zap.Error(err),
		)
	}

	info := ""
	if appErr.Raw != nil {
		info = appErr.Raw.Error()
	}

	body := errs{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
		Info:    info,
	}

	return c.JSON(appErr.HTTPCode, body)
}

// toAppError maps any error onto an AppError with the right HTTP status
func toAppError(err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var validationErr *diarization.ValidationError
	if stdErrors.As(err, &validationErr) {
		return errors.ErrValidation(validationErr.Field, validationErr.Message)
	}

	var extractionErr *diarization.ExtractionError
	if stdErrors.As(err, &extractionErr) {
		return errors.ErrExtractionFailed(extractionErr)
	}

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrCampaignNotFound):
		return errors.ErrNotFound("Campaign")
	case stdErrors.Is(err, usecaseErrors.ErrPlayerNotFound):
		return errors.ErrNotFound("Player")
	case stdErrors.Is(err, usecaseErrors.ErrCharacterNotFound):
		return errors.ErrNotFound("Character")
	case stdErrors.Is(err, usecaseErrors.ErrSessionNotFound):
		return errors.ErrNotFound("Session")
	case stdErrors.Is(err, usecaseErrors.ErrRecordingNotFound):
		return errors.ErrNotFound("Recording")
	case stdErrors.Is(err, usecaseErrors.ErrSpeakerNotFound):
		return errors.ErrNotFound("Speaker")
	case stdErrors.Is(err, usecaseErrors.ErrTranscriptionMissing):
		return errors.ErrNotFound("Transcription")
	case stdErrors.Is(err, usecaseErrors.ErrTranscriptionExists):
		return errors.ErrAlreadyExists("Transcription")
	case stdErrors.Is(err, usecaseErrors.ErrUnsupportedMimeType):
		return errors.ErrUnsupportedAudioFormat("")
	case stdErrors.Is(err, usecaseErrors.ErrRecordingEmpty):
		return errors.ErrInvalidArgument("recording file is empty")
	case stdErrors.Is(err, usecaseErrors.ErrSpeakerGroupEmpty):
		return errors.ErrInvalidArgument("group_key is required")
	case stdErrors.Is(err, usecaseErrors.ErrInvalidSpeakerType):
		return errors.ErrValidation("speaker_type", "must be one of dm, player, npc, unknown")
	case stdErrors.Is(err, usecaseErrors.ErrCharacterOwnership):
		return errors.ErrValidation("character_id", "character must belong to the selected player")
	case stdErrors.Is(err, usecaseErrors.ErrIdentityIncomplete):
		return errors.ErrValidation("player_id", "player is required when a character is assigned")
	}

	return errors.ErrInternal(err)
}

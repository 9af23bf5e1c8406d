package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/campaign-scribe/campaign-scribe/internal/domain/entities"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()
	if err := v.RegisterValidation("speaker_type", validateSpeakerType); err != nil {
		// Registration only fails on an empty tag or nil func
		panic(err)
	}
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// validateSpeakerType accepts the known speaker roles
func validateSpeakerType(fl validator.FieldLevel) bool {
	return entities.ValidSpeakerType(entities.SpeakerType(fl.Field().String()))
}

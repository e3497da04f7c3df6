package utils

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/vocadrill/practice-service/internal/errors"
	"github.com/vocadrill/practice-service/internal/exercise"
)

// Validator wraps a single validator/v10 instance with the project's custom
// rules registered.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()

	validate.RegisterValidation("exercise_type", validateExerciseType)
	validate.RegisterValidation("language_code", validateLanguageCode)

	// Report JSON field names in validation errors.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: validate}
}

// ValidateStruct validates struct tags and converts failures into the
// shared ValidationErrors type.
func (v *Validator) ValidateStruct(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		if converted := apperrors.ToValidationErrors(err); len(converted) > 0 {
			return converted
		}
		return err
	}
	return nil
}

func validateExerciseType(fl validator.FieldLevel) bool {
	switch exercise.ExerciseType(fl.Field().String()) {
	case exercise.TypeCloze, exercise.TypeQuiz, exercise.TypeMatch:
		return true
	}
	return false
}

// validateLanguageCode accepts two-letter ISO 639-1 codes.
func validateLanguageCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) != 2 {
		return false
	}
	for _, r := range code {
		if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

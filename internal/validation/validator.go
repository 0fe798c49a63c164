package validation

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"curriculum-forge/internal/document"
	"curriculum-forge/internal/domain"
	"curriculum-forge/internal/dto"
)

const (
	MaxNumParts          = 20
	MaxModulesPerRequest = 50
	maxExtraInstruction  = 2000
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateUpload validates the uploaded file name and the part count
func (v *Validator) ValidateUpload(filename string, numParts int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(filename) == "" {
		errors = append(errors, domain.NewMissingFieldError("file"))
	} else if _, ok := document.FormatFor(filename); !ok {
		errors = append(errors, domain.NewInvalidFormatError("file", filepath.Ext(filename)))
	}

	if numParts < 1 || numParts > MaxNumParts {
		errors = append(errors, domain.NewOutOfRangeError("num_parts", numParts, 1, MaxNumParts))
	}

	return errors
}

// ValidateQuizRequest validates the quiz generation request
func (v *Validator) ValidateQuizRequest(req *dto.QuizRequest) domain.ValidationErrors {
	errors := validateModules(req.Modules)

	if len(req.ExtraInstruction) > maxExtraInstruction {
		errors = append(errors, domain.NewOutOfRangeError("extra_instruction", len(req.ExtraInstruction), 0, maxExtraInstruction))
	}

	return errors
}

// ValidateAdaptiveQuizRequest validates the adaptive quiz request
func (v *Validator) ValidateAdaptiveQuizRequest(req *dto.AdaptiveQuizRequest) domain.ValidationErrors {
	errors := validateModules(req.Modules)

	if strings.TrimSpace(req.Student.StudentID) == "" {
		errors = append(errors, domain.NewMissingFieldError("student.student_id"))
	}

	if level := req.Student.Preferences.DifficultyLevel; level != nil && (*level < 0 || *level > 1) {
		errors = append(errors, domain.FieldError{
			Field:   "student.preferences.difficulty_level",
			Message: fmt.Sprintf("value %g out of range [0, 1]", *level),
		})
	}

	for _, topic := range slices.Sorted(maps.Keys(req.Student.Performance)) {
		perf := req.Student.Performance[topic]
		if perf.TotalAttempts < 0 || perf.CorrectAttempts < 0 || perf.CorrectAttempts > perf.TotalAttempts {
			errors = append(errors, domain.FieldError{
				Field:   fmt.Sprintf("student.performance[%s]", topic),
				Message: "correct_attempts must be between 0 and total_attempts",
			})
		}
	}

	return errors
}

func validateModules(modules []domain.Module) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if len(modules) == 0 {
		errors = append(errors, domain.NewMissingFieldError("modules"))
		return errors
	}
	if len(modules) > MaxModulesPerRequest {
		errors = append(errors, domain.NewOutOfRangeError("modules", len(modules), 1, MaxModulesPerRequest))
		return errors
	}

	for i, m := range modules {
		if strings.TrimSpace(m.Name) == "" {
			errors = append(errors, domain.NewMissingFieldError(fmt.Sprintf("modules[%d].name", i)))
		}
		if strings.TrimSpace(m.Content) == "" {
			errors = append(errors, domain.NewMissingFieldError(fmt.Sprintf("modules[%d].content", i)))
		}
	}

	return errors
}

package middleware

import (
	"strconv"

	"curriculum-forge/internal/domain"
	"curriculum-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by ValidateUploadParams.
const (
	NumPartsKey    = "validated_num_parts"
	WithQuizzesKey = "validated_with_quizzes"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator    *validation.Validator
	defaultParts int
}

// NewValidationMiddleware creates a new validation middleware instance.
// defaultParts applies when an upload carries no num_parts field.
func NewValidationMiddleware(defaultParts int) *ValidationMiddleware {
	if defaultParts < 1 {
		defaultParts = 1
	}
	return &ValidationMiddleware{
		validator:    validation.NewValidator(),
		defaultParts: defaultParts,
	}
}

// ValidateUploadParams validates the multipart fields of a document upload
func (vm *ValidationMiddleware) ValidateUploadParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var errors domain.ValidationErrors

		numParts := vm.defaultParts
		if raw := c.FormValue("num_parts"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				errors = append(errors, domain.NewInvalidFormatError("num_parts", raw))
			} else {
				numParts = n
			}
		}

		withQuizzes := false
		if raw := c.FormValue("with_quizzes"); raw != "" {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				errors = append(errors, domain.NewInvalidFormatError("with_quizzes", raw))
			}
			withQuizzes = b
		}

		filename := ""
		if fh, err := c.FormFile("file"); err == nil {
			filename = fh.Filename
		}

		if len(errors) == 0 {
			errors = vm.validator.ValidateUpload(filename, numParts)
		}
		if len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}

		// Store validated values in context for handlers to use
		c.Locals(NumPartsKey, numParts)
		c.Locals(WithQuizzesKey, withQuizzes)
		return c.Next()
	}
}

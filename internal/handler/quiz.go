package handler

import (
	"curriculum-forge/internal/domain"
	"curriculum-forge/internal/dto"
	"curriculum-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz generation HTTP requests
type QuizHandler struct {
	service   domain.IngestionService
	adaptive  domain.AdaptiveQuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service domain.IngestionService, adaptive domain.AdaptiveQuizService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		adaptive:  adaptive,
		validator: validation.NewValidator(),
	}
}

// GenerateQuizzes godoc
// @Summary Generate quizzes
// @Description Generates a quiz for every module, keeping request order
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.QuizRequest true "Modules"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /modules/quiz [post]
func (h *QuizHandler) GenerateQuizzes(c *fiber.Ctx) error {
	var req dto.QuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	if errs := h.validator.ValidateQuizRequest(&req); len(errs) > 0 {
		return errs
	}

	quizzes := h.service.GenerateQuizzes(c.UserContext(), req.Modules, req.ExtraInstruction)
	return c.JSON(dto.NewQuizResponse(quizzes))
}

// GenerateAdaptiveQuiz godoc
// @Summary Generate adaptive quizzes
// @Description Tailors quizzes to a student's difficulty preference, question types and weak topics
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.AdaptiveQuizRequest true "Student profile and modules"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /modules/adaptive-quiz [post]
func (h *QuizHandler) GenerateAdaptiveQuiz(c *fiber.Ctx) error {
	var req dto.AdaptiveQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	if errs := h.validator.ValidateAdaptiveQuizRequest(&req); len(errs) > 0 {
		return errs
	}

	ctx := c.UserContext()
	if req.WeakOnly {
		return c.JSON(dto.NewQuizResponse(h.adaptive.GenerateForWeakModules(ctx, req.Student, req.Modules)))
	}

	quizzes := make([]domain.ModuleQuiz, 0, len(req.Modules))
	for _, m := range req.Modules {
		quizzes = append(quizzes, h.adaptive.Generate(ctx, req.Student, m))
	}
	return c.JSON(dto.NewQuizResponse(quizzes))
}

package handler

import (
	"curriculum-forge/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the API under router.
func RegisterRoutes(router fiber.Router, documents *DocumentHandler, quizzes *QuizHandler, vm *middleware.ValidationMiddleware) {
	router.Get("/health", documents.Health)
	router.Post("/documents", vm.ValidateUploadParams(), documents.IngestDocument)

	modules := router.Group("/modules")
	modules.Post("/quiz", quizzes.GenerateQuizzes)
	modules.Post("/adaptive-quiz", quizzes.GenerateAdaptiveQuiz)
}

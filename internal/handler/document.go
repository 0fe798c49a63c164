package handler

import (
	"context"
	"time"

	"curriculum-forge/internal/domain"
	"curriculum-forge/internal/dto"
	"curriculum-forge/internal/logger"
	"curriculum-forge/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthPingTimeout = 2 * time.Second

// DocumentHandler handles document ingestion HTTP requests
type DocumentHandler struct {
	service domain.IngestionService
	cache   domain.Cache
}

// NewDocumentHandler creates a new DocumentHandler instance.
// cache may be nil when the response cache is disabled.
func NewDocumentHandler(service domain.IngestionService, cache domain.Cache) *DocumentHandler {
	return &DocumentHandler{
		service: service,
		cache:   cache,
	}
}

// IngestDocument godoc
// @Summary Ingest a document
// @Description Parses an uploaded PDF, DOCX, DOC or text file and extracts curriculum modules
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document"
// @Param num_parts formData int false "Number of parts processed independently"
// @Param with_quizzes formData bool false "Also generate a quiz per module"
// @Param extra_instruction formData string false "Appended to quiz prompts"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 415 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Router /documents [post]
func (h *DocumentHandler) IngestDocument(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("file")}
	}

	numParts, _ := c.Locals(middleware.NumPartsKey).(int)
	withQuizzes, _ := c.Locals(middleware.WithQuizzesKey).(bool)

	file, err := fileHeader.Open()
	if err != nil {
		return domain.NewInternalError("failed to open uploaded file", err)
	}
	defer file.Close()

	ctx := c.UserContext()
	result, err := h.service.ProcessUpload(ctx, fileHeader.Filename, file, numParts)
	if err != nil {
		return err
	}

	resp := dto.NewDocumentResponse(result)
	if withQuizzes && len(result.Modules) > 0 {
		resp.Quizzes = h.service.GenerateQuizzes(ctx, result.Modules, c.FormValue("extra_instruction"))
	}

	logger.Get().Info("Document ingested",
		zap.String("run_id", result.RunID),
		zap.String("filename", fileHeader.Filename),
		zap.Int("modules", len(resp.Modules)),
		zap.Int("failed_chunks", resp.FailedChunks),
		zap.Bool("with_quizzes", withQuizzes),
	)

	return c.JSON(resp)
}

// Health godoc
// @Summary Health check
// @Description Reports service status and, when configured, response cache reachability
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *DocumentHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{Status: "ok"}
	if h.cache == nil {
		return c.JSON(resp)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), healthPingTimeout)
	defer cancel()
	if err := h.cache.Ping(ctx); err != nil {
		logger.Get().Warn("Response cache ping failed", zap.Error(err))
		resp.Status = "degraded"
		resp.Cache = "unavailable"
		return c.JSON(resp)
	}
	resp.Cache = "ok"
	return c.JSON(resp)
}

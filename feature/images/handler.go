package images

import (
	"errors"
	"strings"

	"product-images/core/logger"
	"product-images/feature/images/persistence"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for image linking.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the image routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/images")
	group.Post("/batch", h.HandleBatch)
	group.Post("/cache/warmup", h.HandleWarmup)
	group.Delete("/cache", h.HandleClearCache)
	group.Post("/:code", h.HandleProcess)
}

type batchRequest struct {
	Codes []string `json:"codes"`
}

// HandleProcess links the images of a single product code.
func (h *Handler) HandleProcess(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	code := strings.TrimSpace(c.Params("code"))

	linked, err := h.service.ProcessCode(c.Context(), code)
	if errors.Is(err, ErrEmptyCode) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Image linking failed", zap.String("code", code), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"code":   code,
		"linked": linked,
	})
}

// HandleBatch links the images of every code in the request body.
func (h *Handler) HandleBatch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req batchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(uniqueCodes(req.Codes)) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No product codes given"})
	}

	l.Info("Starting batch", zap.Int("codes", len(req.Codes)))
	report, err := h.service.ProcessAll(c.Context(), req.Codes)
	if errors.Is(err, persistence.ErrUnsupportedBackend) {
		l.Error("Batch aborted", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Warn("Batch finished with failures", zap.Int("failed", len(report.Failed)))
	}

	return c.JSON(report)
}

// HandleWarmup preloads the folder cache.
func (h *Handler) HandleWarmup(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	inserted, err := h.service.Warmup(c.Context())
	if err != nil {
		l.Error("Cache warmup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"status":   "warmed",
		"inserted": inserted,
	})
}

// HandleClearCache drops every cached folder reference.
func (h *Handler) HandleClearCache(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.ClearCache(c.Context()); err != nil {
		l.Error("Cache clear failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "cleared"})
}

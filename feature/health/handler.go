package health

import (
	"errors"

	"order-menu/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var errNoDatabase = errors.New("database connection not configured")

// Handler handles health probes.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the health route.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/health", h.HandleHealth)
}

// HandleHealth reports whether the store is reachable.
// @Summary Health Check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string "status ok"
// @Failure 500 {object} map[string]string "status error"
// @Router /api/health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	if err := h.service.Check(c.UserContext()); err != nil {
		logger.WithRayID(h.service.logger, c).Warn("Health check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"status":  "ok",
		"message": "Database connection successful",
	})
}

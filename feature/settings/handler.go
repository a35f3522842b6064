package settings

import (
	"order-menu/core/apperr"
	"order-menu/core/database"
	"order-menu/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for settings.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the settings routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/settings")
	group.Get("/hiddenRestaurants", h.HandleGetHiddenRestaurants)
	group.Put("/hiddenRestaurants", h.HandlePutHiddenRestaurants)
}

// HiddenRestaurantsBody is the body of both hidden restaurants endpoints.
type HiddenRestaurantsBody struct {
	Restaurants database.JSON `json:"restaurants" swaggertype:"array,string"`
}

// HandleGetHiddenRestaurants returns the hidden restaurants list.
// @Summary Get Hidden Restaurants
// @Tags settings
// @Produce json
// @Success 200 {object} HiddenRestaurantsBody
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/settings/hiddenRestaurants [get]
func (h *Handler) HandleGetHiddenRestaurants(c *fiber.Ctx) error {
	restaurants, err := h.service.HiddenRestaurants(c.UserContext())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to fetch hidden restaurants", zap.Error(err))
		return apperr.Respond(c, err)
	}
	return c.JSON(HiddenRestaurantsBody{Restaurants: restaurants})
}

// HandlePutHiddenRestaurants replaces the hidden restaurants list.
// @Summary Save Hidden Restaurants
// @Tags settings
// @Accept json
// @Produce json
// @Param body body HiddenRestaurantsBody true "Restaurant names"
// @Success 200 {object} map[string]interface{} "success and message"
// @Failure 400 {object} map[string]string "Restaurants must be an array"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/settings/hiddenRestaurants [put]
func (h *Handler) HandlePutHiddenRestaurants(c *fiber.Ctx) error {
	var body HiddenRestaurantsBody
	if err := c.BodyParser(&body); err != nil {
		return apperr.Respond(c, apperr.Validation("Restaurants must be an array"))
	}

	if err := h.service.SetHiddenRestaurants(c.UserContext(), body.Restaurants); err != nil {
		if apperr.Status(err) == fiber.StatusInternalServerError {
			logger.WithRayID(h.service.logger, c).Error("Failed to save hidden restaurants", zap.Error(err))
		}
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Hidden restaurants saved"})
}

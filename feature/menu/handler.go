package menu

import (
	"encoding/json"
	"fmt"

	"order-menu/core/apperr"
	"order-menu/core/logger"
	"order-menu/core/utils"
	"order-menu/feature/menu/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for menu items.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the menu routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/menu-items")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleSave)
}

// ListResponse is the body returned by HandleList.
type ListResponse struct {
	Items []models.Item `json:"items"`
}

// SaveRequest is the body accepted by HandleSave.
type SaveRequest struct {
	Items     json.RawMessage `json:"items" swaggertype:"array,object"`
	Migration any             `json:"migration"`
}

// HandleList returns every menu item.
// @Summary List Menu Items
// @Description Returns all menu items ordered by id.
// @Tags menu
// @Produce json
// @Success 200 {object} ListResponse
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/menu-items [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to fetch menu items", zap.Error(err))
		return apperr.Respond(c, err)
	}
	return c.JSON(ListResponse{Items: items})
}

// HandleSave replaces the menu with the submitted items.
// @Summary Save Menu Items
// @Description Replaces all menu items. With migration=true (query or body) existing items are kept and the batch is added.
// @Tags menu
// @Accept json
// @Produce json
// @Param migration query bool false "Keep existing items"
// @Param body body SaveRequest true "Menu items"
// @Success 200 {object} map[string]interface{} "success and message"
// @Failure 400 {object} map[string]string "Items must be an array"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/menu-items [post]
func (h *Handler) HandleSave(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req SaveRequest
	if err := c.BodyParser(&req); err != nil || !utils.IsJSONArray(req.Items) {
		return apperr.Respond(c, apperr.Validation("Items must be an array"))
	}

	var items []models.Input
	if err := json.Unmarshal(req.Items, &items); err != nil {
		return apperr.Respond(c, apperr.Validation("Items must be an array of objects"))
	}

	migration := c.Query("migration") == "true"
	if flag, ok := req.Migration.(bool); ok && flag {
		migration = true
	}

	res, err := h.service.SaveBatch(c.UserContext(), items, migration)
	if err != nil {
		l.Error("Failed to save menu items", zap.Error(err))
		return apperr.Respond(c, err)
	}

	l.Info("Menu items saved",
		zap.Int("count", res.Count),
		zap.Bool("migration", migration),
		zap.Int("reassigned", res.Reassigned),
	)
	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Saved %d menu items", res.Count),
	})
}

package orders

import (
	"encoding/json"
	"fmt"

	"order-menu/core/apperr"
	"order-menu/core/logger"
	"order-menu/core/utils"
	"order-menu/feature/orders/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for orders.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the order routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/orders")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleSave)
	group.Post("/batch", h.HandleSaveBatch)
	group.Delete("/", h.HandleDeleteAll)
	group.Delete("/:id", h.HandleDelete)
}

// ListResponse is the body returned by HandleList.
type ListResponse struct {
	Orders []models.Order `json:"orders"`
}

// SaveRequest is the body accepted by HandleSave.
type SaveRequest struct {
	Order *models.Input `json:"order"`
}

// SaveBatchRequest is the body accepted by HandleSaveBatch.
type SaveBatchRequest struct {
	Orders json.RawMessage `json:"orders" swaggertype:"array,object"`
}

// HandleList returns every order, newest first.
// @Summary List Orders
// @Description Returns all orders ordered by creation time, newest first.
// @Tags orders
// @Produce json
// @Success 200 {object} ListResponse
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/orders [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	orders, err := h.service.List(c.UserContext())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to fetch orders", zap.Error(err))
		return apperr.Respond(c, err)
	}
	return c.JSON(ListResponse{Orders: orders})
}

// HandleSave upserts a single order.
// @Summary Save Order
// @Description Inserts an order, or updates it when its id already exists.
// @Tags orders
// @Accept json
// @Produce json
// @Param body body SaveRequest true "Order"
// @Success 200 {object} map[string]interface{} "success and id"
// @Failure 400 {object} map[string]string "Order is required"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/orders [post]
func (h *Handler) HandleSave(c *fiber.Ctx) error {
	var req SaveRequest
	if err := c.BodyParser(&req); err != nil || req.Order == nil {
		return apperr.Respond(c, apperr.Validation("Order is required"))
	}

	id, err := h.service.Save(c.UserContext(), *req.Order)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to save order", zap.Error(err))
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "id": id})
}

// HandleSaveBatch makes the stored orders match the submitted list.
// @Summary Save Orders Batch
// @Description Deletes stored orders missing from the list and upserts the rest.
// @Tags orders
// @Accept json
// @Produce json
// @Param body body SaveBatchRequest true "Orders"
// @Success 200 {object} map[string]interface{} "success and message"
// @Failure 400 {object} map[string]string "Orders must be an array"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/orders/batch [post]
func (h *Handler) HandleSaveBatch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req SaveBatchRequest
	if err := c.BodyParser(&req); err != nil || !utils.IsJSONArray(req.Orders) {
		return apperr.Respond(c, apperr.Validation("Orders must be an array"))
	}

	var orders []models.Input
	if err := json.Unmarshal(req.Orders, &orders); err != nil {
		return apperr.Respond(c, apperr.Validation("Orders must be an array of objects"))
	}

	res, err := h.service.SaveBatch(c.UserContext(), orders)
	if err != nil {
		l.Error("Failed to save orders batch", zap.Error(err))
		return apperr.Respond(c, err)
	}

	l.Info("Orders saved",
		zap.Int("count", res.Count),
		zap.Int64("deleted", res.Deleted),
		zap.Int("reassigned", res.Reassigned),
	)
	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Saved %d orders", res.Count),
	})
}

// HandleDelete removes one order.
// @Summary Delete Order
// @Tags orders
// @Produce json
// @Param id path string true "Order id"
// @Success 200 {object} map[string]interface{} "success and message"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/orders/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		if apperr.Status(err) == fiber.StatusInternalServerError {
			logger.WithRayID(h.service.logger, c).Error("Failed to delete order", zap.Error(err))
		}
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Order deleted"})
}

// HandleDeleteAll removes every order.
// @Summary Delete All Orders
// @Tags orders
// @Produce json
// @Success 200 {object} map[string]interface{} "success and message"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/orders [delete]
func (h *Handler) HandleDeleteAll(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	deleted, err := h.service.DeleteAll(c.UserContext())
	if err != nil {
		l.Error("Failed to clear orders", zap.Error(err))
		return apperr.Respond(c, err)
	}

	l.Info("Orders cleared", zap.Int64("deleted", deleted))
	return c.JSON(fiber.Map{"success": true, "message": "All orders deleted"})
}

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Learnspoint11/moryastationery/internal/middleware"
	"github.com/Learnspoint11/moryastationery/internal/models"
	"github.com/Learnspoint11/moryastationery/internal/services"
	"github.com/Learnspoint11/moryastationery/internal/utils"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	orders *services.OrderService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type orderItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type createOrderRequest struct {
	Items         []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string             `json:"paymentMethod"`
}

// CreateOrder places an order for the verified session user.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Login required")
	}

	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Order must contain items with positive quantities")
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.orders.Place(c.Context(), userID, items, req.PaymentMethod)
	if err != nil {
		if errors.Is(err, services.ErrInvalidOrder) {
			return fiber.NewError(fiber.StatusBadRequest, "Order must contain items with positive quantities")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Order failed")
	}

	return c.JSON(fiber.Map{"message": "Order placed", "order": order})
}

// ListOrders returns the session user's orders, newest first.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Login required")
	}

	orders, err := h.orders.ListByUser(c.Context(), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Could not load orders")
	}

	return c.JSON(orders)
}

// TrackOrder returns the tracking view of a single order. Anyone holding
// the id may call it.
func (h *OrderHandler) TrackOrder(c *fiber.Ctx) error {
	order, err := h.orders.Track(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Error fetching order")
	}

	return c.JSON(fiber.Map{
		"orderId":       order.ID,
		"status":        order.Status,
		"items":         order.Items,
		"paymentMethod": order.PaymentMethod,
		"createdAt":     order.CreatedAt,
	})
}

package handlers

import (
	"errors"
	"fmt"
	"log"

	"campusbazaar/internal/middleware"
	"campusbazaar/internal/models"
	"campusbazaar/internal/repositories"
	"campusbazaar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders and seller order splits.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Patch("/:id/status", middleware.RoleRequired(models.RoleAdmin), h.HandleUpdateOrderStatus)

	sellerRoutes := router.Group("/seller/orders", middleware.RoleRequired(models.RoleRetailer, models.RoleWholesaler))
	sellerRoutes.Get("/", h.HandleGetSellerEntries)
}

// HandleGetOrders retrieves the authenticated user's order history; admins see
// every order.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	var (
		orders []models.Order
		err    error
	)
	role, _ := c.Locals("role").(string)
	if models.Role(role) == models.RoleAdmin {
		orders, err = h.service.GetAllOrders()
	} else {
		orders, err = h.service.GetOrdersByUser(middleware.UserID(c))
	}
	if err != nil {
		log.Printf("Error getting orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order for the confirmation view. Users
// may only read their own orders.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}

	role, _ := c.Locals("role").(string)
	if order.UserID != middleware.UserID(c) && models.Role(role) != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Cannot view another user's order",
		})
	}
	return c.JSON(order)
}

// UpdateOrderStatusRequest is the admin status-transition request body.
type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// HandleUpdateOrderStatus moves an order along the fulfillment lifecycle.
// Admin only.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	if err := h.service.UpdateOrderStatus(orderID, req.Status); err != nil {
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not update order status",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Order %s status updated successfully to %s", orderID, req.Status),
	})
}

// HandleGetSellerEntries retrieves the order splits routed to the
// authenticated seller.
func (h *OrderHandler) HandleGetSellerEntries(c *fiber.Ctx) error {
	entries, err := h.service.GetSellerEntries(middleware.UserID(c))
	if err != nil {
		log.Printf("Error getting seller entries: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve seller orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(entries)
}

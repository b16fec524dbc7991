package handlers

import (
	"errors"
	"log"

	"campusbazaar/internal/middleware"
	"campusbazaar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles HTTP requests for checkout and the payment gateway
// callback.
type CheckoutHandler struct {
	checkout     *services.CheckoutService
	orderService *services.OrderService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkout *services.CheckoutService, orderService *services.OrderService) *CheckoutHandler {
	return &CheckoutHandler{
		checkout:     checkout,
		orderService: orderService,
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	checkoutRoutes := router.Group("/checkout")
	checkoutRoutes.Post("/", h.HandleCheckout)
	checkoutRoutes.Get("/pickup-locations", h.HandlePickupLocations)
}

// RegisterCallbackRoute registers the gateway callback outside the
// authenticated group: the gateway calls it, not the shopper.
func (h *CheckoutHandler) RegisterCallbackRoute(router fiber.Router) {
	router.Post("/payments/callback", h.HandlePaymentCallback)
}

// HandleCheckout runs the checkout sequence for the authenticated session.
// Validation failures return 400 with no store mutation; insufficient stock
// returns 409 with the cart left intact for retry.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	userID := middleware.UserID(c)
	result, err := h.checkout.Checkout(userID, req)
	if err != nil {
		log.Printf("Checkout failed for user %s: %v", userID, err)
		switch {
		case errors.Is(err, services.ErrTermsNotAccepted),
			errors.Is(err, services.ErrAddressIncomplete),
			errors.Is(err, services.ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Checkout rejected",
				"error":   err.Error(),
			})
		case errors.Is(err, services.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Order could not be placed due to insufficient stock. Your cart is unchanged.",
				"error":   err.Error(),
			})
		case errors.Is(err, services.ErrPaymentFailed):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"message": "Payment could not be processed. No order was placed.",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not place order. Your cart is unchanged.",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// HandlePickupLocations lists one pickup location per distinct seller in the
// session's cart.
func (h *CheckoutHandler) HandlePickupLocations(c *fiber.Ctx) error {
	locations, err := h.checkout.PickupLocations(middleware.UserID(c))
	if err != nil {
		log.Printf("Error deriving pickup locations: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not derive pickup locations",
			"error":   err.Error(),
		})
	}
	return c.JSON(locations)
}

// PaymentCallbackRequest is the gateway's success notification.
type PaymentCallbackRequest struct {
	OrderID   string `json:"order_id"`
	Reference string `json:"reference"`
}

// HandlePaymentCallback marks an order paid once the gateway confirms the
// hosted payment completed.
func (h *CheckoutHandler) HandlePaymentCallback(c *fiber.Ctx) error {
	var req PaymentCallbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.OrderID == "" || req.Reference == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "order_id and reference are required",
		})
	}

	if err := h.orderService.MarkOrderPaid(req.OrderID, req.Reference); err != nil {
		log.Printf("Payment callback failed for order %s: %v", req.OrderID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not confirm payment",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Payment confirmed",
	})
}

package handlers

import (
	"errors"
	"log"

	"campusbazaar/internal/middleware"
	"campusbazaar/internal/repositories"
	"campusbazaar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the session cart.
type CartHandler struct {
	cart *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cart *services.CartService) *CartHandler {
	return &CartHandler{
		cart: cart,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:lineId", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:lineId", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// AddItemRequest is the add-to-cart request body. Quantity defaults to 1 when
// omitted.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// HandleGetCart returns the session's cart lines and derived item count.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	return c.JSON(fiber.Map{
		"lines":      h.cart.Lines(userID),
		"item_count": h.cart.ItemCount(userID),
	})
}

// HandleAddItem adds a product to the cart, merging into an existing line for
// the same product.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "product_id is required",
		})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	userID := middleware.UserID(c)
	line, err := h.cart.AddToCart(userID, req.ProductID, req.Quantity)
	if err != nil {
		log.Printf("Error adding product %s to cart: %v", req.ProductID, err)
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		case errors.Is(err, services.ErrInvalidQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Quantity must be at least 1",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add item to cart",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"line":       line,
		"item_count": h.cart.ItemCount(userID),
	})
}

// UpdateQuantityRequest is the quantity-update request body.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleUpdateQuantity sets a cart line's quantity.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	userID := middleware.UserID(c)
	if err := h.cart.UpdateQuantity(userID, c.Params("lineId"), req.Quantity); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Quantity must be at least 1",
			})
		case errors.Is(err, services.ErrCartLineNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cart line not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart line",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"lines":      h.cart.Lines(userID),
		"item_count": h.cart.ItemCount(userID),
	})
}

// HandleRemoveItem removes a cart line. Removing an absent line succeeds.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	h.cart.RemoveLine(userID, c.Params("lineId"))
	return c.JSON(fiber.Map{
		"lines":      h.cart.Lines(userID),
		"item_count": h.cart.ItemCount(userID),
	})
}

// HandleClearCart empties the session's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	h.cart.Clear(middleware.UserID(c))
	return c.JSON(fiber.Map{
		"message": "Cart cleared",
	})
}

package handlers

import (
	"errors"
	"log"

	"campusbazaar/internal/middleware"
	"campusbazaar/internal/models"
	"campusbazaar/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AddressHandler handles HTTP requests for the user's delivery address.
type AddressHandler struct {
	addressRepo repositories.AddressRepository
	validate    *validator.Validate
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(addressRepo repositories.AddressRepository) *AddressHandler {
	return &AddressHandler{
		addressRepo: addressRepo,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the address routes with the Fiber app.
func (h *AddressHandler) RegisterRoutes(router fiber.Router) {
	addressRoutes := router.Group("/profile/address")
	addressRoutes.Get("/", h.HandleGetAddress)
	addressRoutes.Put("/", h.HandleSaveAddress)
}

// HandleGetAddress returns the authenticated user's address, or 404 if none
// has been saved yet.
func (h *AddressHandler) HandleGetAddress(c *fiber.Ctx) error {
	address, err := h.addressRepo.GetByUserID(middleware.UserID(c))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "No address saved",
			})
		}
		log.Printf("Error getting address: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve address",
			"error":   err.Error(),
		})
	}
	return c.JSON(address)
}

// HandleSaveAddress fully replaces the authenticated user's address. There is
// no partial update; every save must carry the complete address.
func (h *AddressHandler) HandleSaveAddress(c *fiber.Ctx) error {
	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	address.UserID = middleware.UserID(c)

	if err := h.validate.Struct(address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	if err := h.addressRepo.Upsert(&address); err != nil {
		log.Printf("Error saving address: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save address",
			"error":   err.Error(),
		})
	}
	return c.JSON(address)
}

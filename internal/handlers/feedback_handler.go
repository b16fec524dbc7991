package handlers

import (
	"log"

	"campusbazaar/internal/middleware"
	"campusbazaar/internal/models"
	"campusbazaar/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// FeedbackHandler handles HTTP requests for product feedback.
type FeedbackHandler struct {
	feedbackRepo repositories.FeedbackRepository
	validate     *validator.Validate
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackRepo repositories.FeedbackRepository) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackRepo: feedbackRepo,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the feedback routes with the Fiber app.
func (h *FeedbackHandler) RegisterRoutes(router fiber.Router) {
	feedbackRoutes := router.Group("/feedback")
	feedbackRoutes.Post("/", h.HandleCreateFeedback)
	feedbackRoutes.Get("/product/:productId", h.HandleGetProductFeedback)
}

// HandleCreateFeedback records the authenticated user's rating for a product.
func (h *FeedbackHandler) HandleCreateFeedback(c *fiber.Ctx) error {
	var feedback models.Feedback
	if err := c.BodyParser(&feedback); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	feedback.UserID = middleware.UserID(c)

	if err := h.validate.Struct(feedback); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	if err := h.feedbackRepo.Create(&feedback); err != nil {
		log.Printf("Error creating feedback: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save feedback",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(feedback)
}

// HandleGetProductFeedback lists feedback for a product.
func (h *FeedbackHandler) HandleGetProductFeedback(c *fiber.Ctx) error {
	feedback, err := h.feedbackRepo.GetByProduct(c.Params("productId"))
	if err != nil {
		log.Printf("Error getting feedback: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve feedback",
			"error":   err.Error(),
		})
	}
	return c.JSON(feedback)
}

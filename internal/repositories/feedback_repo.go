package repositories

import (
	"fmt"
	"sync"
	"time"

	"campusbazaar/internal/models"

	"gorm.io/gorm"
)

// FeedbackRepository defines the interface for product feedback data access.
type FeedbackRepository interface {
	Create(feedback *models.Feedback) error
	GetByProduct(productID string) ([]models.Feedback, error)
}

// GORMFeedbackRepository is a GORM implementation of FeedbackRepository.
type GORMFeedbackRepository struct {
	db *gorm.DB
}

// NewGORMFeedbackRepository creates a new instance of GORMFeedbackRepository.
func NewGORMFeedbackRepository(db *gorm.DB) *GORMFeedbackRepository {
	return &GORMFeedbackRepository{
		db: db,
	}
}

// Create inserts a feedback row.
func (r *GORMFeedbackRepository) Create(feedback *models.Feedback) error {
	if err := r.db.Create(feedback).Error; err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

// GetByProduct retrieves all feedback for a product, newest first.
func (r *GORMFeedbackRepository) GetByProduct(productID string) ([]models.Feedback, error) {
	var feedback []models.Feedback
	if err := r.db.Order("created_at DESC").Find(&feedback, "product_id = ?", productID).Error; err != nil {
		return nil, fmt.Errorf("failed to get feedback for product %s: %w", productID, err)
	}
	return feedback, nil
}

// MockFeedbackRepository is an in-memory implementation of FeedbackRepository.
type MockFeedbackRepository struct {
	feedback []models.Feedback
	mu       sync.RWMutex
}

// NewMockFeedbackRepository creates a new instance of MockFeedbackRepository.
func NewMockFeedbackRepository() *MockFeedbackRepository {
	return &MockFeedbackRepository{}
}

// Create adds a feedback row.
func (r *MockFeedbackRepository) Create(feedback *models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	feedback.ID = uint(len(r.feedback) + 1)
	feedback.CreatedAt = time.Now()
	r.feedback = append(r.feedback, *feedback)
	return nil
}

// GetByProduct returns all feedback for a product.
func (r *MockFeedbackRepository) GetByProduct(productID string) ([]models.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Feedback
	for _, f := range r.feedback {
		if f.ProductID == productID {
			out = append(out, f)
		}
	}
	return out, nil
}

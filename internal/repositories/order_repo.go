package repositories

import (
	"campusbazaar/internal/models"
)

// OrderRepository defines the interface for order data access.
//
// Create persists the order, its line snapshots, and its per-seller entries as
// one unit: either all of them commit or none do. Keeping the seller entries in
// the same write closes the gap where an order could exist with no seller
// routing.
type OrderRepository interface {
	Create(order *models.Order, entries []models.SellerOrderEntry) error
	GetByID(id string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	// GetByIdempotencyKey returns the order created by a previous attempt
	// bearing the same key, or ErrNotFound.
	GetByIdempotencyKey(key string) (*models.Order, error)
	GetAll() ([]models.Order, error)
	UpdateStatus(id string, status models.OrderStatus) error
	UpdatePaymentStatus(id string, status models.PaymentStatus, reference string) error
	GetSellerEntries(sellerID string) ([]models.SellerOrderEntry, error)
}

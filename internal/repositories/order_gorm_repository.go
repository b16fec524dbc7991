package repositories

import (
	"fmt"

	"campusbazaar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create inserts the order (with its line snapshots via GORM association) and
// the seller entries inside one transaction. A failure on either insert rolls
// back both, so no order can exist without its seller routing and vice versa.
func (r *GORMOrderRepository) Create(order *models.Order, entries []models.SellerOrderEntry) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range entries {
		entries[i].OrderID = order.ID
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}
		if len(entries) > 0 {
			if err := tx.Create(&entries).Error; err != nil {
				return fmt.Errorf("failed to insert seller order entries: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves a single order with its line snapshots.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Lines").First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetByUser retrieves all orders placed by the given user, newest first.
func (r *GORMOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Lines").Order("created_at DESC").Find(&orders, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// GetByIdempotencyKey retrieves the order created under the given checkout
// attempt key, if any.
func (r *GORMOrderRepository) GetByIdempotencyKey(key string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Lines").First(&order, "idempotency_key = ?", key).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order for idempotency key: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by idempotency key: %w", err)
	}
	return &order, nil
}

// GetAll retrieves all orders. Admin use only.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Lines").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets the fulfillment status of an order.
func (r *GORMOrderRepository) UpdateStatus(id string, status models.OrderStatus) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status for order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s for status update: %w", id, ErrNotFound)
	}
	return nil
}

// UpdatePaymentStatus sets the payment status and, when non-empty, the gateway
// reference on an order. Called from the payment callback.
func (r *GORMOrderRepository) UpdatePaymentStatus(id string, status models.PaymentStatus, reference string) error {
	updates := map[string]interface{}{"payment_status": status}
	if reference != "" {
		updates["payment_reference"] = reference
	}
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update payment status for order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s for payment status update: %w", id, ErrNotFound)
	}
	return nil
}

// GetSellerEntries retrieves all order splits routed to the given seller,
// newest first.
func (r *GORMOrderRepository) GetSellerEntries(sellerID string) ([]models.SellerOrderEntry, error) {
	var entries []models.SellerOrderEntry
	if err := r.db.Order("created_at DESC").Find(&entries, "seller_id = ?", sellerID).Error; err != nil {
		return nil, fmt.Errorf("failed to get seller entries for seller %s: %w", sellerID, err)
	}
	return entries, nil
}

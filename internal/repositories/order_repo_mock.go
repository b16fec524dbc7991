package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"campusbazaar/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders  map[string]models.Order
	entries []models.SellerOrderEntry
	mu      sync.RWMutex

	// FailCreate forces the next Create call to return an error; used to
	// exercise the stock-compensation path in tests.
	FailCreate bool
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create adds a new order and its seller entries atomically under one lock.
func (r *MockOrderRepository) Create(order *models.Order, entries []models.SellerOrderEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailCreate {
		r.FailCreate = false
		return fmt.Errorf("failed to create order: simulated store failure")
	}

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for _, existing := range r.orders {
		if existing.IdempotencyKey == order.IdempotencyKey {
			return fmt.Errorf("failed to create order: duplicate idempotency key")
		}
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order

	for i := range entries {
		entries[i].OrderID = order.ID
		entries[i].ID = uint(len(r.entries) + 1)
		entries[i].CreatedAt = time.Now()
		r.entries = append(r.entries, entries[i])
	}
	return nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return &order, nil
}

// GetByUser returns all orders placed by the given user, newest first.
func (r *MockOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orderList []models.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			orderList = append(orderList, order)
		}
	}
	sort.Slice(orderList, func(i, j int) bool {
		return orderList[i].CreatedAt.After(orderList[j].CreatedAt)
	})
	return orderList, nil
}

// GetByIdempotencyKey returns the order created under the given key, if any.
func (r *MockOrderRepository) GetByIdempotencyKey(key string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.orders {
		if order.IdempotencyKey == key {
			o := order
			return &o, nil
		}
	}
	return nil, fmt.Errorf("order for idempotency key: %w", ErrNotFound)
}

// GetAll returns all orders.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	return orderList, nil
}

// UpdateStatus updates the fulfillment status of an order.
func (r *MockOrderRepository) UpdateStatus(id string, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order %s for status update: %w", id, ErrNotFound)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// UpdatePaymentStatus updates the payment status and reference of an order.
func (r *MockOrderRepository) UpdatePaymentStatus(id string, status models.PaymentStatus, reference string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order %s for payment status update: %w", id, ErrNotFound)
	}
	order.PaymentStatus = status
	if reference != "" {
		order.PaymentReference = reference
	}
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// GetSellerEntries returns all order splits routed to the given seller.
func (r *MockOrderRepository) GetSellerEntries(sellerID string) ([]models.SellerOrderEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var entryList []models.SellerOrderEntry
	for _, entry := range r.entries {
		if entry.SellerID == sellerID {
			entryList = append(entryList, entry)
		}
	}
	return entryList, nil
}

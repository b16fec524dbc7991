package repositories

import (
	"fmt"
	"sync"
	"time"

	"campusbazaar/internal/models"
)

// MockAddressRepository is an in-memory implementation of AddressRepository.
type MockAddressRepository struct {
	addresses map[string]models.Address
	mu        sync.RWMutex
}

// NewMockAddressRepository creates a new instance of MockAddressRepository.
func NewMockAddressRepository() *MockAddressRepository {
	return &MockAddressRepository{
		addresses: make(map[string]models.Address),
	}
}

// Upsert inserts or fully replaces the address for the user.
func (r *MockAddressRepository) Upsert(address *models.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	address.UpdatedAt = time.Now()
	if existing, ok := r.addresses[address.UserID]; ok {
		address.CreatedAt = existing.CreatedAt
	} else {
		address.CreatedAt = address.UpdatedAt
	}
	r.addresses[address.UserID] = *address
	return nil
}

// GetByUserID returns the user's address, or ErrNotFound.
func (r *MockAddressRepository) GetByUserID(userID string) (*models.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	address, ok := r.addresses[userID]
	if !ok {
		return nil, fmt.Errorf("address for user %s: %w", userID, ErrNotFound)
	}
	return &address, nil
}

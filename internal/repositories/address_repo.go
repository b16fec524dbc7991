package repositories

import (
	"campusbazaar/internal/models"
)

// AddressRepository defines the interface for delivery-address data access.
// Each user has at most one address; Upsert always replaces the whole row.
type AddressRepository interface {
	Upsert(address *models.Address) error
	GetByUserID(userID string) (*models.Address, error)
}

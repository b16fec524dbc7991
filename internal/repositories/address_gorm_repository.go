package repositories

import (
	"fmt"

	"campusbazaar/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMAddressRepository is a GORM implementation of AddressRepository.
type GORMAddressRepository struct {
	db *gorm.DB
}

// NewGORMAddressRepository creates a new instance of GORMAddressRepository.
func NewGORMAddressRepository(db *gorm.DB) *GORMAddressRepository {
	return &GORMAddressRepository{
		db: db,
	}
}

// Upsert inserts the address or fully replaces the existing row for the same
// user. There is no partial patch: every save carries the complete address.
func (r *GORMAddressRepository) Upsert(address *models.Address) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(address).Error
	if err != nil {
		return fmt.Errorf("failed to upsert address for user %s: %w", address.UserID, err)
	}
	return nil
}

// GetByUserID retrieves a user's address, or ErrNotFound if none saved yet.
func (r *GORMAddressRepository) GetByUserID(userID string) (*models.Address, error) {
	var address models.Address
	if err := r.db.First(&address, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("address for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get address for user %s: %w", userID, err)
	}
	return &address, nil
}

package repositories

import (
	"campusbazaar/internal/models"
)

// ProductRepository defines the interface for product data access.
//
// DecrementStock is the only stock mutation the checkout path may use: it is a
// single conditional update so two concurrent checkouts can never both succeed
// in over-drawing stock below zero. IncrementStock exists to compensate a
// decrement when a later finalization step fails.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetByTheme(theme string) ([]models.Product, error)
	Search(query string) ([]models.Product, error)
	GetBySeller(sellerID string) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	// DecrementStock atomically subtracts quantity from the product's stock
	// only if enough stock remains. Returns the number of rows affected:
	// 0 means insufficient stock or no such product.
	DecrementStock(id string, quantity int) (int64, error)
	// IncrementStock adds quantity back to the product's stock.
	IncrementStock(id string, quantity int) error
}

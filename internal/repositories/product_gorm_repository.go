package repositories

import (
	"fmt"

	"campusbazaar/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// GetByTheme retrieves all products tagged with the given decor theme.
func (r *GORMProductRepository) GetByTheme(theme string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products, "theme = ?", theme).Error; err != nil {
		return nil, fmt.Errorf("failed to get products for theme %s: %w", theme, err)
	}
	return products, nil
}

// Search retrieves products whose name or description contains the query.
func (r *GORMProductRepository) Search(query string) ([]models.Product, error) {
	var products []models.Product
	pattern := "%" + query + "%"
	if err := r.db.Where("name LIKE ? OR description LIKE ?", pattern, pattern).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to search products for %q: %w", query, err)
	}
	return products, nil
}

// GetBySeller retrieves all products listed by the given seller.
func (r *GORMProductRepository) GetBySeller(sellerID string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products, "seller_id = ?", sellerID).Error; err != nil {
		return nil, fmt.Errorf("failed to get products for seller %s: %w", sellerID, err)
	}
	return products, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s for update: %w", product.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// DecrementStock performs the conditional decrement in a single UPDATE so the
// stock check and the write cannot interleave with a concurrent checkout:
//
//	UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?
//
// Zero rows affected means insufficient stock (or a missing product); the
// caller decides how to surface that.
func (r *GORMProductRepository) DecrementStock(id string, quantity int) (int64, error) {
	res := r.db.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to decrement stock for product %s: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

// IncrementStock adds quantity back, compensating a prior decrement.
func (r *GORMProductRepository) IncrementStock(id string, quantity int) error {
	res := r.db.Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("failed to increment stock for product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %s for stock increment: %w", id, ErrNotFound)
	}
	return nil
}

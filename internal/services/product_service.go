package services

import (
	"campusbazaar/internal/models"
	"campusbazaar/internal/repositories"
)

// ProductService handles business logic related to the product catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetProductsByTheme retrieves products tagged with a decor theme.
func (s *ProductService) GetProductsByTheme(theme string) ([]models.Product, error) {
	return s.repo.GetByTheme(theme)
}

// SearchProducts retrieves products matching a text query.
func (s *ProductService) SearchProducts(query string) ([]models.Product, error) {
	return s.repo.Search(query)
}

// GetProductsBySeller retrieves a seller's listings.
func (s *ProductService) GetProductsBySeller(sellerID string) ([]models.Product, error) {
	return s.repo.GetBySeller(sellerID)
}

// CreateProduct creates a new product owned by the given seller.
func (s *ProductService) CreateProduct(product *models.Product, sellerID string) error {
	product.SellerID = sellerID
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}

package services

import (
	"fmt"
	"sync"

	"campusbazaar/internal/models"
	"campusbazaar/internal/repositories"

	"github.com/google/uuid"
)

// CartService is the in-memory cart store. Carts are keyed by the session's
// user id and live only for the life of the process; nothing is persisted
// server-side. The product repository is consulted once per add to freeze a
// snapshot of the product into the line.
type CartService struct {
	productRepo repositories.ProductRepository

	mu    sync.RWMutex
	carts map[string][]models.CartLine
}

// NewCartService creates a new CartService.
func NewCartService(productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		productRepo: productRepo,
		carts:       make(map[string][]models.CartLine),
	}
}

// AddToCart fetches the current product and merges it into the session cart.
// If a line for the same product already exists, its quantity is incremented
// and the original snapshot is kept; price or seller changes after the first
// add are not reflected until the cart is cleared.
func (s *CartService) AddToCart(sessionID, productID string, quantity int) (*models.CartLine, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("add to cart: %w", ErrInvalidQuantity)
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity += quantity
			line := lines[i]
			return &line, nil
		}
	}

	line := models.CartLine{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Quantity:  quantity,
		Snapshot: models.ProductSnapshot{
			Name:      product.Name,
			UnitPrice: product.Price,
			ImageURL:  product.ImageURL,
			SellerID:  product.SellerID,
		},
	}
	s.carts[sessionID] = append(lines, line)
	return &line, nil
}

// RemoveLine deletes the matching line. Removing an absent line is a no-op.
func (s *CartService) RemoveLine(sessionID, lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ID == lineID {
			s.carts[sessionID] = append(lines[:i], lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets a line's quantity directly. Quantities below 1 are
// rejected here so no caller can leave the cart in an invalid state.
func (s *CartService) UpdateQuantity(sessionID, lineID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("update quantity: %w", ErrInvalidQuantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	for i := range lines {
		if lines[i].ID == lineID {
			lines[i].Quantity = quantity
			return nil
		}
	}
	return fmt.Errorf("update quantity: %w", ErrCartLineNotFound)
}

// Lines returns a copy of the session's cart lines in insertion order.
func (s *CartService) Lines(sessionID string) []models.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := s.carts[sessionID]
	out := make([]models.CartLine, len(lines))
	copy(out, lines)
	return out
}

// ItemCount is the sum of quantities across the session's lines. Recomputed on
// every call, never cached.
func (s *CartService) ItemCount(sessionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, line := range s.carts[sessionID] {
		count += line.Quantity
	}
	return count
}

// Clear empties the session's cart. Called after a successful order placement.
func (s *CartService) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
}

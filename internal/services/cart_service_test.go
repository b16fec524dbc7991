package services_test

import (
	"testing"

	"campusbazaar/internal/models"
	"campusbazaar/internal/repositories"
	"campusbazaar/internal/services"

	"github.com/stretchr/testify/assert"
)

func newCartFixture(t *testing.T) (*services.CartService, *repositories.MockProductRepository) {
	t.Helper()
	productRepo := repositories.NewMockProductRepository()
	products := []models.Product{
		{ID: "prod-a", Name: "Fairy Light Curtain", Price: 500.00, Stock: 5, SellerID: "seller-1"},
		{ID: "prod-b", Name: "Galaxy Projector", Price: 1299.00, Stock: 15, SellerID: "seller-2"},
	}
	for i := range products {
		assert.NoError(t, productRepo.Create(&products[i]))
	}
	return services.NewCartService(productRepo), productRepo
}

func TestCartService_AddMergesSameProduct(t *testing.T) {
	cart, _ := newCartFixture(t)

	first, err := cart.AddToCart("user-1", "prod-a", 2)
	assert.NoError(t, err)
	second, err := cart.AddToCart("user-1", "prod-a", 3)
	assert.NoError(t, err)

	// Same product twice yields exactly one line with the summed quantity.
	lines := cart.Lines("user-1")
	assert.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, cart.ItemCount("user-1"))
}

func TestCartService_SnapshotFrozenOnFirstAdd(t *testing.T) {
	cart, productRepo := newCartFixture(t)

	_, err := cart.AddToCart("user-1", "prod-a", 1)
	assert.NoError(t, err)

	// Reprice the product, then merge another unit into the same line.
	product, err := productRepo.GetByID("prod-a")
	assert.NoError(t, err)
	product.Price = 999.00
	assert.NoError(t, productRepo.Update(product))

	_, err = cart.AddToCart("user-1", "prod-a", 1)
	assert.NoError(t, err)

	lines := cart.Lines("user-1")
	assert.Len(t, lines, 1)
	assert.Equal(t, 500.00, lines[0].Snapshot.UnitPrice, "merge must keep the original snapshot")
}

func TestCartService_AddUnknownProduct(t *testing.T) {
	cart, _ := newCartFixture(t)

	line, err := cart.AddToCart("user-1", "prod-missing", 1)
	assert.Error(t, err)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Nil(t, line)
	assert.Empty(t, cart.Lines("user-1"))
}

func TestCartService_AddRejectsInvalidQuantity(t *testing.T) {
	cart, _ := newCartFixture(t)

	_, err := cart.AddToCart("user-1", "prod-a", 0)
	assert.ErrorIs(t, err, services.ErrInvalidQuantity)
	_, err = cart.AddToCart("user-1", "prod-a", -3)
	assert.ErrorIs(t, err, services.ErrInvalidQuantity)
}

func TestCartService_RemoveLine(t *testing.T) {
	cart, _ := newCartFixture(t)

	lineA, err := cart.AddToCart("user-1", "prod-a", 2)
	assert.NoError(t, err)
	_, err = cart.AddToCart("user-1", "prod-b", 1)
	assert.NoError(t, err)

	cart.RemoveLine("user-1", lineA.ID)
	lines := cart.Lines("user-1")
	assert.Len(t, lines, 1)
	assert.Equal(t, "prod-b", lines[0].ProductID)

	// Removing an absent line is a no-op.
	cart.RemoveLine("user-1", "no-such-line")
	assert.Len(t, cart.Lines("user-1"), 1)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	cart, _ := newCartFixture(t)

	line, err := cart.AddToCart("user-1", "prod-a", 2)
	assert.NoError(t, err)

	assert.NoError(t, cart.UpdateQuantity("user-1", line.ID, 7))
	assert.Equal(t, 7, cart.Lines("user-1")[0].Quantity)

	assert.ErrorIs(t, cart.UpdateQuantity("user-1", line.ID, 0), services.ErrInvalidQuantity)
	assert.ErrorIs(t, cart.UpdateQuantity("user-1", "no-such-line", 3), services.ErrCartLineNotFound)
}

func TestCartService_ItemCountTracksMutations(t *testing.T) {
	cart, _ := newCartFixture(t)
	assert.Equal(t, 0, cart.ItemCount("user-1"))

	lineA, _ := cart.AddToCart("user-1", "prod-a", 2)
	cart.AddToCart("user-1", "prod-b", 4)
	assert.Equal(t, 6, cart.ItemCount("user-1"))

	assert.NoError(t, cart.UpdateQuantity("user-1", lineA.ID, 1))
	assert.Equal(t, 5, cart.ItemCount("user-1"))

	cart.RemoveLine("user-1", lineA.ID)
	assert.Equal(t, 4, cart.ItemCount("user-1"))

	cart.Clear("user-1")
	assert.Equal(t, 0, cart.ItemCount("user-1"))
	assert.Empty(t, cart.Lines("user-1"))
}

func TestCartService_SessionsAreIsolated(t *testing.T) {
	cart, _ := newCartFixture(t)

	cart.AddToCart("user-1", "prod-a", 2)
	cart.AddToCart("user-2", "prod-b", 1)

	assert.Equal(t, 2, cart.ItemCount("user-1"))
	assert.Equal(t, 1, cart.ItemCount("user-2"))

	cart.Clear("user-1")
	assert.Equal(t, 0, cart.ItemCount("user-1"))
	assert.Equal(t, 1, cart.ItemCount("user-2"))
}

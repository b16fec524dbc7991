package models

// ProductSnapshot captures the product fields a cart line needs, frozen at the
// moment the line was first added. Price or seller changes after that point are
// not reflected until the cart is cleared.
type ProductSnapshot struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	ImageURL  string  `json:"image_url"`
	SellerID  string  `json:"seller_id"`
}

// CartLine is one (product, quantity) pair in a session cart. Lines live only
// in process memory; nothing here is persisted.
type CartLine struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Snapshot  ProductSnapshot `json:"snapshot"`
}

// LineTotal is the snapshot unit price times the current quantity.
func (l CartLine) LineTotal() float64 {
	return l.Snapshot.UnitPrice * float64(l.Quantity)
}

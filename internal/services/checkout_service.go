package services

import (
	"errors"
	"fmt"
	"math"

	"campusbazaar/internal/models"
	"campusbazaar/internal/payment"
	"campusbazaar/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// CheckoutService is the checkout orchestrator: it validates the submission,
// computes totals, runs the payment adapter, and drives order finalization.
// All validation failures are reported before any network or store call.
type CheckoutService struct {
	cart         *CartService
	orderService *OrderService
	addressRepo  repositories.AddressRepository
	userRepo     repositories.UserRepository
	paymentCfg   payment.Config
	shippingFee  float64
	currency     string
	validate     *validator.Validate
}

// NewCheckoutService creates a new CheckoutService. shippingFee is the flat
// delivery fee applied to any non-empty delivery order; currency is the ISO
// code charged through the payment gateway.
func NewCheckoutService(
	cart *CartService,
	orderService *OrderService,
	addressRepo repositories.AddressRepository,
	userRepo repositories.UserRepository,
	paymentCfg payment.Config,
	shippingFee float64,
	currency string,
) *CheckoutService {
	return &CheckoutService{
		cart:         cart,
		orderService: orderService,
		addressRepo:  addressRepo,
		userRepo:     userRepo,
		paymentCfg:   paymentCfg,
		shippingFee:  shippingFee,
		currency:     currency,
		validate:     validator.New(),
	}
}

// CheckoutRequest is the shopper's checkout submission.
type CheckoutRequest struct {
	OrderType      models.OrderType     `json:"order_type" validate:"required,oneof=delivery pickup"`
	PaymentMethod  models.PaymentMethod `json:"payment_method" validate:"required,oneof=card upi cod"`
	TermsAccepted  bool                 `json:"terms_accepted"`
	IdempotencyKey string               `json:"idempotency_key" validate:"omitempty,max=64"`
}

// Totals is the checkout price breakdown: total is always subtotal plus
// shipping, and shipping is zero for pickup orders and empty carts.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// CheckoutResult is returned to the confirmation view. PaymentRedirectURL is
// set only for hosted-gateway payments still awaiting completion.
type CheckoutResult struct {
	Order              *models.Order `json:"order"`
	PaymentRedirectURL string        `json:"payment_redirect_url,omitempty"`
}

// PickupLocation is one seller's pickup point, shown for pickup orders.
type PickupLocation struct {
	SellerID   string          `json:"seller_id"`
	SellerName string          `json:"seller_name"`
	Address    *models.Address `json:"address,omitempty"`
}

// ComputeTotals derives the price breakdown for the given cart and order type.
func (s *CheckoutService) ComputeTotals(lines []models.CartLine, orderType models.OrderType) Totals {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.LineTotal()
	}

	var shipping float64
	if orderType != models.OrderTypePickup && subtotal > 0 {
		shipping = s.shippingFee
	}

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}
}

// Checkout runs the full checkout sequence for the session's cart. The order
// of operations matters: validation first (no network calls on rejection),
// then payment, then finalization; the cart is cleared only after the order
// exists.
func (s *CheckoutService) Checkout(userID string, req CheckoutRequest) (*CheckoutResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid checkout request: %w", err)
	}
	if !req.TermsAccepted {
		return nil, ErrTermsNotAccepted
	}

	lines := s.cart.Lines(userID)
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	if req.OrderType == models.OrderTypeDelivery {
		address, err := s.addressRepo.GetByUserID(userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrAddressIncomplete
			}
			return nil, fmt.Errorf("failed to load delivery address: %w", err)
		}
		if err := s.validate.Struct(address); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAddressIncomplete, err)
		}
	}

	totals := s.ComputeTotals(lines, req.OrderType)

	processor, err := payment.NewProcessor(req.PaymentMethod, s.paymentCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	outcome, err := processor.Charge(toMinorUnits(totals.Total), s.currency)
	if err != nil {
		// Nothing has been written yet; the cart stays intact for retry.
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	order, err := s.orderService.FinalizeOrder(FinalizeOrderInput{
		UserID:         userID,
		Lines:          lines,
		Totals:         totals,
		OrderType:      req.OrderType,
		PaymentMethod:  req.PaymentMethod,
		Payment:        outcome,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	s.cart.Clear(userID)
	return &CheckoutResult{
		Order:              order,
		PaymentRedirectURL: outcome.RedirectURL,
	}, nil
}

// PickupLocations derives the distinct sellers present in the session's cart,
// in cart order, each with its pickup address when the seller has one saved.
func (s *CheckoutService) PickupLocations(userID string) ([]PickupLocation, error) {
	lines := s.cart.Lines(userID)

	seen := make(map[string]bool)
	var locations []PickupLocation
	for _, line := range lines {
		sellerID := line.Snapshot.SellerID
		if sellerID == "" || seen[sellerID] {
			continue
		}
		seen[sellerID] = true

		location := PickupLocation{SellerID: sellerID}
		if seller, err := s.userRepo.GetByID(sellerID); err == nil {
			location.SellerName = seller.Username
		}
		if address, err := s.addressRepo.GetByUserID(sellerID); err == nil {
			location.Address = address
		}
		locations = append(locations, location)
	}
	return locations, nil
}

// toMinorUnits converts a major-unit amount to the integer minor units the
// payment gateway expects (rupees to paise).
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

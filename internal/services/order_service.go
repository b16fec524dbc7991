package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"campusbazaar/internal/models"
	"campusbazaar/internal/payment"
	"campusbazaar/internal/repositories"

	"github.com/google/uuid"
)

// OrderService owns the order finalization workflow and order queries.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	mqClient    OrderEventPublisher
}

// OrderEventPublisher publishes order lifecycle events. Satisfied by
// *rabbitmq.Client; nil disables publishing.
type OrderEventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, mqClient OrderEventPublisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		mqClient:    mqClient,
	}
}

// FinalizeOrderInput carries everything the finalization workflow needs: the
// cart at submission time, the computed totals, the shopper's choices, and the
// payment outcome the adapter already produced.
type FinalizeOrderInput struct {
	UserID         string
	Lines          []models.CartLine
	Totals         Totals
	OrderType      models.OrderType
	PaymentMethod  models.PaymentMethod
	Payment        payment.Outcome
	IdempotencyKey string
}

// FinalizeOrder turns a cart into a persisted order. The steps run
// sequentially, one line at a time, in cart order:
//
//  1. A repeated idempotency key short-circuits to the order the earlier
//     attempt created, so a retry or double-click never places twice.
//  2. Each line's seller is resolved from its snapshot, re-fetching the
//     product when the snapshot predates the seller assignment.
//  3. Stock is taken per line with an atomic conditional decrement. Zero rows
//     affected means insufficient stock: the whole order aborts and every
//     decrement already applied in this attempt is released again, so a
//     failed attempt leaves stock exactly where it started.
//  4. The order, its line snapshots, and one seller entry per line are
//     persisted in a single transaction. If that write fails the stock is
//     likewise released.
//
// The cart itself is untouched here; the caller clears it only after success.
func (s *OrderService) FinalizeOrder(in FinalizeOrderInput) (*models.Order, error) {
	if len(in.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	key := in.IdempotencyKey
	if key == "" {
		key = uuid.New().String()
	} else {
		existing, err := s.orderRepo.GetByIdempotencyKey(key)
		if err == nil {
			log.Printf("Checkout attempt %s already finalized as order %s", key, existing.ID)
			return existing, nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to check idempotency key: %w", err)
		}
	}

	// Resolve each line's seller before touching stock, so a vanished
	// product aborts the attempt with nothing to undo.
	sellerIDs := make([]string, len(in.Lines))
	for i, line := range in.Lines {
		sellerID := line.Snapshot.SellerID
		if sellerID == "" {
			product, err := s.productRepo.GetByID(line.ProductID)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve seller for product %s: %w", line.ProductID, err)
			}
			sellerID = product.SellerID
		}
		sellerIDs[i] = sellerID
	}

	var decremented []models.CartLine
	for _, line := range in.Lines {
		rows, err := s.productRepo.DecrementStock(line.ProductID, line.Quantity)
		if err != nil {
			s.releaseStock(decremented)
			return nil, fmt.Errorf("failed to take stock for product %s: %w", line.ProductID, err)
		}
		if rows == 0 {
			s.releaseStock(decremented)
			return nil, fmt.Errorf("product %s (requested %d): %w", line.Snapshot.Name, line.Quantity, ErrInsufficientStock)
		}
		decremented = append(decremented, line)
	}

	order := &models.Order{
		ID:               uuid.New().String(),
		UserID:           in.UserID,
		Subtotal:         in.Totals.Subtotal,
		ShippingFee:      in.Totals.Shipping,
		TotalAmount:      in.Totals.Total,
		Status:           models.OrderStatusPlaced,
		OrderType:        in.OrderType,
		PaymentMethod:    in.PaymentMethod,
		PaymentStatus:    in.Payment.Status,
		PaymentReference: in.Payment.Reference,
		IdempotencyKey:   key,
	}

	entries := make([]models.SellerOrderEntry, 0, len(in.Lines))
	for i, line := range in.Lines {
		order.Lines = append(order.Lines, models.OrderLine{
			ProductID: line.ProductID,
			Name:      line.Snapshot.Name,
			UnitPrice: line.Snapshot.UnitPrice,
			Quantity:  line.Quantity,
		})
		if sellerIDs[i] == "" {
			// No seller could be resolved; the aggregate order still
			// records the line, it just has no split to route.
			continue
		}
		entries = append(entries, models.SellerOrderEntry{
			UserID:    in.UserID,
			SellerID:  sellerIDs[i],
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal(),
			Status:    models.OrderStatusPlaced,
		})
	}

	if err := s.orderRepo.Create(order, entries); err != nil {
		s.releaseStock(decremented)
		return nil, fmt.Errorf("failed to finalize order: %w", err)
	}

	s.publishOrderPlaced(order)
	return order, nil
}

// releaseStock re-increments every line decremented earlier in a failed
// attempt. A release failure is logged and carried on: the remaining lines
// must still be returned.
func (s *OrderService) releaseStock(lines []models.CartLine) {
	for _, line := range lines {
		if err := s.productRepo.IncrementStock(line.ProductID, line.Quantity); err != nil {
			log.Printf("Failed to release stock for product %s (qty %d): %v", line.ProductID, line.Quantity, err)
		}
	}
}

// publishOrderPlaced emits the order-placed event. Best effort: a publish
// failure is logged and does not fail the already-persisted order.
func (s *OrderService) publishOrderPlaced(order *models.Order) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping order event publication.")
		return
	}

	event := map[string]interface{}{
		"orderID":       order.ID,
		"userID":        order.UserID,
		"status":        order.Status,
		"paymentStatus": order.PaymentStatus,
		"total":         order.TotalAmount,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event: %v", err)
		return
	}
	if err := s.mqClient.Publish("order.placed", body); err != nil {
		log.Printf("Warning: Failed to publish order placed event for order %s: %v", order.ID, err)
	} else {
		log.Printf("Successfully published order placed event for order %s", order.ID)
	}
}

// GetOrderByID retrieves a single order for the confirmation view.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetOrdersByUser retrieves a user's order history.
func (s *OrderService) GetOrdersByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// GetAllOrders retrieves every order. Admin dashboards only.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// UpdateOrderStatus moves an order along the fulfillment lifecycle.
func (s *OrderService) UpdateOrderStatus(id string, status models.OrderStatus) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("invalid order status: %s", status)
	}
	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	return nil
}

// MarkOrderPaid flips payment status to paid after the gateway callback.
// When the order already carries a gateway reference the callback's reference
// must match it.
func (s *OrderService) MarkOrderPaid(orderID, reference string) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order.PaymentReference != "" && reference != order.PaymentReference {
		return fmt.Errorf("payment reference mismatch for order %s", orderID)
	}
	if err := s.orderRepo.UpdatePaymentStatus(orderID, models.PaymentStatusPaid, reference); err != nil {
		return fmt.Errorf("failed to mark order %s paid: %w", orderID, err)
	}
	return nil
}

// GetSellerEntries retrieves the order splits routed to a seller.
func (s *OrderService) GetSellerEntries(sellerID string) ([]models.SellerOrderEntry, error) {
	return s.orderRepo.GetSellerEntries(sellerID)
}

package order

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/example/can-delivery/internal/apperr"
	"github.com/example/can-delivery/internal/identity"
	"github.com/example/can-delivery/internal/infrastructure/store"
)

const AggregateType = "Order"

// UnitPrice is the price of one can in currency units.
const UnitPrice = 20

type Status string

const StatusPending Status = "Pending"

var (
	ErrMissingUserID   = apperr.Validation("userId is required")
	ErrMissingQuantity = apperr.Validation("quantity is required")
	ErrInvalidQuantity = apperr.Validation("quantity must be a positive integer")
)

// Order is a ledger entry. TotalPrice is fixed at creation and never recomputed.
type Order struct {
	OrderID    string    `json:"orderId" dynamodbav:"orderId"`
	UserID     string    `json:"userId" dynamodbav:"userId"`
	VendorID   string    `json:"vendorId,omitempty" dynamodbav:"vendorId,omitempty"`
	Quantity   Quantity  `json:"quantity" dynamodbav:"quantity"`
	UnitPrice  int       `json:"unitPrice" dynamodbav:"unitPrice"`
	TotalPrice int       `json:"totalPrice" dynamodbav:"totalPrice"`
	Timestamp  time.Time `json:"timestamp" dynamodbav:"timestamp"`
	Status     Status    `json:"status" dynamodbav:"status"`
}

// PlaceInput holds the fields of an order placement. VendorID is optional.
type PlaceInput struct {
	UserID   string            `json:"userId"`
	Quantity RequestedQuantity `json:"quantity"`
	VendorID string            `json:"vendorId"`
}

// Service is the order ledger
type Service struct {
	orders    store.Collection[Order]
	publisher store.Publisher
	newID     identity.Generator
	now       func() time.Time
}

// NewService creates a ledger. publisher may be nil.
func NewService(orders store.Collection[Order], publisher store.Publisher) *Service {
	return &Service{
		orders:    orders,
		publisher: publisher,
		newID:     identity.NewID,
		now:       time.Now,
	}
}

// Place validates the input, prices the order and writes it as a single record.
// Neither the user nor the vendor is checked for existence.
func (s *Service) Place(ctx context.Context, in PlaceInput) (*Order, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return nil, ErrMissingUserID
	}
	quantity, err := in.Quantity.Int()
	if err != nil {
		return nil, err
	}

	o := &Order{
		OrderID:    s.newID(),
		UserID:     userID,
		VendorID:   strings.TrimSpace(in.VendorID),
		Quantity:   Quantity(quantity),
		UnitPrice:  UnitPrice,
		TotalPrice: quantity * UnitPrice,
		Timestamp:  s.now().UTC().Truncate(time.Millisecond),
		Status:     StatusPending,
	}

	if err := s.orders.Put(ctx, o.OrderID, *o); err != nil {
		return nil, apperr.Storage("put order", err)
	}
	log.Printf("[Ledger] Order %s placed: user=%s quantity=%d total=%d", o.OrderID, o.UserID, quantity, o.TotalPrice)

	s.publish(ctx, o)
	return o, nil
}

// publish announces the order. The order is already durable, so a failure is only logged.
func (s *Service) publish(ctx context.Context, o *Order) {
	if s.publisher == nil {
		return
	}

	event, err := store.NewEvent(o.OrderID, AggregateType, EventOrderPlaced, OrderPlaced{
		OrderID:    o.OrderID,
		UserID:     o.UserID,
		VendorID:   o.VendorID,
		Quantity:   int(o.Quantity),
		UnitPrice:  o.UnitPrice,
		TotalPrice: o.TotalPrice,
		PlacedAt:   o.Timestamp,
	})
	if err != nil {
		log.Printf("[Ledger] Failed to build event for order %s: %v", o.OrderID, err)
		return
	}

	if err := s.publisher.Publish(ctx, o.OrderID, event); err != nil {
		log.Printf("[Ledger] Failed to publish %s for order %s: %v", EventOrderPlaced, o.OrderID, err)
	}
}

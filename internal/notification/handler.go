package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/can-delivery/internal/domain/customer"
	"github.com/example/can-delivery/internal/domain/order"
	"github.com/example/can-delivery/internal/email"
	"github.com/example/can-delivery/internal/infrastructure/store"
)

// Sender delivers dispatch notices
type Sender interface {
	SendDispatchNotice(to string, notice email.DispatchNotice) error
}

// Handler turns placed orders into dispatch notices
type Handler struct {
	sender     Sender
	customers  store.Collection[customer.Customer]
	dispatchTo string
}

// NewHandler creates a new notification handler
func NewHandler(sender Sender, customers store.Collection[customer.Customer], dispatchTo string) *Handler {
	return &Handler{
		sender:     sender,
		customers:  customers,
		dispatchTo: dispatchTo,
	}
}

// HandleEvent processes an event from Kafka
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var event store.Event
	if err := json.Unmarshal(value, &event); err != nil {
		log.Printf("[Notifier] Failed to unmarshal event: %v", err)
		return err
	}

	if event.EventType != order.EventOrderPlaced {
		return nil
	}

	var placed order.OrderPlaced
	if err := json.Unmarshal(event.Data, &placed); err != nil {
		log.Printf("[Notifier] Failed to unmarshal OrderPlaced event: %v", err)
		return err
	}

	return h.HandleOrderPlaced(ctx, placed)
}

// HandleOrder is the entry point for orders read straight off the table stream
func (h *Handler) HandleOrder(ctx context.Context, o *order.Order) error {
	return h.HandleOrderPlaced(ctx, order.OrderPlaced{
		OrderID:    o.OrderID,
		UserID:     o.UserID,
		VendorID:   o.VendorID,
		Quantity:   int(o.Quantity),
		UnitPrice:  o.UnitPrice,
		TotalPrice: o.TotalPrice,
		PlacedAt:   o.Timestamp,
	})
}

// HandleOrderPlaced sends a dispatch notice. Orders for unknown customers are skipped,
// since the ledger does not enforce that the user exists.
func (h *Handler) HandleOrderPlaced(ctx context.Context, e order.OrderPlaced) error {
	log.Printf("[Notifier] Processing OrderPlaced for order %s, user %s", e.OrderID, e.UserID)

	c, ok, err := h.customers.Get(ctx, e.UserID)
	if err != nil {
		return fmt.Errorf("failed to load customer %s: %w", e.UserID, err)
	}
	if !ok {
		log.Printf("[Notifier] Customer not found: %s, skipping order %s", e.UserID, e.OrderID)
		return nil
	}

	notice := email.DispatchNotice{
		OrderID:    e.OrderID,
		FullName:   c.FullName,
		Block:      c.Block,
		DoorNo:     c.DoorNo,
		Address:    c.Address,
		VendorID:   e.VendorID,
		Quantity:   e.Quantity,
		TotalPrice: e.TotalPrice,
		PlacedAt:   e.PlacedAt,
	}

	if err := h.sender.SendDispatchNotice(h.dispatchTo, notice); err != nil {
		log.Printf("[Notifier] Failed to send dispatch notice for order %s: %v", e.OrderID, err)
		return err
	}

	log.Printf("[Notifier] Dispatch notice sent to %s for order %s", h.dispatchTo, e.OrderID)
	return nil
}

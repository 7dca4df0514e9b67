package customer

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/example/can-delivery/internal/apperr"
	"github.com/example/can-delivery/internal/identity"
	"github.com/example/can-delivery/internal/infrastructure/store"
)

const AggregateType = "Customer"

var (
	ErrMissingFullName  = apperr.Validation("fullName is required")
	ErrMissingDoorNo    = apperr.Validation("doorNo is required")
	ErrMissingUserID    = apperr.Validation("userId is required")
	ErrCustomerNotFound = errors.New("customer not found")
)

// Customer is a registered delivery address. It is never mutated after registration.
type Customer struct {
	UserID    string    `json:"userId" dynamodbav:"userId"`
	FullName  string    `json:"fullName" dynamodbav:"fullName"`
	Block     string    `json:"block,omitempty" dynamodbav:"block,omitempty"`
	DoorNo    string    `json:"doorNo" dynamodbav:"doorNo"`
	Address   string    `json:"address,omitempty" dynamodbav:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"createdAt"`
}

// RegisterInput holds the registration fields. Block and Address are optional.
type RegisterInput struct {
	FullName string `json:"fullName"`
	Block    string `json:"block"`
	DoorNo   string `json:"doorNo"`
	Address  string `json:"address"`
}

// Service is the customer registry
type Service struct {
	customers store.Collection[Customer]
	publisher store.Publisher
	newID     identity.Generator
}

// NewService creates a registry. publisher may be nil.
func NewService(customers store.Collection[Customer], publisher store.Publisher) *Service {
	return &Service{
		customers: customers,
		publisher: publisher,
		newID:     identity.NewID,
	}
}

// Register stores a new customer under a fresh userId. Names are not deduplicated.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Customer, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.DoorNo = strings.TrimSpace(in.DoorNo)
	if in.FullName == "" {
		return nil, ErrMissingFullName
	}
	if in.DoorNo == "" {
		return nil, ErrMissingDoorNo
	}

	c := &Customer{
		UserID:    s.newID(),
		FullName:  in.FullName,
		Block:     strings.TrimSpace(in.Block),
		DoorNo:    in.DoorNo,
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.customers.Put(ctx, c.UserID, *c); err != nil {
		return nil, apperr.Storage("put customer", err)
	}
	log.Printf("[Registry] Registered customer %s (door %s)", c.UserID, c.DoorNo)

	s.publish(ctx, c)
	return c, nil
}

// Get looks up a customer by userId
func (s *Service) Get(ctx context.Context, userID string) (*Customer, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrMissingUserID
	}

	c, ok, err := s.customers.Get(ctx, userID)
	if err != nil {
		return nil, apperr.Storage("get customer", err)
	}
	if !ok {
		return nil, ErrCustomerNotFound
	}
	return &c, nil
}

// publish announces the registration. The customer is already durable, so a failure is only logged.
func (s *Service) publish(ctx context.Context, c *Customer) {
	if s.publisher == nil {
		return
	}

	event, err := store.NewEvent(c.UserID, AggregateType, EventCustomerRegistered, CustomerRegistered{
		UserID:       c.UserID,
		FullName:     c.FullName,
		Block:        c.Block,
		DoorNo:       c.DoorNo,
		Address:      c.Address,
		RegisteredAt: c.CreatedAt,
	})
	if err != nil {
		log.Printf("[Registry] Failed to build event for customer %s: %v", c.UserID, err)
		return
	}

	if err := s.publisher.Publish(ctx, c.UserID, event); err != nil {
		log.Printf("[Registry] Failed to publish %s for customer %s: %v", EventCustomerRegistered, c.UserID, err)
	}
}

package report

import (
	"context"
	"sort"
	"strings"

	"github.com/example/can-delivery/internal/apperr"
	"github.com/example/can-delivery/internal/domain/order"
	"github.com/example/can-delivery/internal/infrastructure/store"
)

var ErrMissingUserID = apperr.Validation("userId is required")

// Report is an aggregate over the orders it lists. It is never persisted.
type Report struct {
	TotalRevenue  int           `json:"totalRevenue"`
	TotalCansSold int           `json:"totalCansSold"`
	Orders        []order.Order `json:"orders"`
}

// Aggregate filters orders with match and sums revenue and units over the result.
// Orders are returned oldest first.
func Aggregate(orders []order.Order, match Predicate) *Report {
	r := &Report{Orders: make([]order.Order, 0)}
	for _, o := range orders {
		if !match(o) {
			continue
		}
		r.Orders = append(r.Orders, o)
		r.TotalRevenue += o.TotalPrice
		r.TotalCansSold += int(o.Quantity)
	}

	sort.SliceStable(r.Orders, func(i, j int) bool {
		return r.Orders[i].Timestamp.Before(r.Orders[j].Timestamp)
	})
	return r
}

// Service computes every view from a full scan of the order collection
type Service struct {
	orders store.Collection[order.Order]
}

// NewService creates a reporting service over the order ledger.
func NewService(orders store.Collection[order.Order]) *Service {
	return &Service{orders: orders}
}

// History returns the orders placed by userID. No match is an empty list, not an error.
func (s *Service) History(ctx context.Context, userID string) ([]order.Order, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrMissingUserID
	}

	r, err := s.run(ctx, ByUser(userID))
	if err != nil {
		return nil, err
	}
	return r.Orders, nil
}

// Dashboard aggregates the whole ledger
func (s *Service) Dashboard(ctx context.Context) (*Report, error) {
	return s.run(ctx, All)
}

// Monthly aggregates the orders of one calendar month, optionally for one user
func (s *Service) Monthly(ctx context.Context, q MonthlyQuery) (*Report, error) {
	return s.run(ctx, q.Predicate())
}

func (s *Service) run(ctx context.Context, match Predicate) (*Report, error) {
	orders, err := s.orders.Scan(ctx)
	if err != nil {
		return nil, apperr.Storage("scan orders", err)
	}
	return Aggregate(orders, match), nil
}

package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/example/can-delivery/internal/domain/order"
)

// Predicate selects orders for a report
type Predicate func(o order.Order) bool

// All matches every order.
func All(order.Order) bool { return true }

// None matches nothing.
func None(order.Order) bool { return false }

// ByUser matches orders placed by userID.
func ByUser(userID string) Predicate {
	return func(o order.Order) bool {
		return o.UserID == userID
	}
}

// InMonth matches orders whose UTC timestamp falls in the given calendar month (January = 1).
func InMonth(month, year int) Predicate {
	return func(o order.Order) bool {
		ts := o.Timestamp.UTC()
		return ts.Year() == year && ts.Month() == time.Month(month)
	}
}

// And matches when every predicate matches.
func And(preds ...Predicate) Predicate {
	return func(o order.Order) bool {
		for _, p := range preds {
			if !p(o) {
				return false
			}
		}
		return true
	}
}

// MonthlyQuery holds the textual monthly report parameters. UserID is optional.
type MonthlyQuery struct {
	Month  string
	Year   string
	UserID string
}

// Predicate builds the filter for the query. A missing or unparseable month or year
// yields a predicate that matches nothing.
func (q MonthlyQuery) Predicate() Predicate {
	month, err := strconv.Atoi(strings.TrimSpace(q.Month))
	if err != nil {
		return None
	}
	year, err := strconv.Atoi(strings.TrimSpace(q.Year))
	if err != nil {
		return None
	}

	pred := InMonth(month, year)
	if userID := strings.TrimSpace(q.UserID); userID != "" {
		pred = And(pred, ByUser(userID))
	}
	return pred
}

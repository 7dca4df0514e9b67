package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/can-delivery/internal/apperr"
	"github.com/example/can-delivery/internal/domain/order"
	"github.com/example/can-delivery/internal/infrastructure/store/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReportService() (*Service, *mocks.MockCollection[order.Order]) {
	orders := mocks.NewMockCollection[order.Order]()
	return NewService(orders), orders
}

func seed(orders *mocks.MockCollection[order.Order], id, userID string, qty int, ts time.Time) {
	orders.SetData(id, order.Order{
		OrderID:    id,
		UserID:     userID,
		Quantity:   order.Quantity(qty),
		UnitPrice:  order.UnitPrice,
		TotalPrice: qty * order.UnitPrice,
		Timestamp:  ts,
		Status:     order.StatusPending,
	})
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 10, 0, 0, 0, time.UTC)
}

// seedLedger stores orders for users A and B across February, March and April 2024 and March 2023.
func seedLedger(orders *mocks.MockCollection[order.Order]) {
	seed(orders, "o-1", "user-A", 1, date(2024, time.February, 28))
	seed(orders, "o-2", "user-A", 2, date(2024, time.March, 1))
	seed(orders, "o-3", "user-B", 3, date(2024, time.March, 15))
	seed(orders, "o-4", "user-A", 4, date(2024, time.March, 31))
	seed(orders, "o-5", "user-B", 5, date(2024, time.April, 1))
	seed(orders, "o-6", "user-A", 6, date(2023, time.March, 10))
}

func orderIDs(orders []order.Order) []string {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.OrderID)
	}
	return ids
}

func assertConsistent(t *testing.T, r *Report) {
	t.Helper()
	var revenue, cans int
	for _, o := range r.Orders {
		revenue += o.TotalPrice
		cans += int(o.Quantity)
	}
	assert.Equal(t, revenue, r.TotalRevenue)
	assert.Equal(t, cans, r.TotalCansSold)
}

// ============================================
// History Tests
// ============================================

func TestService_History_FiltersByUser(t *testing.T) {
	svc, orders := newTestReportService()
	seedLedger(orders)

	got, err := svc.History(context.Background(), "user-A")

	require.NoError(t, err)
	assert.Equal(t, []string{"o-6", "o-1", "o-2", "o-4"}, orderIDs(got))
	for _, o := range got {
		assert.Equal(t, "user-A", o.UserID)
	}
}

func TestService_History_UnknownUser(t *testing.T) {
	svc, orders := newTestReportService()
	seedLedger(orders)

	got, err := svc.History(context.Background(), "nobody")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestService_History_MissingUserID(t *testing.T) {
	svc, orders := newTestReportService()

	got, err := svc.History(context.Background(), " ")

	assert.ErrorIs(t, err, ErrMissingUserID)
	assert.True(t, apperr.IsValidation(err))
	assert.Nil(t, got)
	assert.Equal(t, 0, orders.ScanCalls)
}

// ============================================
// Dashboard Tests
// ============================================

func TestService_Dashboard(t *testing.T) {
	svc, orders := newTestReportService()
	seedLedger(orders)

	r, err := svc.Dashboard(context.Background())

	require.NoError(t, err)
	assert.Len(t, r.Orders, 6)
	assert.Equal(t, 21, r.TotalCansSold)
	assert.Equal(t, 21*order.UnitPrice, r.TotalRevenue)
	assertConsistent(t, r)
}

func TestService_Dashboard_Empty(t *testing.T) {
	svc, _ := newTestReportService()

	r, err := svc.Dashboard(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, r.Orders)
	assert.Empty(t, r.Orders)
	assert.Zero(t, r.TotalRevenue)
	assert.Zero(t, r.TotalCansSold)
}

func TestService_Dashboard_UsesStoredTotalPrice(t *testing.T) {
	svc, orders := newTestReportService()
	// priced under an older unit price
	orders.SetData("legacy", order.Order{OrderID: "legacy", UserID: "u", Quantity: 2, UnitPrice: 15, TotalPrice: 30})

	r, err := svc.Dashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 30, r.TotalRevenue)
	assert.Equal(t, 2, r.TotalCansSold)
}

func TestService_Dashboard_DuplicatePlacementDoublesCans(t *testing.T) {
	orders := mocks.NewMockCollection[order.Order]()
	ledger := order.NewService(orders, nil)
	svc := NewService(orders)
	ctx := context.Background()
	in := order.PlaceInput{UserID: "user-A", Quantity: order.QuantityOf(3)}

	_, err := ledger.Place(ctx, in)
	require.NoError(t, err)
	before, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	_, err = ledger.Place(ctx, in)
	require.NoError(t, err)
	after, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2*before.TotalCansSold, after.TotalCansSold)
	assert.Equal(t, 2*before.TotalRevenue, after.TotalRevenue)
}

func TestService_Dashboard_ScanFailure(t *testing.T) {
	svc, orders := newTestReportService()
	cause := errors.New("scan timed out")
	orders.ScanErr = cause

	r, err := svc.Dashboard(context.Background())

	assert.ErrorIs(t, err, apperr.ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, r)
}

// ============================================
// Monthly Report Tests
// ============================================

func TestService_Monthly_March2024(t *testing.T) {
	svc, orders := newTestReportService()
	seedLedger(orders)

	r, err := svc.Monthly(context.Background(), MonthlyQuery{Month: "3", Year: "2024"})

	require.NoError(t, err)
	assert.Equal(t, []string{"o-2", "o-3", "o-4"}, orderIDs(r.Orders))
	assert.Equal(t, 9, r.TotalCansSold)
	assert.Equal(t, 180, r.TotalRevenue)
	assertConsistent(t, r)
}

func TestService_Monthly_March2024_ForUser(t *testing.T) {
	svc, orders := newTestReportService()
	seedLedger(orders)

	r, err := svc.Monthly(context.Background(), MonthlyQuery{Month: "3", Year: "2024", UserID: "user-A"})

	require.NoError(t, err)
	assert.Equal(t, []string{"o-2", "o-4"}, orderIDs(r.Orders))
	assert.Equal(t, 6, r.TotalCansSold)
	assertConsistent(t, r)
}

func TestService_Monthly_UnparseableInputMatchesNothing(t *testing.T) {
	tests := []struct {
		name  string
		query MonthlyQuery
	}{
		{"missing month", MonthlyQuery{Year: "2024"}},
		{"missing year", MonthlyQuery{Month: "3"}},
		{"word month", MonthlyQuery{Month: "march", Year: "2024"}},
		{"month out of range", MonthlyQuery{Month: "13", Year: "2024"}},
		{"zero-based month", MonthlyQuery{Month: "0", Year: "2024"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, orders := newTestReportService()
			seedLedger(orders)

			r, err := svc.Monthly(context.Background(), tt.query)

			require.NoError(t, err)
			assert.Empty(t, r.Orders)
			assert.Zero(t, r.TotalRevenue)
			assert.Zero(t, r.TotalCansSold)
		})
	}
}

func TestService_Monthly_UsesUTC(t *testing.T) {
	svc, orders := newTestReportService()
	ist := time.FixedZone("IST", 5*3600+1800)
	// 1 April 02:00 IST is still 31 March in UTC
	seed(orders, "edge", "user-A", 1, time.Date(2024, time.April, 1, 2, 0, 0, 0, ist))

	march, err := svc.Monthly(context.Background(), MonthlyQuery{Month: "3", Year: "2024"})
	require.NoError(t, err)
	april, err := svc.Monthly(context.Background(), MonthlyQuery{Month: "4", Year: "2024"})
	require.NoError(t, err)

	assert.Len(t, march.Orders, 1)
	assert.Empty(t, april.Orders)
}

func TestService_Monthly_ScanFailure(t *testing.T) {
	svc, orders := newTestReportService()
	orders.ScanErr = errors.New("boom")

	_, err := svc.Monthly(context.Background(), MonthlyQuery{Month: "3", Year: "2024"})

	assert.ErrorIs(t, err, apperr.ErrStorage)
}

// ============================================
// Aggregate Tests
// ============================================

func TestAggregate_CoercedQuantities(t *testing.T) {
	orders := []order.Order{
		{OrderID: "a", Quantity: 2, TotalPrice: 40},
		{OrderID: "b", Quantity: 0, TotalPrice: 0},
	}

	r := Aggregate(orders, All)

	assert.Equal(t, 2, r.TotalCansSold)
	assert.Equal(t, 40, r.TotalRevenue)
}

func TestAggregate_None(t *testing.T) {
	r := Aggregate([]order.Order{{OrderID: "a", Quantity: 1, TotalPrice: 20}}, None)

	assert.Empty(t, r.Orders)
	assert.Zero(t, r.TotalRevenue)
}

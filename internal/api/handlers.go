package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/example/can-delivery/internal/apperr"
	"github.com/example/can-delivery/internal/domain/customer"
	"github.com/example/can-delivery/internal/domain/order"
	"github.com/example/can-delivery/internal/report"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	customers *customer.Service
	orders    *order.Service
	reports   *report.Service
}

func NewHandlers(customers *customer.Service, orders *order.Service, reports *report.Service) *Handlers {
	return &Handlers{
		customers: customers,
		orders:    orders,
		reports:   reports,
	}
}

// Customer Handlers

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var in customer.RegisterInput
	if !decodeJSON(w, r, &in) {
		return
	}

	c, err := h.customers.Register(r.Context(), in)
	if err != nil {
		respondError(w, err, "Failed to register user")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"message": "User registered successfully!",
		"userId":  c.UserID,
	})
}

func (h *Handlers) GetCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.customers.Get(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, err, "Failed to fetch user")
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// Order Handlers

func (h *Handlers) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var in order.PlaceInput
	if !decodeJSON(w, r, &in) {
		return
	}

	o, err := h.orders.Place(r.Context(), in)
	if err != nil {
		respondError(w, err, "Failed to place order")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Order placed successfully!",
		"orderId": o.OrderID,
		"order":   o,
	})
}

func (h *Handlers) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.reports.History(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		respondError(w, err, "Failed to fetch orders")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// Report Handlers

func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	rep, err := h.reports.Dashboard(r.Context())
	if err != nil {
		respondError(w, err, "Failed to fetch dashboard data")
		return
	}
	respondJSON(w, http.StatusOK, rep)
}

func (h *Handlers) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rep, err := h.reports.Monthly(r.Context(), report.MonthlyQuery{
		Month:  q.Get("month"),
		Year:   q.Get("year"),
		UserID: q.Get("userId"),
	})
	if err != nil {
		respondError(w, err, "Failed to fetch monthly report")
		return
	}
	respondJSON(w, http.StatusOK, rep)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError maps the error taxonomy onto status codes. Storage details are
// logged and replaced by fallback in the response.
func respondError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case apperr.IsValidation(err):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, customer.ErrCustomerNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		log.Printf("[API] %s: %v", fallback, err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": fallback})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

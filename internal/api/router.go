package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouterConfig struct {
	Handlers       *Handlers
	CORSOrigin     string
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig) http.Handler {
	h := cfg.Handlers

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.CORSOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/health", h.Health)

	// Customers
	r.Post("/register", h.Register)
	r.Get("/users/{userId}", h.GetCustomer)

	// Orders
	r.Post("/order", h.PlaceOrder)
	r.Get("/orders", h.GetOrders)

	// Reports
	r.Get("/dashboard", h.Dashboard)
	r.Get("/reports/monthly", h.MonthlyReport)

	return r
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/can-delivery/internal/api"
	"github.com/example/can-delivery/internal/config"
	"github.com/example/can-delivery/internal/domain/customer"
	"github.com/example/can-delivery/internal/domain/order"
	"github.com/example/can-delivery/internal/infrastructure/kafka"
	"github.com/example/can-delivery/internal/infrastructure/store"
	"github.com/example/can-delivery/internal/report"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[API] Invalid configuration: %v", err)
	}

	log.Println("[API] ========================================")
	log.Println("[API] Can Delivery - Orders & Reports")
	log.Println("[API] ========================================")
	log.Printf("[API] Store backend: %s", cfg.StoreBackend)
	log.Printf("[API] Customers: %s, Orders: %s", cfg.CustomersTable, cfg.OrdersTable)

	collections, err := config.OpenCollections(ctx, cfg)
	if err != nil {
		log.Fatalf("[API] Failed to open store: %v", err)
	}
	defer collections.Close()

	// Events are optional; without brokers the services run with no publisher
	var publisher store.Publisher
	if cfg.KafkaEnabled() {
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		publisher = producer
		log.Printf("[API] Kafka: %v (topic %s)", cfg.KafkaBrokers, cfg.KafkaTopic)
	} else {
		log.Println("[API] Kafka: disabled")
	}

	customerSvc := customer.NewService(collections.Customers, publisher)
	orderSvc := order.NewService(collections.Orders, publisher)
	reportSvc := report.NewService(collections.Orders)

	router := api.NewRouter(api.RouterConfig{
		Handlers:       api.NewHandlers(customerSvc, orderSvc, reportSvc),
		CORSOrigin:     cfg.CORSOrigin,
		RequestTimeout: 30 * time.Second,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[API] Server started on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[API] Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[API] Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[API] Shutdown error: %v", err)
	}
}

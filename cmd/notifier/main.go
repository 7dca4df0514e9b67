package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/can-delivery/internal/config"
	"github.com/example/can-delivery/internal/email"
	"github.com/example/can-delivery/internal/infrastructure/kafka"
	"github.com/example/can-delivery/internal/notification"
)

const consumerGroup = "dispatch-notifier"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Notifier] Invalid configuration: %v", err)
	}
	if !cfg.KafkaEnabled() {
		log.Fatal("[Notifier] KAFKA_BROKERS is required")
	}

	log.Println("[Notifier] ========================================")
	log.Println("[Notifier] Can Delivery - Dispatch Notifications")
	log.Println("[Notifier] ========================================")
	log.Printf("[Notifier] Kafka: %v", cfg.KafkaBrokers)
	log.Printf("[Notifier] Topic: %s", cfg.KafkaTopic)
	log.Printf("[Notifier] Group: %s", consumerGroup)
	log.Printf("[Notifier] SMTP: %s:%s", cfg.SMTPHost, cfg.SMTPPort)
	log.Printf("[Notifier] Dispatch desk: %s", cfg.DispatchEmail)

	collections, err := config.OpenCollections(ctx, cfg)
	if err != nil {
		log.Fatalf("[Notifier] Failed to open store: %v", err)
	}
	defer collections.Close()

	emailSvc := email.NewService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
	handler := notification.NewHandler(emailSvc, collections.Customers, cfg.DispatchEmail)

	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, consumerGroup)
	defer consumer.Close()

	go func() {
		log.Println("[Notifier] Starting event consumer...")
		if err := consumer.Consume(ctx, handler.HandleEvent); err != nil && ctx.Err() == nil {
			log.Printf("[Notifier] Consumer error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[Notifier] Shutting down...")
	cancel()
}

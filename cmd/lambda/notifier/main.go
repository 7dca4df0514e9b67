package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/example/can-delivery/internal/config"
	"github.com/example/can-delivery/internal/email"
	"github.com/example/can-delivery/internal/infrastructure/kinesis"
	"github.com/example/can-delivery/internal/notification"
)

var notificationHandler *notification.Handler

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Lambda Notifier] Invalid configuration: %v", err)
	}
	if cfg.StoreBackend == config.BackendMemory {
		log.Fatal("[Lambda Notifier] STORE_BACKEND must be dynamodb or postgres")
	}

	collections, err := config.OpenCollections(context.Background(), cfg)
	if err != nil {
		log.Fatalf("[Lambda Notifier] Failed to open store: %v", err)
	}

	emailSvc := email.NewService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
	notificationHandler = notification.NewHandler(emailSvc, collections.Customers, cfg.DispatchEmail)

	log.Printf("[Lambda Notifier] Initialized successfully (SMTP: %s:%s)", cfg.SMTPHost, cfg.SMTPPort)
}

// handler consumes the orders table's change stream delivered through Kinesis
func handler(ctx context.Context, kinesisEvent events.KinesisEvent) (events.KinesisEventResponse, error) {
	log.Printf("[Lambda Notifier] Received %d records", len(kinesisEvent.Records))

	var batchItemFailures []events.KinesisBatchItemFailure

	for _, record := range kinesisEvent.Records {
		o, err := kinesis.ConvertFromKinesisRecord(record)
		if err != nil {
			log.Printf("[Lambda Notifier] Failed to convert record %s: %v", record.EventID, err)
			batchItemFailures = append(batchItemFailures, events.KinesisBatchItemFailure{
				ItemIdentifier: record.Kinesis.SequenceNumber,
			})
			continue
		}

		// Orders are append-only; MODIFY and REMOVE carry nothing to dispatch
		if o == nil {
			continue
		}

		if err := notificationHandler.HandleOrder(ctx, o); err != nil {
			log.Printf("[Lambda Notifier] Failed to notify for order %s: %v", o.OrderID, err)
			batchItemFailures = append(batchItemFailures, events.KinesisBatchItemFailure{
				ItemIdentifier: record.Kinesis.SequenceNumber,
			})
		}
	}

	successCount := len(kinesisEvent.Records) - len(batchItemFailures)
	log.Printf("[Lambda Notifier] Processed %d/%d records successfully", successCount, len(kinesisEvent.Records))

	return events.KinesisEventResponse{
		BatchItemFailures: batchItemFailures,
	}, nil
}

func main() {
	lambda.Start(handler)
}

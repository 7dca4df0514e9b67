package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/example/can-delivery/internal/infrastructure/store"
	"github.com/segmentio/kafka-go"
)

// Producer publishes ledger and registry events to a single topic
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // same key, same partition
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Producer{writer: writer}
}

// Publish writes event keyed by key. store.Event values also carry their type as a header.
func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}
	if e, ok := event.(store.Event); ok {
		msg.Headers = []kafka.Header{{Key: "event_type", Value: []byte(e.EventType)}}
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

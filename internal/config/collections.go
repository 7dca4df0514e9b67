package config

import (
	"context"
	"fmt"

	"github.com/example/can-delivery/internal/domain/customer"
	"github.com/example/can-delivery/internal/domain/order"
	"github.com/example/can-delivery/internal/infrastructure/store"
)

// Collections are the two durable collections the service works on
type Collections struct {
	Customers store.Collection[customer.Customer]
	Orders    store.Collection[order.Order]

	close func() error
}

// Close releases the backend connection, if any
func (c *Collections) Close() error {
	if c.close == nil {
		return nil
	}
	return c.close()
}

// OpenCollections connects to the configured store backend
func OpenCollections(ctx context.Context, cfg *Config) (*Collections, error) {
	switch cfg.StoreBackend {
	case BackendDynamoDB:
		client, err := store.NewDynamoClient(ctx, cfg.AWSRegion, cfg.DynamoEndpoint)
		if err != nil {
			return nil, err
		}
		return &Collections{
			Customers: store.NewDynamoCollection[customer.Customer](client, cfg.CustomersTable, "userId"),
			Orders:    store.NewDynamoCollection[order.Order](client, cfg.OrdersTable, "orderId"),
		}, nil

	case BackendPostgres:
		db, err := store.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		customers, err := store.NewPostgresCollection[customer.Customer](ctx, db, cfg.CustomersTable)
		if err != nil {
			db.Close()
			return nil, err
		}
		orders, err := store.NewPostgresCollection[order.Order](ctx, db, cfg.OrdersTable)
		if err != nil {
			db.Close()
			return nil, err
		}
		return &Collections{Customers: customers, Orders: orders, close: db.Close}, nil

	default:
		return &Collections{
			Customers: store.NewMemoryCollection[customer.Customer](),
			Orders:    store.NewMemoryCollection[order.Order](),
		}, nil
	}
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// PostgresCollection stores each item as a JSONB document in its own table.
type PostgresCollection[T any] struct {
	db    *sql.DB
	table string
}

// NewPostgresCollection creates the backing table if it does not exist.
func NewPostgresCollection[T any](ctx context.Context, db *sql.DB, table string) (*PostgresCollection[T], error) {
	c := &PostgresCollection[T]{
		db:    db,
		table: pq.QuoteIdentifier(table),
	}

	_, err := db.ExecContext(ctx, fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (
			id         TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, c.table))
	if err != nil {
		return nil, fmt.Errorf("failed to create table %s: %w", table, err)
	}

	return c, nil
}

// Put inserts the item; an existing key is left untouched and reported as ErrDuplicateKey
func (c *PostgresCollection[T]) Put(ctx context.Context, key string, item T) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	res, err := c.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, data) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, c.table),
		key, data,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	if n == 0 {
		return ErrDuplicateKey
	}

	return nil
}

// Get retrieves an item by key
func (c *PostgresCollection[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var item T
	var data []byte

	err := c.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT data FROM %s WHERE id = $1`, c.table),
		key,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return item, false, nil
	}
	if err != nil {
		return item, false, fmt.Errorf("failed to get item: %w", err)
	}

	if err := json.Unmarshal(data, &item); err != nil {
		return item, false, fmt.Errorf("failed to unmarshal item: %w", err)
	}

	return item, true, nil
}

// Scan returns every item ordered by insertion time
func (c *PostgresCollection[T]) Scan(ctx context.Context) ([]T, error) {
	rows, err := c.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT data FROM %s ORDER BY created_at`, c.table),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan table: %w", err)
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		var item T
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// ConnectPostgres opens a pooled connection and verifies it with a ping
func ConnectPostgres(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

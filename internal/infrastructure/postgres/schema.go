package postgres

import (
	"context"
	"fmt"
)

// schema DDL idempotente de las tablas que usa el servicio. products y
// stock_changes las alimenta el sistema de inventario; aquí solo se crean si
// faltan para entornos de desarrollo.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'staff',
		active        BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id                 TEXT PRIMARY KEY,
		name               TEXT NOT NULL,
		color              TEXT NOT NULL DEFAULT '',
		size               TEXT NOT NULL DEFAULT '',
		unit               TEXT NOT NULL DEFAULT '',
		actual_quantity    INTEGER NOT NULL DEFAULT 0 CHECK (actual_quantity >= 0),
		threshold_quantity INTEGER NOT NULL DEFAULT 0 CHECK (threshold_quantity >= 0),
		price              NUMERIC(14,2) NOT NULL DEFAULT 0,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS stock_changes (
		id            TEXT PRIMARY KEY,
		product_id    TEXT NOT NULL,
		product_name  TEXT NOT NULL,
		product_color TEXT NOT NULL DEFAULT '',
		product_size  TEXT NOT NULL DEFAULT '',
		quantity      INTEGER NOT NULL CHECK (quantity > 0),
		direction     TEXT NOT NULL CHECK (direction IN ('stock_in', 'stock_out')),
		occurred_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_changes_occurred_at ON stock_changes (occurred_at)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id                  TEXT PRIMARY KEY,
		title               TEXT NOT NULL,
		message             TEXT NOT NULL DEFAULT '',
		type                TEXT NOT NULL,
		severity            TEXT NOT NULL DEFAULT 'medium',
		is_read             BOOLEAN NOT NULL DEFAULT FALSE,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		related_entity_type TEXT,
		related_entity_id   TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS activity_log (
		id         TEXT PRIMARY KEY,
		user_id    TEXT,
		username   TEXT NOT NULL,
		action     TEXT NOT NULL,
		details    TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_log_created_at ON activity_log (created_at DESC)`,
}

// EnsureSchema aplica el DDL en una sola transacción.
func EnsureSchema(ctx context.Context, runner *TxRunner) error {
	return runner.Run(ctx, func(q Querier) error {
		for i, stmt := range schema {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return wrap("ensure_schema", fmt.Errorf("schema stmt %d: %w", i, err))
			}
		}
		return nil
	})
}

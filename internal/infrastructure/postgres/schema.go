package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema crea las dos tablas del libro mayor si no existen.
// changes.item_name no lleva foreign key a propósito: el registro debe
// sobrevivir al borrado del item (referencia colgante intencional).
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS items (
			name        text PRIMARY KEY,
			total_price numeric(14,3) NOT NULL,
			quantity    numeric(14,3) NOT NULL,
			unit        text NOT NULL,
			unit_price  numeric(14,3) NOT NULL,
			updated_at  timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS changes (
			id              bigserial PRIMARY KEY,
			item_name       text NOT NULL,
			changed_at      timestamptz NOT NULL DEFAULT now(),
			quantity_delta  numeric(14,3) NOT NULL,
			new_quantity    numeric(14,3) NOT NULL,
			old_total_price numeric(14,3),
			new_total_price numeric(14,3) NOT NULL,
			old_unit_price  numeric(14,3),
			new_unit_price  numeric(14,3) NOT NULL,
			unit            text NOT NULL,
			source          text NOT NULL,
			batch_id        text NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_changes_source ON changes (source)`,
		`CREATE INDEX IF NOT EXISTS idx_changes_item_name ON changes (item_name)`,
	}
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

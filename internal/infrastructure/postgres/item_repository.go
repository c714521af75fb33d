package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/recibos-api/internal/domain/entity"
	"github.com/jhoicas/recibos-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// GetByName obtiene el estado actual de un artículo; nil, nil si no existe.
func (r *ItemRepo) GetByName(name string) (*entity.Item, error) {
	query := `
		SELECT name, total_price, quantity, unit, unit_price, updated_at
		FROM items WHERE name = $1`
	var it entity.Item
	err := r.q.QueryRow(context.Background(), query, name).Scan(
		&it.Name, &it.TotalPrice, &it.Quantity, &it.Unit, &it.UnitPrice, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// Upsert inserta o actualiza la fila del artículo (clave: name).
func (r *ItemRepo) Upsert(item *entity.Item) error {
	query := `
		INSERT INTO items (name, total_price, quantity, unit, unit_price, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name)
		DO UPDATE SET total_price = EXCLUDED.total_price, quantity = EXCLUDED.quantity,
		              unit = EXCLUDED.unit, unit_price = EXCLUDED.unit_price,
		              updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		item.Name, item.TotalPrice, item.Quantity, item.Unit, item.UnitPrice, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert item: %w", err)
	}
	return nil
}

// Delete elimina la fila del estado actual. La historia en changes se conserva.
func (r *ItemRepo) Delete(name string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// List devuelve el inventario actual ordenado por nombre.
func (r *ItemRepo) List() ([]*entity.Item, error) {
	query := `
		SELECT name, total_price, quantity, unit, unit_price, updated_at
		FROM items ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.Name, &it.TotalPrice, &it.Quantity, &it.Unit, &it.UnitPrice, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/recibos-api/internal/domain/entity"
	"github.com/jhoicas/recibos-api/internal/domain/repository"
)

var _ repository.ChangeRepository = (*ChangeRepo)(nil)

// ChangeRepo implementación de ChangeRepository sobre PostgreSQL (usable con
// pool o tx). Solo inserta y lee: el libro de cambios nunca se muta.
type ChangeRepo struct {
	q Querier
}

// NewChangeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewChangeRepository(q Querier) *ChangeRepo {
	return &ChangeRepo{q: q}
}

// Append persiste un cambio y rellena el ID monotónico generado.
func (r *ChangeRepo) Append(record *entity.ChangeRecord) error {
	query := `
		INSERT INTO changes (item_name, changed_at, quantity_delta, new_quantity,
		                     old_total_price, new_total_price, old_unit_price, new_unit_price,
		                     unit, source, batch_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		record.ItemName, record.ChangedAt, record.QuantityDelta, record.NewQuantity,
		record.OldTotalPrice, record.NewTotalPrice, record.OldUnitPrice, record.NewUnitPrice,
		record.Unit, record.Source, record.BatchID,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("append change: %w", err)
	}
	return nil
}

// List devuelve los cambios en orden de inserción, filtrados por procedencia
// si source no está vacío.
func (r *ChangeRepo) List(source string) ([]*entity.ChangeRecord, error) {
	query := `
		SELECT id, item_name, changed_at, quantity_delta, new_quantity,
		       old_total_price, new_total_price, old_unit_price, new_unit_price,
		       unit, source, batch_id
		FROM changes`
	args := []any{}
	if source != "" {
		query += ` WHERE source = $1`
		args = append(args, source)
	}
	query += ` ORDER BY id`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list changes: %w", err)
	}
	defer rows.Close()
	var list []*entity.ChangeRecord
	for rows.Next() {
		var c entity.ChangeRecord
		if err := rows.Scan(&c.ID, &c.ItemName, &c.ChangedAt, &c.QuantityDelta, &c.NewQuantity,
			&c.OldTotalPrice, &c.NewTotalPrice, &c.OldUnitPrice, &c.NewUnitPrice,
			&c.Unit, &c.Source, &c.BatchID); err != nil {
			return nil, fmt.Errorf("scan change: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// ListSources devuelve las etiquetas de procedencia distintas (para filtrar).
func (r *ChangeRepo) ListSources() ([]string, error) {
	rows, err := r.q.Query(context.Background(), `SELECT DISTINCT source FROM changes ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()
	var sources []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}

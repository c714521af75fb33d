package repository

import "github.com/jhoicas/recibos-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para el estado actual (DIP).
type ItemRepository interface {
	// GetByName devuelve nil, nil si el nombre no existe.
	GetByName(name string) (*entity.Item, error)
	Upsert(item *entity.Item) error
	Delete(name string) error
	List() ([]*entity.Item, error)
}

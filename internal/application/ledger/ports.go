package ledger

import (
	"context"

	"github.com/jhoicas/recibos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad todo-o-nada del motor
// de conciliación: o se confirman todas las filas de un lote con sus cambios,
// o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		changeRepo repository.ChangeRepository,
	) error) error
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceUser es la etiqueta de procedencia para acciones manuales del usuario,
// en contraste con las etiquetas derivadas de documentos ("<archivo> (<fecha>)").
const SourceUser = "user"

// ChangeRecord es una entrada inmutable del libro de cambios (append-only).
// ItemName referencia al Item por nombre y puede quedar colgando tras un
// borrado: la historia sobrevive a la eliminación del estado actual, por eso
// la tabla no lleva foreign key.
// OldTotalPrice y OldUnitPrice son nil en la primera inserción de un nombre.
type ChangeRecord struct {
	ID            int64
	ItemName      string
	ChangedAt     time.Time
	QuantityDelta decimal.Decimal // con signo: positivo al ingresar, negativo al reducir
	NewQuantity   decimal.Decimal // cantidad resultante tras aplicar el delta
	OldTotalPrice *decimal.Decimal
	NewTotalPrice decimal.Decimal
	OldUnitPrice  *decimal.Decimal
	NewUnitPrice  decimal.Decimal
	Unit          string
	Source        string // etiqueta de procedencia: documento o SourceUser
	BatchID       string // agrupa todos los cambios de un mismo ApplyBatch
}

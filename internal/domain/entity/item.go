package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades reconocidas en los eBons (las dos convenciones observadas).
const (
	UnitPiece    = "Stk" // unidad por conteo (Stück)
	UnitKilogram = "kg"  // unidad por peso
)

// Item representa el estado actual de un producto en el inventario.
// Name es la clave primaria; se crea al primer avistamiento, se fusiona en los
// siguientes y se elimina cuando la cantidad llega a cero o menos.
// Invariante: TotalPrice ≈ Quantity * UnitPrice con redondeo a 3 decimales.
type Item struct {
	Name       string
	TotalPrice decimal.Decimal
	Quantity   decimal.Decimal
	Unit       string
	UnitPrice  decimal.Decimal
	UpdatedAt  time.Time
}

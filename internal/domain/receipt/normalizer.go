package receipt

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/recibos-api/internal/domain/entity"
)

// Normalize completa los LineItems del tokenizador y los convierte en Items
// listos para el motor de conciliación. Una línea sin desglose se interpreta
// como una pieza: cantidad 1, unidad Stk, precio unitario igual al total.
func Normalize(lines []entity.LineItem, now time.Time) []entity.Item {
	items := make([]entity.Item, 0, len(lines))
	for _, l := range lines {
		item := entity.Item{
			Name:       l.Name,
			TotalPrice: Round(l.TotalPrice),
			UpdatedAt:  now,
		}
		if l.HasBreakdown() {
			item.Quantity = Round(*l.Quantity)
			item.Unit = l.Unit
			item.UnitPrice = Round(*l.UnitPrice)
		} else {
			item.Quantity = decimal.NewFromInt(1)
			item.Unit = entity.UnitPiece
			item.UnitPrice = item.TotalPrice
		}
		items = append(items, item)
	}
	return items
}

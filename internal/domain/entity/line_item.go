package entity

import "github.com/shopspring/decimal"

// LineItem es el resultado transitorio del tokenizador: una línea de recibo
// reconocida, con el desglose de cantidad aún opcional (nil cuando el texto no
// traía línea de continuación). No se persiste; el normalizador lo completa y
// el motor de conciliación lo consume.
type LineItem struct {
	Name       string
	TotalPrice decimal.Decimal
	Quantity   *decimal.Decimal
	Unit       string
	UnitPrice  *decimal.Decimal
}

// HasBreakdown indica si la línea traía desglose de cantidad.
func (l LineItem) HasBreakdown() bool {
	return l.Quantity != nil && l.UnitPrice != nil && l.Unit != ""
}

package dto

import (
	"github.com/jhoicas/recibos-api/internal/domain/entity"
	"github.com/jhoicas/recibos-api/internal/domain/receipt"
)

// Los montos salen por la API con la misma convención del recibo: coma decimal
// y sin ceros de relleno ("5", "2,5"). La conversión vive solo aquí, en el
// borde de presentación.

// ItemDTO una fila del estado actual del inventario.
type ItemDTO struct {
	Name       string `json:"name"`
	TotalPrice string `json:"total_price"`
	Quantity   string `json:"quantity"`
	Unit       string `json:"unit"`
	UnitPrice  string `json:"unit_price"`
}

// ItemFromEntity mapea un Item al DTO con formato de coma decimal.
func ItemFromEntity(i *entity.Item) ItemDTO {
	return ItemDTO{
		Name:       i.Name,
		TotalPrice: receipt.FormatAmount(i.TotalPrice),
		Quantity:   receipt.FormatAmount(i.Quantity),
		Unit:       i.Unit,
		UnitPrice:  receipt.FormatAmount(i.UnitPrice),
	}
}

// ChangeDTO una entrada del libro de cambios. Los precios viejos van vacíos
// en la primera inserción de un nombre.
type ChangeDTO struct {
	ID            int64  `json:"id"`
	ItemName      string `json:"item_name"`
	ChangedAt     string `json:"changed_at"`
	QuantityDelta string `json:"quantity_delta"`
	NewQuantity   string `json:"new_quantity"`
	OldTotalPrice string `json:"old_total_price,omitempty"`
	NewTotalPrice string `json:"new_total_price"`
	OldUnitPrice  string `json:"old_unit_price,omitempty"`
	NewUnitPrice  string `json:"new_unit_price"`
	Unit          string `json:"unit"`
	Source        string `json:"source"`
	BatchID       string `json:"batch_id"`
}

// ChangeFromEntity mapea un ChangeRecord al DTO.
func ChangeFromEntity(c *entity.ChangeRecord) ChangeDTO {
	d := ChangeDTO{
		ID:            c.ID,
		ItemName:      c.ItemName,
		ChangedAt:     c.ChangedAt.Format("2006-01-02 15:04:05"),
		QuantityDelta: receipt.FormatAmount(c.QuantityDelta),
		NewQuantity:   receipt.FormatAmount(c.NewQuantity),
		NewTotalPrice: receipt.FormatAmount(c.NewTotalPrice),
		NewUnitPrice:  receipt.FormatAmount(c.NewUnitPrice),
		Unit:          c.Unit,
		Source:        c.Source,
		BatchID:       c.BatchID,
	}
	if c.OldTotalPrice != nil {
		d.OldTotalPrice = receipt.FormatAmount(*c.OldTotalPrice)
	}
	if c.OldUnitPrice != nil {
		d.OldUnitPrice = receipt.FormatAmount(*c.OldUnitPrice)
	}
	return d
}

// ReduceRequest body para POST /api/items/:name/reduce.
// Amount acepta coma o punto decimal ("0,5" o "0.5").
type ReduceRequest struct {
	Amount string `json:"amount"`
}

// ImportResponse resumen de una ingesta de recibo.
type ImportResponse struct {
	Source    string     `json:"source"`
	ItemCount int        `json:"item_count"`
	Market    *MarketDTO `json:"market,omitempty"`
}

// MarketDTO datos del mercado (del directorio o de la cabecera parseada).
type MarketDTO struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	Street     string `json:"street,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	City       string `json:"city,omitempty"`
}

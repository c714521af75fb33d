package receipt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/recibos-api/internal/domain/entity"
	"github.com/jhoicas/recibos-api/internal/domain/receipt"
)

// Sin desglose: una pieza al precio total (cantidad 1, Stk, unitario = total).
func TestNormalize_ValoresPorDefecto(t *testing.T) {
	now := time.Now()
	lines := receipt.Tokenize("Banane 0,89\n---")
	items := receipt.Normalize(lines, now)

	require.Len(t, items, 1)
	assert.Equal(t, "Banane", items[0].Name)
	assert.Equal(t, "1", receipt.FormatAmount(items[0].Quantity))
	assert.Equal(t, entity.UnitPiece, items[0].Unit)
	assert.Equal(t, "0,89", receipt.FormatAmount(items[0].UnitPrice))
	assert.Equal(t, "0,89", receipt.FormatAmount(items[0].TotalPrice))
	assert.Equal(t, now, items[0].UpdatedAt)
}

// Con desglose: los campos de la línea de continuación se conservan tal cual.
func TestNormalize_ConservaDesglose(t *testing.T) {
	lines := receipt.Tokenize("Tomaten 2,99\n0,456 kg x 6,55\n---")
	items := receipt.Normalize(lines, time.Now())

	require.Len(t, items, 1)
	assert.Equal(t, "0,456", receipt.FormatAmount(items[0].Quantity))
	assert.Equal(t, entity.UnitKilogram, items[0].Unit)
	assert.Equal(t, "6,55", receipt.FormatAmount(items[0].UnitPrice))
}

func TestNormalize_ListaVacia(t *testing.T) {
	assert.Empty(t, receipt.Normalize(nil, time.Now()))
}

package receipt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/recibos-api/internal/domain/receipt"
)

// TestTokenize_LineaConDesglose es el escenario de referencia: una línea de
// nombre+total seguida de su línea de desglose "cantidad unidad x precio".
func TestTokenize_LineaConDesglose(t *testing.T) {
	items := receipt.Tokenize("Milch 1,29\n1 Stk x 1,29\n---")

	require.Len(t, items, 1)
	assert.Equal(t, "Milch", items[0].Name)
	assert.Equal(t, "1,29", receipt.FormatAmount(items[0].TotalPrice))
	require.True(t, items[0].HasBreakdown())
	assert.Equal(t, "1", receipt.FormatAmount(*items[0].Quantity))
	assert.Equal(t, "Stk", items[0].Unit)
	assert.Equal(t, "1,29", receipt.FormatAmount(*items[0].UnitPrice))
}

func TestTokenize_DesglosePorPeso(t *testing.T) {
	items := receipt.Tokenize("Tomaten 2,99\n0,456 kg x 6,55\n---")

	require.Len(t, items, 1)
	require.True(t, items[0].HasBreakdown())
	assert.Equal(t, "0,456", receipt.FormatAmount(*items[0].Quantity))
	assert.Equal(t, "kg", items[0].Unit)
	assert.Equal(t, "6,55", receipt.FormatAmount(*items[0].UnitPrice))
}

// Una línea de nombre sin continuación válida queda sin desglose; los valores
// por defecto los pone el normalizador, no el tokenizador.
func TestTokenize_SinLineaDeContinuacion(t *testing.T) {
	items := receipt.Tokenize("Banane 0,89\n---")

	require.Len(t, items, 1)
	assert.Equal(t, "Banane", items[0].Name)
	assert.False(t, items[0].HasBreakdown())
}

func TestTokenize_VariosItemsSeguidos(t *testing.T) {
	text := "Banane 0,89\nKaffee 4,99\n2 Stk x 2,495\n---"
	items := receipt.Tokenize(text)

	require.Len(t, items, 2)
	assert.Equal(t, "Banane", items[0].Name)
	assert.False(t, items[0].HasBreakdown(), "el desglose pertenece al ítem pendiente, no al anterior")
	assert.Equal(t, "Kaffee", items[1].Name)
	require.True(t, items[1].HasBreakdown())
	assert.Equal(t, "2", receipt.FormatAmount(*items[1].Quantity))
}

// TestTokenize_TerminadorGuiones: nada después de la línea de guiones se
// inspecciona, aunque parezca un artículo válido.
func TestTokenize_TerminadorGuiones(t *testing.T) {
	items := receipt.Tokenize("Milch 1,29\n--------\nPfand 0,25")

	require.Len(t, items, 1)
	assert.Equal(t, "Milch", items[0].Name)
}

// La variante enriquecida también corta en cualquier línea con "total".
func TestTokenize_TerminadorTotal(t *testing.T) {
	items := receipt.Tokenize("Milch 1,29\nTotal 1,29\nBrot 2,49")
	require.Len(t, items, 1)

	items = receipt.Tokenize("Milch 1,29\nZWISCHENTOTAL 1,29\nBrot 2,49")
	require.Len(t, items, 1, "el terminador no distingue mayúsculas")
}

// Marcadores de cantidad pegados al nombre ("x 3") se recortan del nombre capturado.
func TestTokenize_RecortaMarcadorDeCantidad(t *testing.T) {
	items := receipt.Tokenize("Bio Eier x 3 2,99\n---")

	require.Len(t, items, 1)
	assert.Equal(t, "Bio Eier", items[0].Name)
	assert.Equal(t, "2,99", receipt.FormatAmount(items[0].TotalPrice))
}

// Las cabeceras y pies sin datos de artículo se saltan en silencio.
func TestTokenize_IgnoraRuido(t *testing.T) {
	text := "REWE Markt GmbH\nHauptstr. 12\nVielen Dank für Ihren Einkauf\nMilch 1,29\n---"
	items := receipt.Tokenize(text)

	require.Len(t, items, 1)
	assert.Equal(t, "Milch", items[0].Name)
}

func TestTokenize_TextoVacio(t *testing.T) {
	assert.Empty(t, receipt.Tokenize(""))
	assert.Empty(t, receipt.Tokenize("---"))
}

package receipt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/jhoicas/recibos-api/internal/domain/receipt"
)

func TestScanHeader_CabeceraCompleta(t *testing.T) {
	text := "REWE Markt GmbH\nHauptstr. 12\n50667 Köln\nMilch 1,29\n---"
	h := receipt.ScanHeader(text)

	assert.Equal(t, "REWE Markt GmbH", h.StoreName)
	assert.Equal(t, "Hauptstr. 12", h.Street)
	assert.Equal(t, "50667", h.PostalCode)
	assert.Equal(t, "Köln", h.City)
}

// El escaneo se detiene en el primer artículo: la cabecera nunca se confunde
// con el bloque de compra.
func TestScanHeader_ParaEnElPrimerItem(t *testing.T) {
	text := "REWE Markt GmbH\nMilch 1,29\nOtra Calle 99\n---"
	h := receipt.ScanHeader(text)

	assert.Equal(t, "REWE Markt GmbH", h.StoreName)
	assert.Empty(t, h.Street)
}

func TestScanHeader_SinCabecera(t *testing.T) {
	h := receipt.ScanHeader("Milch 1,29\n---")
	assert.Empty(t, h.StoreName)
	assert.Empty(t, h.PostalCode)
}

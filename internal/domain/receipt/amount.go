package receipt

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/recibos-api/internal/domain"
)

// Los eBons alemanes escriben los montos con coma decimal ("1,29"). Internamente
// todo se maneja como decimal.Decimal; la coma solo existe en el borde de
// presentación (ParseAmount al entrar, FormatAmount al salir).

// AmountScale es la precisión de trabajo: cantidades y montos se redondean
// siempre a 3 decimales.
const AmountScale = 3

// ParseAmount interpreta un monto con coma o punto decimal.
// Devuelve domain.ErrInvalidInput si el texto no es numérico.
func ParseAmount(s string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: monto %q no es numérico", domain.ErrInvalidInput, s)
	}
	return d, nil
}

// FormatAmount serializa un monto redondeado a 3 decimales con coma decimal y
// sin ceros de relleno: 5.0 -> "5", 2.5 -> "2,5", 1.285 -> "1,285".
func FormatAmount(d decimal.Decimal) string {
	s := d.Round(AmountScale).String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return strings.ReplaceAll(s, ".", ",")
}

// Round redondea al AmountScale de trabajo. Centraliza el redondeo para que la
// aritmética del motor y la del normalizador no diverjan.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountScale)
}

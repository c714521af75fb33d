package receipt

import (
	"regexp"
	"strings"

	"github.com/jhoicas/recibos-api/internal/domain/entity"
)

// Tokenizador de texto de eBon: recorre las líneas extraídas del PDF y produce
// LineItems. La gramática es de dos líneas: una línea de nombre+total y una
// línea opcional de desglose "cantidad unidad x precio". Las líneas que no
// casan con ningún patrón se ignoran en silencio (cabeceras, pie del recibo).

// Patrones de línea. Montos siempre con coma decimal, tal como imprime REWE.
var (
	// "1 Stk x 1,29" / "0,456 kg x 2,99" — desglose del ítem pendiente.
	breakdownPattern = regexp.MustCompile(`(\d+(?:,\d+)?) (kg|Stk) x (\d+,\d+)`)

	// "Milch 1,29" — nombre seguido del precio total de la línea.
	itemPattern = regexp.MustCompile(`^(.*) (\d+,\d+)`)

	// Línea de solo guiones que cierra el bloque de artículos.
	dashesPattern = regexp.MustCompile(`^-+$`)

	// Marcadores de cantidad incrustados al final del nombre ("Brezel x 3").
	trailingMarkerPattern = regexp.MustCompile(`(?i)\s+x\s+\d+(?:,\d+)?$`)
)

// scanState es el estado del autómata de escaneo.
type scanState int

const (
	stateSeekingItem     scanState = iota // sin ítem pendiente: solo puede abrir uno nuevo
	stateSeekingBreakdown                 // hay ítem pendiente: una línea de desglose lo completa
)

// isTerminator reconoce el fin del bloque de artículos: una línea de solo
// guiones o cualquier línea que contenga "total" (la suma del recibo).
func isTerminator(line string) bool {
	trimmed := strings.TrimSpace(line)
	if dashesPattern.MatchString(trimmed) {
		return true
	}
	return strings.Contains(strings.ToLower(trimmed), "total")
}

// completesPending indica si la línea es un desglose válido para el ítem pendiente.
func completesPending(state scanState, line string) bool {
	return state == stateSeekingBreakdown && breakdownPattern.MatchString(line)
}

// opensItem indica si la línea abre un ítem nuevo (nombre + total).
func opensItem(line string) bool {
	return itemPattern.MatchString(line)
}

// Tokenize convierte el texto crudo del recibo en la lista ordenada de líneas
// reconocidas. El desglose de cantidad queda nil cuando la línea siguiente no
// casa; el normalizador pone los valores por defecto después.
func Tokenize(text string) []entity.LineItem {
	var (
		items   []entity.LineItem
		state   = stateSeekingItem
		pending = -1 // índice en items del ítem sin desglose, -1 si no hay
	)

	for _, line := range strings.Split(text, "\n") {
		if isTerminator(line) {
			break
		}

		if completesPending(state, line) {
			m := breakdownPattern.FindStringSubmatch(line)
			qty, _ := ParseAmount(m[1])
			unitPrice, _ := ParseAmount(m[3])
			items[pending].Quantity = &qty
			items[pending].Unit = m[2]
			items[pending].UnitPrice = &unitPrice
			state = stateSeekingItem
			pending = -1
			continue
		}

		if opensItem(line) {
			m := itemPattern.FindStringSubmatch(line)
			total, _ := ParseAmount(m[2])
			items = append(items, entity.LineItem{
				Name:       cleanName(m[1]),
				TotalPrice: total,
			})
			state = stateSeekingBreakdown
			pending = len(items) - 1
		}
		// Cualquier otra línea se salta sin error: los recibos traen cabeceras
		// y pies sin datos de artículo.
	}
	return items
}

// cleanName recorta espacios y elimina marcadores de cantidad pegados al nombre.
func cleanName(name string) string {
	name = strings.TrimSpace(name)
	return trailingMarkerPattern.ReplaceAllString(name, "")
}

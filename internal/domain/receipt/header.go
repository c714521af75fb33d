package receipt

import (
	"regexp"
	"strings"
)

// Header son los datos del mercado impresos en la cabecera del eBon, antes del
// bloque de artículos. Sirven de entrada (y de valor de respaldo) para el
// enriquecimiento contra el directorio de mercados.
type Header struct {
	StoreName  string
	Street     string
	PostalCode string
	City       string
}

// "50667 Köln" — código postal alemán de 5 dígitos seguido de la ciudad.
var postalCityPattern = regexp.MustCompile(`^(\d{5}) (.+)$`)

// ScanHeader extrae nombre, calle y código postal de las primeras líneas del
// recibo. Es de mejor esfuerzo: el escaneo se detiene en cuanto empieza el
// bloque de artículos y los campos no encontrados quedan vacíos.
func ScanHeader(text string) Header {
	var h Header
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isTerminator(line) || opensItem(line) {
			break
		}
		if m := postalCityPattern.FindStringSubmatch(line); m != nil {
			h.PostalCode = m[1]
			h.City = m[2]
			continue
		}
		if h.StoreName == "" {
			h.StoreName = line
			continue
		}
		if h.Street == "" {
			h.Street = line
		}
	}
	return h
}

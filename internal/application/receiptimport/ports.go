package receiptimport

import "context"

// Market son los datos de un mercado devueltos por el directorio externo.
type Market struct {
	ID         string
	Name       string
	Street     string
	PostalCode string
	City       string
}

// AddressEnricher es la capacidad opcional de resolver la dirección de la
// cabecera del recibo contra un directorio de mercados. Contrato: nunca
// panic; cualquier fallo (red, respuesta vacía o malformada) se devuelve como
// error y el caller conserva los campos parseados. Se invoca a lo sumo una vez
// por documento.
type AddressEnricher interface {
	Lookup(ctx context.Context, street, postalCode string) (*Market, error)
}

// NoopEnricher satisface AddressEnricher sin consultar nada (dev y tests).
type NoopEnricher struct{}

// Lookup devuelve siempre "sin resultado".
func (NoopEnricher) Lookup(ctx context.Context, street, postalCode string) (*Market, error) {
	return nil, nil
}

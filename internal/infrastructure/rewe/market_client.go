// Package rewe implementa el AddressEnricher contra el directorio público de
// mercados REWE. Es un adaptador de mejor esfuerzo: cualquier fallo de red o
// de formato se devuelve como error y el caller sigue con los datos parseados.
package rewe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/recibos-api/internal/application/receiptimport"
)

// Verificar en tiempo de compilación que MarketClient implementa AddressEnricher.
var _ receiptimport.AddressEnricher = (*MarketClient)(nil)

const defaultBaseURL = "https://www.rewe.de"

// MarketClient consulta el buscador de mercados por calle y código postal.
// Usa net/http de la librería estándar; el endpoint no requiere credenciales.
type MarketClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewMarketClient construye el cliente. baseURL vacío usa el directorio público.
func NewMarketClient(baseURL string) *MarketClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &MarketClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			// El enriquecimiento nunca debe retrasar una ingesta más que esto.
			Timeout: 5 * time.Second,
		},
	}
}

// marketSearchResult estructura mínima de la respuesta del buscador.
type marketSearchResult struct {
	ID          string `json:"wwIdent"`
	CompanyName string `json:"companyName"`
	Street      string `json:"contactStreet"`
	ZipCode     string `json:"contactZipCode"`
	City        string `json:"contactCity"`
}

// Lookup busca el mercado por "calle código-postal". Devuelve nil, nil cuando
// el directorio no encuentra nada; nunca panic.
func (c *MarketClient) Lookup(ctx context.Context, street, postalCode string) (*receiptimport.Market, error) {
	term := strings.TrimSpace(street + " " + postalCode)
	if term == "" {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/api/marketsearch?searchTerm=%s", c.baseURL, url.QueryEscape(term))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("consultar directorio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directorio respondió %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("leer respuesta: %w", err)
	}

	var results []marketSearchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("respuesta malformada: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	first := results[0]
	return &receiptimport.Market{
		ID:         first.ID,
		Name:       first.CompanyName,
		Street:     first.Street,
		PostalCode: first.ZipCode,
		City:       first.City,
	}, nil
}

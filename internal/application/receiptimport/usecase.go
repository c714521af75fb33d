package receiptimport

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/recibos-api/internal/application/ledger"
	"github.com/jhoicas/recibos-api/internal/domain/receipt"
	"github.com/jhoicas/recibos-api/pkg/logger"
)

// ImportUseCase orquesta la ingesta de un documento: tokeniza el texto del
// eBon, normaliza las líneas, resuelve el mercado (mejor esfuerzo) y concilia
// el lote contra el libro mayor con la etiqueta de procedencia del documento.
type ImportUseCase struct {
	ledger   *ledger.LedgerUseCase
	enricher AddressEnricher
	log      *logger.Logger
}

// NewImportUseCase construye el caso de uso. enricher puede ser NoopEnricher.
func NewImportUseCase(lg *ledger.LedgerUseCase, enricher AddressEnricher, log *logger.Logger) *ImportUseCase {
	return &ImportUseCase{ledger: lg, enricher: enricher, log: log}
}

// Result es el resumen de una ingesta.
type Result struct {
	Source    string
	ItemCount int
	Market    *Market // nil si el directorio no resolvió nada
}

// Import procesa el texto extraído de un documento subido. filename es el
// nombre original del archivo; la etiqueta de procedencia queda como
// "<archivo> (YYYY-MM-DD HH:MM:SS)".
func (uc *ImportUseCase) Import(ctx context.Context, filename, text string) (*Result, error) {
	now := time.Now()
	lines := receipt.Tokenize(text)
	items := receipt.Normalize(lines, now)

	source := fmt.Sprintf("%s (%s)", filename, now.Format("2006-01-02 15:04:05"))
	if err := uc.ledger.ApplyBatch(ctx, items, source); err != nil {
		return nil, fmt.Errorf("conciliar lote de %s: %w", filename, err)
	}

	result := &Result{Source: source, ItemCount: len(items)}

	// Enriquecimiento de mercado: opcional y nunca fatal. Si falla se
	// conservan los campos de la cabecera parseada.
	header := receipt.ScanHeader(text)
	if header.Street != "" || header.PostalCode != "" {
		market, err := uc.enricher.Lookup(ctx, header.Street, header.PostalCode)
		if err != nil {
			uc.log.Debug().Err(err).Str("file", filename).Msg("directorio de mercados no disponible")
		} else if market != nil {
			result.Market = market
		}
	}
	if result.Market == nil && header.StoreName != "" {
		result.Market = &Market{
			Name:       header.StoreName,
			Street:     header.Street,
			PostalCode: header.PostalCode,
			City:       header.City,
		}
	}

	return result, nil
}

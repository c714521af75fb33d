package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/recibos-api/internal/domain"
	"github.com/jhoicas/recibos-api/internal/domain/entity"
	"github.com/jhoicas/recibos-api/internal/domain/receipt"
	"github.com/jhoicas/recibos-api/internal/domain/repository"
)

// LedgerUseCase es el motor de conciliación: el único escritor de items y
// changes. Funde lotes de artículos parseados en el estado actual y expone las
// mismas primitivas para los ajustes manuales del usuario.
//
// Las escrituras se serializan con un mutex: un documento o una acción manual
// se concilia completa antes de aceptar la siguiente. Las lecturas del estado
// actual son seguras en cualquier momento.
type LedgerUseCase struct {
	mu         sync.Mutex
	txRunner   TxRunner
	itemRepo   repository.ItemRepository
	changeRepo repository.ChangeRepository
}

// NewLedgerUseCase construye el caso de uso. itemRepo y changeRepo atados al
// pool se usan solo para lecturas; toda mutación pasa por txRunner.
func NewLedgerUseCase(txRunner TxRunner, itemRepo repository.ItemRepository, changeRepo repository.ChangeRepository) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:   txRunner,
		itemRepo:   itemRepo,
		changeRepo: changeRepo,
	}
}

// ApplyBatch funde un lote normalizado en el inventario dentro de una sola
// transacción, en orden de entrada. Nombre existente: cantidad y precio total
// se suman, unidad y precio unitario los pisa el lote (corrección de precio en
// la reposición). Nombre nuevo: inserción literal. Cada mutación emite
// exactamente un ChangeRecord con la etiqueta de procedencia.
func (uc *LedgerUseCase) ApplyBatch(ctx context.Context, items []entity.Item, source string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := time.Now()
	batchID := uuid.New().String()

	return uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		changeRepo repository.ChangeRepository,
	) error {
		for i := range items {
			if err := applyOne(itemRepo, changeRepo, &items[i], source, batchID, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// applyOne funde un artículo del lote y registra su cambio. Se ejecuta dentro
// de la transacción del lote; un error aborta y revierte todo el ApplyBatch.
func applyOne(
	itemRepo repository.ItemRepository,
	changeRepo repository.ChangeRepository,
	incoming *entity.Item,
	source, batchID string,
	now time.Time,
) error {
	existing, err := itemRepo.GetByName(incoming.Name)
	if err != nil {
		return err
	}

	if existing == nil {
		inserted := *incoming
		inserted.UpdatedAt = now
		if err := itemRepo.Upsert(&inserted); err != nil {
			return err
		}
		return changeRepo.Append(&entity.ChangeRecord{
			ItemName:      inserted.Name,
			ChangedAt:     now,
			QuantityDelta: inserted.Quantity,
			NewQuantity:   inserted.Quantity,
			NewTotalPrice: inserted.TotalPrice,
			NewUnitPrice:  inserted.UnitPrice,
			Unit:          inserted.Unit,
			Source:        source,
			BatchID:       batchID,
		})
	}

	oldTotal := existing.TotalPrice
	oldUnitPrice := existing.UnitPrice

	merged := entity.Item{
		Name:       existing.Name,
		Quantity:   receipt.Round(existing.Quantity.Add(incoming.Quantity)),
		TotalPrice: receipt.Round(existing.TotalPrice.Add(incoming.TotalPrice)),
		// Unidad y precio unitario: gana el último lote.
		Unit:      incoming.Unit,
		UnitPrice: incoming.UnitPrice,
		UpdatedAt: now,
	}
	if err := itemRepo.Upsert(&merged); err != nil {
		return err
	}
	return changeRepo.Append(&entity.ChangeRecord{
		ItemName:      merged.Name,
		ChangedAt:     now,
		QuantityDelta: incoming.Quantity,
		NewQuantity:   merged.Quantity,
		OldTotalPrice: &oldTotal,
		NewTotalPrice: merged.TotalPrice,
		OldUnitPrice:  &oldUnitPrice,
		NewUnitPrice:  merged.UnitPrice,
		Unit:          merged.Unit,
		Source:        source,
		BatchID:       batchID,
	})
}

// Reduce descuenta una cantidad de un artículo por acción manual del usuario.
// amount acepta coma o punto decimal y debe ser no negativo; si no parsea se
// devuelve domain.ErrInvalidInput sin tocar el estado. Si la cantidad
// resultante queda en cero o menos, el artículo desaparece del estado actual y
// su cambio terminal queda en la historia.
func (uc *LedgerUseCase) Reduce(ctx context.Context, name, amount string) error {
	reduceBy, err := receipt.ParseAmount(amount)
	if err != nil {
		return err
	}
	if reduceBy.IsNegative() {
		return domain.ErrInvalidInput
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := time.Now()
	batchID := uuid.New().String()

	return uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		changeRepo repository.ChangeRepository,
	) error {
		existing, err := itemRepo.GetByName(name)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}

		newQty := receipt.Round(existing.Quantity.Sub(reduceBy))
		if newQty.LessThanOrEqual(decimal.Zero) {
			return removeWithRecord(itemRepo, changeRepo, existing, reduceBy.Neg(), batchID, now)
		}

		oldTotal := existing.TotalPrice
		oldUnitPrice := existing.UnitPrice
		updated := entity.Item{
			Name:       existing.Name,
			Quantity:   newQty,
			TotalPrice: receipt.Round(existing.TotalPrice.Sub(reduceBy.Mul(existing.UnitPrice))),
			Unit:       existing.Unit,
			// El precio unitario no cambia en una reducción.
			UnitPrice: existing.UnitPrice,
			UpdatedAt: now,
		}
		if err := itemRepo.Upsert(&updated); err != nil {
			return err
		}
		return changeRepo.Append(&entity.ChangeRecord{
			ItemName:      updated.Name,
			ChangedAt:     now,
			QuantityDelta: reduceBy.Neg(),
			NewQuantity:   updated.Quantity,
			OldTotalPrice: &oldTotal,
			NewTotalPrice: updated.TotalPrice,
			OldUnitPrice:  &oldUnitPrice,
			NewUnitPrice:  updated.UnitPrice,
			Unit:          updated.Unit,
			Source:        entity.SourceUser,
			BatchID:       batchID,
		})
	})
}

// Delete elimina un artículo del estado actual por acción manual. Igual que la
// reducción a cero, deja un cambio terminal en la historia con el delta por la
// cantidad restante completa.
func (uc *LedgerUseCase) Delete(ctx context.Context, name string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := time.Now()
	batchID := uuid.New().String()

	return uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		changeRepo repository.ChangeRepository,
	) error {
		existing, err := itemRepo.GetByName(name)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		return removeWithRecord(itemRepo, changeRepo, existing, existing.Quantity.Neg(), batchID, now)
	})
}

// removeWithRecord borra la fila del estado actual y emite el cambio terminal:
// cantidad resultante 0, precios nuevos 0, delta negativo. El ItemName del
// registro queda colgando a propósito: la historia sobrevive al borrado.
func removeWithRecord(
	itemRepo repository.ItemRepository,
	changeRepo repository.ChangeRepository,
	existing *entity.Item,
	delta decimal.Decimal,
	batchID string,
	now time.Time,
) error {
	if err := itemRepo.Delete(existing.Name); err != nil {
		return err
	}
	oldTotal := existing.TotalPrice
	oldUnitPrice := existing.UnitPrice
	return changeRepo.Append(&entity.ChangeRecord{
		ItemName:      existing.Name,
		ChangedAt:     now,
		QuantityDelta: delta,
		NewQuantity:   decimal.Zero,
		OldTotalPrice: &oldTotal,
		NewTotalPrice: decimal.Zero,
		OldUnitPrice:  &oldUnitPrice,
		NewUnitPrice:  decimal.Zero,
		Unit:          existing.Unit,
		Source:        entity.SourceUser,
		BatchID:       batchID,
	})
}

// ListItems devuelve el estado actual del inventario.
func (uc *LedgerUseCase) ListItems(ctx context.Context) ([]*entity.Item, error) {
	return uc.itemRepo.List()
}

// ListChanges devuelve el libro de cambios, filtrado por etiqueta de
// procedencia si source no está vacío.
func (uc *LedgerUseCase) ListChanges(ctx context.Context, source string) ([]*entity.ChangeRecord, error) {
	return uc.changeRepo.List(source)
}

// ListSources devuelve las etiquetas de procedencia registradas (para el
// filtro de la vista de cambios).
func (uc *LedgerUseCase) ListSources(ctx context.Context) ([]string, error) {
	return uc.changeRepo.ListSources()
}

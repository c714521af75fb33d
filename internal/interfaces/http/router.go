package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/recibos-api/internal/application/ledger"
	"github.com/jhoicas/recibos-api/internal/application/receiptimport"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC *ledger.LedgerUseCase
	ImportUC *receiptimport.ImportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	receiptHandler := NewReceiptHandler(deps.ImportUC)
	api.Post("/receipts", receiptHandler.Upload)

	itemHandler := NewItemHandler(deps.LedgerUC)
	items := api.Group("/items")
	items.Get("/", itemHandler.List)
	items.Post("/:name/reduce", itemHandler.Reduce)
	items.Delete("/:name", itemHandler.Delete)

	changeHandler := NewChangeHandler(deps.LedgerUC)
	changes := api.Group("/changes")
	changes.Get("/", changeHandler.List)
	changes.Get("/sources", changeHandler.Sources)
}

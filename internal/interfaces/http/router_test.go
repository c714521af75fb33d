package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/recibos-api/internal/application/dto"
	"github.com/jhoicas/recibos-api/internal/application/ledger"
	"github.com/jhoicas/recibos-api/internal/application/receiptimport"
	"github.com/jhoicas/recibos-api/internal/domain/entity"
	httpiface "github.com/jhoicas/recibos-api/internal/interfaces/http"
	"github.com/jhoicas/recibos-api/internal/infrastructure/memory"
	"github.com/jhoicas/recibos-api/pkg/logger"
	"github.com/shopspring/decimal"
)

func newTestApp(t *testing.T) (*fiber.App, *ledger.LedgerUseCase) {
	t.Helper()
	store := memory.NewStore()
	ledgerUC := ledger.NewLedgerUseCase(memory.NewTxRunner(store), store.ItemRepository(), store.ChangeRepository())
	importUC := receiptimport.NewImportUseCase(ledgerUC, receiptimport.NoopEnricher{}, logger.Nop())

	app := fiber.New()
	httpiface.Router(app, httpiface.RouterDeps{LedgerUC: ledgerUC, ImportUC: importUC})
	return app, ledgerUC
}

func seedItem(t *testing.T, uc *ledger.LedgerUseCase, name, qty, unitPrice, total string) {
	t.Helper()
	err := uc.ApplyBatch(context.Background(), []entity.Item{{
		Name:       name,
		Quantity:   decimal.RequireFromString(qty),
		Unit:       entity.UnitPiece,
		UnitPrice:  decimal.RequireFromString(unitPrice),
		TotalPrice: decimal.RequireFromString(total),
	}}, "seed.pdf (2024-03-01 10:00:00)")
	require.NoError(t, err)
}

func TestListItems(t *testing.T) {
	app, uc := newTestApp(t)
	seedItem(t, uc, "Milch", "2", "1.29", "2.58")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/items", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var items []dto.ItemDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "Milch", items[0].Name)
	assert.Equal(t, "2", items[0].Quantity)
	// Los montos salen con coma decimal, como en el recibo.
	assert.Equal(t, "2,58", items[0].TotalPrice)
	assert.Equal(t, "1,29", items[0].UnitPrice)
}

func TestReduceItem(t *testing.T) {
	app, uc := newTestApp(t)
	seedItem(t, uc, "Milch", "3", "1.29", "3.87")

	body := strings.NewReader(`{"amount":"0,5"}`)
	req := httptest.NewRequest("POST", "/api/items/Milch/reduce", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	items, err := uc.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Quantity.Equal(decimal.RequireFromString("2.5")))
}

func TestReduceItem_CantidadInvalida(t *testing.T) {
	app, uc := newTestApp(t)
	seedItem(t, uc, "Milch", "3", "1.29", "3.87")

	req := httptest.NewRequest("POST", "/api/items/Milch/reduce", strings.NewReader(`{"amount":"abc"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "VALIDATION", out.Code)
}

func TestReduceItem_NoEncontrado(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/items/Fantasma/reduce", strings.NewReader(`{"amount":"1"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// El nombre en la ruta viene URL-encoded: "K%C3%B6lsch%20Bier" debe resolver
// al artículo "Kölsch Bier".
func TestDeleteItem_NombreConEscapes(t *testing.T) {
	app, uc := newTestApp(t)
	seedItem(t, uc, "Kölsch Bier", "1", "0.89", "0.89")

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/items/K%C3%B6lsch%20Bier", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	items, err := uc.ListItems(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDeleteItem_NoEncontrado(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/items/Fantasma", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListChanges_ConFiltro(t *testing.T) {
	app, uc := newTestApp(t)
	seedItem(t, uc, "Milch", "3", "1.29", "3.87")
	require.NoError(t, uc.Reduce(context.Background(), "Milch", "1"))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/changes?source=user", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var changes []dto.ChangeDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&changes))
	require.Len(t, changes, 1)
	assert.Equal(t, entity.SourceUser, changes[0].Source)
	assert.Equal(t, "-1", changes[0].QuantityDelta)
}

func TestListSources(t *testing.T) {
	app, uc := newTestApp(t)
	seedItem(t, uc, "Milch", "1", "1.29", "1.29")

	resp, err := app.Test(httptest.NewRequest("GET", "/api/changes/sources", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var sources []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sources))
	assert.Equal(t, []string{"seed.pdf (2024-03-01 10:00:00)"}, sources)
}

func multipartReceipt(t *testing.T, filename, content string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("receipt", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadReceipt(t *testing.T) {
	app, uc := newTestApp(t)

	body, contentType := multipartReceipt(t, "ebon.pdf", "REWE Markt GmbH\nMilch 1,29\n")
	req := httptest.NewRequest("POST", "/api/receipts", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out dto.ImportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 1, out.ItemCount)
	assert.Contains(t, out.Source, "ebon.pdf (")
	require.NotNil(t, out.Market)
	assert.Equal(t, "REWE Markt GmbH", out.Market.Name)

	items, err := uc.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Milch", items[0].Name)
}

// Texto en Windows-1252 (los extractores viejos): los bytes no-UTF-8 se
// decodifican y las eñes alemanas llegan bien al inventario.
func TestUploadReceipt_Latin1(t *testing.T) {
	app, uc := newTestApp(t)

	// "Müsli 2,49" con la ü en latín-1 (0xFC).
	content := append([]byte("M"), 0xFC)
	content = append(content, []byte("sli 2,49\n")...)

	body, contentType := multipartReceipt(t, "ebon.pdf", string(content))
	req := httptest.NewRequest("POST", "/api/receipts", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	items, err := uc.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Müsli", items[0].Name)
}

func TestUploadReceipt_SinArchivo(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/receipts", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

package http

import (
	"io"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/encoding/charmap"
	"github.com/jhoicas/recibos-api/internal/application/dto"
	"github.com/jhoicas/recibos-api/internal/application/receiptimport"
)

// ReceiptHandler recibe el texto extraído de un eBon y dispara la ingesta.
type ReceiptHandler struct {
	importUC *receiptimport.ImportUseCase
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(importUC *receiptimport.ImportUseCase) *ReceiptHandler {
	return &ReceiptHandler{importUC: importUC}
}

// Upload godoc
// @Summary      Ingerir un recibo
// @Description  Recibe el texto ya extraído del PDF (multipart, campo "receipt"),
//               lo tokeniza y concilia el lote contra el inventario.
// @Tags         receipts
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  dto.ImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *ReceiptHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "falta el archivo 'receipt'"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo abrir el archivo"})
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
	}

	result, err := h.importUC.Import(c.Context(), fileHeader.Filename, decodeText(raw))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	resp := dto.ImportResponse{Source: result.Source, ItemCount: result.ItemCount}
	if result.Market != nil {
		resp.Market = &dto.MarketDTO{
			ID:         result.Market.ID,
			Name:       result.Market.Name,
			Street:     result.Market.Street,
			PostalCode: result.Market.PostalCode,
			City:       result.Market.City,
		}
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// decodeText interpreta los bytes subidos como UTF-8 y, si no son válidos,
// los decodifica como Windows-1252 (los extractores viejos a veces entregan
// el texto alemán en latín-1).
func decodeText(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

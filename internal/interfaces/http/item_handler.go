package http

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/recibos-api/internal/application/dto"
	"github.com/jhoicas/recibos-api/internal/application/ledger"
	"github.com/jhoicas/recibos-api/internal/domain"
)

// ItemHandler maneja las peticiones HTTP del estado actual del inventario.
type ItemHandler struct {
	uc *ledger.LedgerUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *ledger.LedgerUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// List godoc
// @Summary      Listar inventario actual
// @Tags         items
// @Produce      json
// @Success      200  {array}  dto.ItemDTO
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.ListItems(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ItemFromEntity(it))
	}
	return c.JSON(out)
}

// Reduce godoc
// @Summary      Reducir cantidad de un artículo
// @Description  Descuenta la cantidad indicada (coma o punto decimal). Si el
//               resultado queda en cero o menos, el artículo se elimina y su
//               cambio terminal queda en la historia.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        name  path  string             true  "nombre del artículo"
// @Param        body  body  dto.ReduceRequest  true  "amount"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{name}/reduce [post]
func (h *ItemHandler) Reduce(c *fiber.Ctx) error {
	name, err := pathName(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre inválido"})
	}
	var in dto.ReduceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	err = h.uc.Reduce(c.Context(), name, in.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cantidad a reducir inválida"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "cantidad reducida"})
}

// Delete godoc
// @Summary      Eliminar un artículo del estado actual
// @Description  Borra la fila y registra el cambio terminal; la historia en
//               changes se conserva.
// @Tags         items
// @Produce      json
// @Param        name  path  string  true  "nombre del artículo"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{name} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	name, err := pathName(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre inválido"})
	}
	if err := h.uc.Delete(c.Context(), name); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "artículo eliminado"})
}

// pathName extrae el nombre del artículo de la ruta (viene URL-encoded).
func pathName(c *fiber.Ctx) (string, error) {
	return url.PathUnescape(c.Params("name"))
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/recibos-api/internal/application/dto"
	"github.com/jhoicas/recibos-api/internal/application/ledger"
)

// ChangeHandler expone el libro de cambios (solo lectura).
type ChangeHandler struct {
	uc *ledger.LedgerUseCase
}

// NewChangeHandler construye el handler.
func NewChangeHandler(uc *ledger.LedgerUseCase) *ChangeHandler {
	return &ChangeHandler{uc: uc}
}

// List godoc
// @Summary      Listar el libro de cambios
// @Tags         changes
// @Produce      json
// @Param        source  query  string  false  "filtrar por etiqueta de procedencia"
// @Success      200  {array}  dto.ChangeDTO
// @Router       /api/changes [get]
func (h *ChangeHandler) List(c *fiber.Ctx) error {
	changes, err := h.uc.ListChanges(c.Context(), c.Query("source"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ChangeDTO, 0, len(changes))
	for _, ch := range changes {
		out = append(out, dto.ChangeFromEntity(ch))
	}
	return c.JSON(out)
}

// Sources godoc
// @Summary      Listar etiquetas de procedencia registradas
// @Tags         changes
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/changes/sources [get]
func (h *ChangeHandler) Sources(c *fiber.Ctx) error {
	sources, err := h.uc.ListSources(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(sources)
}

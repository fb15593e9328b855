package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/powerkey/power-app/internal/application/stock"
	"github.com/powerkey/power-app/pkg/logger"
)

// ItemHandler consultas de artículos.
type ItemHandler struct {
	uc  *stock.ItemDetailsUseCase
	log *logger.Logger
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *stock.ItemDetailsUseCase, log *logger.Logger) *ItemHandler {
	return &ItemHandler{uc: uc, log: log}
}

// Details godoc
// @Summary      Existencia y últimas tarifas de compra y venta
// @Tags         items
// @Produce      json
// @Param        code  path  string  true  "Código de artículo"
// @Success      200   {object}  dto.ItemDetailsResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/items/{code}/details [get]
func (h *ItemHandler) Details(c *fiber.Ctx) error {
	code, ok, err := nameParam(c, "code")
	if !ok {
		return err
	}
	out, err := h.uc.Details(c.UserContext(), code)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

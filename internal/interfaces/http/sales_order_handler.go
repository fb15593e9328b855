package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/internal/application/selling"
	"github.com/powerkey/power-app/pkg/logger"
)

// SalesOrderHandler rutas del pedido de venta.
type SalesOrderHandler struct {
	uc  *selling.SalesOrderUseCase
	log *logger.Logger
}

// NewSalesOrderHandler construye el handler.
func NewSalesOrderHandler(uc *selling.SalesOrderUseCase, log *logger.Logger) *SalesOrderHandler {
	return &SalesOrderHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear pedido en borrador (copia gastos de la cotización)
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SalesOrderRequest  true  "Pedido"
// @Success      201   {object}  dto.SalesOrderResponse
// @Router       /api/sales-orders [post]
func (h *SalesOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.SalesOrderRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetCompany(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener pedido
// @Tags         sales-orders
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Success      200   {object}  dto.SalesOrderResponse
// @Router       /api/sales-orders/{name} [get]
func (h *SalesOrderHandler) Get(c *fiber.Ctx) error {
	name, ok, err := nameParam(c, "name")
	if !ok {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), GetCompany(c), name)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar pedido en borrador
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Param        body  body  dto.SalesOrderRequest  true  "Pedido"
// @Success      200   {object}  dto.SalesOrderResponse
// @Router       /api/sales-orders/{name} [put]
func (h *SalesOrderHandler) Save(c *fiber.Ctx) error {
	name, ok, err := nameParam(c, "name")
	if !ok {
		return err
	}
	var in dto.SalesOrderRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Save(c.UserContext(), GetCompany(c), name, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar pedido (genera el asiento de gastos de servicio)
// @Tags         sales-orders
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Success      200   {object}  dto.SalesOrderResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{name}/submit [post]
func (h *SalesOrderHandler) Submit(c *fiber.Ctx) error {
	name, ok, err := nameParam(c, "name")
	if !ok {
		return err
	}
	out, err := h.uc.Submit(c.UserContext(), GetCompany(c), name)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

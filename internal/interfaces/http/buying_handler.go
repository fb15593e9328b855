package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/powerkey/power-app/internal/application/buying"
	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/pkg/logger"
)

// SupplierQuotationHandler rutas de cotizaciones de proveedor.
type SupplierQuotationHandler struct {
	uc  *buying.SupplierQuotationUseCase
	log *logger.Logger
}

// NewSupplierQuotationHandler construye el handler.
func NewSupplierQuotationHandler(uc *buying.SupplierQuotationUseCase, log *logger.Logger) *SupplierQuotationHandler {
	return &SupplierQuotationHandler{uc: uc, log: log}
}

// Save godoc
// @Summary      Guardar cotización de proveedor (crea si name está vacío)
// @Tags         supplier-quotations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupplierQuotationRequest  true  "Cotización de proveedor"
// @Success      200   {object}  dto.SupplierQuotationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/supplier-quotations [post]
func (h *SupplierQuotationHandler) Save(c *fiber.Ctx) error {
	var in dto.SupplierQuotationRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Save(c.UserContext(), GetCompany(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener cotización de proveedor
// @Tags         supplier-quotations
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Success      200   {object}  dto.SupplierQuotationResponse
// @Router       /api/supplier-quotations/{name} [get]
func (h *SupplierQuotationHandler) Get(c *fiber.Ctx) error {
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

// Submit godoc
// @Summary      Enviar cotización de proveedor
// @Tags         supplier-quotations
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Success      200   {object}  dto.SupplierQuotationResponse
// @Router       /api/supplier-quotations/{name}/submit [post]
func (h *SupplierQuotationHandler) Submit(c *fiber.Ctx) error {
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

// LinkedQuotation godoc
// @Summary      Cotización de cliente ligada vía solicitud de material
// @Tags         supplier-quotations
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Success      200   {object}  dto.LinkedQuotationResponse
// @Router       /api/supplier-quotations/{name}/linked-quotation [get]
func (h *SupplierQuotationHandler) LinkedQuotation(c *fiber.Ctx) error {
	name, ok, err := nameParam(c, "name")
	if !ok {
		return err
	}
	out, err := h.uc.LinkedQuotation(c.UserContext(), GetCompany(c), name)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateQuotation godoc
// @Summary      Reemplazar líneas de la cotización de cliente con las del proveedor
// @Tags         supplier-quotations
// @Accept       json
// @Produce      json
// @Param        name  path  string  true  "Cotización de proveedor"
// @Param        body  body  dto.UpdateQuotationRequest  true  "Cotización destino"
// @Success      200   {object}  dto.UpdateQuotationResponse
// @Router       /api/supplier-quotations/{name}/update-quotation [post]
func (h *SupplierQuotationHandler) UpdateQuotation(c *fiber.Ctx) error {
	name, ok, err := nameParam(c, "name")
	if !ok {
		return err
	}
	var in dto.UpdateQuotationRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateQuotation(c.UserContext(), GetCompany(c), name, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// MaterialRequestHandler rutas de solicitudes de material.
type MaterialRequestHandler struct {
	uc  *buying.MaterialRequestUseCase
	log *logger.Logger
}

// NewMaterialRequestHandler construye el handler.
func NewMaterialRequestHandler(uc *buying.MaterialRequestUseCase, log *logger.Logger) *MaterialRequestHandler {
	return &MaterialRequestHandler{uc: uc, log: log}
}

// Save godoc
// @Summary      Guardar solicitud de material en borrador
// @Tags         material-requests
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MaterialRequestRequest  true  "Solicitud"
// @Success      200   {object}  dto.MaterialRequestResponse
// @Router       /api/material-requests [post]
func (h *MaterialRequestHandler) Save(c *fiber.Ctx) error {
	var in dto.MaterialRequestRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Save(c.UserContext(), GetCompany(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener solicitud de material
// @Tags         material-requests
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Success      200   {object}  dto.MaterialRequestResponse
// @Router       /api/material-requests/{name} [get]
func (h *MaterialRequestHandler) Get(c *fiber.Ctx) error {
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

// Submit godoc
// @Summary      Enviar solicitud de material
// @Tags         material-requests
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Success      200   {object}  dto.MaterialRequestResponse
// @Router       /api/material-requests/{name}/submit [post]
func (h *MaterialRequestHandler) Submit(c *fiber.Ctx) error {
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

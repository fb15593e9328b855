package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/powerkey/power-app/internal/application/buying"
	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/internal/application/printing"
	"github.com/powerkey/power-app/internal/application/selling"
	"github.com/powerkey/power-app/pkg/logger"
)

// QuotationHandler rutas de la cotización de cliente y sus mapeos.
type QuotationHandler struct {
	uc  *selling.QuotationUseCase
	mr  *buying.MaterialRequestUseCase
	pdf *printing.QuotationPDFUseCase
	log *logger.Logger
}

// NewQuotationHandler construye el handler.
func NewQuotationHandler(uc *selling.QuotationUseCase, mr *buying.MaterialRequestUseCase, pdf *printing.QuotationPDFUseCase, log *logger.Logger) *QuotationHandler {
	return &QuotationHandler{uc: uc, mr: mr, pdf: pdf, log: log}
}

// Create godoc
// @Summary      Crear cotización en borrador (prorratea gastos y aplica margen)
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QuotationRequest  true  "Cotización"
// @Success      201   {object}  dto.QuotationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/quotations [post]
func (h *QuotationHandler) Create(c *fiber.Ctx) error {
	var in dto.QuotationRequest
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
// @Summary      Obtener cotización
// @Tags         quotations
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Success      200   {object}  dto.QuotationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotations/{name} [get]
func (h *QuotationHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Guardar cotización en borrador
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Param        body  body  dto.QuotationRequest  true  "Cotización"
// @Success      200   {object}  dto.QuotationResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/quotations/{name} [put]
func (h *QuotationHandler) Save(c *fiber.Ctx) error {
	name, ok, err := nameParam(c, "name")
	if !ok {
		return err
	}
	var in dto.QuotationRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Save(c.UserContext(), GetCompany(c), name, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Marcar la cotización como aprobada
// @Tags         quotations
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Success      200   {object}  dto.QuotationResponse
// @Router       /api/quotations/{name}/approve [post]
func (h *QuotationHandler) Approve(c *fiber.Ctx) error {
	name, ok, err := nameParam(c, "name")
	if !ok {
		return err
	}
	out, err := h.uc.Approve(c.UserContext(), GetCompany(c), name)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar cotización (requiere aprobación)
// @Tags         quotations
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Success      200   {object}  dto.QuotationResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/quotations/{name}/submit [post]
func (h *QuotationHandler) Submit(c *fiber.Ctx) error {
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

// SupplierQuotationItems godoc
// @Summary      Líneas de cotizaciones de proveedor ligadas a la cotización
// @Tags         quotations
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Success      200   {object}  dto.SupplierQuotationItemsResponse
// @Router       /api/quotations/{name}/supplier-quotation-items [get]
func (h *QuotationHandler) SupplierQuotationItems(c *fiber.Ctx) error {
	name, ok, err := nameParam(c, "name")
	if !ok {
		return err
	}
	out, err := h.uc.SupplierQuotationItems(c.UserContext(), GetCompany(c), name)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// MaterialRequests godoc
// @Summary      Solicitudes de material de la cotización con su RFQ
// @Tags         quotations
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Success      200   {array}  dto.MaterialRequestSummaryResponse
// @Router       /api/quotations/{name}/material-requests [get]
func (h *QuotationHandler) MaterialRequests(c *fiber.Ctx) error {
	name, ok, err := nameParam(c, "name")
	if !ok {
		return err
	}
	out, err := h.uc.MaterialRequests(c.UserContext(), GetCompany(c), name)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		out = []dto.MaterialRequestSummaryResponse{}
	}
	return c.JSON(out)
}

// AddSupplierItems godoc
// @Summary      Agregar o actualizar líneas con tarifas de proveedor
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Param        body  body  dto.AddSupplierItemsRequest  true  "selected_items"
// @Success      200   {object}  dto.QuotationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/quotations/{name}/supplier-items [post]
func (h *QuotationHandler) AddSupplierItems(c *fiber.Ctx) error {
	name, ok, err := nameParam(c, "name")
	if !ok {
		return err
	}
	var in dto.AddSupplierItemsRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddSupplierItems(c.UserContext(), GetCompany(c), name, in.SelectedItems)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// MakeMaterialRequest godoc
// @Summary      Mapear cotización a solicitud de material (sin guardar)
// @Tags         quotations
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Success      200   {object}  dto.MaterialRequestResponse
// @Router       /api/quotations/{name}/make-material-request [post]
func (h *QuotationHandler) MakeMaterialRequest(c *fiber.Ctx) error {
	name, ok, err := nameParam(c, "name")
	if !ok {
		return err
	}
	out, err := h.mr.FromQuotation(c.UserContext(), GetCompany(c), name)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// MakeSalesOrder godoc
// @Summary      Mapear cotización a pedido (sin guardar)
// @Tags         quotations
// @Accept       json
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Param        body  body  dto.MakeSalesOrderRequest  false  "Selección de líneas"
// @Success      200   {object}  dto.SalesOrderResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/quotations/{name}/make-sales-order [post]
func (h *QuotationHandler) MakeSalesOrder(c *fiber.Ctx) error {
	name, ok, err := nameParam(c, "name")
	if !ok {
		return err
	}
	var in dto.MakeSalesOrderRequest
	if ok, err := bindOptionalJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.MakeSalesOrder(c.UserContext(), GetCompany(c), name, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Imprimir cotización
// @Tags         quotations
// @Produce      application/pdf
// @Param        name  path  string  true  "Nombre"
// @Success      200
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotations/{name}/pdf [get]
func (h *QuotationHandler) PDF(c *fiber.Ctx) error {
	name, ok, err := nameParam(c, "name")
	if !ok {
		return err
	}
	body, filename, err := h.pdf.Render(c.UserContext(), GetCompany(c), name)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(body)
}

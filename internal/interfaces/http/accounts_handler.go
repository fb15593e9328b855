package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/powerkey/power-app/internal/application/accounts"
	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/pkg/logger"
)

// JournalEntryHandler consultas de asientos.
type JournalEntryHandler struct {
	uc  *accounts.JournalEntryUseCase
	log *logger.Logger
}

// NewJournalEntryHandler construye el handler.
func NewJournalEntryHandler(uc *accounts.JournalEntryUseCase, log *logger.Logger) *JournalEntryHandler {
	return &JournalEntryHandler{uc: uc, log: log}
}

// Get godoc
// @Summary      Obtener asiento
// @Tags         journal-entries
// @Produce      json
// @Param        name  path  string  true  "Nombre"
// @Success      200   {object}  dto.JournalEntryResponse
// @Router       /api/journal-entries/{name} [get]
func (h *JournalEntryHandler) Get(c *fiber.Ctx) error {
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

// List godoc
// @Summary      Asientos de un documento origen
// @Tags         journal-entries
// @Produce      json
// @Param        reference_name     query  string  true   "Documento origen"
// @Param        reference_doctype  query  string  false  "Tipo (por defecto Sales Order)"
// @Success      200   {object}  dto.JournalEntryListResponse
// @Router       /api/journal-entries [get]
func (h *JournalEntryHandler) List(c *fiber.Ctx) error {
	var q dto.JournalEntryQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.ListByReference(c.UserContext(), GetCompany(c), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ExpenseTemplateHandler plantillas de gastos.
type ExpenseTemplateHandler struct {
	uc  *accounts.ExpenseTemplateUseCase
	log *logger.Logger
}

// NewExpenseTemplateHandler construye el handler.
func NewExpenseTemplateHandler(uc *accounts.ExpenseTemplateUseCase, log *logger.Logger) *ExpenseTemplateHandler {
	return &ExpenseTemplateHandler{uc: uc, log: log}
}

// Save godoc
// @Summary      Crear o reemplazar plantilla de gastos
// @Tags         expense-templates
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveExpenseTemplateRequest  true  "Plantilla"
// @Success      200   {object}  dto.ExpenseTemplateResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/expense-templates [post]
func (h *ExpenseTemplateHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveExpenseTemplateRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Save(c.UserContext(), GetCompany(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Expenses godoc
// @Summary      Filas de gasto de la plantilla
// @Tags         expense-templates
// @Produce      json
// @Param        name  path  string  true  "Plantilla"
// @Success      200   {array}  dto.ServiceExpenseDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/expense-templates/{name}/expenses [get]
func (h *ExpenseTemplateHandler) Expenses(c *fiber.Ctx) error {
	name, ok, err := nameParam(c, "name")
	if !ok {
		return err
	}
	out, err := h.uc.Expenses(c.UserContext(), GetCompany(c), name)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		out = []dto.ServiceExpenseDTO{}
	}
	return c.JSON(out)
}

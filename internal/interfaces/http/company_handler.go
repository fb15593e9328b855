package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/powerkey/power-app/internal/application/accounts"
	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/pkg/logger"
)

// CompanyHandler maneja las peticiones HTTP para el recurso Company.
type CompanyHandler struct {
	uc  *accounts.CompanyUseCase
	log *logger.Logger
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *accounts.CompanyUseCase, log *logger.Logger) *CompanyHandler {
	return &CompanyHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener empresa por nombre
// @Tags         companies
// @Produce      json
// @Param        name  path  string  true  "Nombre de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{name} [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	name, ok, err := nameParam(c, "name")
	if !ok {
		return err
	}
	if name != GetCompany(c) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo se puede consultar la empresa del token"})
	}
	out, err := h.uc.Get(c.UserContext(), name)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar moneda y cuenta de gastos de servicio
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        name  path  string  true  "Nombre de la empresa"
// @Param        body  body  dto.UpdateCompanyRequest  true  "Campos a cambiar"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{name} [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	name, ok, err := nameParam(c, "name")
	if !ok {
		return err
	}
	if name != GetCompany(c) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo se puede modificar la empresa del token"})
	}
	var in dto.UpdateCompanyRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), name, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

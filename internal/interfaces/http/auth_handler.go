package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/powerkey/power-app/internal/application/auth"
	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/pkg/logger"
)

// AuthHandler maneja registro y login.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	log *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, company"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	user, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		// No revelar si el email existe.
		if status := errorStatus(err); status == fiber.StatusNotFound || status == fiber.StatusUnauthorized {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// AssignRole godoc
// @Summary      Asignar rol a un usuario de la empresa
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.AssignRoleRequest  true  "admin, ventas o compras"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/role [put]
func (h *AuthHandler) AssignRole(c *fiber.Ctx) error {
	id, ok, err := nameParam(c, "id")
	if !ok {
		return err
	}
	var in dto.AssignRoleRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.AssignRole(c.UserContext(), GetCompany(c), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

package http

import (
	"errors"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/powerkey/power-app/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Nombres de campo según el tag json (o query) en los mensajes.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = fld.Tag.Get("query")
		}
		return name
	})
	return v
}

// bindJSON parsea el cuerpo y lo valida. Si devuelve false la respuesta 400 ya se escribió.
func bindJSON(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return checkStruct(c, out)
}

// bindOptionalJSON igual que bindJSON pero acepta cuerpo vacío.
func bindOptionalJSON(c *fiber.Ctx, out any) (bool, error) {
	if len(c.Body()) == 0 {
		return checkStruct(c, out)
	}
	return bindJSON(c, out)
}

// bindQuery parsea y valida los parámetros de consulta.
func bindQuery(c *fiber.Ctx, out any) (bool, error) {
	if err := c.QueryParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	return checkStruct(c, out)
}

func checkStruct(c *fiber.Ctx, out any) (bool, error) {
	if err := validate.Struct(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	return true, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		parts = append(parts, e.Namespace()+": "+fieldMessage(e))
	}
	return strings.Join(parts, "; ")
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "es requerido"
	case "email":
		return "email inválido"
	case "min":
		if e.Kind() == reflect.String {
			return "mínimo " + e.Param() + " caracteres"
		}
		return "mínimo " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "máximo " + e.Param() + " caracteres"
		}
		return "máximo " + e.Param()
	case "len":
		return "debe tener " + e.Param() + " caracteres"
	case "oneof":
		return "debe ser uno de: " + e.Param()
	default:
		return "valor inválido"
	}
}

// nameParam lee :name y responde 400 si falta.
func nameParam(c *fiber.Ctx, param string) (string, bool, error) {
	// Params apunta al buffer de fasthttp; se copia porque el valor puede sobrevivir a la petición.
	v := strings.Clone(strings.TrimSpace(c.Params(param)))
	if u, err := url.PathUnescape(v); err == nil {
		v = u
	}
	if v == "" {
		return "", false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_NAME", Message: param + " es requerido"})
	}
	return v, true, nil
}

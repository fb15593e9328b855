package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/pkg/logger"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// Orden: del más específico al más general; el primero que haga errors.Is gana.
var errorMappings = []errorMapping{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrNoItemsSelected, fiber.StatusBadRequest, "NO_ITEMS_SELECTED"},
	{domain.ErrNoSupplierQuotation, fiber.StatusBadRequest, "NO_SUPPLIER_QUOTATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrNotDraft, fiber.StatusUnprocessableEntity, "NOT_DRAFT"},
	{domain.ErrNotSubmitted, fiber.StatusUnprocessableEntity, "NOT_SUBMITTED"},
	{domain.ErrDocumentCancelled, fiber.StatusUnprocessableEntity, "DOCUMENT_CANCELLED"},
	{domain.ErrQuotationNotApproved, fiber.StatusUnprocessableEntity, "QUOTATION_NOT_APPROVED"},
	{domain.ErrQuotationExpired, fiber.StatusUnprocessableEntity, "QUOTATION_EXPIRED"},
	{domain.ErrDefaultExpenseAccountMissing, fiber.StatusUnprocessableEntity, "MISSING_DEFAULT_ACCOUNT"},
	{domain.ErrCustomerNotFound, fiber.StatusUnprocessableEntity, "CUSTOMER_NOT_FOUND"},
	{domain.ErrUnbalancedEntry, fiber.StatusUnprocessableEntity, "UNBALANCED_ENTRY"},
	{domain.ErrLookupFailed, fiber.StatusBadGateway, "LOOKUP_FAILED"},
}

// writeError traduce errores de dominio a dto.ErrorResponse. Lo no reconocido es 500 y se registra.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

// errorStatus código HTTP que writeError usaría para err.
func errorStatus(err error) int {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return fiber.StatusInternalServerError
}

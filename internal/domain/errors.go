package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Reglas de documentos.
	ErrNotDraft                     = errors.New("el documento no está en borrador")
	ErrNotSubmitted                 = errors.New("el documento no está enviado")
	ErrDocumentCancelled            = errors.New("el documento está cancelado")
	ErrQuotationNotApproved         = errors.New("marque la casilla 'Aprobado' antes de enviar la cotización")
	ErrQuotationExpired             = errors.New("el período de validez de esta cotización ha terminado")
	ErrDefaultExpenseAccountMissing = errors.New("configure la cuenta de gastos de servicio por defecto en la empresa")
	ErrNoItemsSelected              = errors.New("no hay artículos seleccionados")
	ErrNoSupplierQuotation          = errors.New("no se indicó cotización de proveedor")
	ErrCustomerNotFound             = errors.New("la cotización no tiene un cliente asociado")
	ErrUnbalancedEntry              = errors.New("el asiento no cuadra: débitos distintos de créditos")

	// Consultas de solo lectura.
	ErrLookupFailed = errors.New("no se pudieron obtener los datos del servidor")
)

// ValidationError envuelve un error centinela con el detalle que se muestra al usuario.
// errors.Is sigue funcionando contra el centinela vía Unwrap.
type ValidationError struct {
	Err     error
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Invalid construye un ValidationError con detalle formateado.
func Invalid(err error, format string, args ...any) error {
	return &ValidationError{Err: err, Details: fmt.Sprintf(format, args...)}
}

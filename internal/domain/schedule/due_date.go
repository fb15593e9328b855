package schedule

import (
	"time"

	"github.com/powerkey/power-app/internal/domain/entity"
)

// FirstDueDate calcula el vencimiento de la primera cuota del plan de pagos.
// Usa la fecha de entrega si no es anterior a la del documento; si no hay entrega
// o es anterior, vence un día después de la fecha del documento.
func FirstDueDate(posting time.Time, delivery *time.Time) time.Time {
	posting = entity.DateOf(posting)
	due := posting.AddDate(0, 0, 1)
	if delivery != nil && !entity.DateOf(*delivery).Before(posting) {
		due = entity.DateOf(*delivery)
	}
	if due.Before(posting) {
		due = posting.AddDate(0, 0, 1)
	}
	return due
}

// ApplyFirstDueDate ajusta la primera fila del plan de pagos del pedido.
// Devuelve false si el pedido no tiene plan o fecha.
func ApplyFirstDueDate(so *entity.SalesOrder) bool {
	if len(so.PaymentSchedule) == 0 || so.TransactionDate.IsZero() {
		return false
	}
	so.PaymentSchedule[0].DueDate = FirstDueDate(so.TransactionDate, so.DeliveryDate)
	return true
}


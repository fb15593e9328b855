package entity

import "time"

// Company representa la empresa dueña de los documentos.
// DefaultServiceExpenseAccount es la contrapartida (crédito) de los asientos de gastos de servicio.
type Company struct {
	Name                         string
	Abbr                         string
	DefaultCurrency              string
	DefaultServiceExpenseAccount string
	CreatedAt                    time.Time
	UpdatedAt                    time.Time
}

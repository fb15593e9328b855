package dto

import (
	"github.com/shopspring/decimal"

	"github.com/powerkey/power-app/internal/domain/entity"
)

// ServiceExpenseDTO fila de gasto de servicio.
type ServiceExpenseDTO struct {
	ServiceExpenseType string          `json:"service_expense_type" validate:"required,max=140"`
	Company            string          `json:"company" validate:"omitempty,max=140"`
	DefaultAccount     string          `json:"default_account" validate:"omitempty,max=140"`
	Amount             decimal.Decimal `json:"amount"`
	Description        string          `json:"description,omitempty"`
}

// SaveExpenseTemplateRequest crea o reemplaza una plantilla de gastos.
type SaveExpenseTemplateRequest struct {
	Name     string              `json:"name" validate:"required,max=140"`
	Expenses []ServiceExpenseDTO `json:"expenses" validate:"dive"`
}

// ExpenseTemplateResponse plantilla con sus filas.
type ExpenseTemplateResponse struct {
	Name     string              `json:"name"`
	Company  string              `json:"company"`
	Expenses []ServiceExpenseDTO `json:"expenses"`
}

// ExpensesFromDTO convierte filas de entrada; company completa las filas sin empresa.
func ExpensesFromDTO(rows []ServiceExpenseDTO, company string) []entity.ServiceExpense {
	if len(rows) == 0 {
		return nil
	}
	out := make([]entity.ServiceExpense, len(rows))
	for i, r := range rows {
		c := r.Company
		if c == "" {
			c = company
		}
		out[i] = entity.ServiceExpense{
			ServiceExpenseType: r.ServiceExpenseType,
			Company:            c,
			DefaultAccount:     r.DefaultAccount,
			Amount:             r.Amount,
			Description:        r.Description,
		}
	}
	return out
}

// ExpensesToDTO convierte filas de salida (nunca nil).
func ExpensesToDTO(rows []entity.ServiceExpense) []ServiceExpenseDTO {
	out := make([]ServiceExpenseDTO, len(rows))
	for i, r := range rows {
		out[i] = ServiceExpenseDTO{
			ServiceExpenseType: r.ServiceExpenseType,
			Company:            r.Company,
			DefaultAccount:     r.DefaultAccount,
			Amount:             r.Amount,
			Description:        r.Description,
		}
	}
	return out
}

package entity

import "github.com/shopspring/decimal"

// ServiceExpense fila de gasto de servicio (flete, instalación, aduana...).
// DefaultAccount es la cuenta de gasto que se debita al generar el asiento.
type ServiceExpense struct {
	ServiceExpenseType string          `json:"service_expense_type"`
	Company            string          `json:"company"`
	DefaultAccount     string          `json:"default_account"`
	Amount             decimal.Decimal `json:"amount"`
	Description        string          `json:"description,omitempty"`
}

// ExpenseTemplate plantilla de gastos reutilizable en cotizaciones de proveedor.
type ExpenseTemplate struct {
	Name     string
	Company  string
	Expenses []ServiceExpense
}

// SumExpenses suma los montos de las filas de gasto.
func SumExpenses(rows []ServiceExpense) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Amount)
	}
	return total
}

// CopyExpenses devuelve una copia de las filas (sin compartir el slice de origen).
func CopyExpenses(rows []ServiceExpense) []ServiceExpense {
	if len(rows) == 0 {
		return nil
	}
	out := make([]ServiceExpense, len(rows))
	copy(out, rows)
	return out
}

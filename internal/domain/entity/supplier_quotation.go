package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierQuotation cotización de proveedor contra una solicitud de material.
type SupplierQuotation struct {
	Name            string
	Company         string
	Supplier        string
	SupplierName    string
	TransactionDate time.Time
	ValidTill       *time.Time
	DocStatus       int
	ExpenseTemplate string
	Expenses        []ServiceExpense
	TotalExpenses   decimal.Decimal
	Items           []*SupplierQuotationItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SupplierQuotationItem línea de la cotización de proveedor.
// BaseRate es la tarifa en moneda de la empresa (cero si no se informó).
type SupplierQuotationItem struct {
	Name            string
	Idx             int
	ItemCode        string
	ItemName        string
	Description     string
	Qty             decimal.Decimal
	UOM             string
	StockUOM        string
	Brand           string
	Rate            decimal.Decimal
	BaseRate        decimal.Decimal
	Amount          decimal.Decimal
	MaterialRequest string
}

func (s *SupplierQuotation) DocType() string { return DocTypeSupplierQuotation }
func (s *SupplierQuotation) DocName() string { return s.Name }
func (s *SupplierQuotation) Status() int     { return s.DocStatus }

func (s *SupplierQuotation) SetStatus(status int) { s.DocStatus = status }

// RecalculateTotals recalcula montos de línea y total de gastos.
func (s *SupplierQuotation) RecalculateTotals() {
	for i, it := range s.Items {
		it.Idx = i + 1
		it.Amount = it.Rate.Mul(it.Qty)
	}
	s.TotalExpenses = SumExpenses(s.Expenses)
}

// SupplierQuotationItemRow línea de proveedor enriquecida con datos de cabecera (consulta).
type SupplierQuotationItemRow struct {
	Name              string
	SupplierQuotation string
	ItemCode          string
	ItemName          string
	Qty               decimal.Decimal
	UOM               string
	Rate              decimal.Decimal
	Amount            decimal.Decimal
	MaterialRequest   string
	Supplier          string
	SupplierName      string
	ValidTill         *time.Time
	TransactionDate   time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrder pedido de cliente confirmado, normalmente derivado de una cotización.
// ExpensesCopied marca que los gastos de la cotización ya se copiaron (evita duplicados al guardar).
type SalesOrder struct {
	Name            string
	Company         string
	Customer        string
	CustomerName    string
	TransactionDate time.Time
	DeliveryDate    *time.Time
	CostCenter      string
	DocStatus       int
	QuotationRef    string
	SalesPartner    string
	CommissionRate  decimal.Decimal
	SalesTeam       []SalesTeamMember
	Expenses        []ServiceExpense
	ExpensesCopied  bool
	PaymentSchedule []PaymentScheduleRow
	NetTotal        decimal.Decimal
	GrandTotal      decimal.Decimal
	Items           []*SalesOrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SalesOrderItem línea del pedido.
type SalesOrderItem struct {
	Name                string
	Idx                 int
	ItemCode            string
	ItemName            string
	Description         string
	Qty                 decimal.Decimal
	StockQty            decimal.Decimal
	ConversionFactor    decimal.Decimal
	UOM                 string
	Rate                decimal.Decimal
	NetRate             decimal.Decimal
	Amount              decimal.Decimal
	NetAmount           decimal.Decimal
	QuotationItem       string
	PrevDocName         string
	AgainstBlanketOrder bool
	BlanketOrder        string
	BlanketOrderRate    decimal.Decimal
}

// PaymentScheduleRow fila del plan de pagos.
type PaymentScheduleRow struct {
	PaymentTerm    string          `json:"payment_term,omitempty"`
	DueDate        time.Time       `json:"due_date"`
	InvoicePortion decimal.Decimal `json:"invoice_portion"`
	PaymentAmount  decimal.Decimal `json:"payment_amount"`
}

func (s *SalesOrder) DocType() string { return DocTypeSalesOrder }
func (s *SalesOrder) DocName() string { return s.Name }
func (s *SalesOrder) Status() int     { return s.DocStatus }

func (s *SalesOrder) SetStatus(status int) { s.DocStatus = status }

// RecalculateTotals recalcula montos de línea y totales.
func (s *SalesOrder) RecalculateTotals() {
	net, grand := decimal.Zero, decimal.Zero
	for i, it := range s.Items {
		it.Idx = i + 1
		it.Amount = it.Rate.Mul(it.Qty)
		it.NetAmount = it.NetRate.Mul(it.Qty)
		if !it.ConversionFactor.IsZero() {
			it.StockQty = it.Qty.Mul(it.ConversionFactor)
		}
		net = net.Add(it.NetAmount)
		grand = grand.Add(it.Amount)
	}
	s.NetTotal = net
	s.GrandTotal = grand
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Destinatarios posibles de una cotización.
const (
	QuotationToCustomer = "Customer"
	QuotationToLead     = "Lead"
	QuotationToProspect = "Prospect"
)

// Quotation cotización al cliente con líneas y gastos de servicio.
// ItemMargin es un porcentaje plano que se aplica sobre la tarifa después del prorrateo de gastos.
type Quotation struct {
	Name                 string
	Company              string
	QuotationTo          string
	PartyName            string
	CustomerName         string
	TransactionDate      time.Time
	ValidTill            *time.Time
	DocStatus            int
	Approved             bool
	ItemMargin           decimal.Decimal
	HasUnitPriceItems    bool
	ReferralSalesPartner string
	ExpenseTemplate      string
	Expenses             []ServiceExpense
	TotalExpenses        decimal.Decimal
	NetTotal             decimal.Decimal
	GrandTotal           decimal.Decimal
	Comments             []string
	Items                []*QuotationItem
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// QuotationItem línea de la cotización.
// BaseRate/BaseNetRate son la tarifa antes de gastos y margen; Rate/NetRate son la tarifa final.
type QuotationItem struct {
	Name                string
	Idx                 int
	ItemCode            string
	ItemName            string
	Description         string
	Qty                 decimal.Decimal
	UOM                 string
	StockUOM            string
	ConversionFactor    decimal.Decimal
	Brand               string
	BaseRate            decimal.Decimal
	BaseNetRate         decimal.Decimal
	Rate                decimal.Decimal
	NetRate             decimal.Decimal
	Amount              decimal.Decimal
	NetAmount           decimal.Decimal
	OriginalRate        decimal.Decimal // tarifa previa a la de proveedor
	SupplierQuotation   string
	IsAlternative       bool
	HasAlternativeItem  bool
	AgainstBlanketOrder bool
	BlanketOrder        string
	BlanketOrderRate    decimal.Decimal
}

func (q *Quotation) DocType() string { return DocTypeQuotation }
func (q *Quotation) DocName() string { return q.Name }
func (q *Quotation) Status() int     { return q.DocStatus }

func (q *Quotation) SetStatus(status int) { q.DocStatus = status }

// IsExpired informa si la validez terminó respecto a la fecha de la cotización o a today.
// Se compara por día: valid_till igual a cualquiera de las dos fechas sigue vigente.
func (q *Quotation) IsExpired(today time.Time) bool {
	if q.ValidTill == nil {
		return false
	}
	validTill := DateOf(*q.ValidTill)
	return validTill.Before(DateOf(q.TransactionDate)) || validTill.Before(DateOf(today))
}

// FindItemByCode devuelve la primera línea con ese código de artículo.
func (q *Quotation) FindItemByCode(itemCode string) *QuotationItem {
	for _, it := range q.Items {
		if it.ItemCode == itemCode {
			return it
		}
	}
	return nil
}

// RecalculateTotals recalcula montos de línea y totales de cabecera.
func (q *Quotation) RecalculateTotals() {
	net, grand := decimal.Zero, decimal.Zero
	for i, it := range q.Items {
		it.Idx = i + 1
		it.Amount = it.Rate.Mul(it.Qty)
		it.NetAmount = it.NetRate.Mul(it.Qty)
		net = net.Add(it.NetAmount)
		grand = grand.Add(it.Amount)
	}
	q.NetTotal = net
	q.GrandTotal = grand
	q.TotalExpenses = SumExpenses(q.Expenses)
}

// AddComment agrega una entrada al historial de la cotización.
func (q *Quotation) AddComment(text string) {
	q.Comments = append(q.Comments, text)
}

package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/powerkey/power-app/internal/domain/entity"
)

// quotationLine adapta una línea de cotización a Line.
type quotationLine struct{ it *entity.QuotationItem }

func (l quotationLine) Quantity() decimal.Decimal { return l.it.Qty }
func (l quotationLine) Rates() (decimal.Decimal, decimal.Decimal) {
	return l.it.Rate, l.it.NetRate
}
func (l quotationLine) SetRates(rate, net decimal.Decimal) {
	l.it.Rate = rate
	l.it.NetRate = net
	l.it.Amount = rate.Mul(l.it.Qty)
	l.it.NetAmount = net.Mul(l.it.Qty)
}

// QuotationLines envuelve las líneas de la cotización.
func QuotationLines(items []*entity.QuotationItem) []Line {
	lines := make([]Line, len(items))
	for i, it := range items {
		lines[i] = quotationLine{it: it}
	}
	return lines
}

// SnapshotBase fija la tarifa base de las líneas que aún no la tienen.
func SnapshotBase(items []*entity.QuotationItem) {
	for _, it := range items {
		if it.BaseRate.IsZero() && !it.Rate.IsZero() {
			it.BaseRate = it.Rate
			if it.NetRate.IsZero() {
				it.BaseNetRate = it.Rate
			} else {
				it.BaseNetRate = it.NetRate
			}
		}
		if it.BaseNetRate.IsZero() {
			it.BaseNetRate = it.BaseRate
		}
	}
}

// Result indica qué ajustes se aplicaron en Reprice.
type Result struct {
	ExpensesAllocated bool
	MarginApplied     bool
}

// Changed informa si la tarifa final difiere de la base.
func (r Result) Changed() bool { return r.ExpensesAllocated || r.MarginApplied }

// Reprice recalcula la tarifa final de cada línea partiendo siempre de la tarifa base:
// base, luego prorrateo de gastos, luego margen. Volver a ejecutarlo no acumula ajustes.
func Reprice(q *entity.Quotation) Result {
	SnapshotBase(q.Items)
	lines := QuotationLines(q.Items)
	for i, it := range q.Items {
		lines[i].SetRates(it.BaseRate, it.BaseNetRate)
	}
	res := Result{
		ExpensesAllocated: AllocateExpenses(lines, q.Expenses),
		MarginApplied:     ApplyMargin(lines, q.ItemMargin),
	}
	q.RecalculateTotals()
	return res
}

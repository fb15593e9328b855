package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/powerkey/power-app/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Line es la vista de una línea que el prorrateo necesita.
// La implementan las líneas de cotización y de pedido.
type Line interface {
	Quantity() decimal.Decimal
	Rates() (rate, netRate decimal.Decimal)
	SetRates(rate, netRate decimal.Decimal)
}

// AllocateExpenses reparte el total de gastos entre las líneas en proporción a su monto.
//
//	rate    += (amount / total_amount * total_expenses) / qty
//	net_rate += (net_amount / total_net * total_expenses) / qty
//
// Si el total de montos o de netos es cero, o los gastos no son positivos, no modifica nada.
// Las líneas con cantidad cero conservan su tarifa.
func AllocateExpenses(lines []Line, expenses []entity.ServiceExpense) bool {
	totalExpenses := entity.SumExpenses(expenses)
	if totalExpenses.LessThanOrEqual(decimal.Zero) {
		return false
	}
	totalAmount, totalNet := decimal.Zero, decimal.Zero
	for _, l := range lines {
		rate, net := l.Rates()
		totalAmount = totalAmount.Add(rate.Mul(l.Quantity()))
		totalNet = totalNet.Add(net.Mul(l.Quantity()))
	}
	if totalAmount.IsZero() || totalNet.IsZero() {
		return false
	}
	for _, l := range lines {
		qty := l.Quantity()
		if qty.IsZero() {
			continue
		}
		rate, net := l.Rates()
		// multiplicar antes de dividir para no perder precisión
		rateShare := rate.Mul(qty).Mul(totalExpenses).Div(totalAmount).Div(qty)
		netShare := net.Mul(qty).Mul(totalExpenses).Div(totalNet).Div(qty)
		l.SetRates(rate.Add(rateShare), net.Add(netShare))
	}
	return true
}

// ApplyMargin suma un porcentaje plano a la tarifa y a la tarifa neta de cada línea.
func ApplyMargin(lines []Line, pct decimal.Decimal) bool {
	if pct.IsZero() {
		return false
	}
	for _, l := range lines {
		rate, net := l.Rates()
		l.SetRates(
			rate.Add(rate.Mul(pct).Div(hundred)),
			net.Add(net.Mul(pct).Div(hundred)),
		)
	}
	return true
}

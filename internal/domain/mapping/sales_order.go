package mapping

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
)

// SalesOrderOptions datos externos que necesita el mapeo cotización → pedido.
type SalesOrderOptions struct {
	Customer         *entity.Customer
	SalesPartner     *entity.SalesPartner
	Ordered          map[string]decimal.Decimal // cantidad ya pedida por línea de cotización
	SelectedItems    []string                   // líneas elegidas entre alternativas
	FilteredChildren []string                   // limita las líneas a mapear
	AllowExpired     bool
	Today            time.Time
}

// RowSelector decide qué líneas de la cotización pasan al pedido.
type RowSelector struct {
	hasUnitPriceItems bool
	ordered           map[string]decimal.Decimal
	selected          map[string]bool
	filtered          map[string]bool
}

// NewRowSelector prepara el selector a partir de la cotización y las opciones.
func NewRowSelector(q *entity.Quotation, opts SalesOrderOptions) *RowSelector {
	return &RowSelector{
		hasUnitPriceItems: q.HasUnitPriceItems,
		ordered:           opts.Ordered,
		selected:          toSet(opts.SelectedItems),
		filtered:          toSet(opts.FilteredChildren),
	}
}

// IsUnitPriceRow la línea va con cantidad cero porque la cantidad aún es incierta.
func (s *RowSelector) IsUnitPriceRow(it *entity.QuotationItem) bool {
	return s.hasUnitPriceItems && it.Qty.IsZero()
}

// BalanceQty cantidad pendiente de pedir, nunca negativa.
func (s *RowSelector) BalanceQty(it *entity.QuotationItem) decimal.Decimal {
	if s.IsUnitPriceRow(it) {
		return it.Qty
	}
	balance := it.Qty.Sub(s.ordered[it.Name])
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// CanMapRow aplica las reglas de selección de líneas:
// sin selección se mapean las que no son alternativas; con selección, las alternativas
// (o con alternativa) solo si fueron elegidas; el resto siempre que quede cantidad.
func (s *RowSelector) CanMapRow(it *entity.QuotationItem) bool {
	if !(it.Qty.GreaterThan(s.ordered[it.Name]) || s.IsUnitPriceRow(it)) {
		return false
	}
	if len(s.filtered) > 0 && !s.filtered[it.Name] {
		return false
	}
	if len(s.selected) == 0 {
		return !it.IsAlternative
	}
	if it.IsAlternative || it.HasAlternativeItem {
		return s.selected[it.Name]
	}
	return true
}

// SalesOrderFromQuotation arma el pedido en borrador a partir de una cotización enviada.
func SalesOrderFromQuotation(q *entity.Quotation, opts SalesOrderOptions) (*entity.SalesOrder, error) {
	if q.DocStatus != entity.DocStatusSubmitted {
		return nil, domain.Invalid(domain.ErrNotSubmitted, "cotización %s", q.Name)
	}
	if !opts.AllowExpired && q.IsExpired(opts.Today) {
		return nil, domain.ErrQuotationExpired
	}
	if opts.Customer == nil {
		return nil, domain.Invalid(domain.ErrCustomerNotFound, "%s %s", q.QuotationTo, q.PartyName)
	}

	so := &entity.SalesOrder{
		Company:         q.Company,
		Customer:        opts.Customer.Name,
		CustomerName:    opts.Customer.CustomerName,
		TransactionDate: entity.DateOf(opts.Today),
		DocStatus:       entity.DocStatusDraft,
		QuotationRef:    q.Name,
	}
	so.SalesTeam = append(so.SalesTeam, opts.Customer.SalesTeam...)
	if q.ReferralSalesPartner != "" {
		so.SalesPartner = q.ReferralSalesPartner
		if opts.SalesPartner != nil {
			so.CommissionRate = opts.SalesPartner.CommissionRate
		}
	}

	sel := NewRowSelector(q, opts)
	for _, it := range q.Items {
		if !sel.CanMapRow(it) {
			continue
		}
		qty := sel.BalanceQty(it)
		row := &entity.SalesOrderItem{
			Name:             uuid.NewString(),
			ItemCode:         it.ItemCode,
			ItemName:         it.ItemName,
			Description:      it.Description,
			Qty:              qty,
			ConversionFactor: it.ConversionFactor,
			StockQty:         qty.Mul(it.ConversionFactor),
			UOM:              it.UOM,
			Rate:             it.Rate,
			NetRate:          it.NetRate,
			QuotationItem:    it.Name,
			PrevDocName:      q.Name,
		}
		if it.AgainstBlanketOrder {
			row.AgainstBlanketOrder = true
			row.BlanketOrder = it.BlanketOrder
			row.BlanketOrderRate = it.BlanketOrderRate
		}
		so.Items = append(so.Items, row)
	}

	if len(q.Expenses) > 0 {
		so.Expenses = entity.CopyExpenses(q.Expenses)
		so.ExpensesCopied = true
	}
	so.RecalculateTotals()
	return so, nil
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if n != "" {
			set[n] = true
		}
	}
	return set
}

package selling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/powerkey/power-app/internal/application/lifecycle"
	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/ledger"
	"github.com/powerkey/power-app/internal/domain/pricing"
	"github.com/powerkey/power-app/internal/domain/schedule"
)

// MsgItemRateUpdated aviso tras recalcular tarifas con gastos o margen.
const MsgItemRateUpdated = "Item Rate Updated"

// RegisterHooks registra los hooks de venta en el orden en que deben correr.
func RegisterHooks(reg *lifecycle.Registry) {
	reg.Register(entity.DocTypeQuotation, lifecycle.EventValidate, "quotation.reprice", QuotationValidate)
	reg.Register(entity.DocTypeQuotation, lifecycle.EventBeforeSubmit, "quotation.approval", QuotationBeforeSubmit)
	reg.Register(entity.DocTypeSalesOrder, lifecycle.EventBeforeSave, "sales_order.copy_quotation_expenses", CopyQuotationExpenses)
	reg.Register(entity.DocTypeSalesOrder, lifecycle.EventBeforeSave, "sales_order.payment_schedule", SetPaymentScheduleDueDate)
	reg.Register(entity.DocTypeSalesOrder, lifecycle.EventOnSubmit, "sales_order.service_expense_journal", CreateServiceExpenseJournal)
}

// QuotationValidate reparte los gastos entre las líneas y aplica el margen.
func QuotationValidate(ctx context.Context, hc *lifecycle.HookContext) error {
	q, ok := hc.Doc.(*entity.Quotation)
	if !ok {
		return nil
	}
	res := pricing.Reprice(q)
	if len(q.Expenses) > 0 || !q.ItemMargin.IsZero() {
		hc.Log.Info().
			Int("items", len(q.Items)).
			Str("total_expenses", q.TotalExpenses.String()).
			Bool("expenses_allocated", res.ExpensesAllocated).
			Bool("margin_applied", res.MarginApplied).
			Msg("tarifas de la cotización actualizadas")
		hc.Notify(MsgItemRateUpdated)
	}
	return nil
}

// QuotationBeforeSubmit solo deja enviar cotizaciones aprobadas.
func QuotationBeforeSubmit(ctx context.Context, hc *lifecycle.HookContext) error {
	q, ok := hc.Doc.(*entity.Quotation)
	if !ok {
		return nil
	}
	if !q.Approved {
		return domain.ErrQuotationNotApproved
	}
	return nil
}

// CopyQuotationExpenses copia los gastos de la cotización de origen la primera vez que se guarda el pedido.
// Los errores al leer la cotización se registran y no bloquean el guardado.
func CopyQuotationExpenses(ctx context.Context, hc *lifecycle.HookContext) error {
	so, ok := hc.Doc.(*entity.SalesOrder)
	if !ok {
		return nil
	}
	if so.ExpensesCopied {
		hc.Log.Debug().Msg("gastos ya copiados, se omite")
		return nil
	}

	quotationName := so.QuotationRef
	if quotationName == "" {
		for _, it := range so.Items {
			if it.QuotationItem == "" {
				continue
			}
			parent, err := hc.Repos.SalesOrders.QuotationOfItem(ctx, it.QuotationItem)
			if err != nil {
				hc.Log.Error().Err(err).Str("quotation_item", it.QuotationItem).Msg("buscar cotización de la línea")
				return nil
			}
			if parent != "" {
				quotationName = parent
				break
			}
		}
	}
	if quotationName == "" {
		for _, it := range so.Items {
			if it.PrevDocName != "" {
				quotationName = it.PrevDocName
				break
			}
		}
	}
	if quotationName == "" {
		hc.Log.Info().Msg("pedido sin cotización de referencia")
		return nil
	}

	q, err := hc.Repos.Quotations.GetByName(ctx, quotationName)
	if err != nil {
		hc.Log.Error().Err(err).Str("quotation", quotationName).Msg("copiar gastos de la cotización")
		return nil
	}
	if q == nil || len(q.Expenses) == 0 {
		hc.Log.Info().Str("quotation", quotationName).Msg("la cotización no tiene gastos")
		return nil
	}

	so.Expenses = append(so.Expenses, entity.CopyExpenses(q.Expenses)...)
	so.ExpensesCopied = true
	if so.QuotationRef == "" {
		so.QuotationRef = quotationName
	}
	hc.Log.Info().Int("expenses", len(q.Expenses)).Str("quotation", quotationName).Msg("gastos copiados al pedido")
	return nil
}

// SetPaymentScheduleDueDate ajusta el vencimiento de la primera cuota según la fecha de entrega.
func SetPaymentScheduleDueDate(ctx context.Context, hc *lifecycle.HookContext) error {
	so, ok := hc.Doc.(*entity.SalesOrder)
	if !ok {
		return nil
	}
	schedule.ApplyFirstDueDate(so)
	return nil
}

// CreateServiceExpenseJournal genera y envía el asiento de gastos de servicio del pedido.
func CreateServiceExpenseJournal(ctx context.Context, hc *lifecycle.HookContext) error {
	so, ok := hc.Doc.(*entity.SalesOrder)
	if !ok {
		return nil
	}
	if len(so.Expenses) == 0 {
		hc.Log.Info().Msg("pedido sin gastos de servicio, no se genera asiento")
		return nil
	}
	company, err := hc.Repos.Companies.GetByName(ctx, so.Company)
	if err != nil {
		return err
	}
	je, err := ledger.BuildServiceExpenseEntry(ledger.FromSalesOrder(so), company)
	if err != nil {
		return err
	}
	if je == nil {
		hc.Log.Info().Msg("sin gastos agrupados para contabilizar")
		return nil
	}
	name, err := hc.Repos.Naming.Next(ctx, entity.DocTypeJournalEntry, je.PostingDate)
	if err != nil {
		return err
	}
	je.Name = name
	je.DocStatus = entity.DocStatusSubmitted
	je.CreatedAt = time.Now()
	for _, a := range je.Accounts {
		a.Name = uuid.NewString()
	}
	if err := hc.Repos.JournalEntries.Create(ctx, je); err != nil {
		return err
	}
	hc.Log.Info().Str("journal_entry", je.Name).Int("accounts", len(je.Accounts)).Msg("asiento de gastos creado y enviado")
	hc.Notify("Journal Entry " + je.Name + " created")
	return nil
}

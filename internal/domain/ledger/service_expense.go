package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
)

// Source describe el documento cuyos gastos se contabilizan.
type Source struct {
	Doctype         string
	Name            string
	Company         string
	TransactionDate time.Time
	CostCenter      string
	Expenses        []entity.ServiceExpense
}

// AccountTotal total agrupado por cuenta de gasto.
type AccountTotal struct {
	Account string
	Amount  decimal.Decimal
}

// GroupByAccount agrupa las filas con cuenta y monto positivo, respetando el orden de aparición.
func GroupByAccount(rows []entity.ServiceExpense) []AccountTotal {
	var groups []AccountTotal
	index := make(map[string]int)
	for _, r := range rows {
		if r.DefaultAccount == "" || !r.Amount.GreaterThan(decimal.Zero) {
			continue
		}
		if i, ok := index[r.DefaultAccount]; ok {
			groups[i].Amount = groups[i].Amount.Add(r.Amount)
			continue
		}
		index[r.DefaultAccount] = len(groups)
		groups = append(groups, AccountTotal{Account: r.DefaultAccount, Amount: r.Amount})
	}
	return groups
}

// BuildServiceExpenseEntry arma el asiento de gastos de servicio: un débito por cuenta de gasto
// y un crédito por el total contra la cuenta por defecto de la empresa.
// Devuelve (nil, nil) si no hay filas que contabilizar.
func BuildServiceExpenseEntry(src Source, company *entity.Company) (*entity.JournalEntry, error) {
	if len(src.Expenses) == 0 {
		return nil, nil
	}
	if company == nil || company.DefaultServiceExpenseAccount == "" {
		return nil, domain.Invalid(domain.ErrDefaultExpenseAccountMissing, "empresa %s", src.Company)
	}
	groups := GroupByAccount(src.Expenses)
	if len(groups) == 0 {
		return nil, nil
	}

	je := &entity.JournalEntry{
		Company:          src.Company,
		VoucherType:      entity.JournalEntryTypeJournal,
		PostingDate:      src.TransactionDate,
		UserRemark:       fmt.Sprintf("Journal Entry for %s: %s", src.Doctype, src.Name),
		ReferenceDoctype: src.Doctype,
		ReferenceName:    src.Name,
		DocStatus:        entity.DocStatusDraft,
	}
	total := decimal.Zero
	for _, g := range groups {
		je.Accounts = append(je.Accounts, &entity.JournalEntryAccount{
			Account:    g.Account,
			Debit:      g.Amount,
			Credit:     decimal.Zero,
			IsAdvance:  "No",
			CostCenter: src.CostCenter,
		})
		total = total.Add(g.Amount)
	}
	je.Accounts = append(je.Accounts, &entity.JournalEntryAccount{
		Account:   company.DefaultServiceExpenseAccount,
		Debit:     decimal.Zero,
		Credit:    total,
		IsAdvance: "No",
	})
	for i, a := range je.Accounts {
		a.Idx = i + 1
	}
	if !je.IsBalanced() {
		return nil, domain.ErrUnbalancedEntry
	}
	return je, nil
}

// FromSalesOrder construye el origen a partir de un pedido.
func FromSalesOrder(so *entity.SalesOrder) Source {
	return Source{
		Doctype:         entity.DocTypeSalesOrder,
		Name:            so.Name,
		Company:         so.Company,
		TransactionDate: so.TransactionDate,
		CostCenter:      so.CostCenter,
		Expenses:        so.Expenses,
	}
}

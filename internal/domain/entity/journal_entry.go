package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento.
const (
	JournalEntryTypeJournal = "Journal Entry"
)

// JournalEntry asiento contable generado a partir de un documento origen.
type JournalEntry struct {
	Name             string
	Company          string
	VoucherType      string
	PostingDate      time.Time
	UserRemark       string
	ReferenceDoctype string
	ReferenceName    string
	DocStatus        int
	Accounts         []*JournalEntryAccount
	CreatedAt        time.Time
}

// JournalEntryAccount línea de débito o crédito.
type JournalEntryAccount struct {
	Name       string
	Idx        int
	Account    string
	Debit      decimal.Decimal
	Credit     decimal.Decimal
	IsAdvance  string
	CostCenter string
}

func (j *JournalEntry) DocType() string { return DocTypeJournalEntry }
func (j *JournalEntry) DocName() string { return j.Name }
func (j *JournalEntry) Status() int     { return j.DocStatus }

func (j *JournalEntry) SetStatus(status int) { j.DocStatus = status }

// TotalDebit suma de débitos.
func (j *JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, a := range j.Accounts {
		total = total.Add(a.Debit)
	}
	return total
}

// TotalCredit suma de créditos.
func (j *JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, a := range j.Accounts {
		total = total.Add(a.Credit)
	}
	return total
}

// IsBalanced informa si débitos y créditos coinciden.
func (j *JournalEntry) IsBalanced() bool {
	return j.TotalDebit().Equal(j.TotalCredit())
}

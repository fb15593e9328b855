package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntryAccountResponse línea del asiento.
type JournalEntryAccountResponse struct {
	Idx        int             `json:"idx"`
	Account    string          `json:"account"`
	Debit      decimal.Decimal `json:"debit_in_account_currency"`
	Credit     decimal.Decimal `json:"credit_in_account_currency"`
	IsAdvance  string          `json:"is_advance"`
	CostCenter string          `json:"cost_center"`
}

// JournalEntryResponse salida de un asiento.
type JournalEntryResponse struct {
	Name             string                        `json:"name"`
	Company          string                        `json:"company"`
	VoucherType      string                        `json:"voucher_type"`
	PostingDate      Date                          `json:"posting_date"`
	UserRemark       string                        `json:"user_remark"`
	ReferenceDoctype string                        `json:"reference_doctype"`
	ReferenceName    string                        `json:"reference_name"`
	DocStatus        int                           `json:"docstatus"`
	TotalDebit       decimal.Decimal               `json:"total_debit"`
	TotalCredit      decimal.Decimal               `json:"total_credit"`
	Accounts         []JournalEntryAccountResponse `json:"accounts"`
	CreatedAt        time.Time                     `json:"created_at"`
}

// JournalEntryListResponse asientos de un documento origen.
type JournalEntryListResponse struct {
	Items []JournalEntryResponse `json:"items"`
}

// JournalEntryQuery filtros del listado.
type JournalEntryQuery struct {
	ReferenceDoctype string `query:"reference_doctype"`
	ReferenceName    string `query:"reference_name" validate:"required,max=140"`
}

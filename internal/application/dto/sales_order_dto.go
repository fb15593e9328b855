package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrderItemDTO línea del pedido (entrada y salida).
type SalesOrderItemDTO struct {
	Name                string          `json:"name,omitempty"`
	Idx                 int             `json:"idx,omitempty"`
	ItemCode            string          `json:"item_code" validate:"required,max=140"`
	ItemName            string          `json:"item_name" validate:"omitempty,max=140"`
	Description         string          `json:"description"`
	Qty                 decimal.Decimal `json:"qty"`
	StockQty            decimal.Decimal `json:"stock_qty"`
	ConversionFactor    decimal.Decimal `json:"conversion_factor"`
	UOM                 string          `json:"uom" validate:"omitempty,max=40"`
	Rate                decimal.Decimal `json:"rate"`
	NetRate             decimal.Decimal `json:"net_rate"`
	Amount              decimal.Decimal `json:"amount"`
	NetAmount           decimal.Decimal `json:"net_amount"`
	QuotationItem       string          `json:"quotation_item,omitempty"`
	PrevDocName         string          `json:"prevdoc_docname,omitempty"`
	AgainstBlanketOrder bool            `json:"against_blanket_order"`
	BlanketOrder        string          `json:"blanket_order,omitempty"`
	BlanketOrderRate    decimal.Decimal `json:"blanket_order_rate"`
}

// SalesTeamDTO vendedor asignado.
type SalesTeamDTO struct {
	SalesPerson         string           `json:"sales_person" validate:"required"`
	AllocatedPercentage *decimal.Decimal `json:"allocated_percentage"`
	CommissionRate      decimal.Decimal  `json:"commission_rate"`
}

// PaymentScheduleDTO fila del plan de pagos.
type PaymentScheduleDTO struct {
	PaymentTerm    string          `json:"payment_term,omitempty"`
	DueDate        Date            `json:"due_date"`
	InvoicePortion decimal.Decimal `json:"invoice_portion"`
	PaymentAmount  decimal.Decimal `json:"payment_amount"`
}

// SalesOrderRequest crea o guarda un pedido en borrador (suele venir del mapeo de cotización).
type SalesOrderRequest struct {
	Customer        string               `json:"customer" validate:"required,max=140"`
	CustomerName    string               `json:"customer_name" validate:"omitempty,max=140"`
	TransactionDate Date                 `json:"transaction_date"`
	DeliveryDate    *Date                `json:"delivery_date"`
	CostCenter      string               `json:"cost_center" validate:"omitempty,max=140"`
	QuotationRef    string               `json:"quotation_reference" validate:"omitempty,max=140"`
	SalesPartner    string               `json:"sales_partner" validate:"omitempty,max=140"`
	CommissionRate  decimal.Decimal      `json:"commission_rate"`
	SalesTeam       []SalesTeamDTO       `json:"sales_team" validate:"dive"`
	Expenses        []ServiceExpenseDTO  `json:"expenses" validate:"dive"`
	ExpensesCopied  bool                 `json:"expenses_copied"`
	PaymentSchedule []PaymentScheduleDTO `json:"payment_schedule" validate:"dive"`
	Items           []SalesOrderItemDTO  `json:"items" validate:"required,min=1,dive"`
}

// SalesOrderResponse salida de un pedido.
type SalesOrderResponse struct {
	Name            string               `json:"name,omitempty"`
	Company         string               `json:"company"`
	Customer        string               `json:"customer"`
	CustomerName    string               `json:"customer_name"`
	TransactionDate Date                 `json:"transaction_date"`
	DeliveryDate    *Date                `json:"delivery_date"`
	CostCenter      string               `json:"cost_center"`
	DocStatus       int                  `json:"docstatus"`
	QuotationRef    string               `json:"quotation_reference"`
	SalesPartner    string               `json:"sales_partner,omitempty"`
	CommissionRate  decimal.Decimal      `json:"commission_rate"`
	SalesTeam       []SalesTeamDTO       `json:"sales_team"`
	Expenses        []ServiceExpenseDTO  `json:"expenses"`
	ExpensesCopied  bool                 `json:"expenses_copied"`
	PaymentSchedule []PaymentScheduleDTO `json:"payment_schedule"`
	NetTotal        decimal.Decimal      `json:"net_total"`
	GrandTotal      decimal.Decimal      `json:"grand_total"`
	Items           []SalesOrderItemDTO  `json:"items"`
	Messages        []string             `json:"messages,omitempty"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

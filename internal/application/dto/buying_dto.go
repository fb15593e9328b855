package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierQuotationItemRequest línea de cotización de proveedor.
type SupplierQuotationItemRequest struct {
	ItemCode        string          `json:"item_code" validate:"required,max=140"`
	ItemName        string          `json:"item_name" validate:"omitempty,max=140"`
	Description     string          `json:"description"`
	Qty             decimal.Decimal `json:"qty"`
	UOM             string          `json:"uom" validate:"omitempty,max=40"`
	StockUOM        string          `json:"stock_uom" validate:"omitempty,max=40"`
	Brand           string          `json:"brand"`
	Rate            decimal.Decimal `json:"rate"`
	BaseRate        decimal.Decimal `json:"base_rate"`
	MaterialRequest string          `json:"material_request" validate:"omitempty,max=140"`
}

// SupplierQuotationRequest crea o guarda una cotización de proveedor en borrador.
// Si ExpenseTemplate viene informado, sus filas reemplazan Expenses.
type SupplierQuotationRequest struct {
	Name            string                         `json:"name,omitempty"`
	Supplier        string                         `json:"supplier" validate:"required,max=140"`
	SupplierName    string                         `json:"supplier_name" validate:"omitempty,max=140"`
	TransactionDate Date                           `json:"transaction_date"`
	ValidTill       *Date                          `json:"valid_till"`
	ExpenseTemplate string                         `json:"expense_template" validate:"omitempty,max=140"`
	Expenses        []ServiceExpenseDTO            `json:"expenses" validate:"dive"`
	Items           []SupplierQuotationItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SupplierQuotationItemResponse línea de salida.
type SupplierQuotationItemResponse struct {
	Name            string          `json:"name"`
	Idx             int             `json:"idx"`
	ItemCode        string          `json:"item_code"`
	ItemName        string          `json:"item_name"`
	Description     string          `json:"description"`
	Qty             decimal.Decimal `json:"qty"`
	UOM             string          `json:"uom"`
	StockUOM        string          `json:"stock_uom"`
	Brand           string          `json:"brand"`
	Rate            decimal.Decimal `json:"rate"`
	BaseRate        decimal.Decimal `json:"base_rate"`
	Amount          decimal.Decimal `json:"amount"`
	MaterialRequest string          `json:"material_request"`
}

// SupplierQuotationResponse salida de una cotización de proveedor.
type SupplierQuotationResponse struct {
	Name            string                          `json:"name"`
	Company         string                          `json:"company"`
	Supplier        string                          `json:"supplier"`
	SupplierName    string                          `json:"supplier_name"`
	TransactionDate Date                            `json:"transaction_date"`
	ValidTill       *Date                           `json:"valid_till"`
	DocStatus       int                             `json:"docstatus"`
	ExpenseTemplate string                          `json:"expense_template,omitempty"`
	Expenses        []ServiceExpenseDTO             `json:"expenses"`
	TotalExpenses   decimal.Decimal                 `json:"total_expenses"`
	Items           []SupplierQuotationItemResponse `json:"items"`
	UpdatedAt       time.Time                       `json:"updated_at"`
}

// LinkedQuotationResponse cotización vinculada (null si no hay).
type LinkedQuotationResponse struct {
	Quotation *string `json:"quotation"`
}

// UpdateQuotationRequest destino del copiado de líneas.
type UpdateQuotationRequest struct {
	Quotation string `json:"quotation" validate:"required,max=140"`
}

// MaterialRequestItemDTO línea de solicitud de material.
type MaterialRequestItemDTO struct {
	Name         string          `json:"name,omitempty"`
	Idx          int             `json:"idx,omitempty"`
	ItemCode     string          `json:"item_code" validate:"required,max=140"`
	ItemName     string          `json:"item_name" validate:"omitempty,max=140"`
	Qty          decimal.Decimal `json:"qty"`
	UOM          string          `json:"uom" validate:"omitempty,max=40"`
	ScheduleDate Date            `json:"schedule_date"`
}

// MaterialRequestRequest crea o guarda una solicitud en borrador.
type MaterialRequestRequest struct {
	Name                string                   `json:"name,omitempty"`
	MaterialRequestType string                   `json:"material_request_type" validate:"required,oneof=Purchase 'Material Transfer'"`
	TransactionDate     Date                     `json:"transaction_date"`
	ScheduleDate        Date                     `json:"schedule_date"`
	QuotationRef        string                   `json:"quotation_reference" validate:"omitempty,max=140"`
	CreatedFromDoctype  string                   `json:"created_from_doctype" validate:"omitempty,max=140"`
	Items               []MaterialRequestItemDTO `json:"items" validate:"required,min=1,dive"`
}

// MaterialRequestResponse salida de una solicitud (también el borrador sin guardar del mapeo).
type MaterialRequestResponse struct {
	Name                string                   `json:"name,omitempty"`
	Company             string                   `json:"company"`
	MaterialRequestType string                   `json:"material_request_type"`
	TransactionDate     Date                     `json:"transaction_date"`
	ScheduleDate        Date                     `json:"schedule_date"`
	Status              string                   `json:"status"`
	DocStatus           int                      `json:"docstatus"`
	QuotationRef        string                   `json:"quotation_reference"`
	CreatedFromDoctype  string                   `json:"created_from_doctype"`
	Items               []MaterialRequestItemDTO `json:"items"`
}

// UpdateQuotationResponse resultado del copiado de líneas hacia la cotización.
type UpdateQuotationResponse struct {
	Quotation   string   `json:"quotation"`
	ItemsCopied int      `json:"items_copied"`
	Messages    []string `json:"messages,omitempty"`
}

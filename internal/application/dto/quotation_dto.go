package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// QuotationItemRequest línea de cotización. BaseRate es la tarifa antes de gastos y margen.
type QuotationItemRequest struct {
	Name                string          `json:"name,omitempty"`
	ItemCode            string          `json:"item_code" validate:"required,max=140"`
	ItemName            string          `json:"item_name" validate:"omitempty,max=140"`
	Description         string          `json:"description"`
	Qty                 decimal.Decimal `json:"qty"`
	UOM                 string          `json:"uom" validate:"omitempty,max=40"`
	StockUOM            string          `json:"stock_uom" validate:"omitempty,max=40"`
	ConversionFactor    decimal.Decimal `json:"conversion_factor"`
	Brand               string          `json:"brand"`
	BaseRate            decimal.Decimal `json:"base_rate"`
	BaseNetRate         decimal.Decimal `json:"base_net_rate"`
	IsAlternative       bool            `json:"is_alternative"`
	HasAlternativeItem  bool            `json:"has_alternative_item"`
	AgainstBlanketOrder bool            `json:"against_blanket_order"`
	BlanketOrder        string          `json:"blanket_order"`
	BlanketOrderRate    decimal.Decimal `json:"blanket_order_rate"`
}

// QuotationRequest crea o guarda una cotización en borrador.
type QuotationRequest struct {
	QuotationTo          string                 `json:"quotation_to" validate:"required,oneof=Customer Lead Prospect"`
	PartyName            string                 `json:"party_name" validate:"required,max=140"`
	CustomerName         string                 `json:"customer_name" validate:"omitempty,max=140"`
	TransactionDate      Date                   `json:"transaction_date"`
	ValidTill            *Date                  `json:"valid_till"`
	ItemMargin           decimal.Decimal        `json:"item_margin"`
	HasUnitPriceItems    bool                   `json:"has_unit_price_items"`
	ReferralSalesPartner string                 `json:"referral_sales_partner" validate:"omitempty,max=140"`
	Expenses             []ServiceExpenseDTO    `json:"expenses" validate:"dive"`
	Items                []QuotationItemRequest `json:"items" validate:"required,min=1,dive"`
}

// QuotationItemResponse línea con tarifa base y final.
type QuotationItemResponse struct {
	Name                string          `json:"name"`
	Idx                 int             `json:"idx"`
	ItemCode            string          `json:"item_code"`
	ItemName            string          `json:"item_name"`
	Description         string          `json:"description"`
	Qty                 decimal.Decimal `json:"qty"`
	UOM                 string          `json:"uom"`
	StockUOM            string          `json:"stock_uom"`
	ConversionFactor    decimal.Decimal `json:"conversion_factor"`
	Brand               string          `json:"brand"`
	BaseRate            decimal.Decimal `json:"base_rate"`
	BaseNetRate         decimal.Decimal `json:"base_net_rate"`
	Rate                decimal.Decimal `json:"rate"`
	NetRate             decimal.Decimal `json:"net_rate"`
	Amount              decimal.Decimal `json:"amount"`
	NetAmount           decimal.Decimal `json:"net_amount"`
	OriginalRate        decimal.Decimal `json:"original_rate"`
	SupplierQuotation   string          `json:"supplier_quotation,omitempty"`
	IsAlternative       bool            `json:"is_alternative"`
	HasAlternativeItem  bool            `json:"has_alternative_item"`
	AgainstBlanketOrder bool            `json:"against_blanket_order"`
	BlanketOrder        string          `json:"blanket_order,omitempty"`
	BlanketOrderRate    decimal.Decimal `json:"blanket_order_rate"`
}

// QuotationResponse salida de una cotización.
type QuotationResponse struct {
	Name                 string                  `json:"name"`
	Company              string                  `json:"company"`
	QuotationTo          string                  `json:"quotation_to"`
	PartyName            string                  `json:"party_name"`
	CustomerName         string                  `json:"customer_name"`
	TransactionDate      Date                    `json:"transaction_date"`
	ValidTill            *Date                   `json:"valid_till"`
	DocStatus            int                     `json:"docstatus"`
	Approved             bool                    `json:"approved"`
	ItemMargin           decimal.Decimal         `json:"item_margin"`
	HasUnitPriceItems    bool                    `json:"has_unit_price_items"`
	ReferralSalesPartner string                  `json:"referral_sales_partner,omitempty"`
	Expenses             []ServiceExpenseDTO     `json:"expenses"`
	TotalExpenses        decimal.Decimal         `json:"total_expenses"`
	NetTotal             decimal.Decimal         `json:"net_total"`
	GrandTotal           decimal.Decimal         `json:"grand_total"`
	Comments             []string                `json:"comments,omitempty"`
	Items                []QuotationItemResponse `json:"items"`
	Messages             []string                `json:"messages,omitempty"`
	UpdatedAt            time.Time               `json:"updated_at"`
}

// AddSupplierItemsRequest selección de líneas de proveedor.
// SelectedItems acepta un arreglo JSON o un string con el arreglo serializado.
type AddSupplierItemsRequest struct {
	SelectedItems json.RawMessage `json:"selected_items" validate:"required"`
}

// SupplierQuotationItemRowResponse fila de la consulta de líneas de proveedor de una cotización.
type SupplierQuotationItemRowResponse struct {
	Name              string          `json:"name"`
	SupplierQuotation string          `json:"supplier_quotation"`
	ItemCode          string          `json:"item_code"`
	ItemName          string          `json:"item_name"`
	Qty               decimal.Decimal `json:"qty"`
	UOM               string          `json:"uom"`
	Rate              decimal.Decimal `json:"rate"`
	Amount            decimal.Decimal `json:"amount"`
	MaterialRequest   string          `json:"material_request"`
	Supplier          string          `json:"supplier"`
	SupplierName      string          `json:"supplier_name"`
	ValidTill         *Date           `json:"valid_till"`
	TransactionDate   Date            `json:"transaction_date"`
}

// SupplierQuotationItemsResponse respuesta de la consulta.
type SupplierQuotationItemsResponse struct {
	Items []SupplierQuotationItemRowResponse `json:"items"`
}

// MaterialRequestSummaryResponse solicitud vinculada con su RFQ (null si no tiene).
type MaterialRequestSummaryResponse struct {
	Name                string  `json:"name"`
	TransactionDate     Date    `json:"transaction_date"`
	Status              string  `json:"status"`
	MaterialRequestType string  `json:"material_request_type"`
	RFQName             *string `json:"rfq_name"`
}

// MakeSalesOrderRequest opciones del mapeo cotización → pedido.
type MakeSalesOrderRequest struct {
	SelectedItems    []SelectedRow `json:"selected_items" validate:"dive"`
	FilteredChildren []string      `json:"filtered_children"`
}

// SelectedRow línea elegida por nombre.
type SelectedRow struct {
	Name string `json:"name" validate:"required"`
}

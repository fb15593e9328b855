package dto

import "github.com/shopspring/decimal"

// ItemDetailsResponse existencia y últimas tarifas de un artículo.
type ItemDetailsResponse struct {
	ItemCode         string          `json:"item_code"`
	ActualQty        decimal.Decimal `json:"stock_qty"`
	LastPurchaseRate decimal.Decimal `json:"last_purchase_rate"`
	LastSupplierName string          `json:"supplier"`
	LastSellingRate  decimal.Decimal `json:"last_selling_rate"`
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item maestro de artículos.
type Item struct {
	ItemCode    string
	ItemName    string
	Description string
	StockUOM    string
	Brand       string
}

// Bin foto del stock de un artículo en una bodega.
type Bin struct {
	ItemCode     string
	Warehouse    string
	ActualQty    decimal.Decimal
	ProjectedQty decimal.Decimal
	Modified     time.Time
}

// LastRate última tarifa de un artículo en una factura enviada (compra o venta).
// PartyName es el proveedor o cliente de la factura.
type LastRate struct {
	ItemCode  string
	Rate      decimal.Decimal
	Parent    string
	PartyName string
}

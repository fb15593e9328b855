package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/powerkey/power-app/internal/domain/entity"
)

// SalesOrderRepository define el puerto de persistencia para Sales Order.
type SalesOrderRepository interface {
	Create(ctx context.Context, so *entity.SalesOrder) error
	Update(ctx context.Context, so *entity.SalesOrder) error
	GetByName(ctx context.Context, name string) (*entity.SalesOrder, error)
	// OrderedQtyByQuotationItem cantidad pedida en pedidos enviados, por línea de la cotización.
	OrderedQtyByQuotationItem(ctx context.Context, quotation string) (map[string]decimal.Decimal, error)
	// QuotationOfItem cotización dueña de una línea de cotización ("" si no existe).
	QuotationOfItem(ctx context.Context, quotationItem string) (string, error)
}

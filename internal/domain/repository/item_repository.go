package repository

import (
	"context"

	"github.com/powerkey/power-app/internal/domain/entity"
)

// ItemRepository puerto de lectura de artículos, existencias y últimas tarifas.
// Los métodos Latest*/Last* devuelven (nil, nil) si no hay datos.
type ItemRepository interface {
	GetByCode(ctx context.Context, itemCode string) (*entity.Item, error)
	// LatestBin existencia más reciente del artículo (por fecha de modificación).
	LatestBin(ctx context.Context, itemCode string) (*entity.Bin, error)
	// LastPurchaseRate última factura de compra enviada, con el nombre del proveedor.
	LastPurchaseRate(ctx context.Context, itemCode string) (*entity.LastRate, error)
	// LastSellingRate última factura de venta enviada.
	LastSellingRate(ctx context.Context, itemCode string) (*entity.LastRate, error)
}

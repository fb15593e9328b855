package repository

import (
	"context"

	"github.com/powerkey/power-app/internal/domain/entity"
)

// SupplierQuotationRepository define el puerto de persistencia para Supplier Quotation.
type SupplierQuotationRepository interface {
	Create(ctx context.Context, sq *entity.SupplierQuotation) error
	Update(ctx context.Context, sq *entity.SupplierQuotation) error
	GetByName(ctx context.Context, name string) (*entity.SupplierQuotation, error)
	// ListSubmittedItemsByMaterialRequests líneas de cotizaciones enviadas de esas solicitudes,
	// ordenadas por item_code y rate, con los datos de cabecera del proveedor.
	ListSubmittedItemsByMaterialRequests(ctx context.Context, materialRequests []string) ([]*entity.SupplierQuotationItemRow, error)
}

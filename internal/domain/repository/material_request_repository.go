package repository

import (
	"context"

	"github.com/powerkey/power-app/internal/domain/entity"
)

// MaterialRequestRepository define el puerto de persistencia para Material Request.
type MaterialRequestRepository interface {
	Create(ctx context.Context, mr *entity.MaterialRequest) error
	Update(ctx context.Context, mr *entity.MaterialRequest) error
	GetByName(ctx context.Context, name string) (*entity.MaterialRequest, error)
	// ListByQuotation solicitudes que referencian la cotización, con su primera RFQ.
	ListByQuotation(ctx context.Context, quotation string) ([]*entity.MaterialRequestSummary, error)
	// QuotationRef cotización referenciada por la solicitud ("" si no tiene o no existe).
	QuotationRef(ctx context.Context, materialRequest string) (string, error)
}

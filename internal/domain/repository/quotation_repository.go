package repository

import (
	"context"

	"github.com/powerkey/power-app/internal/domain/entity"
)

// QuotationRepository define el puerto de persistencia para Quotation y sus líneas.
type QuotationRepository interface {
	Create(ctx context.Context, q *entity.Quotation) error
	// Update reemplaza cabecera y líneas.
	Update(ctx context.Context, q *entity.Quotation) error
	GetByName(ctx context.Context, name string) (*entity.Quotation, error)
}

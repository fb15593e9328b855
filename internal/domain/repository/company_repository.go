package repository

import (
	"context"

	"github.com/powerkey/power-app/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByName(ctx context.Context, name string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
}

package repository

import (
	"context"

	"github.com/powerkey/power-app/internal/domain/entity"
)

// ExpenseTemplateRepository define el puerto de persistencia para plantillas de gastos.
type ExpenseTemplateRepository interface {
	// Save crea la plantilla o reemplaza sus filas si ya existe.
	Save(ctx context.Context, t *entity.ExpenseTemplate) error
	GetByName(ctx context.Context, name string) (*entity.ExpenseTemplate, error)
}

package accounts

import (
	"context"

	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/repository"
	"github.com/powerkey/power-app/pkg/logger"
)

// ExpenseTemplateUseCase plantillas de gastos de servicio.
type ExpenseTemplateUseCase struct {
	repo repository.ExpenseTemplateRepository
	log  *logger.Logger
}

// NewExpenseTemplateUseCase construye el caso de uso.
func NewExpenseTemplateUseCase(repo repository.ExpenseTemplateRepository, log *logger.Logger) *ExpenseTemplateUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ExpenseTemplateUseCase{repo: repo, log: log}
}

// Save crea o reemplaza la plantilla.
func (uc *ExpenseTemplateUseCase) Save(ctx context.Context, company string, in dto.SaveExpenseTemplateRequest) (*dto.ExpenseTemplateResponse, error) {
	existing, err := uc.repo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Company != company {
		return nil, domain.Invalid(domain.ErrConflict, "la plantilla %s pertenece a otra empresa", in.Name)
	}
	t := &entity.ExpenseTemplate{
		Name:     in.Name,
		Company:  company,
		Expenses: dto.ExpensesFromDTO(in.Expenses, company),
	}
	if err := uc.repo.Save(ctx, t); err != nil {
		return nil, err
	}
	uc.log.Info().Str("template", t.Name).Int("expenses", len(t.Expenses)).Msg("plantilla de gastos guardada")
	return &dto.ExpenseTemplateResponse{Name: t.Name, Company: t.Company, Expenses: dto.ExpensesToDTO(t.Expenses)}, nil
}

// Expenses filas de la plantilla. Plantilla desconocida: ErrNotFound.
func (uc *ExpenseTemplateUseCase) Expenses(ctx context.Context, company, name string) ([]dto.ServiceExpenseDTO, error) {
	t, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if t == nil || t.Company != company {
		return nil, domain.Invalid(domain.ErrNotFound, "plantilla de gastos %s", name)
	}
	return dto.ExpensesToDTO(t.Expenses), nil
}

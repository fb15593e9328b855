package accounts

import (
	"context"
	"strings"
	"time"

	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una nueva empresa. Devuelve domain.ErrDuplicate si el nombre ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	existing, err := uc.repo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	company := &entity.Company{
		Name:                         strings.TrimSpace(in.Name),
		Abbr:                         in.Abbr,
		DefaultCurrency:              strings.ToUpper(in.DefaultCurrency),
		DefaultServiceExpenseAccount: in.DefaultServiceExpenseAccount,
		CreatedAt:                    now,
		UpdatedAt:                    now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// Ensure crea la empresa si no existe; si ya existe la devuelve sin tocarla.
// created indica si se insertó.
func (uc *CompanyUseCase) Ensure(ctx context.Context, in dto.CreateCompanyRequest) (out *dto.CompanyResponse, created bool, err error) {
	existing, err := uc.repo.GetByName(ctx, strings.TrimSpace(in.Name))
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return entityToCompanyResponse(existing), false, nil
	}
	out, err = uc.Create(ctx, in)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

// Get obtiene una empresa por nombre.
func (uc *CompanyUseCase) Get(ctx context.Context, name string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.Invalid(domain.ErrNotFound, "empresa %s", name)
	}
	return entityToCompanyResponse(company), nil
}

// Update modifica moneda y cuenta de gastos de servicio por defecto.
func (uc *CompanyUseCase) Update(ctx context.Context, name string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.Invalid(domain.ErrNotFound, "empresa %s", name)
	}
	if in.DefaultCurrency != nil {
		company.DefaultCurrency = strings.ToUpper(*in.DefaultCurrency)
	}
	if in.DefaultServiceExpenseAccount != nil {
		company.DefaultServiceExpenseAccount = *in.DefaultServiceExpenseAccount
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		Name:                         c.Name,
		Abbr:                         c.Abbr,
		DefaultCurrency:              c.DefaultCurrency,
		DefaultServiceExpenseAccount: c.DefaultServiceExpenseAccount,
		CreatedAt:                    c.CreatedAt,
		UpdatedAt:                    c.UpdatedAt,
	}
}

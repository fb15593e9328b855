package postgres

import (
	"context"
	"fmt"

	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (name, abbr, default_currency, default_service_expense_account, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		c.Name, c.Abbr, c.DefaultCurrency, c.DefaultServiceExpenseAccount, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByName obtiene una empresa por nombre.
func (r *CompanyRepo) GetByName(ctx context.Context, name string) (*entity.Company, error) {
	query := `
		SELECT name, abbr, default_currency, default_service_expense_account, created_at, updated_at
		FROM companies WHERE name = $1`
	var c entity.Company
	err := r.q.QueryRow(ctx, query, name).Scan(
		&c.Name, &c.Abbr, &c.DefaultCurrency, &c.DefaultServiceExpenseAccount, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Update actualiza abreviatura, moneda y cuenta de gastos.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies
		SET abbr = $2, default_currency = $3, default_service_expense_account = $4, updated_at = $5
		WHERE name = $1`
	tag, err := r.q.Exec(ctx, query, c.Name, c.Abbr, c.DefaultCurrency, c.DefaultServiceExpenseAccount, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

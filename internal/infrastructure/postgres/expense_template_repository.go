package postgres

import (
	"context"
	"fmt"

	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/repository"
)

var _ repository.ExpenseTemplateRepository = (*ExpenseTemplateRepo)(nil)

// ExpenseTemplateRepo plantillas de gastos; las filas se guardan como jsonb.
type ExpenseTemplateRepo struct {
	q Querier
}

// NewExpenseTemplateRepository construye el adaptador.
func NewExpenseTemplateRepository(q Querier) *ExpenseTemplateRepo {
	return &ExpenseTemplateRepo{q: q}
}

// Save inserta la plantilla o reemplaza empresa y filas.
func (r *ExpenseTemplateRepo) Save(ctx context.Context, t *entity.ExpenseTemplate) error {
	expenses, err := toJSONB(t.Expenses)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO expense_templates (name, company, expenses) VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET company = EXCLUDED.company, expenses = EXCLUDED.expenses`
	if _, err := r.q.Exec(ctx, query, t.Name, t.Company, expenses); err != nil {
		return fmt.Errorf("save expense template: %w", err)
	}
	return nil
}

func (r *ExpenseTemplateRepo) GetByName(ctx context.Context, name string) (*entity.ExpenseTemplate, error) {
	var (
		t   entity.ExpenseTemplate
		raw []byte
	)
	err := r.q.QueryRow(ctx, `SELECT name, company, expenses FROM expense_templates WHERE name = $1`, name).
		Scan(&t.Name, &t.Company, &raw)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense template: %w", err)
	}
	if t.Expenses, err = fromJSONB[entity.ServiceExpense](raw); err != nil {
		return nil, err
	}
	return &t, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/powerkey/power-app/internal/application/lifecycle"
	"github.com/powerkey/power-app/internal/domain/repository"
)

var _ lifecycle.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Set) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(Repos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Repos arma el set de repositorios sobre q (pool para lecturas sueltas, tx dentro de Run).
func Repos(q Querier) repository.Set {
	return repository.Set{
		Companies:          NewCompanyRepository(q),
		Customers:          NewCustomerRepository(q),
		SalesPartners:      NewSalesPartnerRepository(q),
		Items:              NewItemRepository(q),
		Quotations:         NewQuotationRepository(q),
		SupplierQuotations: NewSupplierQuotationRepository(q),
		MaterialRequests:   NewMaterialRequestRepository(q),
		SalesOrders:        NewSalesOrderRepository(q),
		JournalEntries:     NewJournalEntryRepository(q),
		ExpenseTemplates:   NewExpenseTemplateRepository(q),
		Naming:             NewNamingSeries(q),
	}
}

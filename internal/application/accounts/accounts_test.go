package accounts_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powerkey/power-app/internal/application/accounts"
	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/infrastructure/memory"
	"github.com/powerkey/power-app/pkg/logger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Empresas
// ──────────────────────────────────────────────────────────────────────────────

func TestCompany_CrearActualizar(t *testing.T) {
	uc := accounts.NewCompanyUseCase(memory.NewStore().Repos().Companies)
	ctx := context.Background()

	c, err := uc.Create(ctx, dto.CreateCompanyRequest{Name: "PowerKey", Abbr: "PK", DefaultCurrency: "cop"})
	require.NoError(t, err)
	assert.Equal(t, "COP", c.DefaultCurrency)

	_, err = uc.Create(ctx, dto.CreateCompanyRequest{Name: "PowerKey", Abbr: "PK"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	account := "Gastos por pagar - PK"
	c, err = uc.Update(ctx, "PowerKey", dto.UpdateCompanyRequest{DefaultServiceExpenseAccount: &account})
	require.NoError(t, err)
	assert.Equal(t, account, c.DefaultServiceExpenseAccount)
	assert.Equal(t, "COP", c.DefaultCurrency)

	_, err = uc.Get(ctx, "Otra")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Plantillas de gastos
// ──────────────────────────────────────────────────────────────────────────────

func TestCompany_EnsureNoDuplica(t *testing.T) {
	uc := accounts.NewCompanyUseCase(memory.NewStore().Repos().Companies)
	ctx := context.Background()
	in := dto.CreateCompanyRequest{Name: "PowerKey", Abbr: "PK", DefaultServiceExpenseAccount: "Gastos por pagar - PK"}

	first, created, err := uc.Ensure(ctx, in)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Gastos por pagar - PK", first.DefaultServiceExpenseAccount)

	in.DefaultServiceExpenseAccount = "otra"
	again, created, err := uc.Ensure(ctx, in)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Gastos por pagar - PK", again.DefaultServiceExpenseAccount)
}

func TestExpenseTemplate_GuardarYLeer(t *testing.T) {
	uc := accounts.NewExpenseTemplateUseCase(memory.NewStore().Repos().ExpenseTemplates, logger.Nop())
	ctx := context.Background()

	_, err := uc.Save(ctx, "PowerKey", dto.SaveExpenseTemplateRequest{
		Name: "Importación",
		Expenses: []dto.ServiceExpenseDTO{
			{ServiceExpenseType: "Flete", DefaultAccount: "Fletes - PK", Amount: d("40"), Description: "Puerto"},
		},
	})
	require.NoError(t, err)

	rows, err := uc.Expenses(ctx, "PowerKey", "Importación")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "PowerKey", rows[0].Company, "la fila toma la empresa")
	assert.Equal(t, "Puerto", rows[0].Description)

	_, err = uc.Expenses(ctx, "PowerKey", "No existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Save(ctx, "Otra", dto.SaveExpenseTemplateRequest{Name: "Importación"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Asientos
// ──────────────────────────────────────────────────────────────────────────────

func TestJournalEntry_Consultas(t *testing.T) {
	repo := memory.NewStore().Repos().JournalEntries
	ctx := context.Background()
	je := &entity.JournalEntry{
		Name: "ACC-JV-2026-00001", Company: "PowerKey", VoucherType: entity.JournalEntryTypeJournal,
		PostingDate: time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC), ReferenceDoctype: entity.DocTypeSalesOrder,
		ReferenceName: "SAL-ORD-2026-00001", DocStatus: entity.DocStatusSubmitted,
		Accounts: []*entity.JournalEntryAccount{
			{Name: "a1", Idx: 1, Account: "Fletes - PK", Debit: d("30"), Credit: decimal.Zero, IsAdvance: "No"},
			{Name: "a2", Idx: 2, Account: "Gastos por pagar - PK", Debit: decimal.Zero, Credit: d("30"), IsAdvance: "No"},
		},
	}
	require.NoError(t, repo.Create(ctx, je))
	uc := accounts.NewJournalEntryUseCase(repo)

	got, err := uc.Get(ctx, "PowerKey", je.Name)
	require.NoError(t, err)
	assert.True(t, d("30").Equal(got.TotalDebit))
	assert.True(t, got.TotalDebit.Equal(got.TotalCredit))

	list, err := uc.ListByReference(ctx, "PowerKey", dto.JournalEntryQuery{ReferenceName: "SAL-ORD-2026-00001"})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	other, err := uc.ListByReference(ctx, "Otra", dto.JournalEntryQuery{ReferenceName: "SAL-ORD-2026-00001"})
	require.NoError(t, err)
	assert.Empty(t, other.Items)

	_, err = uc.Get(ctx, "Otra", je.Name)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

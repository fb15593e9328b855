//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powerkey/power-app/internal/application/buying"
	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/internal/application/lifecycle"
	"github.com/powerkey/power-app/internal/application/selling"
	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/repository"
	"github.com/powerkey/power-app/internal/infrastructure/postgres"
	"github.com/powerkey/power-app/pkg/logger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type useCases struct {
	quotations *selling.QuotationUseCase
	orders     *selling.SalesOrderUseCase
	requests   *buying.MaterialRequestUseCase
}

func newUseCases(pool *pgxpool.Pool) useCases {
	reg := lifecycle.NewRegistry()
	selling.RegisterHooks(reg)
	engine := lifecycle.NewEngine(reg, postgres.NewTxRunner(pool), logger.Nop())
	repos := postgres.Repos(pool)
	return useCases{
		quotations: selling.NewQuotationUseCase(engine, repos, selling.Config{}, logger.Nop()),
		orders:     selling.NewSalesOrderUseCase(engine, repos, logger.Nop()),
		requests:   buying.NewMaterialRequestUseCase(engine, repos, logger.Nop()),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo sobre PostgreSQL
// ──────────────────────────────────────────────────────────────────────────────

func TestPostgres_FlujoCotizacionPedidoAsiento(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	exec(t, pool, `INSERT INTO customers (name, customer_name) VALUES ('CLI-001', 'Ferretería Central')`)
	uc := newUseCases(pool)

	// valid_till hoy vuelve de la columna DATE como medianoche UTC y sigue vigente.
	validTill := dto.NewDate(time.Now())
	q, err := uc.quotations.Create(ctx, testCompany, dto.QuotationRequest{
		QuotationTo: entity.QuotationToCustomer,
		PartyName:   "CLI-001",
		ValidTill:   &validTill,
		Expenses:    []dto.ServiceExpenseDTO{{ServiceExpenseType: "Flete", DefaultAccount: "Fletes - PK", Amount: d("30")}},
		Items: []dto.QuotationItemRequest{
			{ItemCode: "A", ItemName: "Alfa", Qty: d("1"), UOM: "Nos", BaseRate: d("100")},
			{ItemCode: "B", ItemName: "Beta", Qty: d("2"), UOM: "Nos", BaseRate: d("100")},
		},
	})
	require.NoError(t, err)
	assert.Regexp(t, `^SAL-QTN-\d{4}-00001$`, q.Name)
	require.Len(t, q.Items, 2)
	assert.True(t, d("110").Equal(q.Items[0].Rate), "100 + 30/300*100")

	_, err = uc.quotations.Approve(ctx, testCompany, q.Name)
	require.NoError(t, err)
	q, err = uc.quotations.Submit(ctx, testCompany, q.Name)
	require.NoError(t, err)
	assert.Equal(t, entity.DocStatusSubmitted, q.DocStatus)

	draft, err := uc.quotations.MakeSalesOrder(ctx, testCompany, q.Name, dto.MakeSalesOrderRequest{})
	require.NoError(t, err)
	require.Len(t, draft.Items, 2)

	req := dto.SalesOrderRequest{
		Customer:        draft.Customer,
		CustomerName:    draft.CustomerName,
		TransactionDate: draft.TransactionDate,
		DeliveryDate:    draft.DeliveryDate,
		CostCenter:      "Principal - PK",
		QuotationRef:    draft.QuotationRef,
		Expenses:        draft.Expenses,
		ExpensesCopied:  draft.ExpensesCopied,
		PaymentSchedule: draft.PaymentSchedule,
		Items:           draft.Items[1:2],
	}
	req.Items[0].Qty = d("1")
	so, err := uc.orders.Create(ctx, testCompany, req)
	require.NoError(t, err)
	so, err = uc.orders.Submit(ctx, testCompany, so.Name)
	require.NoError(t, err)

	repos := postgres.Repos(pool)
	ordered, err := repos.SalesOrders.OrderedQtyByQuotationItem(ctx, q.Name)
	require.NoError(t, err)
	require.Len(t, ordered, 1)
	assert.True(t, d("1").Equal(ordered[q.Items[1].Name]))

	entries, err := repos.JournalEntries.ListByReference(ctx, entity.DocTypeSalesOrder, so.Name)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsBalanced())
	assert.True(t, d("30").Equal(entries[0].TotalCredit()))
	assert.Equal(t, "Principal - PK", entries[0].Accounts[0].CostCenter)

	again, err := uc.quotations.MakeSalesOrder(ctx, testCompany, q.Name, dto.MakeSalesOrderRequest{})
	require.NoError(t, err)
	require.Len(t, again.Items, 2)
	assert.True(t, d("1").Equal(again.Items[1].Qty), "quedaba 1 de 2")
}

func TestPostgres_SolicitudesDeMaterialConRFQ(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	exec(t, pool, `INSERT INTO customers (name, customer_name) VALUES ('CLI-001', 'Ferretería Central')`)
	uc := newUseCases(pool)
	q, err := uc.quotations.Create(ctx, testCompany, dto.QuotationRequest{
		QuotationTo: entity.QuotationToCustomer,
		PartyName:   "CLI-001",
		Items:       []dto.QuotationItemRequest{{ItemCode: "A", Qty: d("3"), UOM: "Nos", BaseRate: d("10")}},
	})
	require.NoError(t, err)

	first, err := uc.requests.Save(ctx, testCompany, dto.MaterialRequestRequest{
		MaterialRequestType: entity.MaterialRequestTypePurchase,
		QuotationRef:        q.Name,
		Items:               []dto.MaterialRequestItemDTO{{ItemCode: "A", Qty: d("3"), UOM: "Nos"}},
	})
	require.NoError(t, err)
	_, err = uc.requests.Save(ctx, testCompany, dto.MaterialRequestRequest{
		MaterialRequestType: entity.MaterialRequestTypePurchase,
		QuotationRef:        q.Name,
		Items:               []dto.MaterialRequestItemDTO{{ItemCode: "A", Qty: d("1"), UOM: "Nos"}},
	})
	require.NoError(t, err)
	exec(t, pool, `INSERT INTO rfq_items (parent, material_request) VALUES ('PUR-RFQ-1', $1), ('PUR-RFQ-2', $1)`, first.Name)

	list, err := uc.quotations.MaterialRequests(ctx, testCompany, q.Name)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.Name, list[0].Name)
	require.NotNil(t, list[0].RFQName)
	assert.Equal(t, "PUR-RFQ-1", *list[0].RFQName, "la primera RFQ que la incluye")
	assert.Nil(t, list[1].RFQName)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transacciones y series
// ──────────────────────────────────────────────────────────────────────────────

func TestPostgres_TxRunnerRevierteSiFalla(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	boom := errors.New("falla")

	err := postgres.NewTxRunner(pool).Run(ctx, func(repos repository.Set) error {
		if err := repos.Companies.Create(ctx, &entity.Company{Name: "Temporal", Abbr: "TMP"}); err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
	c, err := postgres.NewCompanyRepository(pool).GetByName(ctx, "Temporal")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestPostgres_NamingSeriesConsecutiva(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	series := postgres.NewNamingSeries(pool)
	at := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

	first, err := series.Next(ctx, entity.DocTypeSalesOrder, at)
	require.NoError(t, err)
	second, err := series.Next(ctx, entity.DocTypeSalesOrder, at)
	require.NoError(t, err)
	other, err := series.Next(ctx, entity.DocTypeSalesOrder, at.AddDate(1, 0, 0))
	require.NoError(t, err)

	assert.Equal(t, "SAL-ORD-2026-00001", first)
	assert.Equal(t, "SAL-ORD-2026-00002", second)
	assert.Equal(t, "SAL-ORD-2027-00001", other)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios y artículos
// ──────────────────────────────────────────────────────────────────────────────

func TestPostgres_Usuarios(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	users := postgres.NewUserRepository(pool)
	now := time.Now()
	u := &entity.User{
		ID: uuid.NewString(), Company: testCompany, Email: "Ana@PowerKey.co", PasswordHash: "x",
		Name: "Ana", Role: entity.RoleVentas, Status: "active", CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, users.Create(ctx, u))

	dup := *u
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, users.Create(ctx, &dup), domain.ErrEmailAlreadyExists)

	n, err := users.CountByCompany(ctx, testCompany)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, users.UpdateRole(ctx, u.ID, entity.RoleCompras))
	got, err := users.GetByEmail(ctx, "ana@powerkey.co")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.RoleCompras, got.Role)

	assert.ErrorIs(t, users.UpdateRole(ctx, uuid.NewString(), entity.RoleAdmin), domain.ErrNotFound)
}

func TestPostgres_UltimasTarifasSoloEnviadas(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	items := postgres.NewItemRepository(pool)
	exec(t, pool, `INSERT INTO bins (item_code, warehouse, actual_qty, modified) VALUES
		('A', 'Central', 4, now() - interval '1 day'), ('A', 'Norte', 9, now())`)
	exec(t, pool, `INSERT INTO purchase_invoice_items (parent, supplier_name, item_code, rate, docstatus, creation) VALUES
		('PINV-1', 'Aceros SA', 'A', 12.5, 1, now() - interval '2 day'),
		('PINV-2', 'Borrador SA', 'A', 99, 0, now())`)

	bin, err := items.LatestBin(ctx, "A")
	require.NoError(t, err)
	require.NotNil(t, bin)
	assert.Equal(t, "Norte", bin.Warehouse)
	assert.True(t, d("9").Equal(bin.ActualQty))

	rate, err := items.LastPurchaseRate(ctx, "A")
	require.NoError(t, err)
	require.NotNil(t, rate)
	assert.True(t, d("12.5").Equal(rate.Rate))
	assert.Equal(t, "Aceros SA", rate.PartyName)

	none, err := items.LastSellingRate(ctx, "A")
	require.NoError(t, err)
	assert.Nil(t, none)
}

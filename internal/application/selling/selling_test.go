package selling_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/internal/application/lifecycle"
	"github.com/powerkey/power-app/internal/application/selling"
	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/infrastructure/memory"
	"github.com/powerkey/power-app/pkg/logger"
)

const company = "PowerKey"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store      *memory.Store
	quotations *selling.QuotationUseCase
	orders     *selling.SalesOrderUseCase
}

func newFixture(t *testing.T, cfg selling.Config) *fixture {
	t.Helper()
	store := memory.NewStore()
	reg := lifecycle.NewRegistry()
	selling.RegisterHooks(reg)
	engine := lifecycle.NewEngine(reg, store, logger.Nop())
	repos := store.Repos()

	require.NoError(t, repos.Companies.Create(context.Background(), &entity.Company{
		Name: company, Abbr: "PK", DefaultServiceExpenseAccount: "Gastos por pagar - PK",
	}))
	store.AddCustomer(&entity.Customer{Name: "CLI-001", CustomerName: "Ferretería Central", LeadName: "LEAD-9"})
	store.AddSalesPartner(&entity.SalesPartner{Name: "Socio Norte", CommissionRate: d("5")})
	store.AddItem(&entity.Item{ItemCode: "N-1", ItemName: "Nuevo", Description: "Descripción maestra"})

	return &fixture{
		store:      store,
		quotations: selling.NewQuotationUseCase(engine, repos, cfg, logger.Nop()),
		orders:     selling.NewSalesOrderUseCase(engine, repos, logger.Nop()),
	}
}

func quotationRequest() dto.QuotationRequest {
	return dto.QuotationRequest{
		QuotationTo: entity.QuotationToCustomer,
		PartyName:   "CLI-001",
		Expenses: []dto.ServiceExpenseDTO{
			{ServiceExpenseType: "Flete", DefaultAccount: "Fletes - PK", Amount: d("30")},
		},
		Items: []dto.QuotationItemRequest{
			{ItemCode: "A", ItemName: "Alfa", Qty: d("1"), UOM: "Nos", BaseRate: d("100")},
			{ItemCode: "B", ItemName: "Beta", Qty: d("2"), UOM: "Nos", BaseRate: d("100")},
		},
	}
}

func toRequest(q *dto.QuotationResponse) dto.QuotationRequest {
	in := dto.QuotationRequest{
		QuotationTo:     q.QuotationTo,
		PartyName:       q.PartyName,
		ItemMargin:      q.ItemMargin,
		Expenses:        q.Expenses,
		TransactionDate: q.TransactionDate,
	}
	for _, it := range q.Items {
		in.Items = append(in.Items, dto.QuotationItemRequest{
			Name: it.Name, ItemCode: it.ItemCode, ItemName: it.ItemName, Qty: it.Qty, UOM: it.UOM,
			BaseRate: it.BaseRate, BaseNetRate: it.BaseNetRate,
		})
	}
	return in
}

func orderRequest(so *dto.SalesOrderResponse) dto.SalesOrderRequest {
	return dto.SalesOrderRequest{
		Customer:        so.Customer,
		CustomerName:    so.CustomerName,
		TransactionDate: so.TransactionDate,
		DeliveryDate:    so.DeliveryDate,
		CostCenter:      "Principal - PK",
		QuotationRef:    so.QuotationRef,
		SalesPartner:    so.SalesPartner,
		CommissionRate:  so.CommissionRate,
		SalesTeam:       so.SalesTeam,
		Expenses:        so.Expenses,
		ExpensesCopied:  so.ExpensesCopied,
		PaymentSchedule: so.PaymentSchedule,
		Items:           so.Items,
	}
}

func submitApprovedQuotation(t *testing.T, f *fixture) *dto.QuotationResponse {
	t.Helper()
	ctx := context.Background()
	q, err := f.quotations.Create(ctx, company, quotationRequest())
	require.NoError(t, err)
	_, err = f.quotations.Approve(ctx, company, q.Name)
	require.NoError(t, err)
	q, err = f.quotations.Submit(ctx, company, q.Name)
	require.NoError(t, err)
	return q
}

// ──────────────────────────────────────────────────────────────────────────────
// Cotización: validate / before_submit
// ──────────────────────────────────────────────────────────────────────────────

func TestQuotation_CreateProrrateaGastos(t *testing.T) {
	f := newFixture(t, selling.Config{})

	q, err := f.quotations.Create(context.Background(), company, quotationRequest())

	require.NoError(t, err)
	assert.Regexp(t, `^SAL-QTN-\d{4}-00001$`, q.Name)
	require.Len(t, q.Items, 2)
	assert.True(t, d("110").Equal(q.Items[0].Rate), "rate A: %s", q.Items[0].Rate)
	assert.True(t, d("110").Equal(q.Items[1].Rate), "rate B: %s", q.Items[1].Rate)
	assert.True(t, d("100").Equal(q.Items[0].BaseRate), "la tarifa base no cambia")
	assert.True(t, d("330").Equal(q.GrandTotal))
	assert.True(t, d("30").Equal(q.TotalExpenses))
	assert.Contains(t, q.Messages, selling.MsgItemRateUpdated)
}

func TestQuotation_GuardarDosVecesNoAcumula(t *testing.T) {
	f := newFixture(t, selling.Config{})
	ctx := context.Background()
	q, err := f.quotations.Create(ctx, company, quotationRequest())
	require.NoError(t, err)

	in := toRequest(q)
	in.ItemMargin = d("10")
	q, err = f.quotations.Save(ctx, company, q.Name, in)
	require.NoError(t, err)
	first := q.Items[0].Rate

	q, err = f.quotations.Save(ctx, company, q.Name, toRequest(q))
	require.NoError(t, err)

	assert.True(t, first.Equal(q.Items[0].Rate))
	assert.True(t, d("121").Equal(q.Items[0].Rate))
}

func TestQuotation_SinGastosNiMargenNoAvisa(t *testing.T) {
	f := newFixture(t, selling.Config{})
	in := quotationRequest()
	in.Expenses = nil

	q, err := f.quotations.Create(context.Background(), company, in)

	require.NoError(t, err)
	assert.Empty(t, q.Messages)
	assert.True(t, d("100").Equal(q.Items[0].Rate))
}

func TestQuotation_SubmitSinAprobar(t *testing.T) {
	f := newFixture(t, selling.Config{})
	ctx := context.Background()
	q, err := f.quotations.Create(ctx, company, quotationRequest())
	require.NoError(t, err)

	_, err = f.quotations.Submit(ctx, company, q.Name)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrQuotationNotApproved)
	stored, err := f.quotations.Get(ctx, company, q.Name)
	require.NoError(t, err)
	assert.Equal(t, entity.DocStatusDraft, stored.DocStatus, "el rechazo no persiste el envío")
}

func TestQuotation_SubmitAprobada(t *testing.T) {
	f := newFixture(t, selling.Config{})

	q := submitApprovedQuotation(t, f)

	assert.Equal(t, entity.DocStatusSubmitted, q.DocStatus)
	assert.True(t, q.Approved)

	_, err := f.quotations.Save(context.Background(), company, q.Name, toRequest(q))
	assert.ErrorIs(t, err, domain.ErrNotDraft)
}

func TestQuotation_OtraEmpresaNoLaVe(t *testing.T) {
	f := newFixture(t, selling.Config{})
	q, err := f.quotations.Create(context.Background(), company, quotationRequest())
	require.NoError(t, err)

	_, err = f.quotations.Get(context.Background(), "Otra", q.Name)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Artículos desde cotizaciones de proveedor
// ──────────────────────────────────────────────────────────────────────────────

func TestParseSelection(t *testing.T) {
	arr := json.RawMessage(`[{"item_id":"x","item_code":"A","rate":"5"}]`)
	str := json.RawMessage(`"[{\"item_id\":\"x\",\"item_code\":\"A\",\"rate\":\"5\"}]"`)

	a, err := selling.ParseSelection(arr)
	require.NoError(t, err)
	s, err := selling.ParseSelection(str)
	require.NoError(t, err)

	assert.Equal(t, a, s)
	require.Len(t, a, 1)
	assert.True(t, d("5").Equal(a[0].Rate))

	_, err = selling.ParseSelection(json.RawMessage(`{"no":"lista"}`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQuotation_AddSupplierItems(t *testing.T) {
	f := newFixture(t, selling.Config{})
	ctx := context.Background()
	in := quotationRequest()
	in.Expenses = nil
	q, err := f.quotations.Create(ctx, company, in)
	require.NoError(t, err)

	raw := json.RawMessage(`[
		{"item_id":"sqi-1","item_code":"A","rate":"80","qty":"1","supplier_quotation":"PUR-SQTN-2026-00001"},
		{"item_id":"sqi-2","item_code":"N-1","item_name":"Nuevo","rate":"15","qty":"2","uom":"Nos","supplier_quotation":"PUR-SQTN-2026-00001"}
	]`)
	q, err = f.quotations.AddSupplierItems(ctx, company, q.Name, raw)

	require.NoError(t, err)
	assert.Contains(t, q.Messages, "Added 1 new item(s) | Updated 1 existing item(s)")
	require.Len(t, q.Items, 3)
	assert.True(t, d("80").Equal(q.Items[0].Rate))
	assert.True(t, d("100").Equal(q.Items[0].OriginalRate))
	assert.Equal(t, "PUR-SQTN-2026-00001", q.Items[0].SupplierQuotation)
	assert.Equal(t, "Descripción maestra", q.Items[2].Description)
	assert.True(t, d("30").Equal(q.Items[2].Amount))
}

func TestQuotation_AddSupplierItemsVacio(t *testing.T) {
	f := newFixture(t, selling.Config{})
	q, err := f.quotations.Create(context.Background(), company, quotationRequest())
	require.NoError(t, err)

	_, err = f.quotations.AddSupplierItems(context.Background(), company, q.Name, json.RawMessage(`"[]"`))

	assert.ErrorIs(t, err, domain.ErrNoItemsSelected)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cotización → Pedido → Asiento
// ──────────────────────────────────────────────────────────────────────────────

func TestMakeSalesOrder_YEnviarGeneraAsiento(t *testing.T) {
	f := newFixture(t, selling.Config{})
	ctx := context.Background()
	q := submitApprovedQuotation(t, f)

	draft, err := f.quotations.MakeSalesOrder(ctx, company, q.Name, dto.MakeSalesOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, "CLI-001", draft.Customer)
	assert.True(t, draft.ExpensesCopied)
	require.Len(t, draft.Items, 2)
	assert.Equal(t, q.Items[0].Name, draft.Items[0].QuotationItem)

	so, err := f.orders.Create(ctx, company, orderRequest(draft))
	require.NoError(t, err)
	require.Len(t, so.Expenses, 1, "los gastos no se duplican al guardar")

	so, err = f.orders.Submit(ctx, company, so.Name)
	require.NoError(t, err)
	assert.Equal(t, entity.DocStatusSubmitted, so.DocStatus)

	entries, err := f.store.Repos().JournalEntries.ListByReference(ctx, entity.DocTypeSalesOrder, so.Name)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	je := entries[0]
	assert.Equal(t, entity.DocStatusSubmitted, je.DocStatus)
	assert.True(t, je.IsBalanced())
	assert.True(t, d("30").Equal(je.TotalCredit()))
	assert.Equal(t, "Journal Entry for Sales Order: "+so.Name, je.UserRemark)
	assert.Equal(t, "Principal - PK", je.Accounts[0].CostCenter)
}

func TestMakeSalesOrder_DescuentaCantidadPedida(t *testing.T) {
	f := newFixture(t, selling.Config{})
	ctx := context.Background()
	q := submitApprovedQuotation(t, f)

	draft, err := f.quotations.MakeSalesOrder(ctx, company, q.Name, dto.MakeSalesOrderRequest{})
	require.NoError(t, err)
	req := orderRequest(draft)
	req.Items = req.Items[1:2]
	req.Items[0].Qty = d("1")
	so, err := f.orders.Create(ctx, company, req)
	require.NoError(t, err)
	_, err = f.orders.Submit(ctx, company, so.Name)
	require.NoError(t, err)

	again, err := f.quotations.MakeSalesOrder(ctx, company, q.Name, dto.MakeSalesOrderRequest{})
	require.NoError(t, err)
	require.Len(t, again.Items, 2)
	assert.True(t, d("1").Equal(again.Items[1].Qty), "quedaba 1 de 2")
}

func TestMakeSalesOrder_VigenteHastaHoy(t *testing.T) {
	f := newFixture(t, selling.Config{})
	ctx := context.Background()
	in := quotationRequest()
	validTill := dto.NewDate(time.Now())
	in.ValidTill = &validTill
	q, err := f.quotations.Create(ctx, company, in)
	require.NoError(t, err)
	_, err = f.quotations.Approve(ctx, company, q.Name)
	require.NoError(t, err)
	_, err = f.quotations.Submit(ctx, company, q.Name)
	require.NoError(t, err)

	so, err := f.quotations.MakeSalesOrder(ctx, company, q.Name, dto.MakeSalesOrderRequest{})

	require.NoError(t, err)
	assert.Len(t, so.Items, 2)
}

func TestMakeSalesOrder_Vencida(t *testing.T) {
	f := newFixture(t, selling.Config{})
	ctx := context.Background()
	in := quotationRequest()
	in.TransactionDate = dto.NewDate(time.Now().AddDate(0, 0, -30))
	past := dto.NewDate(time.Now().AddDate(0, 0, -10))
	in.ValidTill = &past
	q, err := f.quotations.Create(ctx, company, in)
	require.NoError(t, err)
	_, err = f.quotations.Approve(ctx, company, q.Name)
	require.NoError(t, err)
	_, err = f.quotations.Submit(ctx, company, q.Name)
	require.NoError(t, err)

	_, err = f.quotations.MakeSalesOrder(ctx, company, q.Name, dto.MakeSalesOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrQuotationExpired)

	lenient := newFixture(t, selling.Config{AllowExpiredQuotation: true})
	q2, err := lenient.quotations.Create(ctx, company, in)
	require.NoError(t, err)
	_, err = lenient.quotations.Approve(ctx, company, q2.Name)
	require.NoError(t, err)
	_, err = lenient.quotations.Submit(ctx, company, q2.Name)
	require.NoError(t, err)
	_, err = lenient.quotations.MakeSalesOrder(ctx, company, q2.Name, dto.MakeSalesOrderRequest{})
	assert.NoError(t, err)
}

func TestMakeSalesOrder_LeadConCliente(t *testing.T) {
	f := newFixture(t, selling.Config{})
	ctx := context.Background()
	in := quotationRequest()
	in.QuotationTo = entity.QuotationToLead
	in.PartyName = "LEAD-9"
	q, err := f.quotations.Create(ctx, company, in)
	require.NoError(t, err)
	_, err = f.quotations.Approve(ctx, company, q.Name)
	require.NoError(t, err)
	_, err = f.quotations.Submit(ctx, company, q.Name)
	require.NoError(t, err)

	so, err := f.quotations.MakeSalesOrder(ctx, company, q.Name, dto.MakeSalesOrderRequest{})

	require.NoError(t, err)
	assert.Equal(t, "CLI-001", so.Customer)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedido: before_save / on_submit
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesOrder_CopiaGastosUnaSolaVez(t *testing.T) {
	f := newFixture(t, selling.Config{})
	ctx := context.Background()
	q := submitApprovedQuotation(t, f)

	req := dto.SalesOrderRequest{
		Customer:     "CLI-001",
		QuotationRef: q.Name,
		Items:        []dto.SalesOrderItemDTO{{ItemCode: "A", Qty: d("1"), Rate: d("110")}},
	}
	so, err := f.orders.Create(ctx, company, req)
	require.NoError(t, err)
	require.Len(t, so.Expenses, 1)
	assert.True(t, so.ExpensesCopied)

	req.Expenses = so.Expenses
	so, err = f.orders.Save(ctx, company, so.Name, req)
	require.NoError(t, err)
	assert.Len(t, so.Expenses, 1, "guardar de nuevo no duplica")
}

func TestSalesOrder_CotizacionPorLinea(t *testing.T) {
	f := newFixture(t, selling.Config{})
	ctx := context.Background()
	q := submitApprovedQuotation(t, f)

	so, err := f.orders.Create(ctx, company, dto.SalesOrderRequest{
		Customer: "CLI-001",
		Items:    []dto.SalesOrderItemDTO{{ItemCode: "A", Qty: d("1"), Rate: d("110"), QuotationItem: q.Items[0].Name}},
	})

	require.NoError(t, err)
	assert.Equal(t, q.Name, so.QuotationRef)
	assert.Len(t, so.Expenses, 1)
}

func TestSalesOrder_VencimientoPrimeraCuota(t *testing.T) {
	f := newFixture(t, selling.Config{})
	posting := dto.NewDate(time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC))
	early := dto.NewDate(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

	so, err := f.orders.Create(context.Background(), company, dto.SalesOrderRequest{
		Customer:        "CLI-001",
		TransactionDate: posting,
		DeliveryDate:    &early,
		PaymentSchedule: []dto.PaymentScheduleDTO{{InvoicePortion: d("100")}},
		Items:           []dto.SalesOrderItemDTO{{ItemCode: "A", Qty: d("1"), Rate: d("10")}},
	})

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC), so.PaymentSchedule[0].DueDate.Time)
}

func TestSalesOrder_SubmitSinCuentaPorDefectoRevierte(t *testing.T) {
	f := newFixture(t, selling.Config{})
	ctx := context.Background()
	repos := f.store.Repos()
	require.NoError(t, repos.Companies.Update(ctx, &entity.Company{Name: company, Abbr: "PK"}))

	so, err := f.orders.Create(ctx, company, dto.SalesOrderRequest{
		Customer: "CLI-001",
		Expenses: []dto.ServiceExpenseDTO{{ServiceExpenseType: "Flete", DefaultAccount: "Fletes - PK", Amount: d("10")}},
		Items:    []dto.SalesOrderItemDTO{{ItemCode: "A", Qty: d("1"), Rate: d("10")}},
	})
	require.NoError(t, err)

	_, err = f.orders.Submit(ctx, company, so.Name)
	assert.ErrorIs(t, err, domain.ErrDefaultExpenseAccountMissing)

	stored, err := f.orders.Get(ctx, company, so.Name)
	require.NoError(t, err)
	assert.Equal(t, entity.DocStatusDraft, stored.DocStatus)
	entries, err := repos.JournalEntries.ListByReference(ctx, entity.DocTypeSalesOrder, so.Name)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestQuotation_ConsultasDeProveedor(t *testing.T) {
	f := newFixture(t, selling.Config{})
	ctx := context.Background()
	repos := f.store.Repos()
	q, err := f.quotations.Create(ctx, company, quotationRequest())
	require.NoError(t, err)

	empty, err := f.quotations.SupplierQuotationItems(ctx, company, q.Name)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)

	require.NoError(t, repos.MaterialRequests.Create(ctx, &entity.MaterialRequest{
		Name: "MAT-MR-2026-00001", Company: company, MaterialRequestType: entity.MaterialRequestTypePurchase,
		WorkflowState: "Pending", DocStatus: entity.DocStatusSubmitted, QuotationRef: q.Name,
	}))
	f.store.AddRFQLink(memory.RFQLink{Parent: "PUR-RFQ-2026-00004", MaterialRequest: "MAT-MR-2026-00001"})
	valid := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	for _, sq := range []*entity.SupplierQuotation{
		{Name: "SQ-1", Company: company, Supplier: "SUP-1", SupplierName: "Aceros SA", DocStatus: entity.DocStatusSubmitted, ValidTill: &valid,
			Items: []*entity.SupplierQuotationItem{{Name: "i1", ItemCode: "B", Rate: d("9"), MaterialRequest: "MAT-MR-2026-00001"}}},
		{Name: "SQ-2", Company: company, Supplier: "SUP-2", SupplierName: "Tubos SAS", DocStatus: entity.DocStatusSubmitted,
			Items: []*entity.SupplierQuotationItem{{Name: "i2", ItemCode: "A", Rate: d("7"), MaterialRequest: "MAT-MR-2026-00001"}}},
		{Name: "SQ-3", Company: company, DocStatus: entity.DocStatusDraft,
			Items: []*entity.SupplierQuotationItem{{Name: "i3", ItemCode: "A", Rate: d("1"), MaterialRequest: "MAT-MR-2026-00001"}}},
	} {
		require.NoError(t, repos.SupplierQuotations.Create(ctx, sq))
	}

	rows, err := f.quotations.SupplierQuotationItems(ctx, company, q.Name)
	require.NoError(t, err)
	require.Len(t, rows.Items, 2, "solo cotizaciones enviadas")
	assert.Equal(t, "A", rows.Items[0].ItemCode)
	assert.Equal(t, "Tubos SAS", rows.Items[0].SupplierName)
	assert.Equal(t, "B", rows.Items[1].ItemCode)
	require.NotNil(t, rows.Items[1].ValidTill)

	mrs, err := f.quotations.MaterialRequests(ctx, company, q.Name)
	require.NoError(t, err)
	require.Len(t, mrs, 1)
	require.NotNil(t, mrs[0].RFQName)
	assert.Equal(t, "PUR-RFQ-2026-00004", *mrs[0].RFQName)
}

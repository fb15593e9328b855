package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/repository"
	"github.com/powerkey/power-app/internal/infrastructure/memory"
)

func TestStore_RunRevierteSiFalla(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Run(ctx, func(repos repository.Set) error {
		require.NoError(t, repos.Quotations.Create(ctx, &entity.Quotation{Name: "Q-1", Company: "PK"}))
		_, err := repos.Naming.Next(ctx, entity.DocTypeQuotation, time.Now())
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	q, err := store.Repos().Quotations.GetByName(ctx, "Q-1")
	require.NoError(t, err)
	assert.Nil(t, q, "la cotización no debe sobrevivir al rollback")

	// El contador también vuelve atrás.
	name, err := store.Repos().Naming.Next(ctx, entity.DocTypeQuotation, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "SAL-QTN-2026-00001", name)
}

func TestStore_CopiasIndependientes(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	repos := store.Repos()
	require.NoError(t, repos.Quotations.Create(ctx, &entity.Quotation{Name: "Q-1", PartyName: "CLI-001"}))

	q, err := repos.Quotations.GetByName(ctx, "Q-1")
	require.NoError(t, err)
	q.PartyName = "otro"

	again, err := repos.Quotations.GetByName(ctx, "Q-1")
	require.NoError(t, err)
	assert.Equal(t, "CLI-001", again.PartyName)
	assert.ErrorIs(t, repos.Quotations.Create(ctx, again), domain.ErrDuplicate)
}

func TestItemRepo_UltimasTarifasSoloEnviadas(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	store.AddPurchaseInvoiceItem(entity.LastRate{ItemCode: "A", Rate: decimal.NewFromInt(10), PartyName: "Viejo"}, entity.DocStatusSubmitted, base)
	store.AddPurchaseInvoiceItem(entity.LastRate{ItemCode: "A", Rate: decimal.NewFromInt(12), PartyName: "Nuevo"}, entity.DocStatusSubmitted, base.Add(time.Hour))
	store.AddPurchaseInvoiceItem(entity.LastRate{ItemCode: "A", Rate: decimal.NewFromInt(99), PartyName: "Borrador"}, entity.DocStatusDraft, base.Add(2*time.Hour))
	store.AddBin(entity.Bin{ItemCode: "A", Warehouse: "W1", ActualQty: decimal.NewFromInt(3), Modified: base})
	store.AddBin(entity.Bin{ItemCode: "A", Warehouse: "W2", ActualQty: decimal.NewFromInt(8), Modified: base.Add(time.Minute)})

	items := store.Repos().Items
	lr, err := items.LastPurchaseRate(ctx, "A")
	require.NoError(t, err)
	require.NotNil(t, lr)
	assert.Equal(t, "Nuevo", lr.PartyName)
	assert.True(t, decimal.NewFromInt(12).Equal(lr.Rate))

	bin, err := items.LatestBin(ctx, "A")
	require.NoError(t, err)
	require.NotNil(t, bin)
	assert.Equal(t, "W2", bin.Warehouse)

	sell, err := items.LastSellingRate(ctx, "A")
	require.NoError(t, err)
	assert.Nil(t, sell)
}

func TestMaterialRequestRepo_PrimerRFQ(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	repos := store.Repos()
	require.NoError(t, repos.MaterialRequests.Create(ctx, &entity.MaterialRequest{Name: "MR-2", QuotationRef: "Q-1"}))
	require.NoError(t, repos.MaterialRequests.Create(ctx, &entity.MaterialRequest{Name: "MR-1", QuotationRef: "Q-1"}))
	require.NoError(t, repos.MaterialRequests.Create(ctx, &entity.MaterialRequest{Name: "MR-3", QuotationRef: "Q-9"}))
	store.AddRFQLink(memory.RFQLink{Parent: "RFQ-1", MaterialRequest: "MR-1"})
	store.AddRFQLink(memory.RFQLink{Parent: "RFQ-2", MaterialRequest: "MR-1"})

	list, err := repos.MaterialRequests.ListByQuotation(ctx, "Q-1")
	require.NoError(t, err)

	require.Len(t, list, 2)
	assert.Equal(t, "MR-1", list[0].Name)
	assert.Equal(t, "RFQ-1", list[0].RFQName)
	assert.Empty(t, list[1].RFQName)

	ref, err := repos.MaterialRequests.QuotationRef(ctx, "MR-3")
	require.NoError(t, err)
	assert.Equal(t, "Q-9", ref)
}

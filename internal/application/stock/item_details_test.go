package stock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/internal/application/stock"
	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/repository"
	"github.com/powerkey/power-app/internal/infrastructure/memory"
	"github.com/powerkey/power-app/pkg/logger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// failingItems falla en la consulta indicada.
type failingItems struct {
	repository.ItemRepository
	bin, purchase, selling bool
}

var errDB = errors.New("conexión perdida")

func (f failingItems) LatestBin(ctx context.Context, code string) (*entity.Bin, error) {
	if f.bin {
		return nil, errDB
	}
	return f.ItemRepository.LatestBin(ctx, code)
}

func (f failingItems) LastPurchaseRate(ctx context.Context, code string) (*entity.LastRate, error) {
	if f.purchase {
		return nil, errDB
	}
	return f.ItemRepository.LastPurchaseRate(ctx, code)
}

func (f failingItems) LastSellingRate(ctx context.Context, code string) (*entity.LastRate, error) {
	if f.selling {
		return nil, errDB
	}
	return f.ItemRepository.LastSellingRate(ctx, code)
}

type mapCache struct {
	data map[string]*dto.ItemDetailsResponse
	sets int
}

func (c *mapCache) Get(ctx context.Context, code string) (*dto.ItemDetailsResponse, bool, error) {
	v, ok := c.data[code]
	return v, ok, nil
}

func (c *mapCache) Set(ctx context.Context, code string, v *dto.ItemDetailsResponse) error {
	c.data[code] = v
	c.sets++
	return nil
}

func seededStore() *memory.Store {
	s := memory.NewStore()
	t0 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s.AddBin(entity.Bin{ItemCode: "A", Warehouse: "Bodega 1", ActualQty: d("5"), Modified: t0})
	s.AddBin(entity.Bin{ItemCode: "A", Warehouse: "Bodega 2", ActualQty: d("12"), Modified: t0.Add(time.Hour)})
	s.AddPurchaseInvoiceItem(entity.LastRate{ItemCode: "A", Rate: d("7"), Parent: "PINV-1", PartyName: "Aceros SA"}, entity.DocStatusSubmitted, t0)
	s.AddPurchaseInvoiceItem(entity.LastRate{ItemCode: "A", Rate: d("8"), Parent: "PINV-2", PartyName: "Tubos SAS"}, entity.DocStatusSubmitted, t0.Add(time.Hour))
	s.AddPurchaseInvoiceItem(entity.LastRate{ItemCode: "A", Rate: d("99"), Parent: "PINV-3", PartyName: "Borrador"}, entity.DocStatusDraft, t0.Add(2*time.Hour))
	s.AddSalesInvoiceItem(entity.LastRate{ItemCode: "A", Rate: d("11"), Parent: "SINV-1"}, entity.DocStatusSubmitted, t0)
	return s
}

func TestItemDetails_UltimosDatos(t *testing.T) {
	uc := stock.NewItemDetailsUseCase(seededStore().Repos().Items, nil, logger.Nop())

	got, err := uc.Details(context.Background(), "A")

	require.NoError(t, err)
	assert.True(t, d("12").Equal(got.ActualQty), "bin más reciente")
	assert.True(t, d("8").Equal(got.LastPurchaseRate), "última compra enviada")
	assert.Equal(t, "Tubos SAS", got.LastSupplierName)
	assert.True(t, d("11").Equal(got.LastSellingRate))
}

func TestItemDetails_SinMovimientos(t *testing.T) {
	uc := stock.NewItemDetailsUseCase(seededStore().Repos().Items, nil, logger.Nop())

	got, err := uc.Details(context.Background(), "Z")

	require.NoError(t, err)
	assert.True(t, got.ActualQty.IsZero())
	assert.True(t, got.LastPurchaseRate.IsZero())
	assert.Empty(t, got.LastSupplierName)
}

func TestItemDetails_Fallos(t *testing.T) {
	base := seededStore().Repos().Items
	ctx := context.Background()

	_, err := stock.NewItemDetailsUseCase(failingItems{ItemRepository: base, bin: true}, nil, logger.Nop()).Details(ctx, "A")
	assert.ErrorIs(t, err, domain.ErrLookupFailed)
	assert.NotContains(t, err.Error(), errDB.Error(), "no expone el error interno")

	_, err = stock.NewItemDetailsUseCase(failingItems{ItemRepository: base, purchase: true}, nil, logger.Nop()).Details(ctx, "A")
	assert.ErrorIs(t, err, domain.ErrLookupFailed)

	got, err := stock.NewItemDetailsUseCase(failingItems{ItemRepository: base, selling: true}, nil, logger.Nop()).Details(ctx, "A")
	require.NoError(t, err)
	assert.True(t, got.LastSellingRate.IsZero())
	assert.True(t, d("8").Equal(got.LastPurchaseRate))
}

func TestItemDetails_Cache(t *testing.T) {
	cache := &mapCache{data: map[string]*dto.ItemDetailsResponse{}}
	base := seededStore().Repos().Items
	uc := stock.NewItemDetailsUseCase(base, cache, logger.Nop())

	first, err := uc.Details(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	broken := stock.NewItemDetailsUseCase(failingItems{ItemRepository: base, bin: true}, cache, logger.Nop())
	second, err := broken.Details(context.Background(), "A")
	require.NoError(t, err, "responde desde cache")
	assert.Equal(t, first, second)
}

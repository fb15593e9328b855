package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/repository"
	"github.com/powerkey/power-app/pkg/logger"
)

// DetailsCache cache opcional de la consulta de artículos.
type DetailsCache interface {
	Get(ctx context.Context, itemCode string) (*dto.ItemDetailsResponse, bool, error)
	Set(ctx context.Context, itemCode string, v *dto.ItemDetailsResponse) error
}

// ItemDetailsUseCase existencia y últimas tarifas de compra y venta de un artículo.
type ItemDetailsUseCase struct {
	items repository.ItemRepository
	cache DetailsCache
	log   *logger.Logger
}

// NewItemDetailsUseCase construye el caso de uso. cache puede ser nil.
func NewItemDetailsUseCase(items repository.ItemRepository, cache DetailsCache, log *logger.Logger) *ItemDetailsUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ItemDetailsUseCase{items: items, cache: cache, log: log}
}

// Details arma la consulta. Un fallo leyendo stock o compras devuelve ErrLookupFailed;
// un fallo leyendo ventas deja la tarifa de venta en cero.
func (uc *ItemDetailsUseCase) Details(ctx context.Context, itemCode string) (*dto.ItemDetailsResponse, error) {
	if itemCode == "" {
		return nil, domain.Invalid(domain.ErrInvalidInput, "item_code requerido")
	}
	if uc.cache != nil {
		if v, ok, err := uc.cache.Get(ctx, itemCode); err != nil {
			uc.log.Warn().Err(err).Str("item_code", itemCode).Msg("leer cache de artículo")
		} else if ok {
			return v, nil
		}
	}

	started := time.Now()
	out := &dto.ItemDetailsResponse{
		ItemCode:         itemCode,
		ActualQty:        decimal.Zero,
		LastPurchaseRate: decimal.Zero,
		LastSellingRate:  decimal.Zero,
	}

	bin, err := uc.items.LatestBin(ctx, itemCode)
	if err != nil {
		uc.log.Error().Err(err).Str("item_code", itemCode).Msg("consultar bin del artículo")
		return nil, domain.ErrLookupFailed
	}
	if bin != nil {
		out.ActualQty = bin.ActualQty
	}

	purchase, err := uc.items.LastPurchaseRate(ctx, itemCode)
	if err != nil {
		uc.log.Error().Err(err).Str("item_code", itemCode).Msg("consultar última compra")
		return nil, domain.ErrLookupFailed
	}
	if purchase != nil {
		out.LastPurchaseRate = purchase.Rate
		out.LastSupplierName = purchase.PartyName
	}

	selling, err := uc.items.LastSellingRate(ctx, itemCode)
	if err != nil {
		uc.log.Error().Err(err).Str("item_code", itemCode).Msg("consultar última venta")
	} else if selling != nil {
		out.LastSellingRate = selling.Rate
	}

	uc.log.Debug().Str("item_code", itemCode).Dur("elapsed", time.Since(started)).Msg("detalle de artículo")
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, itemCode, out); err != nil {
			uc.log.Warn().Err(err).Str("item_code", itemCode).Msg("guardar cache de artículo")
		}
	}
	return out, nil
}

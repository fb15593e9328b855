package selling

import (
	"context"
	"time"

	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/internal/application/lifecycle"
	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/repository"
	"github.com/powerkey/power-app/pkg/logger"
)

// SalesOrderUseCase casos de uso del pedido de venta.
type SalesOrderUseCase struct {
	engine *lifecycle.Engine
	repos  repository.Set
	log    *logger.Logger
	now    func() time.Time
}

// NewSalesOrderUseCase construye el caso de uso.
func NewSalesOrderUseCase(engine *lifecycle.Engine, repos repository.Set, log *logger.Logger) *SalesOrderUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SalesOrderUseCase{engine: engine, repos: repos, log: log, now: time.Now}
}

// Create guarda un pedido nuevo en borrador (before_save, validate).
func (uc *SalesOrderUseCase) Create(ctx context.Context, company string, in dto.SalesOrderRequest) (*dto.SalesOrderResponse, error) {
	now := uc.now()
	so := &entity.SalesOrder{
		Company:         company,
		TransactionDate: entity.DateOf(now),
		DocStatus:       entity.DocStatusDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	applySalesOrderRequest(so, in)
	msgs, err := uc.engine.Save(ctx, so, func(ctx context.Context, repos repository.Set) error {
		so.RecalculateTotals()
		name, err := repos.Naming.Next(ctx, entity.DocTypeSalesOrder, so.TransactionDate)
		if err != nil {
			return err
		}
		so.Name = name
		return repos.SalesOrders.Create(ctx, so)
	})
	if err != nil {
		return nil, err
	}
	return toSalesOrderResponse(so, msgs), nil
}

// Save guarda cambios de un pedido en borrador.
func (uc *SalesOrderUseCase) Save(ctx context.Context, company, name string, in dto.SalesOrderRequest) (*dto.SalesOrderResponse, error) {
	so, err := uc.load(ctx, company, name)
	if err != nil {
		return nil, err
	}
	if so.DocStatus != entity.DocStatusDraft {
		return nil, domain.Invalid(domain.ErrNotDraft, "pedido %s", name)
	}
	applySalesOrderRequest(so, in)
	so.UpdatedAt = uc.now()
	msgs, err := uc.engine.Save(ctx, so, func(ctx context.Context, repos repository.Set) error {
		so.RecalculateTotals()
		return repos.SalesOrders.Update(ctx, so)
	})
	if err != nil {
		return nil, err
	}
	return toSalesOrderResponse(so, msgs), nil
}

// Get obtiene un pedido.
func (uc *SalesOrderUseCase) Get(ctx context.Context, company, name string) (*dto.SalesOrderResponse, error) {
	so, err := uc.load(ctx, company, name)
	if err != nil {
		return nil, err
	}
	return toSalesOrderResponse(so, nil), nil
}

// Submit envía el pedido; on_submit genera el asiento de gastos de servicio.
func (uc *SalesOrderUseCase) Submit(ctx context.Context, company, name string) (*dto.SalesOrderResponse, error) {
	so, err := uc.load(ctx, company, name)
	if err != nil {
		return nil, err
	}
	so.UpdatedAt = uc.now()
	msgs, err := uc.engine.Submit(ctx, so, func(ctx context.Context, repos repository.Set) error {
		return repos.SalesOrders.Update(ctx, so)
	})
	if err != nil {
		return nil, err
	}
	return toSalesOrderResponse(so, msgs), nil
}

func (uc *SalesOrderUseCase) load(ctx context.Context, company, name string) (*entity.SalesOrder, error) {
	so, err := uc.repos.SalesOrders.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if so == nil || so.Company != company {
		return nil, domain.Invalid(domain.ErrNotFound, "pedido %s", name)
	}
	return so, nil
}

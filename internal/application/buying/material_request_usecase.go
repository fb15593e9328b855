package buying

import (
	"context"
	"time"

	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/internal/application/lifecycle"
	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/mapping"
	"github.com/powerkey/power-app/internal/domain/repository"
	"github.com/powerkey/power-app/pkg/logger"
)

// Estados de la solicitud de material.
const (
	StatusDraft   = "Draft"
	StatusPending = "Pending"
)

// MaterialRequestUseCase casos de uso de la solicitud de material.
type MaterialRequestUseCase struct {
	engine *lifecycle.Engine
	repos  repository.Set
	log    *logger.Logger
	now    func() time.Time
}

// NewMaterialRequestUseCase construye el caso de uso.
func NewMaterialRequestUseCase(engine *lifecycle.Engine, repos repository.Set, log *logger.Logger) *MaterialRequestUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &MaterialRequestUseCase{engine: engine, repos: repos, log: log, now: time.Now}
}

// FromQuotation arma la solicitud de compra de una cotización sin guardarla.
func (uc *MaterialRequestUseCase) FromQuotation(ctx context.Context, company, quotation string) (*dto.MaterialRequestResponse, error) {
	q, err := uc.repos.Quotations.GetByName(ctx, quotation)
	if err != nil {
		return nil, err
	}
	if q == nil || q.Company != company {
		return nil, domain.Invalid(domain.ErrNotFound, "cotización %s", quotation)
	}
	mr, err := mapping.MaterialRequestFromQuotation(q)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("quotation", q.Name).Int("items", len(mr.Items)).Msg("solicitud de material armada")
	return toMaterialRequestResponse(mr), nil
}

// Save crea la solicitud o guarda el borrador existente (in.Name).
func (uc *MaterialRequestUseCase) Save(ctx context.Context, company string, in dto.MaterialRequestRequest) (*dto.MaterialRequestResponse, error) {
	now := uc.now()
	mr := &entity.MaterialRequest{
		Company:         company,
		TransactionDate: entity.DateOf(now),
		WorkflowState:   StatusDraft,
		DocStatus:       entity.DocStatusDraft,
		CreatedAt:       now,
	}
	isNew := in.Name == ""
	if !isNew {
		existing, err := uc.load(ctx, company, in.Name)
		if err != nil {
			return nil, err
		}
		if existing.DocStatus != entity.DocStatusDraft {
			return nil, domain.Invalid(domain.ErrNotDraft, "solicitud de material %s", in.Name)
		}
		mr = existing
	}
	applyMaterialRequestRequest(mr, in)
	if mr.QuotationRef != "" {
		q, err := uc.repos.Quotations.GetByName(ctx, mr.QuotationRef)
		if err != nil {
			return nil, err
		}
		if q == nil || q.Company != company {
			return nil, domain.Invalid(domain.ErrNotFound, "cotización %s", mr.QuotationRef)
		}
	}
	mr.UpdatedAt = now

	_, err := uc.engine.Save(ctx, mr, func(ctx context.Context, repos repository.Set) error {
		if !isNew {
			return repos.MaterialRequests.Update(ctx, mr)
		}
		name, err := repos.Naming.Next(ctx, entity.DocTypeMaterialRequest, mr.TransactionDate)
		if err != nil {
			return err
		}
		mr.Name = name
		return repos.MaterialRequests.Create(ctx, mr)
	})
	if err != nil {
		return nil, err
	}
	return toMaterialRequestResponse(mr), nil
}

// Get obtiene una solicitud.
func (uc *MaterialRequestUseCase) Get(ctx context.Context, company, name string) (*dto.MaterialRequestResponse, error) {
	mr, err := uc.load(ctx, company, name)
	if err != nil {
		return nil, err
	}
	return toMaterialRequestResponse(mr), nil
}

// Submit envía la solicitud; queda pendiente de compra.
func (uc *MaterialRequestUseCase) Submit(ctx context.Context, company, name string) (*dto.MaterialRequestResponse, error) {
	mr, err := uc.load(ctx, company, name)
	if err != nil {
		return nil, err
	}
	mr.UpdatedAt = uc.now()
	if _, err := uc.engine.Submit(ctx, mr, func(ctx context.Context, repos repository.Set) error {
		mr.WorkflowState = StatusPending
		return repos.MaterialRequests.Update(ctx, mr)
	}); err != nil {
		mr.WorkflowState = StatusDraft
		return nil, err
	}
	return toMaterialRequestResponse(mr), nil
}

func (uc *MaterialRequestUseCase) load(ctx context.Context, company, name string) (*entity.MaterialRequest, error) {
	mr, err := uc.repos.MaterialRequests.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if mr == nil || mr.Company != company {
		return nil, domain.Invalid(domain.ErrNotFound, "solicitud de material %s", name)
	}
	return mr, nil
}

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

// SupplierQuotationUseCase casos de uso de la cotización de proveedor.
type SupplierQuotationUseCase struct {
	engine *lifecycle.Engine
	repos  repository.Set
	log    *logger.Logger
	now    func() time.Time
}

// NewSupplierQuotationUseCase construye el caso de uso.
func NewSupplierQuotationUseCase(engine *lifecycle.Engine, repos repository.Set, log *logger.Logger) *SupplierQuotationUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SupplierQuotationUseCase{engine: engine, repos: repos, log: log, now: time.Now}
}

// Save crea la cotización de proveedor o guarda el borrador existente (in.Name).
// Al elegir o cambiar la plantilla de gastos sus filas reemplazan los gastos; con la misma plantilla
// se conservan los gastos editados.
func (uc *SupplierQuotationUseCase) Save(ctx context.Context, company string, in dto.SupplierQuotationRequest) (*dto.SupplierQuotationResponse, error) {
	now := uc.now()
	sq := &entity.SupplierQuotation{
		Company:         company,
		TransactionDate: entity.DateOf(now),
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
			return nil, domain.Invalid(domain.ErrNotDraft, "cotización de proveedor %s", in.Name)
		}
		sq = existing
	}
	previousTemplate := sq.ExpenseTemplate
	applySupplierQuotationRequest(sq, in)
	if sq.ExpenseTemplate != "" && (isNew || sq.ExpenseTemplate != previousTemplate) {
		t, err := uc.repos.ExpenseTemplates.GetByName(ctx, sq.ExpenseTemplate)
		if err != nil {
			return nil, err
		}
		if t == nil || t.Company != company {
			return nil, domain.Invalid(domain.ErrNotFound, "plantilla de gastos %s", sq.ExpenseTemplate)
		}
		sq.Expenses = entity.CopyExpenses(t.Expenses)
		sq.RecalculateTotals()
		uc.log.Info().Str("template", t.Name).Int("expenses", len(t.Expenses)).Msg("gastos tomados de la plantilla")
	}
	sq.UpdatedAt = now

	_, err := uc.engine.Save(ctx, sq, func(ctx context.Context, repos repository.Set) error {
		if !isNew {
			return repos.SupplierQuotations.Update(ctx, sq)
		}
		name, err := repos.Naming.Next(ctx, entity.DocTypeSupplierQuotation, sq.TransactionDate)
		if err != nil {
			return err
		}
		sq.Name = name
		return repos.SupplierQuotations.Create(ctx, sq)
	})
	if err != nil {
		return nil, err
	}
	return toSupplierQuotationResponse(sq), nil
}

// Get obtiene una cotización de proveedor.
func (uc *SupplierQuotationUseCase) Get(ctx context.Context, company, name string) (*dto.SupplierQuotationResponse, error) {
	sq, err := uc.load(ctx, company, name)
	if err != nil {
		return nil, err
	}
	return toSupplierQuotationResponse(sq), nil
}

// Submit envía la cotización de proveedor.
func (uc *SupplierQuotationUseCase) Submit(ctx context.Context, company, name string) (*dto.SupplierQuotationResponse, error) {
	sq, err := uc.load(ctx, company, name)
	if err != nil {
		return nil, err
	}
	sq.UpdatedAt = uc.now()
	if _, err := uc.engine.Submit(ctx, sq, func(ctx context.Context, repos repository.Set) error {
		return repos.SupplierQuotations.Update(ctx, sq)
	}); err != nil {
		return nil, err
	}
	return toSupplierQuotationResponse(sq), nil
}

// LinkedQuotation cotización de cliente a la que apunta la primera solicitud de material vinculada.
func (uc *SupplierQuotationUseCase) LinkedQuotation(ctx context.Context, company, name string) (*dto.LinkedQuotationResponse, error) {
	sq, err := uc.load(ctx, company, name)
	if err != nil {
		return nil, err
	}
	out := &dto.LinkedQuotationResponse{}
	for _, it := range sq.Items {
		if it.MaterialRequest == "" {
			continue
		}
		ref, err := uc.repos.MaterialRequests.QuotationRef(ctx, it.MaterialRequest)
		if err != nil {
			return nil, err
		}
		if ref != "" {
			out.Quotation = &ref
			return out, nil
		}
	}
	uc.log.Debug().Str("supplier_quotation", name).Msg("sin cotización vinculada")
	return out, nil
}

// UpdateQuotation reemplaza las líneas de la cotización de cliente por las de esta cotización de proveedor.
// La cotización vuelve a borrador y se guarda (corre validate).
func (uc *SupplierQuotationUseCase) UpdateQuotation(ctx context.Context, company, name string, in dto.UpdateQuotationRequest) (*dto.UpdateQuotationResponse, error) {
	if name == "" {
		return nil, domain.ErrNoSupplierQuotation
	}
	sq, err := uc.load(ctx, company, name)
	if err != nil {
		return nil, err
	}
	q, err := uc.repos.Quotations.GetByName(ctx, in.Quotation)
	if err != nil {
		return nil, err
	}
	if q == nil || q.Company != company {
		return nil, domain.Invalid(domain.ErrNotFound, "cotización %s", in.Quotation)
	}
	if q.DocStatus == entity.DocStatusCancelled {
		return nil, domain.Invalid(domain.ErrDocumentCancelled, "cotización %s", q.Name)
	}

	copied := mapping.ReplaceItemsFromSupplier(q, sq)
	q.UpdatedAt = uc.now()
	msgs, err := uc.engine.Save(ctx, q, func(ctx context.Context, repos repository.Set) error {
		return repos.Quotations.Update(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("quotation", q.Name).Str("supplier_quotation", sq.Name).Int("items", copied).Msg("líneas copiadas a la cotización")
	return &dto.UpdateQuotationResponse{
		Quotation:   q.Name,
		ItemsCopied: copied,
		Messages:    append(msgs, q.Comments[len(q.Comments)-1]),
	}, nil
}

func (uc *SupplierQuotationUseCase) load(ctx context.Context, company, name string) (*entity.SupplierQuotation, error) {
	sq, err := uc.repos.SupplierQuotations.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if sq == nil || sq.Company != company {
		return nil, domain.Invalid(domain.ErrNotFound, "cotización de proveedor %s", name)
	}
	return sq, nil
}

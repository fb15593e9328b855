package selling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/internal/application/lifecycle"
	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/mapping"
	"github.com/powerkey/power-app/internal/domain/repository"
	"github.com/powerkey/power-app/pkg/logger"
)

// Config opciones de venta.
type Config struct {
	// AllowExpiredQuotation permite crear pedidos desde cotizaciones vencidas.
	AllowExpiredQuotation bool
}

// QuotationUseCase casos de uso de la cotización de cliente.
type QuotationUseCase struct {
	engine *lifecycle.Engine
	repos  repository.Set
	cfg    Config
	log    *logger.Logger
	now    func() time.Time
}

// NewQuotationUseCase construye el caso de uso. repos son los repositorios fuera de transacción.
func NewQuotationUseCase(engine *lifecycle.Engine, repos repository.Set, cfg Config, log *logger.Logger) *QuotationUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &QuotationUseCase{engine: engine, repos: repos, cfg: cfg, log: log, now: time.Now}
}

// Create crea una cotización en borrador (corre validate).
func (uc *QuotationUseCase) Create(ctx context.Context, company string, in dto.QuotationRequest) (*dto.QuotationResponse, error) {
	now := uc.now()
	q := &entity.Quotation{
		Company:         company,
		TransactionDate: entity.DateOf(now),
		DocStatus:       entity.DocStatusDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	applyQuotationRequest(q, in)
	msgs, err := uc.engine.Save(ctx, q, func(ctx context.Context, repos repository.Set) error {
		name, err := repos.Naming.Next(ctx, entity.DocTypeQuotation, q.TransactionDate)
		if err != nil {
			return err
		}
		q.Name = name
		return repos.Quotations.Create(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return toQuotationResponse(q, msgs), nil
}

// Save guarda cambios de una cotización en borrador.
func (uc *QuotationUseCase) Save(ctx context.Context, company, name string, in dto.QuotationRequest) (*dto.QuotationResponse, error) {
	q, err := uc.load(ctx, company, name)
	if err != nil {
		return nil, err
	}
	if q.DocStatus != entity.DocStatusDraft {
		return nil, domain.Invalid(domain.ErrNotDraft, "cotización %s", name)
	}
	applyQuotationRequest(q, in)
	return uc.save(ctx, q, nil)
}

// Get obtiene una cotización.
func (uc *QuotationUseCase) Get(ctx context.Context, company, name string) (*dto.QuotationResponse, error) {
	q, err := uc.load(ctx, company, name)
	if err != nil {
		return nil, err
	}
	return toQuotationResponse(q, nil), nil
}

// Approve marca la casilla de aprobado en un borrador.
func (uc *QuotationUseCase) Approve(ctx context.Context, company, name string) (*dto.QuotationResponse, error) {
	q, err := uc.load(ctx, company, name)
	if err != nil {
		return nil, err
	}
	q.Approved = true
	return uc.save(ctx, q, nil)
}

// Submit envía la cotización (validate, before_submit).
func (uc *QuotationUseCase) Submit(ctx context.Context, company, name string) (*dto.QuotationResponse, error) {
	q, err := uc.load(ctx, company, name)
	if err != nil {
		return nil, err
	}
	q.UpdatedAt = uc.now()
	msgs, err := uc.engine.Submit(ctx, q, func(ctx context.Context, repos repository.Set) error {
		return repos.Quotations.Update(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return toQuotationResponse(q, msgs), nil
}

// AddSupplierItems agrega o actualiza líneas con tarifas de cotizaciones de proveedor.
func (uc *QuotationUseCase) AddSupplierItems(ctx context.Context, company, name string, raw json.RawMessage) (*dto.QuotationResponse, error) {
	selected, err := ParseSelection(raw)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, domain.ErrNoItemsSelected
	}
	q, err := uc.load(ctx, company, name)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("quotation", name).Int("selected", len(selected)).Msg("agregando artículos de proveedor")

	for i := range selected {
		if selected[i].Description == "" {
			selected[i].Description = uc.supplierItemDescription(ctx, selected[i])
		}
	}
	res, err := mapping.MergeSupplierSelections(q, selected, func(code string) string {
		item, err := uc.repos.Items.GetByCode(ctx, code)
		if err != nil {
			uc.log.Warn().Err(err).Str("item_code", code).Msg("leer artículo")
			return ""
		}
		if item == nil {
			return ""
		}
		return item.Description
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("added", res.Added).Int("updated", res.Updated).Msg("artículos de proveedor procesados")
	return uc.save(ctx, q, []string{res.Message()})
}

// ParseSelection acepta un arreglo JSON o un string JSON que contiene el arreglo.
func ParseSelection(raw json.RawMessage) ([]mapping.SupplierSelection, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if asString == "" {
			return nil, nil
		}
		raw = json.RawMessage(asString)
	}
	var selected []mapping.SupplierSelection
	if err := json.Unmarshal(raw, &selected); err != nil {
		return nil, domain.Invalid(domain.ErrInvalidInput, "selected_items: %v", err)
	}
	return selected, nil
}

// MakeSalesOrder arma el pedido en borrador sin guardarlo.
func (uc *QuotationUseCase) MakeSalesOrder(ctx context.Context, company, name string, in dto.MakeSalesOrderRequest) (*dto.SalesOrderResponse, error) {
	q, err := uc.load(ctx, company, name)
	if err != nil {
		return nil, err
	}
	customer, err := uc.resolveCustomer(ctx, q)
	if err != nil {
		return nil, err
	}
	var partner *entity.SalesPartner
	if q.ReferralSalesPartner != "" {
		partner, err = uc.repos.SalesPartners.GetByName(ctx, q.ReferralSalesPartner)
		if err != nil {
			return nil, err
		}
	}
	ordered, err := uc.repos.SalesOrders.OrderedQtyByQuotationItem(ctx, q.Name)
	if err != nil {
		return nil, err
	}
	selected := make([]string, 0, len(in.SelectedItems))
	for _, s := range in.SelectedItems {
		selected = append(selected, s.Name)
	}
	so, err := mapping.SalesOrderFromQuotation(q, mapping.SalesOrderOptions{
		Customer:         customer,
		SalesPartner:     partner,
		Ordered:          ordered,
		SelectedItems:    selected,
		FilteredChildren: in.FilteredChildren,
		AllowExpired:     uc.cfg.AllowExpiredQuotation,
		Today:            uc.now(),
	})
	if err != nil {
		return nil, err
	}
	if len(so.Expenses) > 0 {
		uc.log.Info().Int("expenses", len(so.Expenses)).Str("quotation", q.Name).Msg("gastos copiados al pedido")
	}
	return toSalesOrderResponse(so, nil), nil
}

// SupplierQuotationItems líneas de cotizaciones de proveedor enviadas contra las solicitudes de la cotización.
func (uc *QuotationUseCase) SupplierQuotationItems(ctx context.Context, company, name string) (*dto.SupplierQuotationItemsResponse, error) {
	if _, err := uc.load(ctx, company, name); err != nil {
		return nil, err
	}
	out := &dto.SupplierQuotationItemsResponse{Items: []dto.SupplierQuotationItemRowResponse{}}
	mrs, err := uc.repos.MaterialRequests.ListByQuotation(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("solicitudes de la cotización: %w", err)
	}
	if len(mrs) == 0 {
		uc.log.Info().Str("quotation", name).Msg("cotización sin solicitudes de material")
		return out, nil
	}
	names := make([]string, len(mrs))
	for i, mr := range mrs {
		names[i] = mr.Name
	}
	rows, err := uc.repos.SupplierQuotations.ListSubmittedItemsByMaterialRequests(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("líneas de proveedor: %w", err)
	}
	for _, r := range rows {
		out.Items = append(out.Items, dto.SupplierQuotationItemRowResponse{
			Name:              r.Name,
			SupplierQuotation: r.SupplierQuotation,
			ItemCode:          r.ItemCode,
			ItemName:          r.ItemName,
			Qty:               r.Qty,
			UOM:               r.UOM,
			Rate:              r.Rate,
			Amount:            r.Amount,
			MaterialRequest:   r.MaterialRequest,
			Supplier:          r.Supplier,
			SupplierName:      r.SupplierName,
			ValidTill:         dto.DatePtr(r.ValidTill),
			TransactionDate:   dto.NewDate(r.TransactionDate),
		})
	}
	return out, nil
}

// MaterialRequests solicitudes de material de la cotización con su primera RFQ.
func (uc *QuotationUseCase) MaterialRequests(ctx context.Context, company, name string) ([]dto.MaterialRequestSummaryResponse, error) {
	if _, err := uc.load(ctx, company, name); err != nil {
		return nil, err
	}
	mrs, err := uc.repos.MaterialRequests.ListByQuotation(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("solicitudes de la cotización: %w", err)
	}
	out := make([]dto.MaterialRequestSummaryResponse, len(mrs))
	for i, mr := range mrs {
		out[i] = dto.MaterialRequestSummaryResponse{
			Name:                mr.Name,
			TransactionDate:     dto.NewDate(mr.TransactionDate),
			Status:              mr.WorkflowState,
			MaterialRequestType: mr.MaterialRequestType,
		}
		if mr.RFQName != "" {
			rfq := mr.RFQName
			out[i].RFQName = &rfq
		}
	}
	return out, nil
}

func (uc *QuotationUseCase) save(ctx context.Context, q *entity.Quotation, extra []string) (*dto.QuotationResponse, error) {
	q.UpdatedAt = uc.now()
	msgs, err := uc.engine.Save(ctx, q, func(ctx context.Context, repos repository.Set) error {
		return repos.Quotations.Update(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return toQuotationResponse(q, append(msgs, extra...)), nil
}

func (uc *QuotationUseCase) load(ctx context.Context, company, name string) (*entity.Quotation, error) {
	q, err := uc.repos.Quotations.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if q == nil || q.Company != company {
		return nil, domain.Invalid(domain.ErrNotFound, "cotización %s", name)
	}
	return q, nil
}

func (uc *QuotationUseCase) resolveCustomer(ctx context.Context, q *entity.Quotation) (*entity.Customer, error) {
	switch q.QuotationTo {
	case entity.QuotationToCustomer:
		return uc.repos.Customers.GetByName(ctx, q.PartyName)
	case entity.QuotationToLead:
		return uc.repos.Customers.FindByLead(ctx, q.PartyName)
	case entity.QuotationToProspect:
		return uc.repos.Customers.FindByProspect(ctx, q.PartyName)
	}
	return nil, nil
}

// supplierItemDescription descripción de la línea de proveedor seleccionada ("" si no se encuentra).
func (uc *QuotationUseCase) supplierItemDescription(ctx context.Context, sel mapping.SupplierSelection) string {
	if sel.SupplierQuotation == "" || sel.ItemID == "" {
		return ""
	}
	sq, err := uc.repos.SupplierQuotations.GetByName(ctx, sel.SupplierQuotation)
	if err != nil || sq == nil {
		return ""
	}
	for _, it := range sq.Items {
		if it.Name == sel.ItemID {
			return it.Description
		}
	}
	return ""
}

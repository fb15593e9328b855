package postgres

import (
	"context"
	"fmt"

	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/repository"
)

var _ repository.MaterialRequestRepository = (*MaterialRequestRepo)(nil)

// MaterialRequestRepo persistencia de solicitudes de material. WorkflowState se guarda en status.
type MaterialRequestRepo struct {
	q Querier
}

// NewMaterialRequestRepository construye el adaptador.
func NewMaterialRequestRepository(q Querier) *MaterialRequestRepo {
	return &MaterialRequestRepo{q: q}
}

func (r *MaterialRequestRepo) Create(ctx context.Context, mr *entity.MaterialRequest) error {
	query := `
		INSERT INTO material_requests (
			name, company, material_request_type, transaction_date, schedule_date, status, docstatus,
			quotation_ref, created_from_doctype, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		mr.Name, mr.Company, mr.MaterialRequestType, mr.TransactionDate, mr.ScheduleDate, mr.WorkflowState,
		mr.DocStatus, mr.QuotationRef, mr.CreatedFromDoctype, mr.CreatedAt, mr.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material request: %w", err)
	}
	return r.insertItems(ctx, mr)
}

func (r *MaterialRequestRepo) Update(ctx context.Context, mr *entity.MaterialRequest) error {
	query := `
		UPDATE material_requests SET
			company = $2, material_request_type = $3, transaction_date = $4, schedule_date = $5,
			status = $6, docstatus = $7, quotation_ref = $8, created_from_doctype = $9, updated_at = $10
		WHERE name = $1`
	tag, err := r.q.Exec(ctx, query,
		mr.Name, mr.Company, mr.MaterialRequestType, mr.TransactionDate, mr.ScheduleDate,
		mr.WorkflowState, mr.DocStatus, mr.QuotationRef, mr.CreatedFromDoctype, mr.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update material request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM material_request_items WHERE parent = $1`, mr.Name); err != nil {
		return fmt.Errorf("delete material request items: %w", err)
	}
	return r.insertItems(ctx, mr)
}

func (r *MaterialRequestRepo) insertItems(ctx context.Context, mr *entity.MaterialRequest) error {
	query := `
		INSERT INTO material_request_items (name, parent, idx, item_code, item_name, qty, uom, schedule_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, it := range mr.Items {
		if _, err := r.q.Exec(ctx, query,
			it.Name, mr.Name, it.Idx, it.ItemCode, it.ItemName, it.Qty, it.UOM, it.ScheduleDate,
		); err != nil {
			return fmt.Errorf("insert material request item %s: %w", it.ItemCode, err)
		}
	}
	return nil
}

func (r *MaterialRequestRepo) GetByName(ctx context.Context, name string) (*entity.MaterialRequest, error) {
	query := `
		SELECT name, company, material_request_type, transaction_date, schedule_date, status, docstatus,
			quotation_ref, created_from_doctype, created_at, updated_at
		FROM material_requests WHERE name = $1`
	var mr entity.MaterialRequest
	err := r.q.QueryRow(ctx, query, name).Scan(
		&mr.Name, &mr.Company, &mr.MaterialRequestType, &mr.TransactionDate, &mr.ScheduleDate, &mr.WorkflowState,
		&mr.DocStatus, &mr.QuotationRef, &mr.CreatedFromDoctype, &mr.CreatedAt, &mr.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material request: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT name, idx, item_code, item_name, qty, uom, schedule_date
		FROM material_request_items WHERE parent = $1 ORDER BY idx`, name)
	if err != nil {
		return nil, fmt.Errorf("list material request items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.MaterialRequestItem
		if err := rows.Scan(&it.Name, &it.Idx, &it.ItemCode, &it.ItemName, &it.Qty, &it.UOM, &it.ScheduleDate); err != nil {
			return nil, fmt.Errorf("scan material request item: %w", err)
		}
		mr.Items = append(mr.Items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("material request items rows: %w", err)
	}
	return &mr, nil
}

// ListByQuotation solicitudes de la cotización con la primera RFQ que las incluye.
func (r *MaterialRequestRepo) ListByQuotation(ctx context.Context, quotation string) ([]*entity.MaterialRequestSummary, error) {
	query := `
		SELECT mr.name, mr.transaction_date, mr.status, mr.material_request_type,
			COALESCE((SELECT ri.parent FROM rfq_items ri WHERE ri.material_request = mr.name ORDER BY ri.id LIMIT 1), '')
		FROM material_requests mr
		WHERE mr.quotation_ref = $1
		ORDER BY mr.name`
	rows, err := r.q.Query(ctx, query, quotation)
	if err != nil {
		return nil, fmt.Errorf("list material requests: %w", err)
	}
	defer rows.Close()
	var out []*entity.MaterialRequestSummary
	for rows.Next() {
		var s entity.MaterialRequestSummary
		if err := rows.Scan(&s.Name, &s.TransactionDate, &s.WorkflowState, &s.MaterialRequestType, &s.RFQName); err != nil {
			return nil, fmt.Errorf("scan material request summary: %w", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("material request rows: %w", err)
	}
	return out, nil
}

func (r *MaterialRequestRepo) QuotationRef(ctx context.Context, name string) (string, error) {
	var ref string
	err := r.q.QueryRow(ctx, `SELECT quotation_ref FROM material_requests WHERE name = $1`, name).Scan(&ref)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("material request quotation_ref: %w", err)
	}
	return ref, nil
}

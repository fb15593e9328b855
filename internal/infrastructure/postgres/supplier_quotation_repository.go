package postgres

import (
	"context"
	"fmt"

	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/repository"
)

var _ repository.SupplierQuotationRepository = (*SupplierQuotationRepo)(nil)

// SupplierQuotationRepo persistencia de cotizaciones de proveedor.
type SupplierQuotationRepo struct {
	q Querier
}

// NewSupplierQuotationRepository construye el adaptador.
func NewSupplierQuotationRepository(q Querier) *SupplierQuotationRepo {
	return &SupplierQuotationRepo{q: q}
}

func (r *SupplierQuotationRepo) Create(ctx context.Context, sq *entity.SupplierQuotation) error {
	expenses, err := toJSONB(sq.Expenses)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO supplier_quotations (
			name, company, supplier, supplier_name, transaction_date, valid_till, docstatus,
			expense_template, expenses, total_expenses, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(ctx, query,
		sq.Name, sq.Company, sq.Supplier, sq.SupplierName, sq.TransactionDate, sq.ValidTill, sq.DocStatus,
		sq.ExpenseTemplate, expenses, sq.TotalExpenses, sq.CreatedAt, sq.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier quotation: %w", err)
	}
	return r.insertItems(ctx, sq)
}

func (r *SupplierQuotationRepo) Update(ctx context.Context, sq *entity.SupplierQuotation) error {
	expenses, err := toJSONB(sq.Expenses)
	if err != nil {
		return err
	}
	query := `
		UPDATE supplier_quotations SET
			company = $2, supplier = $3, supplier_name = $4, transaction_date = $5, valid_till = $6,
			docstatus = $7, expense_template = $8, expenses = $9, total_expenses = $10, updated_at = $11
		WHERE name = $1`
	tag, err := r.q.Exec(ctx, query,
		sq.Name, sq.Company, sq.Supplier, sq.SupplierName, sq.TransactionDate, sq.ValidTill,
		sq.DocStatus, sq.ExpenseTemplate, expenses, sq.TotalExpenses, sq.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier quotation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM supplier_quotation_items WHERE parent = $1`, sq.Name); err != nil {
		return fmt.Errorf("delete supplier quotation items: %w", err)
	}
	return r.insertItems(ctx, sq)
}

func (r *SupplierQuotationRepo) insertItems(ctx context.Context, sq *entity.SupplierQuotation) error {
	query := `
		INSERT INTO supplier_quotation_items (
			name, parent, idx, item_code, item_name, description, qty, uom, stock_uom, brand,
			rate, base_rate, amount, material_request)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	for _, it := range sq.Items {
		_, err := r.q.Exec(ctx, query,
			it.Name, sq.Name, it.Idx, it.ItemCode, it.ItemName, it.Description, it.Qty, it.UOM, it.StockUOM,
			it.Brand, it.Rate, it.BaseRate, it.Amount, it.MaterialRequest,
		)
		if err != nil {
			return fmt.Errorf("insert supplier quotation item %s: %w", it.ItemCode, err)
		}
	}
	return nil
}

func (r *SupplierQuotationRepo) GetByName(ctx context.Context, name string) (*entity.SupplierQuotation, error) {
	query := `
		SELECT name, company, supplier, supplier_name, transaction_date, valid_till, docstatus,
			expense_template, expenses, total_expenses, created_at, updated_at
		FROM supplier_quotations WHERE name = $1`
	var (
		sq       entity.SupplierQuotation
		expenses []byte
	)
	err := r.q.QueryRow(ctx, query, name).Scan(
		&sq.Name, &sq.Company, &sq.Supplier, &sq.SupplierName, &sq.TransactionDate, &sq.ValidTill, &sq.DocStatus,
		&sq.ExpenseTemplate, &expenses, &sq.TotalExpenses, &sq.CreatedAt, &sq.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier quotation: %w", err)
	}
	if sq.Expenses, err = fromJSONB[entity.ServiceExpense](expenses); err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, `
		SELECT name, idx, item_code, item_name, description, qty, uom, stock_uom, brand,
			rate, base_rate, amount, material_request
		FROM supplier_quotation_items WHERE parent = $1 ORDER BY idx`, name)
	if err != nil {
		return nil, fmt.Errorf("list supplier quotation items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SupplierQuotationItem
		if err := rows.Scan(
			&it.Name, &it.Idx, &it.ItemCode, &it.ItemName, &it.Description, &it.Qty, &it.UOM, &it.StockUOM,
			&it.Brand, &it.Rate, &it.BaseRate, &it.Amount, &it.MaterialRequest,
		); err != nil {
			return nil, fmt.Errorf("scan supplier quotation item: %w", err)
		}
		sq.Items = append(sq.Items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("supplier quotation items rows: %w", err)
	}
	return &sq, nil
}

// ListSubmittedItemsByMaterialRequests líneas de cotizaciones de proveedor enviadas contra esas solicitudes.
func (r *SupplierQuotationRepo) ListSubmittedItemsByMaterialRequests(ctx context.Context, materialRequests []string) ([]*entity.SupplierQuotationItemRow, error) {
	if len(materialRequests) == 0 {
		return nil, nil
	}
	query := `
		SELECT i.name, sq.name, i.item_code, i.item_name, i.qty, i.uom, i.rate, i.amount, i.material_request,
			sq.supplier, sq.supplier_name, sq.valid_till, sq.transaction_date
		FROM supplier_quotation_items i
		JOIN supplier_quotations sq ON sq.name = i.parent
		WHERE sq.docstatus = 1 AND i.material_request = ANY($1)
		ORDER BY i.item_code, i.rate, i.name`
	rows, err := r.q.Query(ctx, query, materialRequests)
	if err != nil {
		return nil, fmt.Errorf("list supplier quotation items: %w", err)
	}
	defer rows.Close()
	var out []*entity.SupplierQuotationItemRow
	for rows.Next() {
		var row entity.SupplierQuotationItemRow
		if err := rows.Scan(
			&row.Name, &row.SupplierQuotation, &row.ItemCode, &row.ItemName, &row.Qty, &row.UOM, &row.Rate,
			&row.Amount, &row.MaterialRequest, &row.Supplier, &row.SupplierName, &row.ValidTill, &row.TransactionDate,
		); err != nil {
			return nil, fmt.Errorf("scan supplier quotation item row: %w", err)
		}
		out = append(out, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("supplier quotation item rows: %w", err)
	}
	return out, nil
}

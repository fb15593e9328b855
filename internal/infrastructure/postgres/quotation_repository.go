package postgres

import (
	"context"
	"fmt"

	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/repository"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

// QuotationRepo persistencia de cotizaciones; gastos y comentarios van en jsonb, líneas en quotation_items.
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository construye el adaptador de cotizaciones.
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

// Create inserta cabecera y líneas.
func (r *QuotationRepo) Create(ctx context.Context, qt *entity.Quotation) error {
	expenses, comments, err := quotationJSON(qt)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO quotations (
			name, company, quotation_to, party_name, customer_name, transaction_date, valid_till,
			docstatus, approved, item_margin, has_unit_price_items, referral_sales_partner, expense_template,
			expenses, total_expenses, net_total, grand_total, comments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err = r.q.Exec(ctx, query,
		qt.Name, qt.Company, qt.QuotationTo, qt.PartyName, qt.CustomerName, qt.TransactionDate, qt.ValidTill,
		qt.DocStatus, qt.Approved, qt.ItemMargin, qt.HasUnitPriceItems, qt.ReferralSalesPartner, qt.ExpenseTemplate,
		expenses, qt.TotalExpenses, qt.NetTotal, qt.GrandTotal, comments, qt.CreatedAt, qt.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert quotation: %w", err)
	}
	return r.insertItems(ctx, qt)
}

// Update reemplaza cabecera y líneas.
func (r *QuotationRepo) Update(ctx context.Context, qt *entity.Quotation) error {
	expenses, comments, err := quotationJSON(qt)
	if err != nil {
		return err
	}
	query := `
		UPDATE quotations SET
			company = $2, quotation_to = $3, party_name = $4, customer_name = $5, transaction_date = $6,
			valid_till = $7, docstatus = $8, approved = $9, item_margin = $10, has_unit_price_items = $11,
			referral_sales_partner = $12, expense_template = $13, expenses = $14, total_expenses = $15,
			net_total = $16, grand_total = $17, comments = $18, updated_at = $19
		WHERE name = $1`
	tag, err := r.q.Exec(ctx, query,
		qt.Name, qt.Company, qt.QuotationTo, qt.PartyName, qt.CustomerName, qt.TransactionDate,
		qt.ValidTill, qt.DocStatus, qt.Approved, qt.ItemMargin, qt.HasUnitPriceItems,
		qt.ReferralSalesPartner, qt.ExpenseTemplate, expenses, qt.TotalExpenses,
		qt.NetTotal, qt.GrandTotal, comments, qt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quotation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM quotation_items WHERE parent = $1`, qt.Name); err != nil {
		return fmt.Errorf("delete quotation items: %w", err)
	}
	return r.insertItems(ctx, qt)
}

func (r *QuotationRepo) insertItems(ctx context.Context, qt *entity.Quotation) error {
	query := `
		INSERT INTO quotation_items (
			name, parent, idx, item_code, item_name, description, qty, uom, stock_uom, conversion_factor, brand,
			base_rate, base_net_rate, rate, net_rate, amount, net_amount, original_rate, supplier_quotation,
			is_alternative, has_alternative_item, against_blanket_order, blanket_order, blanket_order_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`
	for _, it := range qt.Items {
		_, err := r.q.Exec(ctx, query,
			it.Name, qt.Name, it.Idx, it.ItemCode, it.ItemName, it.Description, it.Qty, it.UOM, it.StockUOM,
			it.ConversionFactor, it.Brand, it.BaseRate, it.BaseNetRate, it.Rate, it.NetRate, it.Amount,
			it.NetAmount, it.OriginalRate, it.SupplierQuotation, it.IsAlternative, it.HasAlternativeItem,
			it.AgainstBlanketOrder, it.BlanketOrder, it.BlanketOrderRate,
		)
		if err != nil {
			return fmt.Errorf("insert quotation item %s: %w", it.ItemCode, err)
		}
	}
	return nil
}

// GetByName obtiene la cotización con sus líneas ordenadas por idx.
func (r *QuotationRepo) GetByName(ctx context.Context, name string) (*entity.Quotation, error) {
	query := `
		SELECT name, company, quotation_to, party_name, customer_name, transaction_date, valid_till,
			docstatus, approved, item_margin, has_unit_price_items, referral_sales_partner, expense_template,
			expenses, total_expenses, net_total, grand_total, comments, created_at, updated_at
		FROM quotations WHERE name = $1`
	var (
		qt                 entity.Quotation
		expenses, comments []byte
	)
	err := r.q.QueryRow(ctx, query, name).Scan(
		&qt.Name, &qt.Company, &qt.QuotationTo, &qt.PartyName, &qt.CustomerName, &qt.TransactionDate, &qt.ValidTill,
		&qt.DocStatus, &qt.Approved, &qt.ItemMargin, &qt.HasUnitPriceItems, &qt.ReferralSalesPartner, &qt.ExpenseTemplate,
		&expenses, &qt.TotalExpenses, &qt.NetTotal, &qt.GrandTotal, &comments, &qt.CreatedAt, &qt.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	if qt.Expenses, err = fromJSONB[entity.ServiceExpense](expenses); err != nil {
		return nil, err
	}
	if qt.Comments, err = fromJSONB[string](comments); err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, `
		SELECT name, idx, item_code, item_name, description, qty, uom, stock_uom, conversion_factor, brand,
			base_rate, base_net_rate, rate, net_rate, amount, net_amount, original_rate, supplier_quotation,
			is_alternative, has_alternative_item, against_blanket_order, blanket_order, blanket_order_rate
		FROM quotation_items WHERE parent = $1 ORDER BY idx`, name)
	if err != nil {
		return nil, fmt.Errorf("list quotation items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.QuotationItem
		if err := rows.Scan(
			&it.Name, &it.Idx, &it.ItemCode, &it.ItemName, &it.Description, &it.Qty, &it.UOM, &it.StockUOM,
			&it.ConversionFactor, &it.Brand, &it.BaseRate, &it.BaseNetRate, &it.Rate, &it.NetRate, &it.Amount,
			&it.NetAmount, &it.OriginalRate, &it.SupplierQuotation, &it.IsAlternative, &it.HasAlternativeItem,
			&it.AgainstBlanketOrder, &it.BlanketOrder, &it.BlanketOrderRate,
		); err != nil {
			return nil, fmt.Errorf("scan quotation item: %w", err)
		}
		qt.Items = append(qt.Items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quotation items rows: %w", err)
	}
	return &qt, nil
}

func quotationJSON(qt *entity.Quotation) (expenses, comments []byte, err error) {
	if expenses, err = toJSONB(qt.Expenses); err != nil {
		return nil, nil, err
	}
	if comments, err = toJSONB(qt.Comments); err != nil {
		return nil, nil, err
	}
	return expenses, comments, nil
}

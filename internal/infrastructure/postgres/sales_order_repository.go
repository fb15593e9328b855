package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/repository"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// SalesOrderRepo persistencia de pedidos; equipo de ventas, gastos y plan de pagos van en jsonb.
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador.
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

type salesOrderJSON struct {
	team, expenses, schedule []byte
}

func encodeSalesOrder(so *entity.SalesOrder) (salesOrderJSON, error) {
	var (
		j   salesOrderJSON
		err error
	)
	if j.team, err = toJSONB(so.SalesTeam); err != nil {
		return j, err
	}
	if j.expenses, err = toJSONB(so.Expenses); err != nil {
		return j, err
	}
	if j.schedule, err = toJSONB(so.PaymentSchedule); err != nil {
		return j, err
	}
	return j, nil
}

func (r *SalesOrderRepo) Create(ctx context.Context, so *entity.SalesOrder) error {
	j, err := encodeSalesOrder(so)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO sales_orders (
			name, company, customer, customer_name, transaction_date, delivery_date, cost_center, docstatus,
			quotation_ref, sales_partner, commission_rate, sales_team, expenses, expenses_copied,
			payment_schedule, net_total, grand_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err = r.q.Exec(ctx, query,
		so.Name, so.Company, so.Customer, so.CustomerName, so.TransactionDate, so.DeliveryDate, so.CostCenter,
		so.DocStatus, so.QuotationRef, so.SalesPartner, so.CommissionRate, j.team, j.expenses, so.ExpensesCopied,
		j.schedule, so.NetTotal, so.GrandTotal, so.CreatedAt, so.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sales order: %w", err)
	}
	return r.insertItems(ctx, so)
}

func (r *SalesOrderRepo) Update(ctx context.Context, so *entity.SalesOrder) error {
	j, err := encodeSalesOrder(so)
	if err != nil {
		return err
	}
	query := `
		UPDATE sales_orders SET
			company = $2, customer = $3, customer_name = $4, transaction_date = $5, delivery_date = $6,
			cost_center = $7, docstatus = $8, quotation_ref = $9, sales_partner = $10, commission_rate = $11,
			sales_team = $12, expenses = $13, expenses_copied = $14, payment_schedule = $15,
			net_total = $16, grand_total = $17, updated_at = $18
		WHERE name = $1`
	tag, err := r.q.Exec(ctx, query,
		so.Name, so.Company, so.Customer, so.CustomerName, so.TransactionDate, so.DeliveryDate,
		so.CostCenter, so.DocStatus, so.QuotationRef, so.SalesPartner, so.CommissionRate,
		j.team, j.expenses, so.ExpensesCopied, j.schedule,
		so.NetTotal, so.GrandTotal, so.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sales order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM sales_order_items WHERE parent = $1`, so.Name); err != nil {
		return fmt.Errorf("delete sales order items: %w", err)
	}
	return r.insertItems(ctx, so)
}

func (r *SalesOrderRepo) insertItems(ctx context.Context, so *entity.SalesOrder) error {
	query := `
		INSERT INTO sales_order_items (
			name, parent, idx, item_code, item_name, description, qty, stock_qty, conversion_factor, uom,
			rate, net_rate, amount, net_amount, quotation_item, prevdoc_docname,
			against_blanket_order, blanket_order, blanket_order_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	for _, it := range so.Items {
		if _, err := r.q.Exec(ctx, query,
			it.Name, so.Name, it.Idx, it.ItemCode, it.ItemName, it.Description, it.Qty, it.StockQty,
			it.ConversionFactor, it.UOM, it.Rate, it.NetRate, it.Amount, it.NetAmount, it.QuotationItem,
			it.PrevDocName, it.AgainstBlanketOrder, it.BlanketOrder, it.BlanketOrderRate,
		); err != nil {
			return fmt.Errorf("insert sales order item %s: %w", it.ItemCode, err)
		}
	}
	return nil
}

func (r *SalesOrderRepo) GetByName(ctx context.Context, name string) (*entity.SalesOrder, error) {
	query := `
		SELECT name, company, customer, customer_name, transaction_date, delivery_date, cost_center, docstatus,
			quotation_ref, sales_partner, commission_rate, sales_team, expenses, expenses_copied,
			payment_schedule, net_total, grand_total, created_at, updated_at
		FROM sales_orders WHERE name = $1`
	var (
		so entity.SalesOrder
		j  salesOrderJSON
	)
	err := r.q.QueryRow(ctx, query, name).Scan(
		&so.Name, &so.Company, &so.Customer, &so.CustomerName, &so.TransactionDate, &so.DeliveryDate, &so.CostCenter,
		&so.DocStatus, &so.QuotationRef, &so.SalesPartner, &so.CommissionRate, &j.team, &j.expenses, &so.ExpensesCopied,
		&j.schedule, &so.NetTotal, &so.GrandTotal, &so.CreatedAt, &so.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	if so.SalesTeam, err = fromJSONB[entity.SalesTeamMember](j.team); err != nil {
		return nil, err
	}
	if so.Expenses, err = fromJSONB[entity.ServiceExpense](j.expenses); err != nil {
		return nil, err
	}
	if so.PaymentSchedule, err = fromJSONB[entity.PaymentScheduleRow](j.schedule); err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, `
		SELECT name, idx, item_code, item_name, description, qty, stock_qty, conversion_factor, uom,
			rate, net_rate, amount, net_amount, quotation_item, prevdoc_docname,
			against_blanket_order, blanket_order, blanket_order_rate
		FROM sales_order_items WHERE parent = $1 ORDER BY idx`, name)
	if err != nil {
		return nil, fmt.Errorf("list sales order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SalesOrderItem
		if err := rows.Scan(
			&it.Name, &it.Idx, &it.ItemCode, &it.ItemName, &it.Description, &it.Qty, &it.StockQty,
			&it.ConversionFactor, &it.UOM, &it.Rate, &it.NetRate, &it.Amount, &it.NetAmount, &it.QuotationItem,
			&it.PrevDocName, &it.AgainstBlanketOrder, &it.BlanketOrder, &it.BlanketOrderRate,
		); err != nil {
			return nil, fmt.Errorf("scan sales order item: %w", err)
		}
		so.Items = append(so.Items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sales order items rows: %w", err)
	}
	return &so, nil
}

// OrderedQtyByQuotationItem suma lo pedido en pedidos enviados, por línea de la cotización.
func (r *SalesOrderRepo) OrderedQtyByQuotationItem(ctx context.Context, quotation string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT i.quotation_item, SUM(i.qty)
		FROM sales_order_items i
		JOIN sales_orders so ON so.name = i.parent
		WHERE so.docstatus = 1 AND i.prevdoc_docname = $1 AND i.quotation_item <> ''
		GROUP BY i.quotation_item`
	rows, err := r.q.Query(ctx, query, quotation)
	if err != nil {
		return nil, fmt.Errorf("ordered qty: %w", err)
	}
	defer rows.Close()
	ordered := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			item string
			qty  decimal.Decimal
		)
		if err := rows.Scan(&item, &qty); err != nil {
			return nil, fmt.Errorf("scan ordered qty: %w", err)
		}
		ordered[item] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ordered qty rows: %w", err)
	}
	return ordered, nil
}

func (r *SalesOrderRepo) QuotationOfItem(ctx context.Context, quotationItem string) (string, error) {
	var parent string
	err := r.q.QueryRow(ctx, `SELECT parent FROM quotation_items WHERE name = $1`, quotationItem).Scan(&parent)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("quotation of item: %w", err)
	}
	return parent, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo lectura de artículos, bins y últimas tarifas facturadas.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de artículos.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func (r *ItemRepo) GetByCode(ctx context.Context, code string) (*entity.Item, error) {
	var it entity.Item
	err := r.q.QueryRow(ctx, `
		SELECT item_code, item_name, description, stock_uom, brand
		FROM items WHERE item_code = $1`, code).
		Scan(&it.ItemCode, &it.ItemName, &it.Description, &it.StockUOM, &it.Brand)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

func (r *ItemRepo) LatestBin(ctx context.Context, code string) (*entity.Bin, error) {
	var b entity.Bin
	err := r.q.QueryRow(ctx, `
		SELECT item_code, warehouse, actual_qty, projected_qty, modified
		FROM bins WHERE item_code = $1
		ORDER BY modified DESC LIMIT 1`, code).
		Scan(&b.ItemCode, &b.Warehouse, &b.ActualQty, &b.ProjectedQty, &b.Modified)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest bin: %w", err)
	}
	return &b, nil
}

func (r *ItemRepo) LastPurchaseRate(ctx context.Context, code string) (*entity.LastRate, error) {
	return r.lastRate(ctx, `
		SELECT item_code, rate, parent, supplier_name
		FROM purchase_invoice_items
		WHERE item_code = $1 AND docstatus = 1
		ORDER BY creation DESC LIMIT 1`, code)
}

func (r *ItemRepo) LastSellingRate(ctx context.Context, code string) (*entity.LastRate, error) {
	return r.lastRate(ctx, `
		SELECT item_code, rate, parent, customer_name
		FROM sales_invoice_items
		WHERE item_code = $1 AND docstatus = 1
		ORDER BY creation DESC LIMIT 1`, code)
}

func (r *ItemRepo) lastRate(ctx context.Context, query, code string) (*entity.LastRate, error) {
	var lr entity.LastRate
	err := r.q.QueryRow(ctx, query, code).Scan(&lr.ItemCode, &lr.Rate, &lr.Parent, &lr.PartyName)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("last rate: %w", err)
	}
	return &lr, nil
}

package mapping

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
)

// ReplaceItemsFromSupplier reemplaza las líneas de la cotización por las de la cotización de proveedor.
// La tarifa tomada es base_rate si viene informada, si no rate. Deja la cotización en borrador.
func ReplaceItemsFromSupplier(q *entity.Quotation, sq *entity.SupplierQuotation) int {
	q.DocStatus = entity.DocStatusDraft
	q.Items = make([]*entity.QuotationItem, 0, len(sq.Items))
	for _, src := range sq.Items {
		rate := src.Rate
		if !src.BaseRate.IsZero() {
			rate = src.BaseRate
		}
		q.Items = append(q.Items, &entity.QuotationItem{
			Name:              uuid.NewString(),
			ItemCode:          src.ItemCode,
			ItemName:          src.ItemName,
			Description:       src.Description,
			Qty:               src.Qty,
			UOM:               src.UOM,
			StockUOM:          src.StockUOM,
			ConversionFactor:  decimal.NewFromInt(1),
			Brand:             src.Brand,
			BaseRate:          rate,
			BaseNetRate:       rate,
			Rate:              rate,
			NetRate:           rate,
			Amount:            rate.Mul(src.Qty),
			NetAmount:         rate.Mul(src.Qty),
			SupplierQuotation: sq.Name,
		})
	}
	q.AddComment(fmt.Sprintf("Successfully copied %d items from %s.", len(sq.Items), sq.Name))
	q.RecalculateTotals()
	return len(sq.Items)
}

// SupplierSelection línea de proveedor elegida para agregar a la cotización.
type SupplierSelection struct {
	ItemID            string          `json:"item_id"`
	ItemCode          string          `json:"item_code"`
	ItemName          string          `json:"item_name"`
	Qty               decimal.Decimal `json:"qty"`
	UOM               string          `json:"uom"`
	Rate              decimal.Decimal `json:"rate"`
	SupplierQuotation string          `json:"supplier_quotation"`
	Description       string          `json:"description,omitempty"`
}

// MergeResult conteo de líneas agregadas y actualizadas.
type MergeResult struct {
	Added   int
	Updated int
}

// Message texto que se muestra al usuario tras agregar líneas.
func (r MergeResult) Message() string {
	var parts []string
	if r.Added > 0 {
		parts = append(parts, fmt.Sprintf("Added %d new item(s)", r.Added))
	}
	if r.Updated > 0 {
		parts = append(parts, fmt.Sprintf("Updated %d existing item(s)", r.Updated))
	}
	if len(parts) == 0 {
		return "No items were processed"
	}
	return strings.Join(parts, " | ")
}

// MergeSupplierSelections agrega o actualiza líneas de la cotización con tarifas de proveedor.
// Una línea existente con el mismo código guarda su tarifa previa en OriginalRate.
// La descripción de las líneas nuevas sale de la selección o, si falta, de itemDescription.
func MergeSupplierSelections(q *entity.Quotation, selected []SupplierSelection, itemDescription func(code string) string) (MergeResult, error) {
	var res MergeResult
	if len(selected) == 0 {
		return res, domain.ErrNoItemsSelected
	}
	if q.DocStatus != entity.DocStatusDraft {
		return res, domain.Invalid(domain.ErrNotDraft, "solo se pueden agregar artículos a cotizaciones en borrador")
	}
	for _, sel := range selected {
		if existing := q.FindItemByCode(sel.ItemCode); existing != nil {
			existing.OriginalRate = existing.Rate
			existing.BaseRate = sel.Rate
			existing.BaseNetRate = sel.Rate
			existing.Rate = sel.Rate
			existing.NetRate = sel.Rate
			existing.Amount = sel.Rate.Mul(existing.Qty)
			existing.NetAmount = sel.Rate.Mul(existing.Qty)
			existing.SupplierQuotation = sel.SupplierQuotation
			res.Updated++
			continue
		}
		desc := sel.Description
		if desc == "" && itemDescription != nil {
			desc = itemDescription(sel.ItemCode)
		}
		q.Items = append(q.Items, &entity.QuotationItem{
			Name:              uuid.NewString(),
			ItemCode:          sel.ItemCode,
			ItemName:          sel.ItemName,
			Description:       desc,
			Qty:               sel.Qty,
			UOM:               sel.UOM,
			ConversionFactor:  decimal.NewFromInt(1),
			BaseRate:          sel.Rate,
			BaseNetRate:       sel.Rate,
			Rate:              sel.Rate,
			NetRate:           sel.Rate,
			Amount:            sel.Rate.Mul(sel.Qty),
			NetAmount:         sel.Rate.Mul(sel.Qty),
			OriginalRate:      sel.Rate,
			SupplierQuotation: sel.SupplierQuotation,
		})
		res.Added++
	}
	q.RecalculateTotals()
	return res, nil
}

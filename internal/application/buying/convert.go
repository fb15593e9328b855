package buying

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/internal/domain/entity"
)

func applySupplierQuotationRequest(sq *entity.SupplierQuotation, in dto.SupplierQuotationRequest) {
	sq.Supplier = in.Supplier
	sq.SupplierName = in.SupplierName
	if !in.TransactionDate.IsZero() {
		sq.TransactionDate = entity.DateOf(in.TransactionDate.Time)
	}
	sq.ValidTill = in.ValidTill.TimePtr()
	sq.ExpenseTemplate = in.ExpenseTemplate
	sq.Expenses = dto.ExpensesFromDTO(in.Expenses, sq.Company)
	sq.Items = make([]*entity.SupplierQuotationItem, 0, len(in.Items))
	for _, row := range in.Items {
		sq.Items = append(sq.Items, &entity.SupplierQuotationItem{
			Name:            uuid.NewString(),
			ItemCode:        row.ItemCode,
			ItemName:        row.ItemName,
			Description:     row.Description,
			Qty:             row.Qty,
			UOM:             row.UOM,
			StockUOM:        row.StockUOM,
			Brand:           row.Brand,
			Rate:            row.Rate,
			BaseRate:        row.BaseRate,
			MaterialRequest: row.MaterialRequest,
		})
	}
	sq.RecalculateTotals()
}

func toSupplierQuotationResponse(sq *entity.SupplierQuotation) *dto.SupplierQuotationResponse {
	out := &dto.SupplierQuotationResponse{
		Name:            sq.Name,
		Company:         sq.Company,
		Supplier:        sq.Supplier,
		SupplierName:    sq.SupplierName,
		TransactionDate: dto.NewDate(sq.TransactionDate),
		ValidTill:       dto.DatePtr(sq.ValidTill),
		DocStatus:       sq.DocStatus,
		ExpenseTemplate: sq.ExpenseTemplate,
		Expenses:        dto.ExpensesToDTO(sq.Expenses),
		TotalExpenses:   sq.TotalExpenses,
		Items:           make([]dto.SupplierQuotationItemResponse, len(sq.Items)),
		UpdatedAt:       sq.UpdatedAt,
	}
	for i, it := range sq.Items {
		out.Items[i] = dto.SupplierQuotationItemResponse{
			Name:            it.Name,
			Idx:             it.Idx,
			ItemCode:        it.ItemCode,
			ItemName:        it.ItemName,
			Description:     it.Description,
			Qty:             it.Qty,
			UOM:             it.UOM,
			StockUOM:        it.StockUOM,
			Brand:           it.Brand,
			Rate:            it.Rate,
			BaseRate:        it.BaseRate,
			Amount:          it.Amount,
			MaterialRequest: it.MaterialRequest,
		}
	}
	return out
}

func applyMaterialRequestRequest(mr *entity.MaterialRequest, in dto.MaterialRequestRequest) {
	mr.MaterialRequestType = in.MaterialRequestType
	if !in.TransactionDate.IsZero() {
		mr.TransactionDate = entity.DateOf(in.TransactionDate.Time)
	}
	mr.ScheduleDate = in.ScheduleDate.Time
	if mr.ScheduleDate.IsZero() {
		mr.ScheduleDate = mr.TransactionDate
	}
	mr.QuotationRef = in.QuotationRef
	mr.CreatedFromDoctype = in.CreatedFromDoctype
	mr.Items = make([]*entity.MaterialRequestItem, 0, len(in.Items))
	for i, row := range in.Items {
		schedule := row.ScheduleDate.Time
		if schedule.IsZero() {
			schedule = mr.ScheduleDate
		}
		qty := row.Qty
		if qty.IsNegative() {
			qty = decimal.Zero
		}
		mr.Items = append(mr.Items, &entity.MaterialRequestItem{
			Name:         uuid.NewString(),
			Idx:          i + 1,
			ItemCode:     row.ItemCode,
			ItemName:     row.ItemName,
			Qty:          qty,
			UOM:          row.UOM,
			ScheduleDate: schedule,
		})
	}
}

func toMaterialRequestResponse(mr *entity.MaterialRequest) *dto.MaterialRequestResponse {
	out := &dto.MaterialRequestResponse{
		Name:                mr.Name,
		Company:             mr.Company,
		MaterialRequestType: mr.MaterialRequestType,
		TransactionDate:     dto.NewDate(mr.TransactionDate),
		ScheduleDate:        dto.NewDate(mr.ScheduleDate),
		Status:              mr.WorkflowState,
		DocStatus:           mr.DocStatus,
		QuotationRef:        mr.QuotationRef,
		CreatedFromDoctype:  mr.CreatedFromDoctype,
		Items:               make([]dto.MaterialRequestItemDTO, len(mr.Items)),
	}
	for i, it := range mr.Items {
		out.Items[i] = dto.MaterialRequestItemDTO{
			Name:         it.Name,
			Idx:          it.Idx,
			ItemCode:     it.ItemCode,
			ItemName:     it.ItemName,
			Qty:          it.Qty,
			UOM:          it.UOM,
			ScheduleDate: dto.NewDate(it.ScheduleDate),
		}
	}
	return out
}

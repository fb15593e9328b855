package selling

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/internal/domain/entity"
)

var one = decimal.NewFromInt(1)

// applyQuotationRequest vuelca la entrada sobre la cotización. Las líneas existentes
// (mismo name) conservan los datos de proveedor.
func applyQuotationRequest(q *entity.Quotation, in dto.QuotationRequest) {
	q.QuotationTo = in.QuotationTo
	q.PartyName = in.PartyName
	q.CustomerName = in.CustomerName
	if !in.TransactionDate.IsZero() {
		q.TransactionDate = entity.DateOf(in.TransactionDate.Time)
	}
	q.ValidTill = nil
	if t := in.ValidTill.TimePtr(); t != nil {
		day := entity.DateOf(*t)
		q.ValidTill = &day
	}
	q.ItemMargin = in.ItemMargin
	q.HasUnitPriceItems = in.HasUnitPriceItems
	q.ReferralSalesPartner = in.ReferralSalesPartner
	q.Expenses = dto.ExpensesFromDTO(in.Expenses, q.Company)

	previous := make(map[string]*entity.QuotationItem, len(q.Items))
	for _, it := range q.Items {
		previous[it.Name] = it
	}
	items := make([]*entity.QuotationItem, 0, len(in.Items))
	for _, row := range in.Items {
		it := &entity.QuotationItem{Name: row.Name}
		if prev, ok := previous[row.Name]; ok && row.Name != "" {
			it.OriginalRate = prev.OriginalRate
			it.SupplierQuotation = prev.SupplierQuotation
		} else {
			it.Name = uuid.NewString()
		}
		it.ItemCode = row.ItemCode
		it.ItemName = row.ItemName
		it.Description = row.Description
		it.Qty = row.Qty
		it.UOM = row.UOM
		it.StockUOM = row.StockUOM
		it.ConversionFactor = row.ConversionFactor
		if it.ConversionFactor.IsZero() {
			it.ConversionFactor = one
		}
		it.Brand = row.Brand
		it.BaseRate = row.BaseRate
		it.BaseNetRate = row.BaseNetRate
		if it.BaseNetRate.IsZero() {
			it.BaseNetRate = row.BaseRate
		}
		it.Rate = it.BaseRate
		it.NetRate = it.BaseNetRate
		it.IsAlternative = row.IsAlternative
		it.HasAlternativeItem = row.HasAlternativeItem
		it.AgainstBlanketOrder = row.AgainstBlanketOrder
		it.BlanketOrder = row.BlanketOrder
		it.BlanketOrderRate = row.BlanketOrderRate
		items = append(items, it)
	}
	q.Items = items
	q.RecalculateTotals()
}

func toQuotationResponse(q *entity.Quotation, messages []string) *dto.QuotationResponse {
	out := &dto.QuotationResponse{
		Name:                 q.Name,
		Company:              q.Company,
		QuotationTo:          q.QuotationTo,
		PartyName:            q.PartyName,
		CustomerName:         q.CustomerName,
		TransactionDate:      dto.NewDate(q.TransactionDate),
		ValidTill:            dto.DatePtr(q.ValidTill),
		DocStatus:            q.DocStatus,
		Approved:             q.Approved,
		ItemMargin:           q.ItemMargin,
		HasUnitPriceItems:    q.HasUnitPriceItems,
		ReferralSalesPartner: q.ReferralSalesPartner,
		Expenses:             dto.ExpensesToDTO(q.Expenses),
		TotalExpenses:        q.TotalExpenses,
		NetTotal:             q.NetTotal,
		GrandTotal:           q.GrandTotal,
		Comments:             q.Comments,
		Items:                make([]dto.QuotationItemResponse, len(q.Items)),
		Messages:             messages,
		UpdatedAt:            q.UpdatedAt,
	}
	for i, it := range q.Items {
		out.Items[i] = dto.QuotationItemResponse{
			Name:                it.Name,
			Idx:                 it.Idx,
			ItemCode:            it.ItemCode,
			ItemName:            it.ItemName,
			Description:         it.Description,
			Qty:                 it.Qty,
			UOM:                 it.UOM,
			StockUOM:            it.StockUOM,
			ConversionFactor:    it.ConversionFactor,
			Brand:               it.Brand,
			BaseRate:            it.BaseRate,
			BaseNetRate:         it.BaseNetRate,
			Rate:                it.Rate,
			NetRate:             it.NetRate,
			Amount:              it.Amount,
			NetAmount:           it.NetAmount,
			OriginalRate:        it.OriginalRate,
			SupplierQuotation:   it.SupplierQuotation,
			IsAlternative:       it.IsAlternative,
			HasAlternativeItem:  it.HasAlternativeItem,
			AgainstBlanketOrder: it.AgainstBlanketOrder,
			BlanketOrder:        it.BlanketOrder,
			BlanketOrderRate:    it.BlanketOrderRate,
		}
	}
	return out
}

// applySalesOrderRequest vuelca la entrada sobre el pedido.
func applySalesOrderRequest(so *entity.SalesOrder, in dto.SalesOrderRequest) {
	so.Customer = in.Customer
	so.CustomerName = in.CustomerName
	if !in.TransactionDate.IsZero() {
		so.TransactionDate = entity.DateOf(in.TransactionDate.Time)
	}
	so.DeliveryDate = in.DeliveryDate.TimePtr()
	so.CostCenter = in.CostCenter
	if in.QuotationRef != "" {
		so.QuotationRef = in.QuotationRef
	}
	so.SalesPartner = in.SalesPartner
	so.CommissionRate = in.CommissionRate
	so.ExpensesCopied = so.ExpensesCopied || in.ExpensesCopied
	so.Expenses = dto.ExpensesFromDTO(in.Expenses, so.Company)

	so.SalesTeam = nil
	for _, m := range in.SalesTeam {
		so.SalesTeam = append(so.SalesTeam, entity.SalesTeamMember{
			SalesPerson:         m.SalesPerson,
			AllocatedPercentage: m.AllocatedPercentage,
			CommissionRate:      m.CommissionRate,
		})
	}
	so.PaymentSchedule = nil
	for _, p := range in.PaymentSchedule {
		so.PaymentSchedule = append(so.PaymentSchedule, entity.PaymentScheduleRow{
			PaymentTerm:    p.PaymentTerm,
			DueDate:        p.DueDate.Time,
			InvoicePortion: p.InvoicePortion,
			PaymentAmount:  p.PaymentAmount,
		})
	}

	so.Items = make([]*entity.SalesOrderItem, 0, len(in.Items))
	for _, row := range in.Items {
		name := row.Name
		if name == "" {
			name = uuid.NewString()
		}
		cf := row.ConversionFactor
		if cf.IsZero() {
			cf = one
		}
		net := row.NetRate
		if net.IsZero() {
			net = row.Rate
		}
		so.Items = append(so.Items, &entity.SalesOrderItem{
			Name:                name,
			ItemCode:            row.ItemCode,
			ItemName:            row.ItemName,
			Description:         row.Description,
			Qty:                 row.Qty,
			ConversionFactor:    cf,
			UOM:                 row.UOM,
			Rate:                row.Rate,
			NetRate:             net,
			QuotationItem:       row.QuotationItem,
			PrevDocName:         row.PrevDocName,
			AgainstBlanketOrder: row.AgainstBlanketOrder,
			BlanketOrder:        row.BlanketOrder,
			BlanketOrderRate:    row.BlanketOrderRate,
		})
	}
	so.RecalculateTotals()
}

func toSalesOrderResponse(so *entity.SalesOrder, messages []string) *dto.SalesOrderResponse {
	out := &dto.SalesOrderResponse{
		Name:            so.Name,
		Company:         so.Company,
		Customer:        so.Customer,
		CustomerName:    so.CustomerName,
		TransactionDate: dto.NewDate(so.TransactionDate),
		DeliveryDate:    dto.DatePtr(so.DeliveryDate),
		CostCenter:      so.CostCenter,
		DocStatus:       so.DocStatus,
		QuotationRef:    so.QuotationRef,
		SalesPartner:    so.SalesPartner,
		CommissionRate:  so.CommissionRate,
		SalesTeam:       make([]dto.SalesTeamDTO, len(so.SalesTeam)),
		Expenses:        dto.ExpensesToDTO(so.Expenses),
		ExpensesCopied:  so.ExpensesCopied,
		PaymentSchedule: make([]dto.PaymentScheduleDTO, len(so.PaymentSchedule)),
		NetTotal:        so.NetTotal,
		GrandTotal:      so.GrandTotal,
		Items:           make([]dto.SalesOrderItemDTO, len(so.Items)),
		Messages:        messages,
		UpdatedAt:       so.UpdatedAt,
	}
	for i, m := range so.SalesTeam {
		out.SalesTeam[i] = dto.SalesTeamDTO{
			SalesPerson:         m.SalesPerson,
			AllocatedPercentage: m.AllocatedPercentage,
			CommissionRate:      m.CommissionRate,
		}
	}
	for i, p := range so.PaymentSchedule {
		out.PaymentSchedule[i] = dto.PaymentScheduleDTO{
			PaymentTerm:    p.PaymentTerm,
			DueDate:        dto.NewDate(p.DueDate),
			InvoicePortion: p.InvoicePortion,
			PaymentAmount:  p.PaymentAmount,
		}
	}
	for i, it := range so.Items {
		out.Items[i] = dto.SalesOrderItemDTO{
			Name:                it.Name,
			Idx:                 it.Idx,
			ItemCode:            it.ItemCode,
			ItemName:            it.ItemName,
			Description:         it.Description,
			Qty:                 it.Qty,
			StockQty:            it.StockQty,
			ConversionFactor:    it.ConversionFactor,
			UOM:                 it.UOM,
			Rate:                it.Rate,
			NetRate:             it.NetRate,
			Amount:              it.Amount,
			NetAmount:           it.NetAmount,
			QuotationItem:       it.QuotationItem,
			PrevDocName:         it.PrevDocName,
			AgainstBlanketOrder: it.AgainstBlanketOrder,
			BlanketOrder:        it.BlanketOrder,
			BlanketOrderRate:    it.BlanketOrderRate,
		}
	}
	return out
}

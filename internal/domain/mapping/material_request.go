package mapping

import (
	"github.com/google/uuid"

	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
)

// MaterialRequestFromQuotation arma una solicitud de compra en borrador a partir de la cotización.
// Acepta cotizaciones en borrador o enviadas.
func MaterialRequestFromQuotation(q *entity.Quotation) (*entity.MaterialRequest, error) {
	if q.DocStatus == entity.DocStatusCancelled {
		return nil, domain.Invalid(domain.ErrDocumentCancelled, "cotización %s", q.Name)
	}
	mr := &entity.MaterialRequest{
		Company:             q.Company,
		MaterialRequestType: entity.MaterialRequestTypePurchase,
		TransactionDate:     q.TransactionDate,
		ScheduleDate:        q.TransactionDate,
		WorkflowState:       "Draft",
		DocStatus:           entity.DocStatusDraft,
		QuotationRef:        q.Name,
		CreatedFromDoctype:  entity.DocTypeMaterialRequest,
	}
	for i, it := range q.Items {
		mr.Items = append(mr.Items, &entity.MaterialRequestItem{
			Name:         uuid.NewString(),
			Idx:          i + 1,
			ItemCode:     it.ItemCode,
			ItemName:     it.ItemName,
			Qty:          it.Qty,
			UOM:          it.UOM,
			ScheduleDate: q.TransactionDate,
		})
	}
	return mr, nil
}

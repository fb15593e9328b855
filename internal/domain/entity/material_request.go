package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de solicitud de material.
const (
	MaterialRequestTypePurchase = "Purchase"
	MaterialRequestTypeTransfer = "Material Transfer"
)

// MaterialRequest solicitud interna de compra o traslado.
// QuotationRef enlaza la cotización de cliente que la originó.
type MaterialRequest struct {
	Name                string
	Company             string
	MaterialRequestType string
	TransactionDate     time.Time
	ScheduleDate        time.Time
	WorkflowState       string
	DocStatus           int
	QuotationRef        string
	CreatedFromDoctype  string
	Items               []*MaterialRequestItem
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// MaterialRequestItem línea de la solicitud.
type MaterialRequestItem struct {
	Name         string
	Idx          int
	ItemCode     string
	ItemName     string
	Qty          decimal.Decimal
	UOM          string
	ScheduleDate time.Time
}

func (m *MaterialRequest) DocType() string { return DocTypeMaterialRequest }
func (m *MaterialRequest) DocName() string { return m.Name }
func (m *MaterialRequest) Status() int     { return m.DocStatus }

func (m *MaterialRequest) SetStatus(status int) { m.DocStatus = status }

// MaterialRequestSummary fila de consulta con la primera RFQ asociada (vacía si no hay).
type MaterialRequestSummary struct {
	Name                string
	TransactionDate     time.Time
	WorkflowState       string
	MaterialRequestType string
	RFQName             string
}

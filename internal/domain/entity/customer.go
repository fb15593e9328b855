package entity

import "github.com/shopspring/decimal"

// Customer cliente al que se convierte una cotización.
// LeadName/ProspectName enlazan al lead o prospecto de origen (vacío si no aplica).
type Customer struct {
	Name         string
	CustomerName string
	LeadName     string
	ProspectName string
	SalesTeam    []SalesTeamMember
}

// SalesTeamMember fila del equipo de ventas.
type SalesTeamMember struct {
	SalesPerson         string           `json:"sales_person"`
	AllocatedPercentage *decimal.Decimal `json:"allocated_percentage,omitempty"`
	CommissionRate      decimal.Decimal  `json:"commission_rate"`
}

// SalesPartner socio comercial referido en una cotización.
type SalesPartner struct {
	Name           string
	CommissionRate decimal.Decimal
}

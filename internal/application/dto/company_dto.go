package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name                         string `json:"name" validate:"required,min=1,max=140"`
	Abbr                         string `json:"abbr" validate:"required,min=1,max=10"`
	DefaultCurrency              string `json:"default_currency" validate:"omitempty,len=3"`
	DefaultServiceExpenseAccount string `json:"default_service_expense_account" validate:"omitempty,max=140"`
}

// UpdateCompanyRequest entrada para actualizar la empresa (campos opcionales).
type UpdateCompanyRequest struct {
	DefaultCurrency              *string `json:"default_currency" validate:"omitempty,len=3"`
	DefaultServiceExpenseAccount *string `json:"default_service_expense_account" validate:"omitempty,max=140"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	Name                         string    `json:"name"`
	Abbr                         string    `json:"abbr"`
	DefaultCurrency              string    `json:"default_currency"`
	DefaultServiceExpenseAccount string    `json:"default_service_expense_account"`
	CreatedAt                    time.Time `json:"created_at"`
	UpdatedAt                    time.Time `json:"updated_at"`
}

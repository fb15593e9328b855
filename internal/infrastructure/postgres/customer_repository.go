package postgres

import (
	"context"
	"fmt"

	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/repository"
)

var (
	_ repository.CustomerRepository     = (*CustomerRepo)(nil)
	_ repository.SalesPartnerRepository = (*SalesPartnerRepo)(nil)
)

// CustomerRepo lectura de clientes sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de clientes.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerSelect = `SELECT name, customer_name, lead_name, prospect_name, sales_team FROM customers`

func (r *CustomerRepo) GetByName(ctx context.Context, name string) (*entity.Customer, error) {
	return r.getOne(ctx, customerSelect+` WHERE name = $1`, name)
}

// FindByLead cliente creado desde el lead (el primero por nombre).
func (r *CustomerRepo) FindByLead(ctx context.Context, lead string) (*entity.Customer, error) {
	if lead == "" {
		return nil, nil
	}
	return r.getOne(ctx, customerSelect+` WHERE lead_name = $1 ORDER BY name LIMIT 1`, lead)
}

// FindByProspect cliente creado desde el prospecto (el primero por nombre).
func (r *CustomerRepo) FindByProspect(ctx context.Context, prospect string) (*entity.Customer, error) {
	if prospect == "" {
		return nil, nil
	}
	return r.getOne(ctx, customerSelect+` WHERE prospect_name = $1 ORDER BY name LIMIT 1`, prospect)
}

func (r *CustomerRepo) getOne(ctx context.Context, query string, arg string) (*entity.Customer, error) {
	var (
		c    entity.Customer
		team []byte
	)
	err := r.q.QueryRow(ctx, query, arg).Scan(&c.Name, &c.CustomerName, &c.LeadName, &c.ProspectName, &team)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if c.SalesTeam, err = fromJSONB[entity.SalesTeamMember](team); err != nil {
		return nil, fmt.Errorf("customer sales_team: %w", err)
	}
	return &c, nil
}

// SalesPartnerRepo lectura de socios comerciales.
type SalesPartnerRepo struct {
	q Querier
}

// NewSalesPartnerRepository construye el adaptador de socios comerciales.
func NewSalesPartnerRepository(q Querier) *SalesPartnerRepo {
	return &SalesPartnerRepo{q: q}
}

func (r *SalesPartnerRepo) GetByName(ctx context.Context, name string) (*entity.SalesPartner, error) {
	var p entity.SalesPartner
	err := r.q.QueryRow(ctx, `SELECT name, commission_rate FROM sales_partners WHERE name = $1`, name).
		Scan(&p.Name, &p.CommissionRate)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales partner: %w", err)
	}
	return &p, nil
}

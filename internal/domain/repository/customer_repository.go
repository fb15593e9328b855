package repository

import (
	"context"

	"github.com/powerkey/power-app/internal/domain/entity"
)

// CustomerRepository define el puerto de lectura de clientes usado por los mapeos de venta.
type CustomerRepository interface {
	GetByName(ctx context.Context, name string) (*entity.Customer, error)
	// FindByLead y FindByProspect buscan el cliente ya creado desde un lead o un prospecto.
	FindByLead(ctx context.Context, lead string) (*entity.Customer, error)
	FindByProspect(ctx context.Context, prospect string) (*entity.Customer, error)
}

// SalesPartnerRepository puerto de lectura de socios comerciales.
type SalesPartnerRepository interface {
	GetByName(ctx context.Context, name string) (*entity.SalesPartner, error)
}

package repository

import (
	"context"

	"github.com/powerkey/power-app/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	CountByCompany(ctx context.Context, company string) (int, error)
	UpdateRole(ctx context.Context, id, role string) error
}

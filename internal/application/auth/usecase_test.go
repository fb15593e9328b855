package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powerkey/power-app/internal/application/auth"
	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/infrastructure/memory"
	"github.com/powerkey/power-app/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Repos().Companies.Create(context.Background(), &entity.Company{Name: "PowerKey", Abbr: "PK"}))
	return auth.NewAuthUseCase(store.Users(), store.Repos().Companies, auth.JWTConfig{Secret: secret, ExpMinutes: 10, Issuer: "power-app"})
}

func TestRegisterLogin(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "Ana@PowerKey.co", Password: "secreto123", Company: "PowerKey"})
	require.NoError(t, err)
	assert.Equal(t, "ana@powerkey.co", u.Email)
	assert.Equal(t, entity.RoleVentas, u.Role, "rol por defecto")

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@powerkey.co", Password: "secreto123"})
	require.NoError(t, err)
	claims, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "PowerKey", claims.Company)
}

func TestRegister_Errores(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "secreto123", Company: "PowerKey"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "A@b.co", Password: "secreto123", Company: "PowerKey"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "c@b.co", Password: "secreto123", Company: "Otra"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogin_Errores(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "secreto123", Company: "PowerKey"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.co", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@b.co", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ─── Roles ───────────────────────────────────────────────────────────────────

func TestRegister_SoloElPrimeroPuedeSerAdmin(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()

	first, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "jefe@b.co", Password: "secreto123", Company: "PowerKey", Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, first.Role)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "otro@b.co", Password: "secreto123", Company: "PowerKey", Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "compras@b.co", Password: "secreto123", Company: "PowerKey", Role: entity.RoleCompras})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAssignRole(t *testing.T) {
	uc := newAuth(t)
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@b.co", Password: "secreto123", Company: "PowerKey"})
	require.NoError(t, err)

	out, err := uc.AssignRole(ctx, "PowerKey", u.ID, dto.AssignRoleRequest{Role: entity.RoleCompras})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCompras, out.Role)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@b.co", Password: "secreto123"})
	require.NoError(t, err)
	claims, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCompras, claims.Role)

	// Un admin de otra empresa no ve al usuario.
	_, err = uc.AssignRole(ctx, "Otra", u.ID, dto.AssignRoleRequest{Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

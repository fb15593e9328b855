package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/powerkey/power-app/internal/application/dto"
	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/repository"
	"github.com/powerkey/power-app/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste. Devuelve ErrEmailAlreadyExists si el email ya existe.
// El registro es público: entra como ventas, salvo el primer usuario de la empresa, que puede pedir admin.
// Cualquier otro rol lo asigna un admin con AssignRole.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	company, err := uc.companyRepo.GetByName(ctx, in.Company)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.Invalid(domain.ErrNotFound, "empresa %s", in.Company)
	}
	role, err := uc.registerRole(ctx, company.Name, in.Role)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Company:      company.Name,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) registerRole(ctx context.Context, company, requested string) (string, error) {
	switch requested {
	case "", entity.RoleVentas:
		return entity.RoleVentas, nil
	case entity.RoleAdmin:
		n, err := uc.userRepo.CountByCompany(ctx, company)
		if err != nil {
			return "", err
		}
		if n == 0 {
			return entity.RoleAdmin, nil
		}
	}
	return "", domain.Invalid(domain.ErrForbidden, "el rol %s lo asigna un administrador", requested)
}

// AssignRole cambia el rol de un usuario de la empresa. Solo lo expone la ruta de administración.
func (uc *AuthUseCase) AssignRole(ctx context.Context, company, userID string, in dto.AssignRoleRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Company != company {
		return nil, domain.ErrUserNotFound
	}
	if user.Role == in.Role {
		return toUserResponse(user), nil
	}
	if err := uc.userRepo.UpdateRole(ctx, user.ID, in.Role); err != nil {
		return nil, err
	}
	user.Role = in.Role
	user.UpdatedAt = time.Now()
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Company, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Company:   u.Company,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

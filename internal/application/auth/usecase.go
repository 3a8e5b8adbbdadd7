package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-insights/internal/application/dto"
	"github.com/jhoicas/inventario-insights/internal/domain"
	"github.com/jhoicas/inventario-insights/internal/domain/repository"
	"github.com/jhoicas/inventario-insights/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login contra la tabla de usuarios y emisión de JWT.
type AuthUseCase struct {
	users  repository.UserRepository
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, jwtCfg: jwtCfg}
}

// Login verifica usuario/contraseña y genera el token.
// Usuario inexistente y contraseña incorrecta devuelven el mismo domain.ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, &domain.ValidationError{Field: "username/password", Reason: "requeridos"}
	}
	user, err := uc.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		User:      dto.UserDTO{ID: user.ID, Username: user.Username, Role: user.Role},
	}, nil
}

// HashPassword genera el hash bcrypt con el costo por defecto.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

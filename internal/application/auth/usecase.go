// Package auth contiene el login por PIN del operador de la tienda.
package auth

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/pkg/jwt"
)

// subject único sujeto emitido: la tienda tiene un solo operador.
const subject = "admin"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
	PINHash    string // hash bcrypt del PIN
}

// AuthUseCase casos de uso de autenticación.
type AuthUseCase struct {
	jwtCfg JWTConfig
	now    func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{jwtCfg: jwtCfg, now: time.Now}
}

// Login verifica el PIN contra el hash configurado y emite un JWT.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	pin := strings.TrimSpace(in.PIN)
	if pin == "" {
		return nil, domain.NewValidationError(domain.RuleRequiredField, "ingrese el PIN")
	}
	if uc.jwtCfg.PINHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.jwtCfg.PINHash), []byte(pin)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	expiresAt := uc.now().Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute)
	token, err := jwt.Generate(uc.jwtCfg.Secret, subject, jwt.RoleAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

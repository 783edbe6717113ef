package auth

import (
	"context"
	"errors"
	"strings"

	"mymixes/domain"
	"mymixes/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

const hashCost = 12

type (
	AuthService interface {
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Verify(ctx context.Context, token string) (domain.AuthUser, error)
	}

	authService struct {
		passwordHash string
		jwtService   jwt.JWTService
	}
)

// NewAuthService compares logins against one shared bcrypt hash.
func NewAuthService(passwordHash string, jwtService jwt.JWTService) AuthService {
	return &authService{
		passwordHash: strings.TrimSpace(passwordHash),
		jwtService:   jwtService,
	}
}

func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	if req.Password == "" {
		return domain.LoginResponse{}, domain.ErrPasswordRequired
	}
	if s.passwordHash == "" {
		return domain.LoginResponse{}, domain.ErrServerConfig
	}

	err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(req.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		// a malformed hash is a deployment problem, not a bad password
		return domain.LoginResponse{}, domain.ErrServerConfig
	}

	token, claims, err := s.jwtService.GenerateToken(domain.RoleAdmin)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		Token: token,
		User:  authUser(claims),
	}, nil
}

func (s *authService) Verify(ctx context.Context, token string) (domain.AuthUser, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return domain.AuthUser{}, err
	}
	return authUser(claims), nil
}

func authUser(claims *jwt.AdminClaims) domain.AuthUser {
	user := domain.AuthUser{Role: claims.Role}
	if claims.IssuedAt != nil {
		iat := claims.IssuedAt.Time.UTC()
		user.IssuedAt = &iat
	}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time.UTC()
		user.Expires = &exp
	}
	return user
}

// HashPassword produces the value expected in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

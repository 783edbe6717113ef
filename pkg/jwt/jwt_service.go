package jwt

import (
	"errors"
	"fmt"
	"time"

	"mymixes/domain"

	"github.com/golang-jwt/jwt/v4"
)

const issuer = "MYMIXES"

type (
	JWTService interface {
		GenerateToken(role string) (string, *AdminClaims, error)
		ValidateToken(token string) (*AdminClaims, error)
	}

	// AdminClaims carries only the role. There are no per-user accounts.
	AdminClaims struct {
		Role string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		lifetime  time.Duration
	}
)

func NewJWTService(secretKey string, lifetime time.Duration) JWTService {
	return &jwtService{
		secretKey: secretKey,
		issuer:    issuer,
		lifetime:  lifetime,
	}
}

func (j *jwtService) GenerateToken(role string) (string, *AdminClaims, error) {
	if j.secretKey == "" {
		return "", nil, domain.ErrServerConfig
	}

	now := time.Now()
	claims := &AdminClaims{
		role,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.lifetime)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateToken(token string) (*AdminClaims, error) {
	if j.secretKey == "" {
		return nil, domain.ErrServerConfig
	}

	t_Token, err := jwt.ParseWithClaims(token, &AdminClaims{}, j.parseToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(*AdminClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

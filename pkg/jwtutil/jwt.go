package jwtutil

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/muhsinkalodi/qmexai-ecom/pkg/config"
)

// UserClaims represents the JWT claims carried by a session token
type UserClaims struct {
	IsAdmin bool `json:"is_admin"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies session tokens. It is configured once at
// startup from the JWT config and carries no other state.
type Issuer struct {
	secret        []byte
	expireMinutes int
}

// New creates an Issuer from the JWT configuration
func New(cfg *config.JWTConfig) *Issuer {
	return &Issuer{
		secret:        []byte(cfg.SecretKey),
		expireMinutes: cfg.ExpireMinutes,
	}
}

// ExpireMinutes returns the configured token lifetime in minutes
func (i *Issuer) ExpireMinutes() int {
	return i.expireMinutes
}

// GenerateToken creates a signed token with the subject email and admin
// flag. When expireMinutes is not positive the token falls back to a
// 60-minute lifetime; callers currently always pass the configured value,
// so the fallback is unreachable today.
func (i *Issuer) GenerateToken(email string, isAdmin bool, expireMinutes int) (string, error) {
	if expireMinutes <= 0 {
		expireMinutes = 60
	}

	claims := UserClaims{
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expireMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// ValidateToken validates and parses a session token
func (i *Issuer) ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}

package jwtauth

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-registry/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Config del emisor/verificador HS256.
type Config struct {
	Secret []byte

	// TTL del token. Si es <= 0 se usan 24h.
	TTL time.Duration
}

// JWT implementa auth.TokenIssuer y auth.TokenVerifier con HS256.
type JWT struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(cfg Config) *JWT {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWT{
		secret: cfg.Secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (j *JWT) Issue(claims auth.Claims) (string, error) {
	if strings.TrimSpace(claims.UserID) == "" {
		return "", errors.New("claims missing user id")
	}

	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   claims.UserID,
		"email": claims.Email,
		"role":  claims.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(j.ttl).Unix(),
	})
	return token.SignedString(j.secret)
}

func (j *JWT) Verify(ctx context.Context, tokenString string) (auth.Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return j.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return j.now() }))
	if err != nil || !token.Valid {
		return auth.Claims{}, ErrTokenInvalid
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return auth.Claims{}, ErrTokenInvalid
	}

	sub, _ := mapClaims["sub"].(string)
	if strings.TrimSpace(sub) == "" {
		return auth.Claims{}, ErrTokenInvalid
	}
	email, _ := mapClaims["email"].(string)
	role, _ := mapClaims["role"].(string)

	return auth.Claims{
		UserID: sub,
		Email:  email,
		Role:   role,
	}, nil
}

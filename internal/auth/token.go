package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalid = errors.New("invalid token")

type Claims struct {
	Service string `json:"svc,omitempty"`
	jwt.RegisteredClaims
}

// Validator accepts either the shared static token or, when a secret is
// configured, an HS256 JWT signed with it.
type Validator struct {
	static []byte
	secret []byte
}

func NewValidator(staticToken, jwtSecret string) *Validator {
	return &Validator{static: []byte(staticToken), secret: []byte(jwtSecret)}
}

func (v *Validator) Validate(token string) error {
	if token == "" {
		return ErrInvalid
	}
	if len(v.static) > 0 && subtle.ConstantTimeCompare([]byte(token), v.static) == 1 {
		return nil
	}
	if len(v.secret) > 0 {
		if _, err := Parse(token, v.secret); err == nil {
			return nil
		}
	}
	return ErrInvalid
}

func Generate(secret []byte, service string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Service: service,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   service,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func Parse(tokenStr string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalid
	}
	if claims, ok := token.Claims.(*Claims); ok {
		return claims, nil
	}
	return nil, ErrInvalid
}

package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultServiceTokenExpiry = time.Minute

// ServiceTokenSigner issues the short-lived HS256 tokens this service presents
// to upstream APIs.
type ServiceTokenSigner struct {
	secret  []byte
	subject string
	expiry  time.Duration
	now     func() time.Time
}

func NewServiceTokenSigner(secret, subject string, expiry time.Duration) (*ServiceTokenSigner, error) {
	if secret == "" {
		return nil, errors.New("service token secret must not be empty")
	}
	if expiry <= 0 {
		expiry = defaultServiceTokenExpiry
	}
	return &ServiceTokenSigner{
		secret:  []byte(secret),
		subject: subject,
		expiry:  expiry,
		now:     time.Now,
	}, nil
}

func (s *ServiceTokenSigner) GenerateToken() (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   s.subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

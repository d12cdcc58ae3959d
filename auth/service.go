package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// SessionCookieName is the cookie carrying the admin session token.
const SessionCookieName = "portfolio_admin_session"

const sessionSubject = "admin"

var (
	ErrWrongPassword  = errors.New("wrong password")
	ErrInvalidSession = errors.New("invalid session")
)

// Service issues and verifies admin session tokens. The admin password is
// checked server-side against a bcrypt hash, and sessions are signed HS256
// JWTs, so no privileged endpoint ever trusts client-local state.
type Service struct {
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	// ability to inject the clock (for unit testing expiry)
	NowFunc func() time.Time
}

func NewService(passwordHash, secret string, ttl time.Duration) *Service {
	return &Service{
		passwordHash: []byte(passwordHash),
		secret:       []byte(secret),
		ttl:          ttl,
		NowFunc:      time.Now,
	}
}

// TTL returns the configured session lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Login verifies the admin password and returns a signed session token.
func (s *Service) Login(password string) (string, error) {
	if len(s.passwordHash) == 0 {
		return "", ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrWrongPassword
	}

	now := s.NowFunc()
	claims := jwt.RegisteredClaims{
		Subject:   sessionSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify reports whether tokenStr is a live admin session token.
func (s *Service) Verify(tokenStr string) error {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.NowFunc),
		jwt.WithExpirationRequired(),
	)

	claims := &jwt.RegisteredClaims{}
	token, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidSession
	}
	if claims.Subject != sessionSubject {
		return ErrInvalidSession
	}

	return nil
}

// HashPassword produces the bcrypt hash expected in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

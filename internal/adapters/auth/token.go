package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"confsite/internal/domain"
)

// ErrInvalidToken is returned by Verify for malformed, forged or expired tokens.
var ErrInvalidToken = errors.New("invalid or expired session token")

const sessionIssuer = "confsite"

type sessionClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// SessionTokens issues and verifies HS256-signed session tokens. The subject is the user id.
type SessionTokens struct {
	secret []byte
	now    func() time.Time
}

var (
	_ domain.TokenIssuer   = (*SessionTokens)(nil)
	_ domain.TokenVerifier = (*SessionTokens)(nil)
)

// NewSessionTokens returns SessionTokens signing with secret.
func NewSessionTokens(secret string) *SessionTokens {
	return &SessionTokens{secret: []byte(secret), now: time.Now}
}

// Issue signs a token for userID valid for expiry.
func (s *SessionTokens) Issue(userID int64, username string, expiry time.Duration) (string, error) {
	now := s.now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Username: username,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks signature, issuer and expiry and returns the user id.
func (s *SessionTokens) Verify(token string) (int64, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return id, nil
}

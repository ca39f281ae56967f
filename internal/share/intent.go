package share

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// intentClaims binds a share code to the storage key minted for it.
type intentClaims struct {
	StorageKey string `json:"key"`
	jwt.RegisteredClaims
}

// IntentSigner mints and checks HS256 tokens proving a (code, storage key) pair was issued here.
type IntentSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIntentSigner creates an IntentSigner. ttl bounds how long after issuance an upload may be confirmed.
func NewIntentSigner(secret string, ttl time.Duration) *IntentSigner {
	return &IntentSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign returns a token for code and key together with its expiry.
func (s *IntentSigner) Sign(code, key string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	claims := intentClaims{
		StorageKey: key,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   code,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign intent: %w", err)
	}
	return token, exp, nil
}

// Verify checks the token signature and expiry and that it was minted for exactly code and key.
func (s *IntentSigner) Verify(token, code, key string) error {
	if token == "" {
		return fmt.Errorf("%w: missing intent token", ErrIntentMismatch)
	}
	claims := &intentClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("%w: intent token expired", ErrIntentMismatch)
		}
		return fmt.Errorf("%w: %v", ErrIntentMismatch, err)
	}
	if claims.Subject != code || claims.StorageKey != key {
		return fmt.Errorf("%w: token was issued for a different file", ErrIntentMismatch)
	}
	return nil
}

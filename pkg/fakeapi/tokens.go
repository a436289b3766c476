package fakeapi

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "storefront-fakeapi"

// Claims are carried by issued tokens.
type Claims struct {
	UserID   int64    `json:"userId"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// IssueToken signs a token for username valid for ttl. A negative ttl yields
// an already expired token.
func (a *API) IssueToken(username string, ttl time.Duration) (string, error) {
	a.mu.RLock()
	acc, ok := a.accounts[username]
	a.mu.RUnlock()
	if !ok {
		return "", ErrUnknownUser
	}

	now := time.Now().UTC()
	claims := Claims{
		UserID:   acc.ID,
		Username: acc.Username,
		Roles:    acc.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(acc.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Revoke makes a previously issued token fail authentication.
func (a *API) Revoke(token string) {
	a.mu.Lock()
	a.revoked[token] = struct{}{}
	a.mu.Unlock()
}

func (a *API) parseToken(token string) (*Claims, error) {
	a.mu.RLock()
	_, revoked := a.revoked[token]
	a.mu.RUnlock()
	if revoked {
		return nil, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return a.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

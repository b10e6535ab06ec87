// Package token issues and parses the RS256 identity tokens. The private key
// stays on the issuing side; verification only ever needs the public key, so the
// verifier shares no secret with the issuer.
package token

import (
	"crypto/rsa"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/frostkeep/frostkeep/internal/domain"
	"github.com/frostkeep/frostkeep/internal/errs"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Claims is the token payload: subject id plus role.
type Claims struct {
	UserID int64  `json:"uid,string"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Elevated reports whether the role claim carries the administrative capability.
func (c *Claims) Elevated() bool {
	return c.Role == RoleAdmin
}

// Issuer signs identity tokens with the server-side RSA private key.
type Issuer struct {
	key *rsa.PrivateKey
	ttl time.Duration
}

func NewIssuer(key *rsa.PrivateKey, ttl time.Duration) *Issuer {
	return &Issuer{key: key, ttl: ttl}
}

// Issue builds and signs a token for the given user.
func (i *Issuer) Issue(user *domain.User) (string, error) {
	role := RoleUser
	if user.IsAdmin {
		role = RoleAdmin
	}
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.AccountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(i.key)
}

// Parse verifies signature and expiry against the public key and returns the
// decoded claims. Any verification failure maps to an authentication error.
func Parse(raw string, pub *rsa.PublicKey) (*Claims, error) {
	claims := new(Claims)
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errs.Unauthenticated("Bad token")
		}
		return pub, nil
	})
	if err != nil || !tok.Valid {
		return nil, errs.Unauthenticated("Bad token")
	}
	return claims, nil
}

// LoadPrivateKey reads a PEM-encoded RSA private key file.
func LoadPrivateKey(file string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return jwt.ParseRSAPrivateKeyFromPEM(data)
}

// LoadPublicKey reads a PEM-encoded RSA public key file.
func LoadPublicKey(file string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return jwt.ParseRSAPublicKeyFromPEM(data)
}

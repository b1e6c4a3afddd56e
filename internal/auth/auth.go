// Package auth implements the shared-credential login and bearer token
// verification used by every protected endpoint.
package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"selrs/internal/core"
)

// Credentials is the single static identity configured at startup. Injected
// through the Gate rather than read from a process-wide variable.
type Credentials struct {
	Username string
	Password string
}

// Gate issues and validates HS256-signed bearer tokens against a shared
// secret. Tokens carry the username and an absolute expiration.
type Gate struct {
	secret []byte
	creds  Credentials
	ttl    time.Duration
	now    func() time.Time
}

type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// NewGate creates a gate with the given signing secret, admin identity and
// token lifetime.
func NewGate(secret string, creds Credentials, ttl time.Duration) *Gate {
	return &Gate{
		secret: []byte(secret),
		creds:  creds,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Login checks the submitted pair against the configured identity and
// returns a signed token on success. Comparison is constant-time; the
// plaintext shared credential itself is a documented weakness of the
// deployment model, not of this check.
func (g *Gate) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.creds.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.creds.Password)) == 1
	if !userOK || !passOK {
		return "", core.ErrInvalidCredentials
	}

	now := g.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	})

	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a bearer token, returning the subject
// username. Missing, malformed, expired and badly signed tokens all map to
// core.ErrInvalidToken; the HTTP layer turns that into a 401.
func (g *Gate) Verify(token string) (string, error) {
	if token == "" {
		return "", core.ErrInvalidToken
	}

	var parsed claims
	_, err := jwt.ParseWithClaims(token, &parsed, func(t *jwt.Token) (any, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrInvalidToken, err)
	}
	if parsed.Username == "" {
		return "", core.ErrInvalidToken
	}
	return parsed.Username, nil
}

// FromAuthorizationHeader extracts the bearer token from an Authorization
// header value. Returns an empty string when no token is present.
func FromAuthorizationHeader(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(parts[len(parts)-1])
}

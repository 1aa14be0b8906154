// Package auth provides token issuance/validation, password hashing, and the
// HTTP authentication middleware.
//
// TOKEN SCHEME:
// Tokens are JWTs signed with HMAC-SHA256 and a single shared secret amongst
// all issuers and verifiers — stateless, nothing is stored server-side. The
// claim set is NOT the registered exp/iat/sub trio; it is the legacy shape
// this API's clients already hold:
//
//	{"id": "<user id>", "expires": "YYYY-MM-DD HH:MM:SS"}
//
// "expires" is a wall-clock string in the process-local timezone, set to one
// hour after issuance. Expiry is enforced at DAY granularity: a token is
// rejected only once now is a full 24 hours or more past the expires
// timestamp. A token therefore keeps validating for up to just under 24
// hours after its nominal expiry. That is the contract clients were built
// against; do not tighten it to the usual second-precision check.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// timeLayout is the format of the "expires" claim.
const timeLayout = "2006-01-02 15:04:05"

// tokenTTL is the nominal lifetime stamped into new tokens.
const tokenTTL = time.Hour

// Sentinel errors returned by Validate. The middleware maps all of them to a
// 400 auth failure; they are distinct so tests and logs can tell which step
// rejected the token.
var (
	// ErrInvalidToken: the string did not parse as a JWT or its HS256
	// signature did not verify against the shared secret.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrInvalidClaims: the payload decoded but did not carry a usable
	// {id, expires} pair.
	ErrInvalidClaims = errors.New("auth: invalid token claims")
	// ErrTokenExpired: now is at least one whole day past "expires".
	ErrTokenExpired = errors.New("auth: token expired")
)

// TokenService issues and validates the legacy-shape JWTs.
// It holds the HMAC secret used for both signing and verifying.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given shared secret.
func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("auth: token secret must not be empty")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims carries the legacy payload. RegisteredClaims is embedded only to
// satisfy the jwt.Claims interface — all its fields stay zero and marshal to
// nothing, so the library's own exp/nbf validation never triggers and the
// day-granularity check below is the sole expiry gate.
type claims struct {
	Identity string `json:"id"`
	Expires  string `json:"expires"`
	jwt.RegisteredClaims
}

// Issue creates a signed token for the given user id, expiring (nominally)
// one hour from now.
func (s *TokenService) Issue(userID string) (string, error) {
	return s.IssueWithExpiry(userID, time.Now().Add(tokenTTL))
}

// IssueWithExpiry creates a signed token with an explicit expiry timestamp.
// Exported for tests and for any caller that needs a non-default lifetime.
// The timestamp is rendered in the local timezone, matching Validate.
func (s *TokenService) IssueWithExpiry(userID string, expires time.Time) (string, error) {
	c := claims{
		Identity: userID,
		Expires:  expires.Local().Format(timeLayout),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string and returns the identity it
// carries.
//
// Checks, in order:
//  1. JWT parses and its HS256 signature verifies → else ErrInvalidToken.
//     Restricting to HS256 also blocks algorithm-confusion tokens.
//  2. The payload yields non-empty "id" and a parseable "expires" in the
//     local timezone → else ErrInvalidClaims.
//  3. now - expires < 24h → else ErrTokenExpired. The subtraction is done
//     in the same local timezone the timestamp was rendered in.
//
// Pure function of the input and the wall clock; no storage access. Whether
// the identified user still exists is a separate per-request check (see
// service.ResolveIdentity).
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || c.Identity == "" || c.Expires == "" {
		return "", ErrInvalidClaims
	}

	expires, err := time.ParseInLocation(timeLayout, c.Expires, time.Local)
	if err != nil {
		return "", fmt.Errorf("%w: bad expires timestamp %q", ErrInvalidClaims, c.Expires)
	}

	if time.Since(expires) >= 24*time.Hour {
		return "", ErrTokenExpired
	}

	return c.Identity, nil
}

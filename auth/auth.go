// Package auth implements the pluggable authentication engine: path
// exclusion, the credential strategies, session stores, password hashing, and
// the credential service behind the registration/login/reset endpoints.
package auth

import (
	"net/http"

	"github.com/gatehouse-dev/gatehouse/store"
)

// Strategy answers, per request, whether authentication applies and which
// principal the request carries. Implementations never perform transport I/O
// beyond reading the request, and report every failure through their return
// values.
type Strategy interface {
	// RequiresAuth reports whether the given request path must be
	// authenticated under this strategy.
	RequiresAuth(path string) bool

	// ExtractCredential returns the transport-level credential the strategy
	// reads (Authorization header or session cookie) and whether it was
	// present on the request.
	ExtractCredential(r *http.Request) (string, bool)

	// ResolvePrincipal returns the authenticated user for the request, or
	// nil when the credential is missing, malformed, invalid, or expired.
	ResolvePrincipal(r *http.Request) *store.User
}

// NullStrategy disables authentication entirely: no path requires auth and no
// request resolves to a principal.
type NullStrategy struct{}

var _ Strategy = NullStrategy{}

func (NullStrategy) RequiresAuth(string) bool { return false }

func (NullStrategy) ExtractCredential(*http.Request) (string, bool) { return "", false }

func (NullStrategy) ResolvePrincipal(*http.Request) *store.User { return nil }

// AuthorizationHeader returns the raw Authorization header value and whether
// it was present.
func AuthorizationHeader(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	v := r.Header.Get("Authorization")
	return v, v != ""
}

// SessionCookie returns the value of the named session cookie and whether it
// was present.
func SessionCookie(r *http.Request, name string) (string, bool) {
	if r == nil || name == "" {
		return "", false
	}
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

package auth

import (
	"encoding/base64"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gatehouse-dev/gatehouse/store"
)

const basicPrefix = "Basic "

// BasicStrategy authenticates requests by HTTP Basic credentials carried in
// the Authorization header: the decoded payload is "email:password", looked
// up against the user store and verified against the stored hash. Every
// malformed input degrades to an unresolved principal, never an error.
type BasicStrategy struct {
	users    store.UserStore
	hasher   Hasher
	excluded []string
}

var _ Strategy = (*BasicStrategy)(nil)

// NewBasicStrategy creates a Basic-auth strategy over the given user store.
// excluded is the ordered path-exclusion list bound for the process lifetime.
func NewBasicStrategy(users store.UserStore, hasher Hasher, excluded []string) *BasicStrategy {
	return &BasicStrategy{users: users, hasher: hasher, excluded: excluded}
}

func (s *BasicStrategy) RequiresAuth(path string) bool {
	return RequiresAuth(path, s.excluded)
}

func (s *BasicStrategy) ExtractCredential(r *http.Request) (string, bool) {
	return AuthorizationHeader(r)
}

func (s *BasicStrategy) ResolvePrincipal(r *http.Request) *store.User {
	header, ok := AuthorizationHeader(r)
	if !ok {
		return nil
	}
	token, ok := extractBasicToken(header)
	if !ok {
		return nil
	}
	decoded, ok := decodeBasicToken(token)
	if !ok {
		return nil
	}
	email, password, ok := splitCredentials(decoded)
	if !ok {
		return nil
	}
	user, err := s.users.UserByEmail(email)
	if err != nil {
		return nil
	}
	if !s.hasher.Verify(password, string(user.PasswordHash)) {
		return nil
	}
	return user
}

// extractBasicToken returns the header remainder after the "Basic " scheme
// prefix.
func extractBasicToken(header string) (string, bool) {
	if !strings.HasPrefix(header, basicPrefix) {
		return "", false
	}
	return header[len(basicPrefix):], true
}

// decodeBasicToken base64-decodes the token as UTF-8 text. Malformed base64
// or invalid UTF-8 reads as absent.
func decodeBasicToken(token string) (string, bool) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", false
	}
	if !utf8.Valid(raw) {
		return "", false
	}
	return string(raw), true
}

// splitCredentials splits the decoded payload on the first ':' only, so
// passwords may themselves contain ':' while emails may not.
func splitCredentials(decoded string) (email, password string, ok bool) {
	return strings.Cut(decoded, ":")
}

package auth

import (
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"
)

// Hasher hashes login secrets on registration and verifies them on login.
// Hash salts freshly on every call, so two hashes of the same plaintext never
// compare equal directly; Verify is the only valid comparison.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, stored string) bool
}

// argon2idParams are OWASP minimum parameters for Argon2id.
var argon2idParams = &argon2id.Params{
	Memory:      47104,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// normalizePassword applies NFKD so visually identical passphrases hash
// identically across input methods.
func normalizePassword(s string) string {
	return norm.NFKD.String(s)
}

// VerifyPassword checks plaintext against a stored hash, dispatching on the
// hash format ("$argon2id$" PHC strings vs bcrypt's "$2" family) so a
// deployment can switch hashers without invalidating existing credentials.
// Comparison is constant-time inside the underlying primitives.
func VerifyPassword(plaintext, stored string) bool {
	plaintext = normalizePassword(plaintext)
	if strings.HasPrefix(stored, "$argon2id$") {
		match, err := argon2id.ComparePasswordAndHash(plaintext, stored)
		return err == nil && match
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)) == nil
}

// BcryptHasher hashes passwords with bcrypt. A zero Cost uses
// bcrypt.DefaultCost.
type BcryptHasher struct {
	Cost int
}

var _ Hasher = BcryptHasher{}

func (h BcryptHasher) Hash(plaintext string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(normalizePassword(plaintext)), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h BcryptHasher) Verify(plaintext, stored string) bool {
	return VerifyPassword(plaintext, stored)
}

// Argon2idHasher hashes passwords with Argon2id in PHC string format.
type Argon2idHasher struct {
	Params *argon2id.Params
}

var _ Hasher = Argon2idHasher{}

func (h Argon2idHasher) Hash(plaintext string) (string, error) {
	params := h.Params
	if params == nil {
		params = argon2idParams
	}
	return argon2id.CreateHash(normalizePassword(plaintext), params)
}

func (h Argon2idHasher) Verify(plaintext, stored string) bool {
	return VerifyPassword(plaintext, stored)
}

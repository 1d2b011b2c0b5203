package password

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// SHA512 es el hasher heredado: hexdigest sha512 sin salt ni rounds.
// Determinista por diseño del sistema original; vulnerable a rainbow
// tables (ver doc del package).
type SHA512 struct{}

func (SHA512) Hash(plain string) (string, error) {
	sum := sha512.Sum512([]byte(plain))
	return hex.EncodeToString(sum[:]), nil
}

func (s SHA512) Verify(plain, stored string) bool {
	digest, err := s.Hash(plain)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(digest), []byte(stored)) == 1
}

func (SHA512) Deterministic() bool { return true }

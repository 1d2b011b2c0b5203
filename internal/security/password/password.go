// Package password implementa los hashers de credenciales.
//
// El formato almacenado heredado es un sha512 hexdigest sin salt: es el
// formato que ya existe en las filas de users y permite el lookup por
// (username, digest) en una sola query. Es una debilidad conocida y
// documentada, no corregida en silencio: para deployments nuevos se puede
// seleccionar argon2id via config (security.password_scheme).
package password

import (
	"fmt"
	"strings"
)

// Hasher es la transformación one-way de passwords para storage/comparación.
type Hasher interface {
	// Hash digiere el plaintext al formato almacenado.
	Hash(plain string) (string, error)

	// Verify compara plaintext contra un digest almacenado.
	Verify(plain, stored string) bool

	// Deterministic indica si Hash produce siempre el mismo digest para el
	// mismo input. Un hasher determinista habilita el lookup de credenciales
	// por igualdad en una sola query; uno con salt obliga a fetch + Verify.
	Deterministic() bool
}

// New construye el hasher para el scheme configurado.
// Schemes soportados: "sha512" (default, formato heredado) y "argon2id".
func New(scheme string) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", "sha512":
		return SHA512{}, nil
	case "argon2id":
		return Argon2id{Params: DefaultParams}, nil
	default:
		return nil, fmt.Errorf("password: unknown scheme %q", scheme)
	}
}

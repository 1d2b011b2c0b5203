package jwt

import "errors"

// Errores del codec. Cada uno es una condición distinta e irrecuperable para
// el cliente; el boundary los mapea a 401/422.
var (
	// ErrMalformed indica que el token no se pudo decodificar o le faltan
	// claims estructurales (sub/jti).
	ErrMalformed = errors.New("token malformed")

	// ErrInvalidSignature indica que la firma no verifica contra el secret.
	ErrInvalidSignature = errors.New("token signature invalid")

	// ErrExpired indica que el token pasó su exp.
	ErrExpired = errors.New("token expired")
)

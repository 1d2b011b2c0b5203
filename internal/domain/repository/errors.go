package repository

import "errors"

var (
	// ErrNotFound indica que el recurso solicitado no existe.
	ErrNotFound = errors.New("not found")

	// ErrConflict indica un conflicto (duplicado o violación de constraint).
	// El insert fallido no deja fila parcial en la tabla de relación.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indica que los datos de entrada son inválidos.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyInput indica que un set de roles o resources llegó vacío.
	// El resolver nunca toca el store en este caso.
	ErrEmptyInput = errors.New("empty input")

	// ErrUnavailable indica que el backing store no está accesible.
	// En el path de autorización se trata como fail closed.
	ErrUnavailable = errors.New("store unavailable")
)

// IsNotFound verifica si el error es ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict verifica si el error es ErrConflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

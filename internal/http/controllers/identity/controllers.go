// Package identity contiene los controllers del CRUD de usuarios, roles y
// recursos, incluyendo los sub-recursos de relación many-to-many.
package identity

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/janus/internal/domain/repository"
	"github.com/dropDatabas3/janus/internal/http/httperrors"
	"github.com/dropDatabas3/janus/internal/security/password"
)

// Controllers agrupa todos los controllers del dominio identity.
type Controllers struct {
	Users     *UsersController
	Roles     *RolesController
	Resources *ResourcesController
}

// NewControllers crea el agregador de controllers identity.
func NewControllers(store repository.Store, hasher password.Hasher) *Controllers {
	return &Controllers{
		Users:     NewUsersController(store, hasher),
		Roles:     NewRolesController(store),
		Resources: NewResourcesController(store),
	}
}

// pathID extrae un id numérico del URL param de chi.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, httperrors.ErrBadRequest.WithDetail(name + " inválido")
	}
	return id, nil
}

// writeStoreError mapea errores del repositorio a respuestas HTTP.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		httperrors.WriteError(w, httperrors.ErrNotFound)
	case errors.Is(err, repository.ErrConflict):
		httperrors.WriteError(w, httperrors.ErrConflict.WithDetail(err.Error()))
	case errors.Is(err, repository.ErrInvalidInput):
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
	case errors.Is(err, repository.ErrUnavailable):
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable.WithDetail("base de datos no disponible"))
	default:
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}

package auth

import (
	"errors"
	"net/http"
	"strings"

	authsvc "github.com/dropDatabas3/janus/internal/auth"
	"github.com/dropDatabas3/janus/internal/blacklist"
	dto "github.com/dropDatabas3/janus/internal/http/dto/auth"
	"github.com/dropDatabas3/janus/internal/http/helpers"
	"github.com/dropDatabas3/janus/internal/http/httperrors"
	jwtx "github.com/dropDatabas3/janus/internal/jwt"
	"github.com/dropDatabas3/janus/internal/observability/logger"
)

// RevokeController maneja la revocación de tokens.
type RevokeController struct {
	service *authsvc.Service
}

// NewRevokeController crea un nuevo controller de revocación.
func NewRevokeController(service *authsvc.Service) *RevokeController {
	return &RevokeController{service: service}
}

// Revoke maneja POST /v1/revoke
// Revocar un token ya revocado es idempotente; revocar uno expirado es un
// no-op exitoso porque la validación temporal ya lo rechaza.
func (c *RevokeController) Revoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("RevokeController.Revoke"))

	var req dto.RevokeRequest
	if r.ContentLength > 0 {
		if err := helpers.ReadJSON(w, r, &req); err != nil {
			httperrors.WriteError(w, err)
			return
		}
	}

	// Sin body, el token puede venir como Bearer
	if req.Token == "" {
		if ah := strings.TrimSpace(r.Header.Get("Authorization")); strings.HasPrefix(strings.ToLower(ah), "bearer ") {
			req.Token = strings.TrimSpace(ah[len("Bearer "):])
		}
	}
	if req.Token == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("token es obligatorio"))
		return
	}

	if err := c.service.Revoke(ctx, req.Token); err != nil {
		log.Debug("revoke failed", logger.Err(err))
		switch {
		case errors.Is(err, jwtx.ErrMalformed), errors.Is(err, jwtx.ErrInvalidSignature):
			httperrors.WriteError(w, httperrors.ErrUnprocessable.WithDetail("token inválido"))
		case errors.Is(err, blacklist.ErrUnavailable):
			httperrors.WriteError(w, httperrors.ErrServiceUnavailable.WithDetail("blacklist no disponible"))
		default:
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

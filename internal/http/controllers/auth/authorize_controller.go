package auth

import (
	"errors"
	"net/http"

	authsvc "github.com/dropDatabas3/janus/internal/auth"
	"github.com/dropDatabas3/janus/internal/blacklist"
	"github.com/dropDatabas3/janus/internal/domain/repository"
	dto "github.com/dropDatabas3/janus/internal/http/dto/auth"
	"github.com/dropDatabas3/janus/internal/http/helpers"
	"github.com/dropDatabas3/janus/internal/http/httperrors"
	jwtx "github.com/dropDatabas3/janus/internal/jwt"
	"github.com/dropDatabas3/janus/internal/observability/logger"
)

// AuthorizeController resuelve grants de recursos para un token.
type AuthorizeController struct {
	service *authsvc.Service
}

// NewAuthorizeController crea un nuevo controller de autorización.
func NewAuthorizeController(service *authsvc.Service) *AuthorizeController {
	return &AuthorizeController{service: service}
}

// Authorize maneja POST /v1/authorize
// Valida el token (firma, expiración, blacklist) y devuelve el grant de
// cada recurso consultado: false, true o el value configurado.
func (c *AuthorizeController) Authorize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("AuthorizeController.Authorize"))

	var req dto.AuthorizeRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	if req.Token == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("token es obligatorio"))
		return
	}

	grants, claims, err := c.service.AuthorizeToken(ctx, req.Token, req.Resources)
	if err != nil {
		log.Debug("authorize failed", logger.Err(err))
		switch {
		case errors.Is(err, repository.ErrEmptyInput):
			httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("resources no puede estar vacío"))
		case errors.Is(err, jwtx.ErrExpired):
			httperrors.WriteError(w, httperrors.ErrUnauthorized.WithDetail("token expirado"))
		case errors.Is(err, authsvc.ErrRevoked):
			httperrors.WriteError(w, httperrors.ErrUnauthorized.WithDetail("token revocado"))
		case errors.Is(err, jwtx.ErrMalformed), errors.Is(err, jwtx.ErrInvalidSignature):
			httperrors.WriteError(w, httperrors.ErrUnprocessable.WithDetail("token inválido"))
		case errors.Is(err, blacklist.ErrUnavailable):
			httperrors.WriteError(w, httperrors.ErrServiceUnavailable.WithDetail("blacklist no disponible"))
		default:
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	log.Debug("authorize resolved",
		logger.UserID(claims.Subject),
		logger.Count(len(grants)),
	)

	helpers.WriteJSON(w, http.StatusOK, dto.AuthorizeResponse{Token: req.Token, Resources: grants})
}

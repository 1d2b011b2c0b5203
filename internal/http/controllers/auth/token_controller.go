package auth

import (
	"errors"
	"net/http"
	"time"

	authsvc "github.com/dropDatabas3/janus/internal/auth"
	dto "github.com/dropDatabas3/janus/internal/http/dto/auth"
	"github.com/dropDatabas3/janus/internal/http/helpers"
	"github.com/dropDatabas3/janus/internal/http/httperrors"
	"github.com/dropDatabas3/janus/internal/observability/logger"
	"github.com/dropDatabas3/janus/internal/domain/repository"
)

// TokenController maneja la emisión de tokens.
type TokenController struct {
	service *authsvc.Service
}

// NewTokenController crea un nuevo controller de emisión.
func NewTokenController(service *authsvc.Service) *TokenController {
	return &TokenController{service: service}
}

// Issue maneja POST /v1/token
func (c *TokenController) Issue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("TokenController.Issue"))

	var req dto.TokenRequest
	if err := helpers.ReadJSON(w, r, &req); err != nil {
		httperrors.WriteError(w, err)
		return
	}

	if req.Username == "" || req.Password == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("username y password son obligatorios"))
		return
	}

	token, claims, err := c.service.Issue(ctx, req.Username, req.Password)
	if err != nil {
		log.Debug("token issue failed", logger.Username(req.Username), logger.Err(err))
		switch {
		case errors.Is(err, authsvc.ErrAuthenticationFailed):
			httperrors.WriteError(w, httperrors.ErrUnauthorized.WithDetail("usuario o password inválidos"))
		case errors.Is(err, repository.ErrUnavailable):
			httperrors.WriteError(w, httperrors.ErrServiceUnavailable.WithDetail("base de datos no disponible"))
		default:
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	log.Info("token issued",
		logger.UserID(claims.Subject),
		logger.TokenID(claims.TokenID),
		logger.RoleIDs(claims.Roles),
	)

	w.Header().Set("Cache-Control", "no-store")
	helpers.WriteJSON(w, http.StatusOK, dto.TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(claims.ExpiresAt.Sub(claims.IssuedAt) / time.Second),
	})
}

// Package auth implementa el coordinador del ciclo de vida de tokens:
// emisión, revocación y autorización.
//
// Estados de un token: issued → valid (mientras no expiró ni fue revocado)
// → {expired | revoked}, ambos terminales.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dropDatabas3/janus/internal/domain/repository"
	jwtx "github.com/dropDatabas3/janus/internal/jwt"
	"github.com/dropDatabas3/janus/internal/metrics"
	"github.com/dropDatabas3/janus/internal/observability/logger"
	"github.com/dropDatabas3/janus/internal/rbac"
)

// Errores del coordinador.
var (
	// ErrAuthenticationFailed es el resultado negativo normal de un login:
	// no es distinguible entre username inexistente y password incorrecto.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrRevoked indica que el jti del token está en el blacklist.
	ErrRevoked = errors.New("token revoked")
)

// Revoker es el contrato del blacklist visto desde el coordinador.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Deps contiene las dependencias del servicio. Todo se inyecta en
// construcción; el coordinador no cachea estado de los stores entre calls.
type Deps struct {
	Manager   UserManager
	Issuer    *jwtx.Issuer
	Blacklist Revoker
	Resolver  *rbac.Resolver
	Store     repository.AccessRepository
}

// Service orquesta manager, codec, blacklist y resolver.
type Service struct {
	deps Deps
}

func NewService(deps Deps) *Service {
	return &Service{deps: deps}
}

// Issue: autentica y emite un access token con identidad + roles embebidos.
func (s *Service) Issue(ctx context.Context, username, plaintext string) (string, *jwtx.Claims, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth"),
		logger.Op("Issue"),
		logger.Username(username),
	)

	au, err := s.deps.Manager.Authenticate(ctx, username, plaintext)
	if err != nil {
		if errors.Is(err, ErrAuthenticationFailed) {
			metrics.LoginsTotal.WithLabelValues("failed").Inc()
			log.Info("authentication failed")
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
			log.Error("authentication error", logger.Err(err))
		}
		return "", nil, err
	}

	token, cl, err := s.deps.Issuer.Issue(au.ID, au.Roles, time.Now())
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	metrics.TokensIssuedTotal.Inc()
	log.Info("token issued", logger.UserID(au.ID), logger.TokenID(cl.TokenID), logger.RoleIDs(au.Roles))
	return token, cl, nil
}

// ValidateToken decodifica y verifica el token contra el blacklist.
// Implementa la regla de confianza completa: firma ∧ no expirado ∧ no
// revocado. Un blacklist inalcanzable propaga ErrUnavailable: fail closed,
// nunca se saltea el chequeo de revocación.
func (s *Service) ValidateToken(ctx context.Context, token string) (*jwtx.Claims, error) {
	cl, err := s.deps.Issuer.Decode(token)
	if err != nil {
		return nil, err
	}
	revoked, err := s.deps.Blacklist.IsRevoked(ctx, cl.TokenID)
	if err != nil {
		metrics.BlacklistErrorsTotal.Inc()
		logger.From(ctx).Error("blacklist unreachable, failing closed", logger.Err(err), logger.TokenID(cl.TokenID))
		return nil, err
	}
	if revoked {
		return nil, ErrRevoked
	}
	return cl, nil
}

// Revoke inserta el jti del token presentado en el blacklist. El id sale del
// token ya verificado, nunca de input del usuario. Idempotente: re-revocar
// o revocar un token ya expirado es éxito no-op (un token expirado ya es
// inválido por sí mismo).
func (s *Service) Revoke(ctx context.Context, token string) error {
	cl, err := s.deps.Issuer.Decode(token)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			return nil
		}
		return err
	}
	if err := s.deps.Blacklist.Revoke(ctx, cl.TokenID); err != nil {
		return err
	}
	metrics.TokensRevokedTotal.Inc()
	logger.From(ctx).Info("token revoked",
		logger.Component("auth"),
		logger.UserID(cl.Subject),
		logger.TokenID(cl.TokenID),
	)
	return nil
}

// AuthorizeToken: decode → blacklist → resolver. Retorna la matriz de
// permisos para los recursos pedidos y las claims del token.
//
// Un token sin claim de roles (o con lista vacía) no es error duro: el
// resultado deniega todos los recursos pedidos sin tocar el store.
func (s *Service) AuthorizeToken(ctx context.Context, token string, resources []string) (map[string]any, *jwtx.Claims, error) {
	if len(resources) == 0 {
		return nil, nil, repository.ErrEmptyInput
	}

	cl, err := s.ValidateToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	matrix, err := s.AuthorizeRoles(ctx, cl.Roles, resources)
	if err != nil {
		return nil, nil, err
	}
	return matrix, cl, nil
}

// AuthorizeRoles resuelve un set de roles ya verificado (p.ej. del request
// en curso) contra los recursos pedidos. Es el path que usan los guards de
// los endpoints de identidad.
func (s *Service) AuthorizeRoles(ctx context.Context, roles []int64, resources []string) (map[string]any, error) {
	if len(resources) == 0 {
		return nil, repository.ErrEmptyInput
	}
	if len(roles) == 0 {
		matrix := rbac.DenyAll(resources)
		metrics.AuthorizeDecisionsTotal.WithLabelValues("deny").Add(float64(len(resources)))
		return matrix, nil
	}

	matrix, err := s.deps.Resolver.Authorize(ctx, roles, resources)
	if err != nil {
		return nil, err
	}
	for _, v := range matrix {
		if b, ok := v.(bool); ok && !b {
			metrics.AuthorizeDecisionsTotal.WithLabelValues("deny").Inc()
		} else {
			metrics.AuthorizeDecisionsTotal.WithLabelValues("allow").Inc()
		}
	}
	return matrix, nil
}

// UserResources retorna los paths alcanzables desde los roles del caller.
func (s *Service) UserResources(ctx context.Context, cl *jwtx.Claims) ([]string, error) {
	if len(cl.Roles) == 0 {
		return []string{}, nil
	}
	paths, err := s.deps.Store.ReachableResources(ctx, cl.Roles)
	if err != nil {
		return nil, err
	}
	if paths == nil {
		paths = []string{}
	}
	return paths, nil
}

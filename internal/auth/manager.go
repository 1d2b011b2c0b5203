package auth

import (
	"context"
	"errors"

	"github.com/dropDatabas3/janus/internal/domain/repository"
	"github.com/dropDatabas3/janus/internal/observability/logger"
	"github.com/dropDatabas3/janus/internal/security/password"
)

// UserManager es la capability de un backend de identidad: autenticar y
// registrar usuarios. Hay una sola implementación concreta (credenciales
// locales); un backend federado sería una segunda implementación del mismo
// contrato.
type UserManager interface {
	// Authenticate valida username/password y retorna identidad + roles.
	// Credenciales que no matchean => ErrAuthenticationFailed: es el
	// resultado negativo normal, indistinguible entre username inexistente
	// y password incorrecto.
	Authenticate(ctx context.Context, username, plaintext string) (*repository.AuthenticatedUser, error)

	// Register da de alta un usuario local con el password ya digerido por
	// el hasher del manager. Username duplicado => repository.ErrConflict.
	Register(ctx context.Context, username, plaintext string, displayName *string) (int64, error)
}

// LocalUserManager autentica contra el credential store local.
type LocalUserManager struct {
	store  repository.Store
	hasher password.Hasher
}

var _ UserManager = (*LocalUserManager)(nil)

func NewLocalUserManager(store repository.Store, hasher password.Hasher) *LocalUserManager {
	return &LocalUserManager{store: store, hasher: hasher}
}

func (m *LocalUserManager) Authenticate(ctx context.Context, username, plaintext string) (*repository.AuthenticatedUser, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("auth.manager"),
		logger.Op("Authenticate"),
	)

	// Hasher determinista: lookup por (username, digest) en una sola query.
	// Hasher con salt: fetch por username y Verify en memoria. Ambos paths
	// colapsan cualquier miss en el mismo resultado negativo.
	if m.hasher.Deterministic() {
		digest, err := m.hasher.Hash(plaintext)
		if err != nil {
			return nil, err
		}
		au, err := m.store.GetUserByCredentials(ctx, username, digest)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				log.Debug("credentials did not match")
				return nil, ErrAuthenticationFailed
			}
			return nil, err
		}
		return au, nil
	}

	u, roles, err := m.store.GetUserWithRolesByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Debug("credentials did not match")
			return nil, ErrAuthenticationFailed
		}
		return nil, err
	}
	if !m.hasher.Verify(plaintext, u.PasswordHash) {
		log.Debug("credentials did not match")
		return nil, ErrAuthenticationFailed
	}
	return &repository.AuthenticatedUser{ID: u.ID, Roles: roles}, nil
}

func (m *LocalUserManager) Register(ctx context.Context, username, plaintext string, displayName *string) (int64, error) {
	digest, err := m.hasher.Hash(plaintext)
	if err != nil {
		return 0, err
	}
	return m.store.CreateUser(ctx, &repository.User{
		Username:     username,
		PasswordHash: digest,
		DisplayName:  displayName,
	})
}

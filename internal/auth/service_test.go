package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dropDatabas3/janus/internal/blacklist"
	"github.com/dropDatabas3/janus/internal/domain/repository"
	jwtx "github.com/dropDatabas3/janus/internal/jwt"
	"github.com/dropDatabas3/janus/internal/rbac"
)

// ─── Fakes ───

type fakeManager struct {
	users map[string]string // username -> password
	roles map[string][]int64
}

func (f *fakeManager) Authenticate(ctx context.Context, username, plaintext string) (*repository.AuthenticatedUser, error) {
	if pw, ok := f.users[username]; ok && pw == plaintext {
		return &repository.AuthenticatedUser{ID: 1, Roles: f.roles[username]}, nil
	}
	return nil, ErrAuthenticationFailed
}

func (f *fakeManager) Register(ctx context.Context, username, plaintext string, displayName *string) (int64, error) {
	return 0, errors.New("not implemented")
}

type fakeRevoker struct {
	revoked map[string]bool
	err     error
}

func (f *fakeRevoker) Revoke(ctx context.Context, tokenID string) error {
	if f.err != nil {
		return f.err
	}
	if f.revoked == nil {
		f.revoked = map[string]bool{}
	}
	f.revoked[tokenID] = true
	return nil
}

func (f *fakeRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[tokenID], nil
}

type fakeAccess struct {
	graph map[int64][]repository.Grant
}

func (f *fakeAccess) GrantedResources(ctx context.Context, roleIDs []int64, paths []string) ([]repository.Grant, error) {
	requested := make(map[string]bool, len(paths))
	for _, p := range paths {
		requested[p] = true
	}
	seen := make(map[string]bool)
	var out []repository.Grant
	for _, id := range roleIDs {
		for _, g := range f.graph[id] {
			if requested[g.Path] && !seen[g.Path] {
				seen[g.Path] = true
				out = append(out, g)
			}
		}
	}
	return out, nil
}

func (f *fakeAccess) ReachableResources(ctx context.Context, roleIDs []int64) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, id := range roleIDs {
		for _, g := range f.graph[id] {
			if !seen[g.Path] {
				seen[g.Path] = true
				out = append(out, g.Path)
			}
		}
	}
	return out, nil
}

func newTestService(revoker *fakeRevoker) *Service {
	access := &fakeAccess{graph: map[int64][]repository.Grant{
		1: {{Path: "users:read"}},
	}}
	return NewService(Deps{
		Manager: &fakeManager{
			users: map[string]string{"alice": "hunter22"},
			roles: map[string][]int64{"alice": {1}},
		},
		Issuer:    jwtx.NewIssuer("janus", []byte("test-secret"), time.Hour),
		Blacklist: revoker,
		Resolver:  rbac.NewResolver(access),
		Store:     access,
	})
}

// ─── Tests ───

func TestIssue_Success(t *testing.T) {
	svc := newTestService(&fakeRevoker{})

	token, cl, err := svc.Issue(context.Background(), "alice", "hunter22")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("token vacío")
	}
	if cl.Subject != 1 || len(cl.Roles) != 1 || cl.Roles[0] != 1 {
		t.Errorf("claims = %+v", cl)
	}
}

func TestIssue_BadCredentials(t *testing.T) {
	svc := newTestService(&fakeRevoker{})

	_, _, err := svc.Issue(context.Background(), "alice", "wrong")
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("err = %v, esperado ErrAuthenticationFailed", err)
	}

	_, _, err = svc.Issue(context.Background(), "nadie", "hunter22")
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("err = %v, esperado ErrAuthenticationFailed", err)
	}
}

func TestValidateToken_RevokedLifecycle(t *testing.T) {
	revoker := &fakeRevoker{}
	svc := newTestService(revoker)
	ctx := context.Background()

	token, _, err := svc.Issue(ctx, "alice", "hunter22")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := svc.ValidateToken(ctx, token); err != nil {
		t.Fatalf("ValidateToken pre-revoke: %v", err)
	}

	if err := svc.Revoke(ctx, token); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	if _, err := svc.ValidateToken(ctx, token); !errors.Is(err, ErrRevoked) {
		t.Fatalf("ValidateToken post-revoke err = %v, esperado ErrRevoked", err)
	}

	// Re-revocar es idempotente
	if err := svc.Revoke(ctx, token); err != nil {
		t.Fatalf("Revoke repetido: %v", err)
	}
}

func TestRevoke_ExpiredIsNoop(t *testing.T) {
	revoker := &fakeRevoker{}
	access := &fakeAccess{}
	issuer := jwtx.NewIssuer("janus", []byte("test-secret"), time.Minute)
	svc := NewService(Deps{
		Manager:   &fakeManager{},
		Issuer:    issuer,
		Blacklist: revoker,
		Resolver:  rbac.NewResolver(access),
		Store:     access,
	})

	expired, _, err := issuer.Issue(1, nil, time.Now().Add(-2*time.Minute))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if err := svc.Revoke(context.Background(), expired); err != nil {
		t.Fatalf("Revoke de token expirado = %v, esperado nil", err)
	}
	if len(revoker.revoked) != 0 {
		t.Error("un token expirado no debe entrar al blacklist")
	}
}

func TestRevoke_MalformedFails(t *testing.T) {
	svc := newTestService(&fakeRevoker{})

	err := svc.Revoke(context.Background(), "garbage")
	if !errors.Is(err, jwtx.ErrMalformed) {
		t.Fatalf("err = %v, esperado ErrMalformed", err)
	}
}

func TestValidateToken_FailsClosedOnBlacklistError(t *testing.T) {
	revoker := &fakeRevoker{err: blacklist.ErrUnavailable}
	svc := newTestService(revoker)
	ctx := context.Background()

	token, _, err := svc.Issue(ctx, "alice", "hunter22")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Con la blacklist caída el token NO se acepta
	if _, err := svc.ValidateToken(ctx, token); !errors.Is(err, blacklist.ErrUnavailable) {
		t.Fatalf("err = %v, esperado ErrUnavailable", err)
	}
}

func TestAuthorizeToken_GrantsAndDenies(t *testing.T) {
	svc := newTestService(&fakeRevoker{})
	ctx := context.Background()

	token, _, err := svc.Issue(ctx, "alice", "hunter22")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	matrix, cl, err := svc.AuthorizeToken(ctx, token, []string{"users:read", "admin"})
	if err != nil {
		t.Fatalf("AuthorizeToken: %v", err)
	}
	if cl.Subject != 1 {
		t.Errorf("Subject = %d", cl.Subject)
	}
	if matrix["users:read"] != true {
		t.Errorf(`matrix["users:read"] = %v, esperado true`, matrix["users:read"])
	}
	if matrix["admin"] != false {
		t.Errorf(`matrix["admin"] = %v, esperado false`, matrix["admin"])
	}
}

func TestAuthorizeToken_EmptyResources(t *testing.T) {
	svc := newTestService(&fakeRevoker{})

	_, _, err := svc.AuthorizeToken(context.Background(), "no-importa", nil)
	if !errors.Is(err, repository.ErrEmptyInput) {
		t.Fatalf("err = %v, esperado ErrEmptyInput", err)
	}
}

func TestAuthorizeRoles_ZeroRolesDeniesAll(t *testing.T) {
	svc := newTestService(&fakeRevoker{})

	matrix, err := svc.AuthorizeRoles(context.Background(), nil, []string{"a", "b"})
	if err != nil {
		t.Fatalf("AuthorizeRoles: %v", err)
	}
	if matrix["a"] != false || matrix["b"] != false {
		t.Errorf("matrix = %v, esperado todo false", matrix)
	}
}

func TestUserResources(t *testing.T) {
	svc := newTestService(&fakeRevoker{})

	paths, err := svc.UserResources(context.Background(), &jwtx.Claims{Roles: []int64{1}})
	if err != nil {
		t.Fatalf("UserResources: %v", err)
	}
	if len(paths) != 1 || paths[0] != "users:read" {
		t.Errorf("paths = %v", paths)
	}

	// Sin roles: lista vacía sin tocar el store
	paths, err = svc.UserResources(context.Background(), &jwtx.Claims{})
	if err != nil {
		t.Fatalf("UserResources: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("paths = %v, esperado vacío", paths)
	}
}

package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authsvc "github.com/dropDatabas3/janus/internal/auth"
	"github.com/dropDatabas3/janus/internal/domain/repository"
	authctrl "github.com/dropDatabas3/janus/internal/http/controllers/auth"
	jwtx "github.com/dropDatabas3/janus/internal/jwt"
	"github.com/dropDatabas3/janus/internal/rbac"
)

// ─── Fakes ───

type fakeManager struct{}

func (fakeManager) Authenticate(ctx context.Context, username, plaintext string) (*repository.AuthenticatedUser, error) {
	if username == "alice" && plaintext == "hunter22" {
		return &repository.AuthenticatedUser{ID: 1, Roles: []int64{1}}, nil
	}
	return nil, authsvc.ErrAuthenticationFailed
}

func (fakeManager) Register(ctx context.Context, username, plaintext string, displayName *string) (int64, error) {
	return 0, nil
}

type fakeRevoker struct{ revoked map[string]bool }

func (f *fakeRevoker) Revoke(ctx context.Context, tokenID string) error {
	if f.revoked == nil {
		f.revoked = map[string]bool{}
	}
	f.revoked[tokenID] = true
	return nil
}

func (f *fakeRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return f.revoked[tokenID], nil
}

type fakeAccess struct{}

func (fakeAccess) GrantedResources(ctx context.Context, roleIDs []int64, paths []string) ([]repository.Grant, error) {
	var out []repository.Grant
	for _, p := range paths {
		if p == "users:read" {
			out = append(out, repository.Grant{Path: p})
		}
	}
	return out, nil
}

func (fakeAccess) ReachableResources(ctx context.Context, roleIDs []int64) ([]string, error) {
	return []string{"users:read"}, nil
}

func newControllers() *authctrl.Controllers {
	access := fakeAccess{}
	svc := authsvc.NewService(authsvc.Deps{
		Manager:   fakeManager{},
		Issuer:    jwtx.NewIssuer("janus", []byte("test-secret"), time.Hour),
		Blacklist: &fakeRevoker{},
		Resolver:  rbac.NewResolver(access),
		Store:     access,
	})
	return authctrl.NewControllers(svc)
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

// ─── Tests ───

func TestToken_Issue(t *testing.T) {
	ctrl := newControllers()

	rec := postJSON(t, ctrl.Token.Issue, "/v1/token", map[string]string{
		"username": "alice",
		"password": "hunter22",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token     string `json:"token"`
		TokenType string `json:"token_type"`
		ExpiresIn int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("respuesta no es JSON: %v", err)
	}
	if resp.Token == "" || resp.TokenType != "Bearer" {
		t.Errorf("respuesta = %+v", resp)
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("expires_in = %d, esperado 3600", resp.ExpiresIn)
	}
}

func TestToken_BadCredentials(t *testing.T) {
	ctrl := newControllers()

	rec := postJSON(t, ctrl.Token.Issue, "/v1/token", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, esperado 401", rec.Code)
	}
}

func TestToken_MissingFields(t *testing.T) {
	ctrl := newControllers()

	rec := postJSON(t, ctrl.Token.Issue, "/v1/token", map[string]string{"username": "alice"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, esperado 400", rec.Code)
	}
}

func issueToken(t *testing.T, ctrl *authctrl.Controllers) string {
	t.Helper()
	rec := postJSON(t, ctrl.Token.Issue, "/v1/token", map[string]string{
		"username": "alice",
		"password": "hunter22",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("no se pudo emitir token: %d", rec.Code)
	}
	var resp struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return resp.Token
}

func TestAuthorize_Matrix(t *testing.T) {
	ctrl := newControllers()
	token := issueToken(t, ctrl)

	rec := postJSON(t, ctrl.Authorize.Authorize, "/v1/authorize", map[string]any{
		"token":     token,
		"resources": []string{"users:read", "admin"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Resources map[string]any `json:"resources"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("respuesta no es JSON: %v", err)
	}
	if resp.Resources["users:read"] != true {
		t.Errorf(`resources["users:read"] = %v`, resp.Resources["users:read"])
	}
	if resp.Resources["admin"] != false {
		t.Errorf(`resources["admin"] = %v`, resp.Resources["admin"])
	}
}

func TestAuthorize_EmptyResources(t *testing.T) {
	ctrl := newControllers()
	token := issueToken(t, ctrl)

	rec := postJSON(t, ctrl.Authorize.Authorize, "/v1/authorize", map[string]any{
		"token":     token,
		"resources": []string{},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, esperado 400", rec.Code)
	}
}

func TestAuthorize_MalformedToken(t *testing.T) {
	ctrl := newControllers()

	rec := postJSON(t, ctrl.Authorize.Authorize, "/v1/authorize", map[string]any{
		"token":     "garbage",
		"resources": []string{"users:read"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, esperado 422", rec.Code)
	}
}

func TestRevoke_ThenAuthorizeDenied(t *testing.T) {
	ctrl := newControllers()
	token := issueToken(t, ctrl)

	rec := postJSON(t, ctrl.Revoke.Revoke, "/v1/revoke", map[string]string{"token": token})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("revoke status = %d, esperado 204", rec.Code)
	}

	rec = postJSON(t, ctrl.Authorize.Authorize, "/v1/authorize", map[string]any{
		"token":     token,
		"resources": []string{"users:read"},
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("authorize post-revoke status = %d, esperado 401", rec.Code)
	}

	// Re-revocar es idempotente
	rec = postJSON(t, ctrl.Revoke.Revoke, "/v1/revoke", map[string]string{"token": token})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("revoke repetido status = %d, esperado 204", rec.Code)
	}
}

package rbac_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dropDatabas3/janus/internal/domain/repository"
	"github.com/dropDatabas3/janus/internal/rbac"
)

// fakeAccessRepo resuelve grants desde un grafo en memoria rol→(path,value).
type fakeAccessRepo struct {
	graph map[int64][]repository.Grant
	calls int
	err   error
}

func (f *fakeAccessRepo) GrantedResources(ctx context.Context, roleIDs []int64, paths []string) ([]repository.Grant, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
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

func (f *fakeAccessRepo) ReachableResources(ctx context.Context, roleIDs []int64) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
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

func strptr(s string) *string { return &s }

func TestAuthorize_GrantAndDeny(t *testing.T) {
	repo := &fakeAccessRepo{graph: map[int64][]repository.Grant{
		1: {{Path: "users:read"}, {Path: "users:write"}},
		2: {{Path: "reports:read"}},
	}}
	r := rbac.NewResolver(repo)

	out, err := r.Authorize(context.Background(), []int64{1}, []string{"users:read", "roles:write"})
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}

	if out["users:read"] != true {
		t.Errorf(`out["users:read"] = %v, esperado true`, out["users:read"])
	}
	if out["roles:write"] != false {
		t.Errorf(`out["roles:write"] = %v, esperado false`, out["roles:write"])
	}
	if len(out) != 2 {
		t.Errorf("out tiene %d entradas, esperado 2", len(out))
	}
}

func TestAuthorize_ValuePropagation(t *testing.T) {
	repo := &fakeAccessRepo{graph: map[int64][]repository.Grant{
		1: {{Path: "quota", Value: strptr("100")}},
	}}
	r := rbac.NewResolver(repo)

	out, err := r.Authorize(context.Background(), []int64{1}, []string{"quota"})
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}

	// value no nulo reemplaza al booleano
	if out["quota"] != "100" {
		t.Errorf(`out["quota"] = %v, esperado "100"`, out["quota"])
	}
}

func TestAuthorize_EmptyInput(t *testing.T) {
	repo := &fakeAccessRepo{}
	r := rbac.NewResolver(repo)

	cases := []struct {
		name      string
		roles     []int64
		resources []string
	}{
		{"sin roles", nil, []string{"users:read"}},
		{"sin recursos", []int64{1}, nil},
		{"ambos vacíos", nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Authorize(context.Background(), tc.roles, tc.resources)
			if !errors.Is(err, repository.ErrEmptyInput) {
				t.Fatalf("err = %v, esperado ErrEmptyInput", err)
			}
		})
	}

	// El input vacío nunca llega al store
	if repo.calls != 0 {
		t.Errorf("el store fue consultado %d veces con input vacío", repo.calls)
	}
}

func TestAuthorize_MultipleRolesUnion(t *testing.T) {
	repo := &fakeAccessRepo{graph: map[int64][]repository.Grant{
		1: {{Path: "users:read"}},
		2: {{Path: "reports:read"}},
	}}
	r := rbac.NewResolver(repo)

	out, err := r.Authorize(context.Background(), []int64{1, 2, 2}, []string{"users:read", "reports:read", "admin"})
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}

	if out["users:read"] != true || out["reports:read"] != true {
		t.Errorf("la unión de roles no otorgó ambos recursos: %v", out)
	}
	if out["admin"] != false {
		t.Errorf(`out["admin"] = %v, esperado false`, out["admin"])
	}
}

func TestDenyAll(t *testing.T) {
	out := rbac.DenyAll([]string{"a", "b"})
	if len(out) != 2 || out["a"] != false || out["b"] != false {
		t.Errorf("DenyAll = %v", out)
	}
}

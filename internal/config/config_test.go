package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	jwtx "github.com/dropDatabas3/janus/internal/jwt"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Redis.BlacklistKey != "blacklist" {
		t.Errorf("Redis.BlacklistKey = %q", cfg.Redis.BlacklistKey)
	}
	if cfg.JWT.Issuer != "janus" {
		t.Errorf("JWT.Issuer = %q", cfg.JWT.Issuer)
	}
	if got := cfg.AccessTTL(); got != jwtx.DefaultAccessTTL {
		t.Errorf("AccessTTL = %v, esperado default %v", got, jwtx.DefaultAccessTTL)
	}
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
jwt:
  issuer: "mi-emisor"
  access_ttl: "2h"
rate:
  enabled: true
  window: "30s"
`)

	t.Setenv("JANUS_ADDR", ":7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// env pisa al YAML
	if cfg.Server.Addr != ":7070" {
		t.Errorf("Server.Addr = %q, esperado :7070", cfg.Server.Addr)
	}
	if cfg.JWT.Issuer != "mi-emisor" {
		t.Errorf("JWT.Issuer = %q", cfg.JWT.Issuer)
	}
	if got := cfg.AccessTTL(); got != 2*time.Hour {
		t.Errorf("AccessTTL = %v, esperado 2h", got)
	}
	if got := cfg.RateWindow(); got != 30*time.Second {
		t.Errorf("RateWindow = %v, esperado 30s", got)
	}
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	if _, err := Load("/no/existe/config.yaml"); err != nil {
		t.Fatalf("Load de archivo inexistente: %v", err)
	}
}

func TestLoad_BadYAMLFails(t *testing.T) {
	path := writeConfig(t, "server: [esto no es un mapa")
	if _, err := Load(path); err == nil {
		t.Fatal("Load no falló con YAML inválido")
	}
}

func TestJWTSecret(t *testing.T) {
	t.Setenv("JANUS_JWT_SECRET", "")
	if _, err := JWTSecret(); err == nil {
		t.Fatal("JWTSecret sin env no falló")
	}

	t.Setenv("JANUS_JWT_SECRET", "super-secreto")
	secret, err := JWTSecret()
	if err != nil {
		t.Fatalf("JWTSecret: %v", err)
	}
	if string(secret) != "super-secreto" {
		t.Errorf("secret = %q", secret)
	}
}

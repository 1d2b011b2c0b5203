// Package config carga la configuración del servicio: archivo YAML opcional
// con overrides por variables de entorno. El secret de firma JWT viene SOLO
// por env (JANUS_JWT_SECRET), nunca del archivo.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	jwtx "github.com/dropDatabas3/janus/internal/jwt"
)

type Config struct {
	App struct {
		// dev | prod
		Env string `yaml:"env"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Storage struct {
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxOpenConns    int    `yaml:"max_open_conns"`
			MaxIdleConns    int    `yaml:"max_idle_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Redis struct {
		Addr         string `yaml:"addr"`
		DB           int    `yaml:"db"`
		BlacklistKey string `yaml:"blacklist_key"`
	} `yaml:"redis"`

	JWT struct {
		Issuer    string `yaml:"issuer"`
		AccessTTL string `yaml:"access_ttl"`
	} `yaml:"jwt"`

	Security struct {
		// sha512 (formato heredado) | argon2id
		PasswordScheme string `yaml:"password_scheme"`
	} `yaml:"security"`

	Rate struct {
		Enabled     bool   `yaml:"enabled"`
		Kind        string `yaml:"kind"` // redis | memory
		Window      string `yaml:"window"`
		MaxRequests int    `yaml:"max_requests"`
	} `yaml:"rate"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load lee el YAML (si existe) y aplica overrides de env y defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	// Overrides por env
	overrideStr(&cfg.App.Env, "APP_ENV")
	overrideStr(&cfg.Server.Addr, "JANUS_ADDR")
	overrideStr(&cfg.Storage.DSN, "DATABASE_URL")
	overrideStr(&cfg.Redis.Addr, "REDIS_ADDR")
	overrideInt(&cfg.Redis.DB, "REDIS_DB")
	overrideStr(&cfg.Redis.BlacklistKey, "REDIS_BLACKLIST")
	overrideStr(&cfg.JWT.Issuer, "JWT_ISSUER")
	overrideStr(&cfg.JWT.AccessTTL, "JWT_ACCESS_TTL")
	overrideStr(&cfg.Security.PasswordScheme, "PASSWORD_SCHEME")
	overrideStr(&cfg.Log.Level, "LOG_LEVEL")

	// Defaults
	if cfg.App.Env == "" {
		cfg.App.Env = "dev"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "postgres://postgres@localhost:5432/janus"
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.BlacklistKey == "" {
		cfg.Redis.BlacklistKey = "blacklist"
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "janus"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// AccessTTL parsea la ventana de validez del access token.
// Default: la ventana heredada de ~180h.
func (c *Config) AccessTTL() time.Duration {
	if c.JWT.AccessTTL == "" {
		return jwtx.DefaultAccessTTL
	}
	d, err := time.ParseDuration(c.JWT.AccessTTL)
	if err != nil || d <= 0 {
		return jwtx.DefaultAccessTTL
	}
	return d
}

// RateWindow parsea la ventana del rate limiter (default 1m).
func (c *Config) RateWindow() time.Duration {
	d, err := time.ParseDuration(c.Rate.Window)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

// JWTSecret lee el secret de firma del proceso. Sin secret no hay servicio:
// es un error de arranque, no un default.
func JWTSecret() ([]byte, error) {
	s := os.Getenv("JANUS_JWT_SECRET")
	if s == "" {
		return nil, fmt.Errorf("config: JANUS_JWT_SECRET env variable is required")
	}
	return []byte(s), nil
}

func overrideStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

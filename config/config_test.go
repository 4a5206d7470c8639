package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaultsWithMemoryStore(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.LoginDomain != "nevta.digital" {
		t.Fatalf("login domain = %q", cfg.LoginDomain)
	}
	if cfg.AccessTokenTTL != 24*time.Hour {
		t.Fatalf("access ttl = %v", cfg.AccessTokenTTL)
	}
	if cfg.JWTSecret == "" {
		t.Fatalf("development should fall back to a dev secret")
	}
	if cfg.MaxQRBytes != 2<<20 {
		t.Fatalf("max qr bytes = %d", cfg.MaxQRBytes)
	}
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"postgres needs url", map[string]string{"STORE_DRIVER": "postgres"}, "DATABASE_URL"},
		{"unknown driver", map[string]string{"STORE_DRIVER": "mongo"}, "unsupported STORE_DRIVER"},
		{"production needs secret", map[string]string{"STORE_DRIVER": "memory", "ENVIRONMENT": "production"}, "JWT_SECRET"},
		{"short encryption key", map[string]string{"STORE_DRIVER": "memory", "DATA_ENCRYPTION_KEY": "short"}, "DATA_ENCRYPTION_KEY"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadAllowedOrigins(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("FRONTEND_URL", "https://nevta.app")
	t.Setenv("ALLOWED_ORIGINS", "https://nevta.app, https://m.nevta.app ,")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://m.nevta.app" {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigFileIsOverriddenByEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "STORE_DRIVER: memory\nPORT: \"9090\"\nLOGIN_DOMAIN: example.in\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PORT", "7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "7070" {
		t.Fatalf("env should win, port = %q", cfg.Port)
	}
	if cfg.LoginDomain != "example.in" {
		t.Fatalf("file value lost, domain = %q", cfg.LoginDomain)
	}
}

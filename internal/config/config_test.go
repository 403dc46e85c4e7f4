package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Port)
	}
	if cfg.DatabaseURL == "" {
		t.Error("expected a default database URL")
	}
	if cfg.RequestTimeout != 10 {
		t.Errorf("expected default request timeout 10, got %d", cfg.RequestTimeout)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("expected wildcard origin default, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg := Load()

	if cfg.Port != 8081 {
		t.Errorf("expected port 8081, got %d", cfg.Port)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("expected parsed origin list, got %v", cfg.AllowedOrigins)
	}
	if cfg.RateLimitRPS != 2.5 {
		t.Errorf("expected rate limit 2.5, got %v", cfg.RateLimitRPS)
	}
}

func TestWildcardOriginCollapsesList(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, *, https://b.example.com")

	cfg := Load()
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("expected a list containing '*' to collapse to allow-all, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	cfg := Load()
	if cfg.Port != 3000 {
		t.Errorf("expected fallback to default port, got %d", cfg.Port)
	}
}

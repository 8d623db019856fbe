package config

import (
	"net/http"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("CATALOG_BASE_URL", "https://fakestoreapi.com/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GetCatalogBaseURL() != "https://fakestoreapi.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.GetCatalogBaseURL())
	}
	if cfg.GetCatalogTimeout() != 10*time.Second {
		t.Fatalf("expected 10s catalog timeout, got %s", cfg.GetCatalogTimeout())
	}
	if cfg.GetSessionTTL() != 24*time.Hour {
		t.Fatalf("expected 24h session TTL, got %s", cfg.GetSessionTTL())
	}
	if cfg.GetSessionCookieSecure() {
		t.Fatal("expected insecure cookie outside production")
	}
	if cfg.GetSessionCookieSameSite() != http.SameSiteLaxMode {
		t.Fatalf("expected Lax SameSite, got %v", cfg.GetSessionCookieSameSite())
	}
	if cfg.IsRedisEnabled() {
		t.Fatal("expected redis disabled without REDIS_URL")
	}
}

func TestLoadRejectsRelativeCatalogURL(t *testing.T) {
	t.Setenv("CATALOG_BASE_URL", "fakestoreapi.com")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for relative catalog URL")
	}
}

func TestLoadRejectsWildcardCORSWithCredentials(t *testing.T) {
	t.Setenv("CATALOG_BASE_URL", "https://fakestoreapi.com")
	t.Setenv("CORS_ORIGINS", "*")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for wildcard CORS with credentials")
	}
}

func TestProductionDefaultsToSecureCookie(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("CATALOG_BASE_URL", "https://fakestoreapi.com")
	t.Setenv("SESSION_COOKIE_SAMESITE", "strict")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.GetSessionCookieSecure() {
		t.Fatal("expected secure cookie in production")
	}
	if cfg.GetSessionCookieSameSite() != http.SameSiteStrictMode {
		t.Fatalf("expected Strict SameSite, got %v", cfg.GetSessionCookieSameSite())
	}
}

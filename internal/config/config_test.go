package config

import (
	"net/url"
	"reflect"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_DRIVER", "JWT_SECRET", "JWT_EXPIRE_HOURS", "ENV", "STATS_CRON", "TRUST_PROXY_HEADERS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port: got %q, want 8080", cfg.Port)
	}
	if cfg.StoreDriver != StorePostgres {
		t.Errorf("StoreDriver: got %q, want %q", cfg.StoreDriver, StorePostgres)
	}
	if cfg.JWTExpireHours != 24 {
		t.Errorf("JWTExpireHours: got %d, want 24", cfg.JWTExpireHours)
	}
	if cfg.TrustProxyHeaders {
		t.Error("TrustProxyHeaders should default to false")
	}
	if cfg.StatsCron != "@every 1m" {
		t.Errorf("StatsCron: got %q", cfg.StatsCron)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "MONGO")
	t.Setenv("JWT_EXPIRE_HOURS", "2")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("TRUST_PROXY_HEADERS", "true")

	cfg := Load()
	if cfg.StoreDriver != StoreMongo {
		t.Errorf("StoreDriver: got %q, want %q", cfg.StoreDriver, StoreMongo)
	}
	if cfg.JWTExpireHours != 2 {
		t.Errorf("JWTExpireHours: got %d, want 2", cfg.JWTExpireHours)
	}
	if cfg.DBMaxOpenConns != 25 {
		t.Errorf("DBMaxOpenConns: got %d, want fallback 25", cfg.DBMaxOpenConns)
	}
	if !cfg.TrustProxyHeaders {
		t.Error("TrustProxyHeaders: got false, want true")
	}
}

func TestParseCORSOrigins(t *testing.T) {
	got := parseCORSOrigins(" https://a.example ,, http://localhost:3000 ")
	want := []string{"https://a.example", "http://localhost:3000"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if parseCORSOrigins("") != nil {
		t.Error("empty input should yield nil")
	}
}

func TestValidate(t *testing.T) {
	base := Config{StoreDriver: StorePostgres, JWTSecret: DefaultJWTSecret, Env: "dev"}
	if err := base.Validate(); err != nil {
		t.Errorf("dev with default secret: %v", err)
	}

	prod := base
	prod.Env = "prod"
	if err := prod.Validate(); err == nil {
		t.Error("prod with default secret should fail")
	}
	prod.JWTSecret = "a-real-secret"
	if err := prod.Validate(); err != nil {
		t.Errorf("prod with real secret: %v", err)
	}

	bad := base
	bad.StoreDriver = "sqlite"
	if err := bad.Validate(); err == nil {
		t.Error("unknown store driver should fail")
	}

	tls := base
	tls.TLSCertFile = "cert.pem"
	if err := tls.Validate(); err == nil {
		t.Error("cert without key should fail")
	}
}

func TestPostgresURL_EscapesCredentials(t *testing.T) {
	cfg := Config{DBUser: "recipe", DBPass: "p@ss/w#rd:1", DBHost: "db", DBPort: "5432", DBName: "recipedb"}

	u, err := url.Parse(cfg.PostgresURL())
	if err != nil {
		t.Fatalf("parse %q: %v", cfg.PostgresURL(), err)
	}
	pass, _ := u.User.Password()
	if u.User.Username() != "recipe" || pass != "p@ss/w#rd:1" {
		t.Errorf("credentials: got %q/%q", u.User.Username(), pass)
	}
	if u.Host != "db:5432" || u.Path != "/recipedb" || u.Query().Get("sslmode") != "disable" {
		t.Errorf("unexpected url: %s", cfg.PostgresURL())
	}
}

package config

import (
	"errors"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is only acceptable outside of prod.
const DefaultJWTSecret = "supersecretkey"

const (
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

type Config struct {
	Port string

	// StoreDriver selects the record store: "postgres" (default) or "mongo".
	StoreDriver string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	MongoURI string
	MongoDB  string

	JWTSecret string

	// Env is "dev" (default) or "prod". When "prod", JWT_SECRET must be set and not the default.
	Env string

	// JWTExpireHours is the token lifetime in hours (default 24). Set via JWT_EXPIRE_HOURS.
	JWTExpireHours int

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string

	// CORSAllowedOrigins is set via CORS_ALLOWED_ORIGINS (comma-separated). Empty means same-origin only.
	CORSAllowedOrigins []string

	// TrustProxyHeaders makes the server take the client address from
	// X-Forwarded-For / X-Real-IP. Enable only behind a reverse proxy that sets them.
	TrustProxyHeaders bool

	// StatsCron is the cron expression for refreshing store gauges (default "@every 1m").
	StatsCron string
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over .env entries.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port: getEnv("PORT", "8080"),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", StorePostgres)),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "recipedb"),
		DBUser: getEnv("DB_USER", "recipeuser"),
		DBPass: getEnv("DB_PASS", "recipepass"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "recipes"),

		JWTSecret:      getEnv("JWT_SECRET", DefaultJWTSecret),
		Env:            getEnv("ENV", "dev"),
		JWTExpireHours: getEnvInt("JWT_EXPIRE_HOURS", 24),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),

		CORSAllowedOrigins: parseCORSOrigins(getEnv("CORS_ALLOWED_ORIGINS", "")),

		TrustProxyHeaders: getEnvBool("TRUST_PROXY_HEADERS", false),

		StatsCron: getEnv("STATS_CRON", "@every 1m"),
	}
}

// Validate rejects configurations that must not reach production.
func (c Config) Validate() error {
	if c.Env == "prod" && (c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret) {
		return errors.New("JWT_SECRET must be set to a non-default value when ENV=prod")
	}
	if c.StoreDriver != StorePostgres && c.StoreDriver != StoreMongo {
		return errors.New("STORE_DRIVER must be postgres or mongo")
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	return nil
}

// PostgresURL returns the DSN in URL form, as golang-migrate expects it.
// Credentials are escaped, so passwords may contain any character.
func (c Config) PostgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// parseCORSOrigins splits a comma-separated list of origins and trims spaces. Empty strings are omitted.
func parseCORSOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

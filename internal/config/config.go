package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Signing keys are kept as the raw base64-encoded
// PEM strings they arrive in; they are decoded exactly once at startup when
// the key material is built, never again per request.
type Config struct {
	Env  string // application environment (e.g. "dev", "prod")
	Port string // HTTP port to listen on

	DBUser string // database username
	DBPass string // database password (optional)
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name

	AccessPrivateKey  string // base64 PEM, signs access tokens
	AccessPublicKey   string // base64 PEM, verifies access tokens
	RefreshPrivateKey string // base64 PEM, signs refresh tokens
	RefreshPublicKey  string // base64 PEM, verifies refresh tokens

	// AccessTTL/RefreshTTL are the single source of truth for token
	// lifetimes: the same value feeds the JWT exp claim and the session
	// record TTL for that class.
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	BcryptCost int    // bcrypt cost for password hashing
	HostName   string // public base URL used in verification links
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:  must("APP_ENV"),
		Port: must("APP_PORT"),

		DBUser: must("DB_USER"),
		DBPass: os.Getenv("DB_PASS"), // empty allowed
		DBHost: must("DB_HOST"),
		DBPort: must("DB_PORT"),
		DBName: must("DB_NAME"),

		AccessPrivateKey:  must("ACCESS_TOKEN_PRIVATE_KEY"),
		AccessPublicKey:   must("ACCESS_TOKEN_PUBLIC_KEY"),
		RefreshPrivateKey: must("REFRESH_TOKEN_PRIVATE_KEY"),
		RefreshPublicKey:  must("REFRESH_TOKEN_PUBLIC_KEY"),

		AccessTTL:  time.Duration(mustInt("ACCESS_TOKEN_TTL_MIN")) * time.Minute,
		RefreshTTL: time.Duration(mustInt("REFRESH_TOKEN_TTL_MIN")) * time.Minute,

		BcryptCost: mustInt("BCRYPT_COST"),
		HostName:   must("HOST_NAME"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

package config

import (
	"errors"
	"fmt"
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings"
	"time"

	"github.com/joho/godotenv" // For loading .env files
	"golang.org/x/crypto/bcrypt"
)

// Config holds the application configuration
type Config struct {
	AppPort     string        // HTTP listen port
	MongoURI    string        // MongoDB connection string
	MongoDB     string        // MongoDB database name
	JWTSecret   string        // HMAC key used to sign bearer tokens
	TokenTTL    time.Duration // Lifetime of issued tokens
	APIPrefix   string        // Path prefix every route is mounted under
	CORSOrigins []string      // Allowed CORS origins
	BcryptCost  int           // bcrypt work factor for stored passwords
	IsProd      bool          // Is production environment
	AdminCorreo string        // Bootstrap administrator email (cmd/migrate)
	AdminPass   string        // Bootstrap administrator password (cmd/migrate)
	AdminRut    string        // Bootstrap administrator rut, derived from AdminCorreo when unset
}

// ErrMissingSecret is returned when JWT_SECRET is not set.
var ErrMissingSecret = errors.New("config: JWT_SECRET must be set")

// Load reads configuration from environment variables, loading a .env file first if present.
func Load() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present

	cfg := &Config{
		AppPort:     getenv("APP_PORT", "3000"),
		MongoURI:    getenv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:     getenv("MONGO_DB", "onthegomusic"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		APIPrefix:   normalizePrefix(getenv("API_PREFIX", "/api/v1")),
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "*")),
		IsProd:      os.Getenv("IS_PROD") == "true",
		AdminCorreo: os.Getenv("ADMIN_CORREO"),
		AdminPass:   os.Getenv("ADMIN_PASSWORD"),
		AdminRut:    strings.TrimSpace(os.Getenv("ADMIN_RUT")),
	}
	if cfg.AdminRut == "" && cfg.AdminCorreo != "" {
		cfg.AdminRut = "admin:" + strings.ToLower(strings.TrimSpace(cfg.AdminCorreo))
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingSecret
	}

	ttl, err := time.ParseDuration(getenv("TOKEN_TTL", "4h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("config: invalid TOKEN_TTL %q", os.Getenv("TOKEN_TTL"))
	}
	cfg.TokenTTL = ttl

	cost := bcrypt.DefaultCost
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err = strconv.Atoi(v)
		if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("config: invalid BCRYPT_COST %q", v)
		}
	}
	cfg.BcryptCost = cost

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// normalizePrefix makes sure the prefix starts with a slash and has no trailing one.
// "/" and "" both mean unprefixed routes.
func normalizePrefix(p string) string {
	p = strings.TrimRight(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

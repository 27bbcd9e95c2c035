package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Server captures process level configuration sourced from the environment.
type Server struct {
	Addr           string
	DatabaseURL    string
	RedisURL       string
	KafkaBrokers   string
	CartSigningKey string
	SeedTokenHash  string
	RequestTimeout time.Duration
	CartTTL        time.Duration
	Routing        Routing
}

// Routing declares the enabled root domains and the subdomain names the
// platform reserves for itself. It is configuration, not code: adding a root
// domain or reserving a name must never require a redeploy of resolution
// logic.
type Routing struct {
	RootDomains        []string `yaml:"root_domains"`
	ReservedSubdomains []string `yaml:"reserved_subdomains"`
}

// DefaultRouting covers local development when no routing file is configured.
func DefaultRouting() Routing {
	return Routing{
		RootDomains:        []string{"extendbee.com", "localhost"},
		ReservedSubdomains: []string{"www", "admin", "api", "app", "assets", "cdn", "status"},
	}
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	addr := os.Getenv("EXTENDBEE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	requestTimeout := 30 * time.Second
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			requestTimeout = d
		}
	}

	// Carts outlive page views but not abandoned browsers.
	cartTTL := 30 * 24 * time.Hour
	if v := os.Getenv("CART_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cartTTL = d
		}
	}

	signingKey := os.Getenv("CART_SESSION_KEY")
	if signingKey == "" {
		// Development fallback - must be overridden in production.
		signingKey = "dev-cart-session-key-change-me"
	}

	routing := DefaultRouting()
	if path := os.Getenv("ROUTING_CONFIG"); path != "" {
		loaded, err := LoadRouting(path)
		if err != nil {
			return Server{}, fmt.Errorf("load routing config: %w", err)
		}
		routing = loaded
	}

	return Server{
		Addr:           addr,
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		KafkaBrokers:   os.Getenv("KAFKA_BROKERS"),
		CartSigningKey: signingKey,
		SeedTokenHash:  os.Getenv("SEED_TOKEN_HASH"),
		RequestTimeout: requestTimeout,
		CartTTL:        cartTTL,
		Routing:        routing,
	}, nil
}

// LoadRouting reads a YAML routing declaration.
func LoadRouting(path string) (Routing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Routing{}, fmt.Errorf("read %s: %w", path, err)
	}
	var r Routing
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Routing{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if len(r.RootDomains) == 0 {
		return Routing{}, fmt.Errorf("routing config %s declares no root domains", path)
	}
	return r, nil
}

package main

import (
	"crypto/tls"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"lifeboard-api/api"
	"lifeboard-api/storage"
)

func main() {
	_ = godotenv.Load()

	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		log.SetLevel(log.DebugLevel)
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		log.Fatal("missing DB_PATH")
	}
	base, err := storage.New(dbPath)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	var store api.Storage = base
	var deduper api.Deduper
	if redisConn := os.Getenv("REDIS_CONNECTION_STRING"); redisConn != "" {
		rc := redis.NewClient(redisOptions(redisConn))
		store = storage.NewCache(base, rc, envDuration("CACHE_TTL", 5*time.Minute))
		deduper = api.NewRedisDeduper(rc, envDuration("DEDUPER_TTL", 24*time.Hour))
	}

	auth, err := buildAuth()
	if err != nil {
		log.Fatalf("auth: %v", err)
	}

	e := echo.New()
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "X-Idempotency-Key"},
	}))
	e.Use(api.GzipRequestMiddleware())

	logger := log.New()
	api.Register(e, store, auth, deduper, logger)

	listenAddr := ":8080"
	if val, ok := os.LookupEnv("LISTEN_ADDR"); ok {
		listenAddr = val
	}

	e.Logger.Fatal(e.Start(listenAddr))
}

func buildAuth() (*api.Auth, error) {
	cfg := api.AuthConfig{
		SuperuserSubject: os.Getenv("SUPERUSER_SUBJECT"),
		SessionSecret:    []byte(os.Getenv("SESSION_SECRET")),
		PasswordSHA256:   os.Getenv("SUPERUSER_PASSWORD_SHA256"),
		SessionTTL:       envDuration("SESSION_TTL", 0),
	}
	if cfg.SuperuserSubject == "" {
		return nil, fmt.Errorf("missing SUPERUSER_SUBJECT")
	}

	// When an external IdP is configured, tokens are verified against its
	// JWKS instead of the local session secret.
	if oidcDomain := os.Getenv("OIDC_DOMAIN"); oidcDomain != "" {
		audience := os.Getenv("OIDC_AUDIENCE")
		if audience == "" {
			return nil, fmt.Errorf("missing OIDC_AUDIENCE")
		}
		jwksURL := fmt.Sprintf("https://%s/.well-known/jwks.json", oidcDomain)
		jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{})
		if err != nil {
			return nil, fmt.Errorf("jwks: %w", err)
		}
		cfg.JWKS = jwks
		cfg.Audience = audience
		cfg.Issuer = "https://" + oidcDomain + "/"
		return api.NewAuth(cfg), nil
	}

	if len(cfg.SessionSecret) == 0 {
		return nil, fmt.Errorf("missing SESSION_SECRET")
	}
	if cfg.PasswordSHA256 == "" {
		return nil, fmt.Errorf("missing SUPERUSER_PASSWORD_SHA256")
	}
	return api.NewAuth(cfg), nil
}

// redisOptions accepts either a redis URL or a comma-separated
// "host:port,password=...,ssl=true" connection string.
func redisOptions(conn string) *redis.Options {
	opts, err := redis.ParseURL(conn)
	if err == nil {
		return opts
	}
	parts := strings.Split(conn, ",")
	opts = &redis.Options{Addr: parts[0]}
	for _, p := range parts[1:] {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch strings.ToLower(kv[0]) {
		case "password":
			opts.Password = kv[1]
		case "ssl":
			if strings.ToLower(kv[1]) == "true" {
				opts.TLSConfig = &tls.Config{}
			}
		}
	}
	return opts
}

func envDuration(name string, fallback time.Duration) time.Duration {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Fatalf("invalid %s: %v", name, err)
	}
	return d
}

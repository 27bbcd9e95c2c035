package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	carthandler "extendbee/internal/cart/handler"
	cartmetrics "extendbee/internal/cart/metrics"
	cartservice "extendbee/internal/cart/service"
	"extendbee/internal/cart/session"
	cartstore "extendbee/internal/cart/store"
	"extendbee/internal/events"
	pagecompose "extendbee/internal/page/compose"
	pagemetrics "extendbee/internal/page/metrics"
	pageservice "extendbee/internal/page/service"
	pagestore "extendbee/internal/page/store"
	"extendbee/internal/platform/config"
	"extendbee/internal/platform/database"
	"extendbee/internal/platform/health"
	"extendbee/internal/platform/kafka/producer"
	"extendbee/internal/platform/logger"
	"extendbee/internal/platform/middleware"
	platformredis "extendbee/internal/platform/redis"
	"extendbee/internal/platform/tracing"
	"extendbee/internal/routing"
	"extendbee/internal/seeder"
	"extendbee/internal/storefront"
	tenantmetrics "extendbee/internal/tenant/metrics"
	tenantservice "extendbee/internal/tenant/service"
	brandingstore "extendbee/internal/tenant/store/branding"
	tenantstore "extendbee/internal/tenant/store/tenant"
	"extendbee/internal/tenant/tenantctx"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		logger.New().Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New()

	log.Info("initializing storefront platform",
		"addr", cfg.Addr,
		"root_domains", cfg.Routing.RootDomains,
	)

	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	pool, err := database.New(dbCfg)
	if err != nil {
		log.Error("database setup failed", "error", err)
		os.Exit(1)
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis setup failed", "error", err)
		os.Exit(1)
	}

	tracer := tracing.NewOTel()

	// Stores fall back to memory when their backend is not configured, so a
	// bare `go run ./cmd/server` serves the demo storefronts.
	var (
		tenants  tenantservice.TenantStore
		branding tenantservice.BrandingStore
		pages    pageservice.PageStore
		carts    cartservice.CartStore
		seedSvc  *seeder.Seeder
	)
	if pool != nil {
		pgTenants := tenantstore.NewPostgres(pool.DB())
		pgBranding := brandingstore.NewPostgres(pool.DB())
		pgPages := pagestore.NewPostgres(pool.DB())
		seedSvc = seeder.New(pgTenants, pgBranding, pgPages, log)
		tenants, branding, pages = pgTenants, pgBranding, pgPages
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores with demo data")
		memTenants := tenantstore.NewInMemory()
		memBranding := brandingstore.NewInMemory()
		memPages := pagestore.NewInMemory()
		seedSvc = seeder.New(memTenants, memBranding, memPages, log)
		if err := seedSvc.SeedDemo(context.Background()); err != nil {
			log.Error("demo seed failed", "error", err)
			os.Exit(1)
		}
		tenants, branding, pages = memTenants, memBranding, memPages
	}
	if redisClient != nil {
		carts = cartstore.NewRedis(redisClient, cfg.CartTTL)
	} else {
		log.Warn("REDIS_URL not set, carts are process-local")
		carts = cartstore.NewInMemory()
	}

	var publisher events.Publisher = events.NoopPublisher{}
	var kafkaProducer *producer.Producer
	if cfg.KafkaBrokers != "" {
		kafkaProducer, err = producer.New(producer.DefaultConfig(cfg.KafkaBrokers), log)
		if err != nil {
			log.Error("kafka setup failed", "error", err)
			os.Exit(1)
		}
		publisher = events.NewKafka(kafkaProducer, log)
	} else {
		log.Warn("KAFKA_BROKERS not set, checkout events are dropped")
	}

	pageMetrics := pagemetrics.New()
	tenantSvc := tenantservice.New(tenants, branding, tenantmetrics.New(), tracer, log)
	pageResolver := pageservice.NewResolver(pages, pageMetrics, tracer, log)
	engine := pagecompose.NewEngine(pagecompose.DefaultRegistry(), pagecompose.DefaultPageTypes(), pageMetrics, tracer, log)
	cartSvc := cartservice.New(carts, publisher, cartmetrics.New(), log)
	sessions := session.NewManager([]byte(cfg.CartSigningKey), cfg.CartTTL, log)

	resolver := routing.NewResolver(cfg.Routing)
	tenantMW := routing.NewMiddleware(resolver, tenantSvc, routing.NewMetrics(), tracer, log)
	contexts := tenantctx.NewRegistry(tenantSvc, log)

	storefrontHandler := storefront.New(pageResolver, engine, sessions, contexts, log)
	cartHandler := carthandler.New(cartSvc, sessions, log)

	healthHandler := health.New(environment())
	if pool != nil {
		healthHandler.RegisterCheck("postgres", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			return pool.Ping(ctx)
		})
	}
	if redisClient != nil {
		healthHandler.RegisterCheck("redis", func() error {
			return redisClient.Ping(context.Background())
		})
	}

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Timeout(cfg.RequestTimeout))

	router.Handle("/metrics", promhttp.Handler())
	healthHandler.Register(router)

	// Demo seeding over HTTP is opt-in and token-guarded.
	if cfg.SeedTokenHash != "" {
		router.With(middleware.RequireSeedToken(cfg.SeedTokenHash, log)).
			Post("/internal/seed", func(w http.ResponseWriter, r *http.Request) {
				if err := seedSvc.SeedDemo(r.Context()); err != nil {
					log.ErrorContext(r.Context(), "seed failed", "error", err)
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
				w.WriteHeader(http.StatusNoContent)
			})
	}

	// The same storefront tree serves both addressing modes: mounted bare
	// for subdomain traffic and under /store/{slug} for path traffic. The
	// tenant middleware re-resolves from host and path either way.
	store := chi.NewRouter()
	store.Use(tenantMW.ResolveTenant)
	store.Route("/api", func(r chi.Router) {
		r.Use(middleware.BodyLimit(1 << 20))
		cartHandler.Register(r)
	})
	storefrontHandler.Register(store)

	router.Mount("/store/{slug}", store)
	router.Mount("/", store)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info("starting http server", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	if kafkaProducer != nil {
		kafkaProducer.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if pool != nil {
		_ = pool.Close()
	}

	log.Info("server stopped")
}

func environment() string {
	if env := os.Getenv("EXTENDBEE_ENV"); env != "" {
		return env
	}
	return "development"
}

package main

import (
	"context"
	"flag"
	"os"
	"time"

	"extendbee/internal/page/store"
	"extendbee/internal/platform/config"
	"extendbee/internal/platform/database"
	"extendbee/internal/platform/logger"
	"extendbee/internal/seeder"
	brandingstore "extendbee/internal/tenant/store/branding"
	tenantstore "extendbee/internal/tenant/store/tenant"
)

// main seeds storefront data into Postgres, from a YAML fixture when -file
// is given and from the built-in demo set otherwise.
func main() {
	file := flag.String("file", "", "YAML fixture to seed from (defaults to built-in demo data)")
	flag.Parse()

	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		log.Error("DATABASE_URL is required for seeding")
		os.Exit(1)
	}

	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	pool, err := database.New(dbCfg)
	if err != nil {
		log.Error("database setup failed", "error", err)
		os.Exit(1)
	}
	defer func() { _ = pool.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		log.Error("database unreachable", "error", err)
		os.Exit(1)
	}

	s := seeder.New(
		tenantstore.NewPostgres(pool.DB()),
		brandingstore.NewPostgres(pool.DB()),
		store.NewPostgres(pool.DB()),
		log,
	)

	if *file != "" {
		err = s.SeedFromFile(ctx, *file)
	} else {
		err = s.SeedDemo(ctx)
	}
	if err != nil {
		log.Error("seeding failed", "error", err)
		os.Exit(1)
	}
	log.Info("seeding complete")
}

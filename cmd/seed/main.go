package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/vendo-storefront/internal/catalog"
	"github.com/angelmondragon/vendo-storefront/pkg/config"
	"github.com/angelmondragon/vendo-storefront/pkg/db"
	"github.com/angelmondragon/vendo-storefront/pkg/logger"
	"github.com/angelmondragon/vendo-storefront/pkg/migrate"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	path := flag.String("file", "seed/catalog.yaml", "catalog seed file")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)
	if cfg.Catalog.UsesSeed() {
		fmt.Fprintf(os.Stderr, "unset %s: the seed command writes to the database\n", config.EnvCatalogSeed)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       cfg.App.LogLevel,
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "file": *path})

	seed, err := catalog.LoadSeed(*path)
	requireResource(ctx, logg, "seed file", err)

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	err = migrate.MaybeRunDev(ctx, cfg, logg, dbClient)
	requireResource(ctx, logg, "dev migrations", err)

	if err := catalog.NewRepository(dbClient.DB()).Replace(ctx, seed); err != nil {
		logg.Error(ctx, "failed to replace catalog", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"categories": len(seed.Categories),
		"items":      len(seed.Items),
	})
	logg.Info(ctx, "catalog seeded")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}

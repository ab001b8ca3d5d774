package cron

import (
	"context"
	"fmt"

	"github.com/angelmondragon/vendo-storefront/internal/catalog"
	"github.com/angelmondragon/vendo-storefront/pkg/logger"
)

type catalogRefresher interface {
	Refresh(ctx context.Context) (*catalog.Snapshot, error)
}

type CatalogRefreshJobParams struct {
	Logger   *logger.Logger
	Provider catalogRefresher
}

// NewCatalogRefreshJob reloads the in-memory catalog snapshot each cycle.
func NewCatalogRefreshJob(params CatalogRefreshJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Provider == nil {
		return nil, fmt.Errorf("catalog provider required")
	}
	return &catalogRefreshJob{logg: params.Logger, provider: params.Provider}, nil
}

type catalogRefreshJob struct {
	logg     *logger.Logger
	provider catalogRefresher
}

func (j *catalogRefreshJob) Name() string { return "catalog-refresh" }

func (j *catalogRefreshJob) Run(ctx context.Context) error {
	snapshot, err := j.provider.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh catalog: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"categories": len(snapshot.Categories()),
		"items":      len(snapshot.Items()),
		"loaded_at":  snapshot.LoadedAt(),
	})
	j.logg.Info(logCtx, "catalog refreshed")
	return nil
}

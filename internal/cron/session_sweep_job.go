package cron

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/multierr"

	"github.com/angelmondragon/vendo-storefront/internal/session"
	"github.com/angelmondragon/vendo-storefront/pkg/logger"
)

type SessionSweepJobParams struct {
	Logger *logger.Logger
	// Sweepers maps a store name (e.g. "carts") to its sweeper.
	Sweepers map[string]session.Sweeper
}

// NewSessionSweepJob drops expired entries from process-local session stores.
func NewSessionSweepJob(params SessionSweepJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	names := make([]string, 0, len(params.Sweepers))
	for name, sweeper := range params.Sweepers {
		if sweeper == nil {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("at least one session sweeper required")
	}
	sort.Strings(names)
	return &sessionSweepJob{logg: params.Logger, names: names, sweepers: params.Sweepers}, nil
}

type sessionSweepJob struct {
	logg     *logger.Logger
	names    []string
	sweepers map[string]session.Sweeper
}

func (j *sessionSweepJob) Name() string { return "session-sweep" }

func (j *sessionSweepJob) Run(ctx context.Context) error {
	var errs error
	removed := make(map[string]any, len(j.names))
	for _, name := range j.names {
		n, err := j.sweepers[name].Sweep(ctx)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("sweep %s: %w", name, err))
			continue
		}
		removed[name] = n
	}
	logCtx := j.logg.WithFields(ctx, removed)
	j.logg.Info(logCtx, "session sweep complete")
	return errs
}

package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/crucial707/recipe-api/internal/metrics"
	"github.com/robfig/cron/v3"
)

// Counter reports how many records a store holds.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// countTimeout bounds a single gauge refresh so a slow store cannot pile up runs.
const countTimeout = 10 * time.Second

// Start registers the recipe gauge refresh on spec (standard cron syntax or
// descriptors like "@every 1m"), runs it once immediately and starts the
// scheduler. Callers stop it with <-c.Stop().Done().
func Start(spec string, recipes Counter) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(spec, func() { RefreshRecipeGauge(context.Background(), recipes) }); err != nil {
		return nil, err
	}

	RefreshRecipeGauge(context.Background(), recipes)
	c.Start()
	slog.Info("scheduler: started", "job", "recipes_stored", "spec", spec)
	return c, nil
}

// RefreshRecipeGauge sets the recipes_stored gauge from the store's count.
// Failures are logged and leave the previous value in place.
func RefreshRecipeGauge(ctx context.Context, recipes Counter) {
	ctx, cancel := context.WithTimeout(ctx, countTimeout)
	defer cancel()

	n, err := recipes.Count(ctx)
	if err != nil {
		slog.Warn("scheduler: count recipes", "error", err)
		return
	}
	metrics.SetRecipesStored(n)
}

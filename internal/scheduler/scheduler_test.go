package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/crucial707/recipe-api/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fixedCounter struct {
	n   int64
	err error
}

func (f fixedCounter) Count(ctx context.Context) (int64, error) { return f.n, f.err }

func TestRefreshRecipeGauge(t *testing.T) {
	RefreshRecipeGauge(context.Background(), fixedCounter{n: 7})
	if got := testutil.ToFloat64(metrics.RecipesStored); got != 7 {
		t.Errorf("gauge: got %v, want 7", got)
	}

	// A failing count keeps the last good value.
	RefreshRecipeGauge(context.Background(), fixedCounter{err: errors.New("down")})
	if got := testutil.ToFloat64(metrics.RecipesStored); got != 7 {
		t.Errorf("gauge after failure: got %v, want 7", got)
	}
}

func TestStart_InvalidSpec(t *testing.T) {
	if _, err := Start("not a cron spec", fixedCounter{}); err == nil {
		t.Error("expected error for invalid spec")
	}
}

func TestStart_RefreshesImmediately(t *testing.T) {
	c, err := Start("@every 1h", fixedCounter{n: 3})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer func() { <-c.Stop().Done() }()

	if got := testutil.ToFloat64(metrics.RecipesStored); got != 3 {
		t.Errorf("gauge: got %v, want 3", got)
	}
	if len(c.Entries()) != 1 {
		t.Errorf("entries: got %d, want 1", len(c.Entries()))
	}
}

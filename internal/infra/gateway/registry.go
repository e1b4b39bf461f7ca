package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"

	"lci-gateway/internal/infra"
	"lci-gateway/pkg/lci"
)

// Registry keeps the last discovered list of Things so the monitor does not
// rediscover on every poll.
type Registry struct {
	client *lci.Client
	retry  infra.RetryConfig
	logger *slog.Logger

	mu     sync.RWMutex
	things []lci.Thing
}

func NewRegistry(client *lci.Client, retry infra.RetryConfig, logger *slog.Logger) *Registry {
	r := &Registry{
		client: client,
		retry:  retry,
		logger: logger,
	}
	if r.retry.Retryable == nil {
		r.retry.Retryable = IsRetryable
	}
	if r.retry.OnRetry == nil {
		r.retry.OnRetry = func(attempt int, delay time.Duration, err error) {
			r.logger.Warn("discovery failed, retrying", "attempt", attempt, "delay", delay, "error", err)
		}
	}
	return r
}

func (r *Registry) Sync(ctx context.Context) error {
	r.logger.Info("discovering things", "gateway", r.client.BaseURL())

	var things []lci.Thing
	err := infra.WithRetry(ctx, r.retry, func() error {
		var err error
		things, err = r.client.GetThings(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("discovering things: %w", err)
	}

	r.mu.Lock()
	r.things = things
	r.mu.Unlock()

	counts := lo.CountValuesBy(things, func(t lci.Thing) string { return t.Type().String() })
	r.logger.Info("discovery complete", "things", len(things), "types", counts)

	return nil
}

func (r *Registry) Things() []lci.Thing {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Map(r.things, func(t lci.Thing, _ int) lci.Thing { return t.Clone() })
}

func (r *Registry) FindByLabel(label string) (lci.Thing, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lci.FindByLabel(r.things, label)
}

func (r *Registry) StartPeriodicSync(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := r.Sync(ctx); err != nil {
					r.logger.Error("periodic discovery failed", "error", err)
				}
			}
		}
	}()
}

// IsRetryable reports whether a discovery failure may be transient: the
// gateway was unreachable or answered with a 5xx/429. Malformed responses
// are not retried.
func IsRetryable(err error) bool {
	var getErr *lci.GetError
	if !errors.As(err, &getErr) {
		return false
	}
	switch getErr.Stage {
	case lci.StageRequest, lci.StageRead:
		return true
	case lci.StageStatus:
		return infra.IsRetryableHTTPStatus(getErr.StatusCode)
	default:
		return false
	}
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"facility-registry/internal/domain/facility"
	"facility-registry/internal/pkg/metrics"
	"facility-registry/internal/repository"
	"facility-registry/internal/search"

	"go.uber.org/zap"
)

type AutocompleteParams struct {
	Category string
	Query    string
	Limit    int
}

type AutocompleteResult struct {
	Category facility.Category
	Values   []string
	Count    int
}

type AutocompleteUsecase interface {
	Search(ctx context.Context, params AutocompleteParams) (AutocompleteResult, error)
}

type Autocomplete struct {
	payloads  repository.PayloadRepository
	collector search.Collector
	cache     SearchCache
	metrics   *metrics.Metrics
	logger    *zap.Logger

	// lockWait is how long a request that lost the rebuild lock waits before
	// re-reading the cache.
	lockWait time.Duration
}

func NewAutocompleteUsecase(payloads repository.PayloadRepository, collector search.Collector, cache SearchCache, m *metrics.Metrics, logger *zap.Logger) *Autocomplete {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Autocomplete{
		payloads:  payloads,
		collector: collector,
		cache:     cache,
		metrics:   m,
		logger:    logger.Named("autocomplete"),
		lockWait:  150 * time.Millisecond,
	}
}

func (u *Autocomplete) Search(ctx context.Context, params AutocompleteParams) (res AutocompleteResult, err error) {
	start := time.Now()
	var category facility.Category
	defer func() {
		if r := recover(); r != nil {
			u.logger.Error("autocomplete panic", zap.Any("panic", r), zap.String("category", string(category)))
			res, err = AutocompleteResult{}, fmt.Errorf("%w: %v", ErrInternal, r)
		}
		u.metrics.ObserveAutocomplete(string(category), outcomeOf(err), time.Since(start))
	}()

	raw := strings.TrimSpace(params.Category)
	if raw == "" {
		return AutocompleteResult{}, ErrMissingCategory
	}
	category, ok := facility.ResolveCategory(raw)
	if !ok {
		return AutocompleteResult{}, fmt.Errorf("%w: %q", ErrUnsupportedCategory, raw)
	}

	values, err := u.categoryValues(ctx, category)
	if err != nil {
		return AutocompleteResult{}, err
	}

	out := search.Refine(values, params.Query, params.Limit)
	return AutocompleteResult{Category: category, Values: out, Count: len(out)}, nil
}

// categoryValues returns the collected display values of category, served from
// the cache when possible.
func (u *Autocomplete) categoryValues(ctx context.Context, category facility.Category) ([]string, error) {
	if u.cache == nil {
		return u.collect(ctx, category)
	}

	gen, err := autocompleteGeneration(ctx, u.cache)
	if err != nil {
		u.logger.Debug("cache generation unreadable, collecting uncached", zap.Error(err))
		return u.collect(ctx, category)
	}

	key := AutocompleteValuesKey(gen, category, u.collector.Strict)
	if values, ok := u.cached(ctx, key); ok {
		return values, nil
	}

	lockKey := AutocompleteLockKey(key)
	acquired, lockErr := u.cache.SetIfNotExists(ctx, lockKey, "1", 30*time.Second)
	if lockErr == nil && !acquired && u.lockWait > 0 {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", ErrInternal, ctx.Err())
		case <-time.After(u.lockWait):
		}
		if values, ok := u.cached(ctx, key); ok {
			return values, nil
		}
		u.logger.Debug("lock wait fallback", zap.String("key", lockKey))
	}

	values, err := u.collect(ctx, category)
	if err != nil {
		if acquired {
			_ = u.cache.Delete(ctx, lockKey)
		}
		return nil, err
	}

	if err := u.cache.SetJSON(ctx, key, values, 0); err != nil {
		u.logger.Debug("cache set failed", zap.String("key", key), zap.Error(err))
	}
	if acquired {
		_ = u.cache.Delete(ctx, lockKey)
	}
	return values, nil
}

func (u *Autocomplete) cached(ctx context.Context, key string) ([]string, bool) {
	var values []string
	hit, err := u.cache.GetJSON(ctx, key, &values)
	if err != nil {
		u.logger.Debug("cache get failed", zap.String("key", key), zap.Error(err))
	}
	hit = hit && err == nil
	u.metrics.CacheLookup(hit)
	if !hit {
		return nil, false
	}
	if values == nil {
		values = []string{}
	}
	return values, true
}

// collect runs the collector over master payloads first, then edit payloads,
// into one accumulator so the earliest spelling of a value wins.
func (u *Autocomplete) collect(ctx context.Context, category facility.Category) ([]string, error) {
	sources := []struct {
		name string
		load func(context.Context) ([]string, error)
	}{
		{"master", u.payloads.MasterPayloads},
		{"edits", u.payloads.EditPayloads},
	}

	set := search.NewValueSet()
	for _, src := range sources {
		rows, err := src.load(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s payloads: %w", ErrStorage, src.name, err)
		}

		skipped := 0
		for _, raw := range rows {
			data, ok := search.NormalizePayload(raw)
			if !ok {
				skipped++
				u.metrics.PayloadSkipped(src.name)
				continue
			}
			u.collector.Collect(category, data, set)
		}
		if skipped > 0 {
			u.logger.Debug("skipped unusable payloads", zap.String("source", src.name), zap.Int("count", skipped))
		}
	}
	return set.Values(), nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMissingCategory):
		return "missing_category"
	case errors.Is(err, ErrUnsupportedCategory):
		return "unsupported_category"
	case errors.Is(err, ErrStorage):
		return "storage_error"
	default:
		return "internal_error"
	}
}

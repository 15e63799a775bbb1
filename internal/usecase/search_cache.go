package usecase

import (
	"context"
	"errors"
	"time"
)

type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	GetInt(ctx context.Context, key string) (int64, error)
	Incr(ctx context.Context, key string) (int64, error)
}

// InvalidateAutocomplete moves readers to a fresh cache generation, then drops
// the value lists of older generations. A rebuild that started before the bump
// can only write under the generation nobody reads any more.
func InvalidateAutocomplete(ctx context.Context, cache SearchCache) error {
	if cache == nil {
		return nil
	}
	_, incrErr := cache.Incr(ctx, AutocompleteGenerationKey)
	return errors.Join(incrErr, cache.DeleteByPattern(ctx, AutocompleteCachePattern))
}

func autocompleteGeneration(ctx context.Context, cache SearchCache) (int64, error) {
	return cache.GetInt(ctx, AutocompleteGenerationKey)
}

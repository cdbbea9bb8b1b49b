package services

import (
	"context"

	"afterhourshvac/internal/caching"

	"github.com/rs/zerolog"
)

// cachedList serves a listing from the cache or loads and caches it. The
// generation is read before load so a concurrent Invalidate wins.
func cachedList[T any](ctx context.Context, cache caching.CacheService, logger zerolog.Logger,
	resource, variant string, load func() ([]T, error)) ([]T, error) {

	gen, genErr := cache.ListGeneration(ctx, resource)
	if genErr != nil {
		logger.Warn().Err(genErr).Str("resource", resource).Msg("list cache unavailable")
	} else {
		var cached []T
		if found, err := cache.GetList(ctx, resource, variant, gen, &cached); err == nil && found {
			return cached, nil
		}
	}

	items, err := load()
	if err != nil {
		return nil, err
	}
	if genErr == nil {
		if err := cache.SetList(ctx, resource, variant, gen, items); err != nil {
			logger.Warn().Err(err).Str("resource", resource).Msg("failed to cache list")
		}
	}
	return items, nil
}

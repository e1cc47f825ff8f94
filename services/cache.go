package services

import (
	"context"
	"homeserve-backend/models"
	"homeserve-backend/repository"
	"homeserve-backend/utils/logger"
	"homeserve-backend/utils/querycache"
	"sync/atomic"
)

// invalidations counts cache invalidations issued by this process. A result
// computed across an invalidation may predate the write and is not stored.
var invalidations atomic.Uint64

// cachedQuery serves key from the cache, falling back to fetch and storing
// its result. Cache failures are logged and never fail the query.
func cachedQuery[T any](ctx context.Context, cache querycache.Cache, log logger.Logger, key string, fetch func() (T, error)) (T, error) {
	if cache != nil {
		var hit T
		found, err := cache.Get(ctx, key, &hit)
		if err != nil {
			log.Warnf("Query cache read %s failed: %v", key, err)
		} else if found {
			return hit, nil
		}
	}

	epoch := invalidations.Load()
	out, err := fetch()
	if err != nil {
		return out, err
	}

	storeIfCurrent(ctx, cache, log, key, out, epoch)
	return out, nil
}

// storeIfCurrent caches value unless an invalidation happened since epoch.
// It reports whether the value was stored.
func storeIfCurrent(ctx context.Context, cache querycache.Cache, log logger.Logger, key string, value interface{}, epoch uint64) bool {
	if cache == nil {
		return false
	}
	if invalidations.Load() != epoch {
		log.Debugf("Skipping cache write %s, invalidated while computing", key)
		return false
	}
	if err := cache.Set(ctx, key, value); err != nil {
		log.Warnf("Query cache write %s failed: %v", key, err)
		return false
	}
	return true
}

// invalidate drops the named queries after a successful write
func invalidate(ctx context.Context, cache querycache.Cache, log logger.Logger, names ...string) {
	if cache == nil {
		return
	}
	invalidations.Add(1)
	if err := cache.Invalidate(ctx, names...); err != nil {
		log.Warnf("Query cache invalidation %v failed: %v", names, err)
	}
}

// attachPackages joins each booking with its package and the package category
func attachPackages(ctx context.Context, catalog repository.CatalogRepositoryInterface, bookings []*models.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.PackageID)
	}

	packages, err := catalog.GetPackagesByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, b := range bookings {
		b.Package = packages[b.PackageID]
	}
	return nil
}

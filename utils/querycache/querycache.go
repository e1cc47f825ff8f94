package querycache

import (
	"context"
	"fmt"
	"homeserve-backend/models"
	"homeserve-backend/utils/logger"
	"strings"
)

// Query names. A cached view is stored under Key(name, params...) and
// invalidating a name drops every key built from it.
const (
	StaffList         = "staff-list"
	StaffByPanchayath = "staff-by-panchayath"
	StaffAssignments  = "staff-assignments"
	Bookings          = "bookings"
	MyJobs            = "my-jobs"
	AvailableJobs     = "available-jobs"
	MyEarnings        = "my-earnings"
)

// Cache stores query results by query identity
type Cache interface {
	// Get decodes the cached value into dest. It reports false on a miss.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	// Invalidate drops every key belonging to the given query names
	Invalidate(ctx context.Context, names ...string) error
}

// Key builds the cache key for a query name and its parameters
func Key(name string, params ...string) string {
	if len(params) == 0 {
		return name
	}
	return name + "/" + strings.Join(params, "/")
}

// belongsTo reports whether key was built from the query name
func belongsTo(key, name string) bool {
	return key == name || strings.HasPrefix(key, name+"/")
}

// New returns the backend selected by cfg.CacheBackend
func New(cfg *models.Config, log logger.Logger) (Cache, error) {
	switch cfg.CacheBackend {
	case "", "memory":
		log.Infof("Query cache: in-memory, ttl %s", cfg.CacheTTL)
		return NewMemoryCache(cfg.CacheTTL), nil
	case "redis":
		c, err := NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
		if err != nil {
			return nil, err
		}
		log.Infof("Query cache: redis at %s, ttl %s", cfg.RedisAddr, cfg.CacheTTL)
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}

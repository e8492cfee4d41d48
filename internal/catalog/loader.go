package catalog

import (
	"database/sql"
	"fmt"

	"case-triage-workers/internal/common/config"
	"case-triage-workers/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

// NewLoader picks the loader for cfg.Source and wraps it in the Redis snapshot cache when
// cfg.CacheTTL is set. db and rdb may be nil when the configuration does not need them.
func NewLoader(cfg config.CatalogConfig, db *sql.DB, rdb *redis.Client, log logger.Logger) (Loader, error) {
	var loader Loader
	switch cfg.Source {
	case config.CatalogSourceFile, "":
		loader = NewFileLoader(cfg.Path)
	case config.CatalogSourcePostgres:
		if db == nil {
			return nil, fmt.Errorf("postgres catalog requires a database connection")
		}
		loader = NewPostgresLoader(db)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}

	if cfg.CacheTTL > 0 {
		if rdb == nil {
			return nil, fmt.Errorf("catalog cache requires a redis connection")
		}
		loader = NewCachedLoader(loader, rdb, config.GetDuration(cfg.CacheTTL), log)
	}
	return loader, nil
}

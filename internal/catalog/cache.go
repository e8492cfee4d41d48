package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"case-triage-workers/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

// SnapshotKey is where replicas share the last loaded catalog.
const SnapshotKey = "triage:catalog:v1"

// CachedLoader serves a Snapshot from Redis when present and otherwise loads it from
// the wrapped Loader and stores it for ttl. Redis problems never fail the load.
type CachedLoader struct {
	inner  Loader
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedLoader(inner Loader, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedLoader {
	return &CachedLoader{
		inner:  inner,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-cache"}),
	}
}

func (l *CachedLoader) Load(ctx context.Context) (Snapshot, error) {
	val, err := l.redis.Get(ctx, SnapshotKey).Bytes()
	switch {
	case err == nil:
		var snap Snapshot
		jsonErr := json.Unmarshal(val, &snap)
		if jsonErr == nil {
			l.logger.Info("catalog served from cache", map[string]interface{}{"key": SnapshotKey})
			return snap, nil
		}
		l.logger.Warn("discarding unreadable catalog snapshot", map[string]interface{}{"error": jsonErr.Error()})
	case !errors.Is(err, redis.Nil):
		l.logger.Warn("catalog cache read failed", map[string]interface{}{"error": err.Error()})
	}

	snap, err := l.inner.Load(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return snap, nil
	}
	if err := l.redis.Set(ctx, SnapshotKey, data, l.ttl).Err(); err != nil {
		l.logger.Warn("catalog cache write failed", map[string]interface{}{"error": err.Error()})
	}
	return snap, nil
}

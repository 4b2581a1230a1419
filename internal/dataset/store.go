package dataset

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/cache"
	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/errors"
	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/models"
	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/telemetry"

	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("job-listings/dataset")

// DataLoader parses a source file into the canonical dataset.
type DataLoader interface {
	Load(ctx context.Context, path string) (*models.Dataset, error)
}

// Store memoizes dataset loads keyed by file path + modification time, so
// cleaning runs exactly once per distinct input. The cache backend decides
// whether the snapshot is shared across replicas.
type Store struct {
	loader DataLoader
	cache  cache.Cache
	logger *zap.Logger
	ttl    time.Duration

	mu      sync.Mutex
	lastKey string
	last    *models.Dataset
}

func NewStore(loader DataLoader, c cache.Cache, logger *zap.Logger, ttl time.Duration) *Store {
	return &Store{
		loader: loader,
		cache:  c,
		logger: logger,
		ttl:    ttl,
	}
}

// Dataset returns the canonical dataset for path, loading it only when the
// file is new or has changed since the last load.
func (s *Store) Dataset(ctx context.Context, path string) (*models.Dataset, error) {
	ctx, span := tracer.Start(ctx, "Store.Dataset")
	defer span.End()

	info, err := os.Stat(path)
	if err != nil {
		span.RecordError(err)
		return nil, errors.DataLoad("stat dataset", err)
	}
	key := fmt.Sprintf("dataset:%s:%d", path, info.ModTime().UnixNano())

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastKey == key && s.last != nil {
		span.SetAttributes(telemetry.String("cache.result", "hit"))
		return s.last, nil
	}

	var cached models.Dataset
	cacheErr := s.cache.Get(ctx, key, &cached)
	if cacheErr == nil {
		span.SetAttributes(telemetry.String("cache.result", "hit"))
		s.lastKey, s.last = key, &cached
		return &cached, nil
	}
	if cacheErr != cache.ErrNotFound {
		span.RecordError(cacheErr)
		s.logger.Warn("dataset cache error", zap.Error(cacheErr))
	}
	span.SetAttributes(telemetry.String("cache.result", "miss"))

	ds, err := s.loader.Load(ctx, path)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := s.cache.Set(ctx, key, ds, s.ttl); err != nil {
		s.logger.Warn("failed to cache dataset", zap.Error(err))
	}

	s.lastKey, s.last = key, ds
	return ds, nil
}

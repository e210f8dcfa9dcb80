package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-schedule-engine/internal/models"
	appErrors "github.com/noah-isme/sma-schedule-engine/pkg/errors"
)

// CacheRepository abstracts persistence for cached snapshots.
type CacheRepository interface {
	GetSnapshot(ctx context.Context, name models.SnapshotName, dest interface{}) error
	SetSnapshot(ctx context.Context, name models.SnapshotName, value interface{}, ttl time.Duration) error
	NextGeneration(ctx context.Context) (int64, error)
}

// CacheService caches read-mostly reference snapshots and records hit metrics.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Get loads the named snapshot into dest and reports whether the cache was hit. Backend
// errors are logged and reported as misses so callers fall through to the source of truth.
func (s *CacheService) Get(ctx context.Context, name models.SnapshotName, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}
	start := time.Now()
	err := s.repo.GetSnapshot(ctx, name, dest)
	s.metrics.RecordCacheOperation(err == nil, time.Since(start))
	if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("snapshot cache get failed", zap.String("snapshot", string(name)), zap.Error(err))
	}
	return err == nil
}

// Set stores value as the named snapshot. Failures are logged, never returned.
func (s *CacheService) Set(ctx context.Context, name models.SnapshotName, value interface{}, ttl time.Duration) {
	if !s.Enabled() {
		return
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	start := time.Now()
	err := s.repo.SetSnapshot(ctx, name, value, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("snapshot cache set failed", zap.String("snapshot", string(name)), zap.Error(err))
	}
}

// InvalidateSnapshots drops every cached schedule snapshot.
func (s *CacheService) InvalidateSnapshots(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	gen, err := s.repo.NextGeneration(ctx)
	if err != nil {
		s.logger.Warn("snapshot cache invalidate failed", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to invalidate schedule snapshots")
	}
	s.logger.Info("schedule snapshots invalidated", zap.Int64("generation", gen))
	return nil
}

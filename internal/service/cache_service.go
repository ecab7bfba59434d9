package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/plannora/planning-api/internal/repository"
)

// CacheService wraps the Redis repository with planning-specific keys and a
// kill switch so the API keeps working when Redis is down or disabled.
type CacheService struct {
	repo    *repository.CacheRepository
	metrics *MetricsService
	logger  *zap.Logger
	enabled bool
	ttl     time.Duration
}

func NewCacheService(repo *repository.CacheRepository, metrics *MetricsService, logger *zap.Logger, enabled bool, ttl time.Duration) *CacheService {
	return &CacheService{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
		enabled: enabled && repo != nil,
		ttl:     ttl,
	}
}

// PlanningKey builds the cache key for a generated weekly planning.
func PlanningKey(teamID string, year, week int) string {
	return fmt.Sprintf("planning:%s:%d:%d", teamID, year, week)
}

// GetPlanning loads a cached planning into dest. Returns false on miss,
// disabled cache or decode failure.
func (s *CacheService) GetPlanning(ctx context.Context, teamID string, year, week int, dest interface{}) bool {
	if !s.enabled {
		return false
	}
	if err := s.repo.Get(ctx, PlanningKey(teamID, year, week), dest); err != nil {
		s.metrics.RecordCacheOperation(false)
		return false
	}
	s.metrics.RecordCacheOperation(true)
	return true
}

// SetPlanning stores a generated planning. Failures are logged, never surfaced.
func (s *CacheService) SetPlanning(ctx context.Context, teamID string, year, week int, value interface{}) {
	if !s.enabled {
		return
	}
	if err := s.repo.Set(ctx, PlanningKey(teamID, year, week), value, s.ttl); err != nil {
		s.logger.Warn("cache set failed", zap.String("team_id", teamID), zap.Error(err))
	}
}

// InvalidateTeam drops every cached planning for a team, typically after a save.
func (s *CacheService) InvalidateTeam(ctx context.Context, teamID string) {
	if !s.enabled {
		return
	}
	pattern := fmt.Sprintf("planning:%s:*", teamID)
	if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("cache invalidation failed", zap.String("team_id", teamID), zap.Error(err))
	}
}

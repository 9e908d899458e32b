package service

import (
	"appointment/internal/appers"
	"appointment/internal/application/entity"
	"appointment/internal/application/repo"
	"appointment/pkg/cache"
	"appointment/pkg/config"
	"appointment/pkg/metrics"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DependencyDatabase = "database"
	DependencyCache    = "cache"
)

type Service interface {
	Health(ctx context.Context) entity.HealthReport
	Readiness(ctx context.Context) entity.ReadinessReport
	Liveness(ctx context.Context) entity.LivenessReport
}

// ServiceImpl - health reporter. Состояния между вызовами не хранит.
type ServiceImpl struct {
	repo   repo.Repo
	cache  cache.Cache
	logger *zap.SugaredLogger
	cfg    config.Health
	m      *metrics.Metrics
}

func NewService(repo repo.Repo, cache cache.Cache, logger *zap.SugaredLogger, cfg config.Health, m *metrics.Metrics) *ServiceImpl {
	return &ServiceImpl{
		repo:   repo,
		cache:  cache,
		logger: logger,
		cfg:    cfg,
		m:      m,
	}
}

// Health проверяет БД и кэш параллельно; ошибки проверок не пробрасываются, а попадают в отчет.
// Зависшая БД не съедает бюджет кэша: у каждой проверки свой дедлайн.
func (s *ServiceImpl) Health(ctx context.Context) entity.HealthReport {
	var database, cacheRes entity.CheckResult

	var g errgroup.Group
	g.Go(func() error {
		database = s.checkDatabase(ctx)
		return nil
	})
	g.Go(func() error {
		cacheRes = s.checkCache(ctx)
		return nil
	})
	_ = g.Wait()

	report := entity.NewHealthReport(s.cfg.ServiceName, database, cacheRes)
	s.logger.Debugw("health check done", "status", report.Status, "database", report.Database, "cache", report.Cache)
	return report
}

func (s *ServiceImpl) Readiness(ctx context.Context) entity.ReadinessReport {
	res := s.checkDatabase(ctx)
	if res.Err != nil {
		return entity.ReadinessReport{Status: entity.StatusNotReady, Error: res.Err.Error()}
	}
	return entity.ReadinessReport{Status: entity.StatusReady}
}

// Liveness не трогает зависимости: процесс жив, даже если БД и кэш лежат
func (s *ServiceImpl) Liveness(_ context.Context) entity.LivenessReport {
	return entity.LivenessReport{Status: entity.StatusAlive}
}

func (s *ServiceImpl) checkContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.CheckTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.CheckTimeout)
}

func (s *ServiceImpl) checkDatabase(ctx context.Context) entity.CheckResult {
	ctx, cancel := s.checkContext(ctx)
	defer cancel()

	start := time.Now()
	err := s.repo.HealthCheck(ctx)
	if err != nil {
		err = appers.Unavailable(DependencyDatabase, err)
		s.logger.Errorw("database health check failed", "err", err)
	}
	s.observe(DependencyDatabase, start, err)
	return entity.CheckResult{Dependency: DependencyDatabase, Err: err}
}

// checkCache пишет фиксированный ключ с коротким TTL и читает его обратно
func (s *ServiceImpl) checkCache(ctx context.Context) entity.CheckResult {
	ctx, cancel := s.checkContext(ctx)
	defer cancel()

	start := time.Now()
	err := s.cacheRoundTrip(ctx)
	if err != nil {
		err = appers.Unavailable(DependencyCache, err)
		s.logger.Errorw("cache health check failed", "err", err, "key", s.cfg.CacheKey)
	}
	s.observe(DependencyCache, start, err)
	return entity.CheckResult{Dependency: DependencyCache, Err: err}
}

func (s *ServiceImpl) cacheRoundTrip(ctx context.Context) error {
	if err := s.cache.Set(ctx, s.cfg.CacheKey, s.cfg.CacheValue, s.cfg.CacheTTL); err != nil {
		return fmt.Errorf("set %q: %w", s.cfg.CacheKey, err)
	}
	got, err := s.cache.Get(ctx, s.cfg.CacheKey)
	if err != nil {
		return fmt.Errorf("get %q: %w", s.cfg.CacheKey, err)
	}
	if got != s.cfg.CacheValue {
		s.logger.Warnw("cache returned unexpected value", "key", s.cfg.CacheKey, "want", s.cfg.CacheValue, "got", got)
		return fmt.Errorf("get %q: %w", s.cfg.CacheKey, appers.ErrCacheMismatch)
	}
	return nil
}

func (s *ServiceImpl) observe(dependency string, start time.Time, err error) {
	if s.m == nil {
		return
	}
	result, up := "ok", 1.0
	if err != nil {
		result, up = "error", 0
	}
	s.m.Checks.Total.WithLabelValues(dependency, result).Inc()
	s.m.Checks.DurationSeconds.WithLabelValues(dependency).Observe(time.Since(start).Seconds())
	s.m.Checks.Up.WithLabelValues(dependency).Set(up)
}

package service

import (
	"appointment/internal/appers"
	"appointment/internal/application/entity"
	"appointment/pkg/config"
	"appointment/pkg/metrics"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) HealthCheck(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

var testHealthConfig = config.Health{
	ServiceName: "django-doctor-appointment",
	CacheKey:    "health_check",
	CacheValue:  "ok",
	CacheTTL:    10 * time.Second,
	Timeout:     3 * time.Second,
}

func newTestService(t *testing.T, r *mockRepo, c *mockCache) (*ServiceImpl, *observer.ObservedLogs, *metrics.Metrics) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	m := metrics.New(prometheus.NewRegistry())
	return NewService(r, c, zap.New(core).Sugar(), testHealthConfig, m), logs, m
}

func healthyCache() *mockCache {
	c := new(mockCache)
	c.On("Set", mock.Anything, "health_check", "ok", 10*time.Second).Return(nil)
	c.On("Get", mock.Anything, "health_check").Return("ok", nil)
	return c
}

func TestHealthDependencyMatrix(t *testing.T) {
	dbDown := errors.New("connection refused")
	cacheDown := errors.New("dial tcp: i/o timeout")

	tests := []struct {
		name     string
		dbErr    error
		cacheErr error
		want     entity.HealthReport
	}{
		{
			name: "healthy/healthy",
			want: entity.HealthReport{Status: "healthy", Database: "healthy", Cache: "healthy", Service: "django-doctor-appointment"},
		},
		{
			name:     "healthy/unhealthy",
			cacheErr: cacheDown,
			want:     entity.HealthReport{Status: "unhealthy", Database: "healthy", Cache: "unhealthy", Service: "django-doctor-appointment"},
		},
		{
			name:  "unhealthy/healthy",
			dbErr: dbDown,
			want:  entity.HealthReport{Status: "unhealthy", Database: "unhealthy", Cache: "healthy", Service: "django-doctor-appointment"},
		},
		{
			name:     "unhealthy/unhealthy",
			dbErr:    dbDown,
			cacheErr: cacheDown,
			want:     entity.HealthReport{Status: "unhealthy", Database: "unhealthy", Cache: "unhealthy", Service: "django-doctor-appointment"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := new(mockRepo)
			r.On("HealthCheck", mock.Anything).Return(tt.dbErr)

			c := new(mockCache)
			c.On("Set", mock.Anything, "health_check", "ok", 10*time.Second).Return(tt.cacheErr)
			c.On("Get", mock.Anything, "health_check").Return("ok", nil).Maybe()

			s, logs, _ := newTestService(t, r, c)
			report := s.Health(context.Background())

			assert.Equal(t, tt.want, report)
			assert.Equal(t, tt.dbErr == nil, logs.FilterMessage("database health check failed").Len() == 0)
			assert.Equal(t, tt.cacheErr == nil, logs.FilterMessage("cache health check failed").Len() == 0)
			r.AssertExpectations(t)
			c.AssertExpectations(t)
		})
	}
}

func TestHealthLogsOriginatingError(t *testing.T) {
	r := new(mockRepo)
	r.On("HealthCheck", mock.Anything).Return(errors.New("password authentication failed"))

	s, logs, _ := newTestService(t, r, healthyCache())
	s.Health(context.Background())

	entries := logs.FilterMessage("database health check failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Contains(t, entries[0].ContextMap()["err"], "password authentication failed")
}

func TestHealthCacheReadBack(t *testing.T) {
	tests := []struct {
		name    string
		got     string
		getErr  error
		wantErr error
	}{
		{name: "value expired or evicted", got: "", wantErr: appers.ErrCacheMismatch},
		{name: "foreign value", got: "stale", wantErr: appers.ErrCacheMismatch},
		{name: "read error", getErr: errors.New("READONLY You can't write against a read only replica")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := new(mockRepo)
			r.On("HealthCheck", mock.Anything).Return(nil)

			c := new(mockCache)
			c.On("Set", mock.Anything, "health_check", "ok", 10*time.Second).Return(nil)
			c.On("Get", mock.Anything, "health_check").Return(tt.got, tt.getErr)

			s, _, _ := newTestService(t, r, c)
			report := s.Health(context.Background())

			assert.Equal(t, entity.StatusUnhealthy, report.Status)
			assert.Equal(t, entity.StatusHealthy, report.Database)
			assert.Equal(t, entity.StatusUnhealthy, report.Cache)

			res := s.checkCache(context.Background())
			var depErr *appers.DependencyUnavailable
			require.ErrorAs(t, res.Err, &depErr)
			assert.Equal(t, DependencyCache, depErr.Dependency)
			if tt.wantErr != nil {
				assert.ErrorIs(t, res.Err, tt.wantErr)
			}
		})
	}
}

func TestHealthIdempotent(t *testing.T) {
	r := new(mockRepo)
	r.On("HealthCheck", mock.Anything).Return(nil)

	s, _, _ := newTestService(t, r, healthyCache())

	first := s.Health(context.Background())
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, s.Health(context.Background()))
	}
	r.AssertNumberOfCalls(t, "HealthCheck", 6)
}

func TestReadiness(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		r := new(mockRepo)
		r.On("HealthCheck", mock.Anything).Return(nil).Once()
		c := new(mockCache)

		s, _, _ := newTestService(t, r, c)
		report := s.Readiness(context.Background())

		assert.Equal(t, entity.ReadinessReport{Status: entity.StatusReady}, report)
		assert.True(t, report.Ready())
		c.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not ready", func(t *testing.T) {
		r := new(mockRepo)
		r.On("HealthCheck", mock.Anything).Return(errors.New("connection refused")).Once()

		s, logs, _ := newTestService(t, r, new(mockCache))
		report := s.Readiness(context.Background())

		assert.Equal(t, entity.StatusNotReady, report.Status)
		assert.Equal(t, "database unavailable: connection refused", report.Error)
		assert.False(t, report.Ready())
		assert.Equal(t, 1, logs.FilterMessage("database health check failed").Len())
	})

	t.Run("error text never empty", func(t *testing.T) {
		r := new(mockRepo)
		r.On("HealthCheck", mock.Anything).Return(errors.New("")).Once()

		s, _, _ := newTestService(t, r, new(mockCache))
		assert.NotEmpty(t, s.Readiness(context.Background()).Error)
	})
}

func TestLivenessIgnoresDependencies(t *testing.T) {
	r := new(mockRepo)
	c := new(mockCache)

	s, _, _ := newTestService(t, r, c)
	assert.Equal(t, entity.LivenessReport{Status: entity.StatusAlive}, s.Liveness(context.Background()))

	r.AssertNotCalled(t, "HealthCheck", mock.Anything)
	c.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestCheckMetrics(t *testing.T) {
	r := new(mockRepo)
	r.On("HealthCheck", mock.Anything).Return(errors.New("down"))

	s, _, m := newTestService(t, r, healthyCache())
	s.Health(context.Background())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Checks.Total.WithLabelValues(DependencyDatabase, "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Checks.Total.WithLabelValues(DependencyCache, "ok")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Checks.Up.WithLabelValues(DependencyDatabase)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Checks.Up.WithLabelValues(DependencyCache)))
}

func TestServiceWithoutMetrics(t *testing.T) {
	r := new(mockRepo)
	r.On("HealthCheck", mock.Anything).Return(nil)

	s := NewService(r, healthyCache(), zap.NewNop().Sugar(), testHealthConfig, nil)
	assert.True(t, s.Health(context.Background()).Healthy())
}

func TestHealthHangingDatabaseKeepsCacheVerdict(t *testing.T) {
	r := new(mockRepo)
	r.On("HealthCheck", mock.Anything).Run(func(args mock.Arguments) {
		<-args.Get(0).(context.Context).Done()
	}).Return(context.DeadlineExceeded)

	cfg := testHealthConfig
	cfg.CheckTimeout = 100 * time.Millisecond
	s := NewService(r, healthyCache(), zap.NewNop().Sugar(), cfg, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	start := time.Now()
	report := s.Health(ctx)

	assert.Equal(t, entity.StatusHealthy, report.Cache)
	assert.Equal(t, entity.StatusUnhealthy, report.Database)
	assert.Equal(t, entity.StatusUnhealthy, report.Status)
	assert.Less(t, time.Since(start), time.Second)
}

func TestChecksHaveOwnDeadline(t *testing.T) {
	cfg := testHealthConfig
	cfg.CheckTimeout = 200 * time.Millisecond

	withinBudget := mock.MatchedBy(func(ctx context.Context) bool {
		dl, ok := ctx.Deadline()
		return ok && time.Until(dl) <= cfg.CheckTimeout
	})

	r := new(mockRepo)
	r.On("HealthCheck", withinBudget).Return(nil)
	c := new(mockCache)
	c.On("Set", withinBudget, "health_check", "ok", 10*time.Second).Return(nil)
	c.On("Get", withinBudget, "health_check").Return("ok", nil)

	s := NewService(r, c, zap.NewNop().Sugar(), cfg, nil)
	assert.True(t, s.Health(context.Background()).Healthy())

	r.AssertExpectations(t)
	c.AssertExpectations(t)
}

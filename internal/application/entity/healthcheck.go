package entity

// Status значение поля status в ответах проб
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusReady     Status = "ready"
	StatusNotReady  Status = "not ready"
	StatusAlive     Status = "alive"
)

// HealthReport ответ /health/
type HealthReport struct {
	Status   Status `json:"status" example:"healthy"`
	Database Status `json:"database" example:"healthy"`
	Cache    Status `json:"cache" example:"healthy"`
	Service  string `json:"service" example:"django-doctor-appointment"`
}

func (r HealthReport) Healthy() bool {
	return r.Status == StatusHealthy
}

// ReadinessReport ответ /health/ready/
type ReadinessReport struct {
	Status Status `json:"status" example:"ready"`
	Error  string `json:"error,omitempty" example:"database unavailable: connection refused"`
}

func (r ReadinessReport) Ready() bool {
	return r.Status == StatusReady
}

// LivenessReport ответ /health/live/
type LivenessReport struct {
	Status Status `json:"status" example:"alive"`
}

// CheckResult итог одной проверки зависимости: Err == nil значит зависимость в порядке
type CheckResult struct {
	Dependency string
	Err        error
}

func (c CheckResult) Status() Status {
	if c.Err != nil {
		return StatusUnhealthy
	}
	return StatusHealthy
}

// NewHealthReport сводит результаты проверок; общий статус healthy только если обе зависимости healthy
func NewHealthReport(service string, database, cache CheckResult) HealthReport {
	overall := StatusUnhealthy
	if database.Err == nil && cache.Err == nil {
		overall = StatusHealthy
	}
	return HealthReport{
		Status:   overall,
		Database: database.Status(),
		Cache:    cache.Status(),
		Service:  service,
	}
}

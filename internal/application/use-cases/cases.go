package use_cases

import (
	"appointment/internal/application/entity"
	"appointment/internal/application/service"
	"context"

	"go.uber.org/zap"
)

type UseCaser interface {
	Health(ctx context.Context) entity.HealthReport
	Readiness(ctx context.Context) entity.ReadinessReport
	Liveness(ctx context.Context) entity.LivenessReport
}

type UseCase struct {
	service service.Service
	logger  *zap.SugaredLogger
}

func NewUseCase(service service.Service, logger *zap.SugaredLogger) *UseCase {
	return &UseCase{
		service: service,
		logger:  logger,
	}
}

func (u *UseCase) Health(ctx context.Context) entity.HealthReport {
	u.logger.Debug("health probe started")
	return u.service.Health(ctx)
}

func (u *UseCase) Readiness(ctx context.Context) entity.ReadinessReport {
	u.logger.Debug("readiness probe started")
	return u.service.Readiness(ctx)
}

func (u *UseCase) Liveness(ctx context.Context) entity.LivenessReport {
	return u.service.Liveness(ctx)
}

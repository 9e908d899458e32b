package handler

import (
	use_cases "appointment/internal/application/use-cases"
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler interface {
	HealthCheck(c *fiber.Ctx) error
	ReadinessCheck(c *fiber.Ctx) error
	LivenessCheck(c *fiber.Ctx) error
}

type HandlerImpl struct {
	usecase use_cases.UseCaser
	logger  *zap.SugaredLogger
	timeout time.Duration
}

func NewHealthHandler(usecase use_cases.UseCaser, logger *zap.SugaredLogger, timeout time.Duration) *HandlerImpl {
	return &HandlerImpl{
		usecase: usecase,
		logger:  logger,
		timeout: timeout,
	}
}

func (h *HandlerImpl) checkContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.UserContext())
	}
	return context.WithTimeout(c.UserContext(), h.timeout)
}

// HealthCheck godoc
// @Summary     Проверка состояния сервиса
// @Description Проверяет доступность базы данных (SELECT 1) и кэша (запись и чтение ключа). 200 если обе зависимости доступны, иначе 503.
// @Produce     json
// @Success     200   {object} entity.HealthReport "Все зависимости доступны"
// @Failure     503   {object} entity.HealthReport "Одна или несколько зависимостей недоступны"
// @tags        Health
// @Router      /health/ [get]
func (h *HandlerImpl) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := h.checkContext(c)
	defer cancel()

	report := h.usecase.Health(ctx)
	if !report.Healthy() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.Status(fiber.StatusOK).JSON(report)
}

// ReadinessCheck godoc
// @Summary     Проба готовности
// @Description Проверяет доступность базы данных. 503 с текстом ошибки, если запрос не прошел.
// @Produce     json
// @Success     200   {object} entity.ReadinessReport "Сервис готов принимать трафик"
// @Failure     503   {object} entity.ReadinessReport "База данных недоступна"
// @tags        Health
// @Router      /health/ready/ [get]
func (h *HandlerImpl) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := h.checkContext(c)
	defer cancel()

	report := h.usecase.Readiness(ctx)
	if !report.Ready() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.Status(fiber.StatusOK).JSON(report)
}

// LivenessCheck godoc
// @Summary     Проба живости
// @Description Всегда 200, зависимости не проверяются.
// @Produce     json
// @Success     200   {object} entity.LivenessReport
// @tags        Health
// @Router      /health/live/ [get]
func (h *HandlerImpl) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.usecase.Liveness(c.UserContext()))
}

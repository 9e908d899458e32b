package handler

import (
	"appointment/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Router struct {
	handler  Handler
	app      *fiber.App
	conf     *config.Config
	logger   *zap.SugaredLogger
	gatherer prometheus.Gatherer
}

func NewRouter(handler Handler, app *fiber.App, conf *config.Config, logger *zap.SugaredLogger, gatherer prometheus.Gatherer) *Router {
	return &Router{
		logger:   logger,
		app:      app,
		conf:     conf,
		handler:  handler,
		gatherer: gatherer,
	}
}

func (r *Router) RegisterRouter() {
	health := r.app.Group("/health")
	health.Get("/", r.handler.HealthCheck)
	health.Get("/ready/", r.handler.ReadinessCheck)
	health.Get("/live/", r.handler.LivenessCheck)

	if r.gatherer != nil {
		r.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))
	}

	r.app.Get("/swagger/*", swagger.New(swagger.Config{
		DeepLinking: false,
		URL:         "/swagger/doc.json",
	}))
}

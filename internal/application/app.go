package application

import (
	"appointment/internal/application/common"
	"appointment/internal/application/repo"
	"appointment/internal/application/service"
	"appointment/internal/application/use-cases"
	"appointment/internal/controllers/handler"
	"appointment/pkg/cache"
	"appointment/pkg/config"
	"appointment/pkg/db"
	"appointment/pkg/metrics"
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type App struct {
	ctx        context.Context
	conf       *config.Config
	logger     *zap.SugaredLogger
	httpServer *fiber.App
}

func NewApp(
	ctx context.Context,
	conf *config.Config,
	logger *zap.SugaredLogger,
	store db.DB,
	kv cache.Cache,
	httpServer *fiber.App,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer) *App {
	logger.Infof("Запуск Health Service версии: %s", common.Version)

	r := repo.NewRepo(store, logger)
	srv := service.NewService(r, kv, logger, conf.Health, m)
	uc := use_cases.NewUseCase(srv, logger)
	h := handler.NewHealthHandler(uc, logger, conf.Health.Timeout)
	router := handler.NewRouter(h, httpServer, conf, logger, gatherer)

	router.RegisterRouter()

	return &App{
		ctx:        ctx,
		conf:       conf,
		logger:     logger,
		httpServer: httpServer,
	}
}

func (a *App) Run() error {
	return a.httpServer.Listen(fmt.Sprintf(":%s", a.conf.Server.Port))
}

func (a *App) Shutdown() error {
	return a.httpServer.Shutdown()
}

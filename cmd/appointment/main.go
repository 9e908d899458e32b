package main

import (
	"appointment/docs"
	"appointment/internal/application"
	"appointment/pkg/cache"
	"appointment/pkg/config"
	"appointment/pkg/db"
	"appointment/pkg/httpserver"
	"appointment/pkg/metrics"
	"appointment/pkg/observability"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// @title           Doctor Appointment Health API
// @version         1.0
// @description     Health, readiness and liveness probes of the doctor appointment service

// @BasePath /

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conf, err := config.NewConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := observability.InitLogger(conf.LoggingLevel, conf.Logging)
	defer func() { _ = logger.Sync() }()

	logger.Infof("LOGGING_LEVEL = %s", conf.LoggingLevel)

	if err := conf.Validate(); err != nil {
		logger.Fatal(err)
	}
	logger.Infow("config loaded", "config", conf.Summary())

	docs.SwaggerInfo.Host = conf.Server.SwaggerHost
	if conf.Server.SwaggerSchema != "" {
		docs.SwaggerInfo.Schemes = []string{conf.Server.SwaggerSchema}
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	fiberServer := httpserver.NewFiber(conf, m)
	if fiberServer == nil {
		logger.Fatal(errors.New("fiber server is nil"))
	}

	store, err := db.NewPostgres(ctx, conf.Postgres)
	if err != nil {
		logger.Fatal(err)
	}

	redisCache, err := cache.NewRedis(conf.Redis)
	if err != nil {
		logger.Fatal(err)
	}

	// Недоступные зависимости не мешают старту: их состояние покажут пробы
	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	if err := store.Ping(pingCtx); err != nil {
		logger.Warnw("postgres is not reachable at startup", "err", err)
	}
	if err := redisCache.Ping(pingCtx); err != nil {
		logger.Warnw("redis is not reachable at startup", "err", err)
	}
	pingCancel()

	server := application.NewApp(ctx, &conf, logger, store, redisCache, fiberServer, m, prometheus.DefaultGatherer)

	logger.Info("Health service started successfully")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Fatalf("error listening for server: %v", err)
				return
			}

			logger.Infof("server %v closed", conf.Server.Port)
		}
	}()

	//graceful shutdown
	osSignal := <-interrupt
	switch osSignal {
	case os.Interrupt:
		logger.Infof("%v Got SIGINT...", conf.Server.Port)
	case syscall.SIGTERM:
		logger.Infof("%v Got SIGTERM...", conf.Server.Port)
	}

	cancel()

	if err := server.Shutdown(); err != nil {
		logger.Errorf("server %v forced to shutdown: %v", conf.Server.Port, err)
	}

	store.Close()
	logger.Infof("postgres db connection closed")

	if err := redisCache.Close(); err != nil {
		logger.Warnw("redis close failed", "err", err)
	}

	logger.Infof("server shutdown %v done", conf.Server.Port)
}

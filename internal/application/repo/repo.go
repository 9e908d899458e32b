package repo

import (
	"appointment/pkg/db"
	"context"
	"fmt"

	"go.uber.org/zap"
)

type Repo interface {
	HealthCheck(ctx context.Context) error
}

type RepoImpl struct {
	db     db.DB
	logger *zap.SugaredLogger
}

func NewRepo(db db.DB, logger *zap.SugaredLogger) *RepoImpl {
	return &RepoImpl{db: db, logger: logger}
}

// HealthCheck делает минимальный запрос на отдельном соединении из пула.
// Соединение возвращается в пул на любом пути выхода.
func (r *RepoImpl) HealthCheck(ctx context.Context) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var result int
	if err := conn.QueryRow(ctx, healthCheckQuery).Scan(&result); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	if result != 1 {
		return fmt.Errorf("database health check failed: unexpected result %d", result)
	}
	r.logger.Debug("database health check passed")
	return nil
}

package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

var (
	// Validate - singleton экземпляр валидатора для переиспользования
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Регистрируем кастомные валидаторы
	_ = Validate.RegisterValidation("pgdsn", validatePgDSN)
	_ = Validate.RegisterValidation("redisurl", validateRedisURL)
}

// validatePgDSN проверяет, что строка разбирается как DSN postgres (URL или key=value)
func validatePgDSN(fl validator.FieldLevel) bool {
	dsn := fl.Field().String()
	if dsn == "" {
		return false
	}
	_, err := pgconn.ParseConfig(dsn)
	return err == nil
}

// validateRedisURL проверяет адрес вида redis://[user:password@]host:port/db
func validateRedisURL(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return false
	}
	_, err := redis.ParseURL(raw)
	return err == nil
}

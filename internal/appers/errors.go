package appers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

var (
	// ErrCacheMismatch кэш ответил, но вернул не то, что записали
	ErrCacheMismatch = errors.New("cache returned unexpected value")
)

// DependencyUnavailable - внешняя зависимость (БД, кэш) недоступна или вернула ошибку
type DependencyUnavailable struct {
	Dependency string
	Err        error
}

func (e *DependencyUnavailable) Error() string {
	if e.Err == nil || e.Err.Error() == "" {
		return e.Dependency + " unavailable"
	}
	return e.Dependency + " unavailable: " + e.Err.Error()
}

func (e *DependencyUnavailable) Unwrap() error {
	return e.Err
}

func Unavailable(dependency string, err error) error {
	return &DependencyUnavailable{Dependency: dependency, Err: err}
}

type ErrorResp struct {
	StatusCode int    `json:"statusCode,omitempty"`
	StatusDesc string `json:"statusDesc,omitempty"`
}

func (e ErrorResp) Error() string {
	return e.StatusDesc
}

// SanitizeError пишет ошибку в ответ; используется как ErrorHandler fiber
func SanitizeError(c *fiber.Ctx, err error) error {
	var errResp ErrorResp
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &errResp):
		return c.Status(errResp.StatusCode).JSON(fiber.Map{
			"message": errResp.StatusDesc,
		})
	case errors.As(err, &fiberErr):
		return NewErr(c, fiberErr.Code, fiberErr)
	default:
		return NewErr(c, http.StatusInternalServerError, err)
	}
}

func NewErr(ctx *fiber.Ctx, status int, err error) error {
	return ctx.Status(status).JSON(fiber.Map{
		"message": err.Error(),
	})
}

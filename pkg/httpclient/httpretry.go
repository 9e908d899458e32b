package httpclient

import (
	"appointment/internal/application/common"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// RetryClient повторяет запросы без тела (GET/HEAD) с джиттерованным бэкоффом
type RetryClient struct {
	delegate    HTTPClient
	maxAttempts int
	// ShouldRetry решает, есть ли смысл повторять после ответа/ошибки
	ShouldRetry func(*http.Response, error) bool
	// AttemptTimeout ограничивает каждую попытку отдельно, 0 - только дедлайн вызывающего
	AttemptTimeout time.Duration
	Backoff        func(attempt int) time.Duration
	logger         *zap.SugaredLogger
}

// NewRetryClient: maxAttempts <= 1 - одна попытка без повторов
func NewRetryClient(delegate HTTPClient, maxAttempts int, logger *zap.SugaredLogger) *RetryClient {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &RetryClient{
		delegate:    delegate,
		maxAttempts: maxAttempts,
		ShouldRetry: RetryOnTransportError,
		Backoff:     common.NextBackoffWithJitter,
		logger:      logger,
	}
}

// RetryOnTransportError повторяет только сетевые ошибки (включая таймаут попытки):
// любой HTTP-ответ, 503 тоже, считается ответом сервиса
func RetryOnTransportError(_ *http.Response, err error) bool {
	return err != nil
}

func (c *RetryClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if req.Body != nil && req.Body != http.NoBody {
		return nil, fmt.Errorf("retry client: request body is not supported (%s %s)", req.Method, req.URL)
	}

	var resp *http.Response
	var err error

	for attempt := 0; ; attempt++ {
		resp, err = c.attempt(ctx, req)

		// отмена снаружи не повторяется
		if ctx.Err() != nil || !c.ShouldRetry(resp, err) || attempt == c.maxAttempts-1 {
			return resp, err
		}

		// Освобождаем соединение в пул перед повтором
		if resp != nil && resp.Body != nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}

		backoff := c.Backoff(attempt)
		c.logger.Warnf("retry attempt=%d backoff=%s method=%s url=%s err=%v",
			attempt+1, backoff, req.Method, req.URL.String(), err)

		if sleepErr := common.SleepCtx(ctx, backoff); sleepErr != nil {
			// наружу отдаем последнюю сетевую ошибку, а не причину отмены ожидания
			return nil, fmt.Errorf("%w (after %d attempts, retry canceled: %v)", err, attempt+1, sleepErr)
		}
	}
}

func (c *RetryClient) attempt(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.AttemptTimeout <= 0 {
		return c.delegate.Do(ctx, req.Clone(ctx))
	}

	actx, cancel := context.WithTimeout(ctx, c.AttemptTimeout)
	resp, err := c.delegate.Do(actx, req.Clone(actx))
	if err != nil || resp == nil || resp.Body == nil {
		cancel()
		return resp, err
	}
	// дедлайн попытки живет, пока читают тело
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnClose) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}

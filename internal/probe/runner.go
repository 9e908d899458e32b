// Package probe опрашивает health-эндпоинты запущенного сервиса (smoke-тест после деплоя).
package probe

import (
	"appointment/pkg/httpclient"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

var DefaultEndpoints = []string{
	"/health/",
	"/health/ready/",
	"/health/live/",
}

const maxBodyBytes = 64 << 10

type Result struct {
	Endpoint   string
	StatusCode int
	Body       string
	Err        error
}

func (r Result) OK() bool {
	return r.Err == nil && r.StatusCode == http.StatusOK
}

// String печатается в консоль: одна строка на эндпоинт
func (r Result) String() string {
	switch {
	case r.Err != nil:
		return fmt.Sprintf("❌ %s: Connection failed - %v", r.Endpoint, r.Err)
	case r.StatusCode == http.StatusOK:
		return fmt.Sprintf("✅ %s: %d - %s", r.Endpoint, r.StatusCode, r.Body)
	default:
		return fmt.Sprintf("❌ %s: %d - %s", r.Endpoint, r.StatusCode, r.Body)
	}
}

type Runner struct {
	client    httpclient.HTTPClient
	baseURL   string
	endpoints []string
	logger    *zap.SugaredLogger
}

// NewRunner: таймаут запроса и повторы задает client (см. httpclient.RetryClient.AttemptTimeout)
func NewRunner(client httpclient.HTTPClient, baseURL string, logger *zap.SugaredLogger) *Runner {
	return &Runner{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoints: DefaultEndpoints,
		logger:    logger,
	}
}

// Run опрашивает эндпоинты по очереди; ошибка одного не прерывает остальные
func (r *Runner) Run(ctx context.Context) []Result {
	results := make([]Result, 0, len(r.endpoints))
	for _, ep := range r.endpoints {
		res := r.check(ctx, ep)
		if !res.OK() {
			r.logger.Debugw("probe failed", "endpoint", ep, "status", res.StatusCode, "err", res.Err)
		}
		results = append(results, res)
	}
	return results
}

func (r *Runner) check(ctx context.Context, endpoint string) Result {
	res := Result{Endpoint: endpoint}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+endpoint, nil)
	if err != nil {
		res.Err = fmt.Errorf("build request: %w", err)
		return res
	}
	resp, err := r.client.Do(ctx, req)
	if err != nil {
		res.Err = err
		return res
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		res.Err = fmt.Errorf("read body: %w", err)
		return res
	}
	res.StatusCode = resp.StatusCode
	res.Body = strings.TrimSpace(string(body))
	return res
}

func AllOK(results []Result) bool {
	for _, r := range results {
		if !r.OK() {
			return false
		}
	}
	return true
}

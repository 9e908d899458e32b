package httpclient

import (
	"appointment/internal/application/common"
	"appointment/pkg/config"
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"time"
)

// maxRedirects: сервис может отвечать 301 на путь без слэша, дальше цепочку не идем
const maxRedirects = 3

type HTTPClient interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client - клиент для опроса health-эндпоинтов: свой транспорт, заголовки по умолчанию
type Client struct {
	http    *http.Client
	tr      *http.Transport
	headers http.Header
}

func NewClient(cfg config.HTTPClient) *Client {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   cfg.TLSHandshakeTimeout,
		ResponseHeaderTimeout: cfg.ResponseHeaderTimeout,
		ExpectContinueTimeout: cfg.ExpectContinueTimeout,
		MaxIdleConns:          cfg.MaxIdleConns,
		MaxIdleConnsPerHost:   cfg.MaxIdleConnsPerHost,
		MaxConnsPerHost:       cfg.MaxConnsPerHost,
		IdleConnTimeout:       cfg.IdleConnTimeout,
		DisableKeepAlives:     !cfg.KeepAlives,
	}

	// self-signed сертификаты на стендах
	if cfg.InsecureSkipVerify {
		tr.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	cl := &http.Client{
		Transport:     tr,
		Timeout:       cfg.ClientTimeout,
		CheckRedirect: limitRedirects,
	}

	return &Client{http: cl, tr: tr, headers: defaultHeaders(cfg)}
}

func defaultHeaders(cfg config.HTTPClient) http.Header {
	h := http.Header{}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "healthprobe/" + common.Version
	}
	h.Set("User-Agent", ua)
	if cfg.Accept != "" {
		h.Set("Accept", cfg.Accept)
	}
	// пробы должны видеть текущее состояние, а не ответ прокси-кэша
	h.Set("Cache-Control", "no-cache")
	return h
}

func limitRedirects(_ *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return errors.New("stopped after too many redirects")
	}
	return nil
}

// Do выставляет заголовки по умолчанию, если вызывающий не задал свои
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req = req.WithContext(ctx)
	for k, v := range c.headers {
		if req.Header.Get(k) == "" {
			req.Header[k] = v
		}
	}
	return c.http.Do(req)
}

func (c *Client) CloseIdle() { c.tr.CloseIdleConnections() }

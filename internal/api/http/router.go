package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	ilog "github.com/amakane-hakari/scorecache/internal/log"
	"github.com/amakane-hakari/scorecache/internal/store"
)

// RouterConfig はルーターの設定を表します。
type RouterConfig struct {
	Logger         ilog.Logger
	RateLimit      rate.Limit // 0 で無効
	Burst          int        // 0/未指定なら RateLimit の切り上げ
	MetricsHandler http.Handler
}

// RouterOption はルーターのオプションを設定する関数です。
type RouterOption func(*RouterConfig)

// WithRouterLogger はアクセスログ・パニックログ用のロガーを設定するオプションです。
func WithRouterLogger(l ilog.Logger) RouterOption {
	return func(c *RouterConfig) { c.Logger = l }
}

// WithRateLimit は /kvs と /stats に対する秒間リクエスト数の上限を設定するオプションです。
func WithRateLimit(perSec float64, burst int) RouterOption {
	return func(c *RouterConfig) {
		c.RateLimit = rate.Limit(perSec)
		c.Burst = burst
	}
}

// WithMetricsHandler は /metrics で公開するハンドラを設定するオプションです。
func WithMetricsHandler(h http.Handler) RouterOption {
	return func(c *RouterConfig) { c.MetricsHandler = h }
}

// NewRouter は st を公開する HTTP ルーターを作成します。
func NewRouter(st *store.Store[string, string], opts ...RouterOption) http.Handler {
	var cfg RouterConfig
	for _, o := range opts {
		o(&cfg)
	}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware(), RecoverMiddleware(cfg.Logger), AccessLog(cfg.Logger))

	r.Get("/health", healthHandler)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	kv := &kvHandler{st: st}
	r.Group(func(r chi.Router) {
		if cfg.RateLimit > 0 {
			burst := cfg.Burst
			if burst <= 0 {
				burst = max(1, int(cfg.RateLimit+0.999))
			}
			r.Use(RateLimitMiddleware(rate.NewLimiter(cfg.RateLimit, burst)))
		}
		kv.mount(r)
	})
	return r
}

package store

import (
	"math"

	"github.com/amakane-hakari/scorecache/internal/metrics"
)

// DefaultCapacity は容量未指定時のバイト数です。
const DefaultCapacity int64 = 1_000_000_000

type logLike interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config はストアの設定を表します。
type Config struct {
	Capacity         int64    // バイト数。0 以下なら DefaultCapacity
	Base             float64  // スコアの指数の底。有限の正数でなければ DefaultBase
	Sizer            SizeFunc // nil なら DefaultSize
	Logger           logLike
	Metrics          metrics.Interface
	HitReinforcement bool // Get のヒットでもスコアを加算する
	MissTracking     bool // Get のミスを数えて次の Put に上乗せする
	OldScoreLimit    int  // 旧スコア台帳・ミス台帳の上限。0 で無制限
}

// Option はストアのオプションを設定する関数です。
type Option func(*Config)

// WithCapacity はストアの容量（バイト）を設定するオプションです。
func WithCapacity(n int64) Option {
	return func(c *Config) { c.Capacity = n }
}

// WithBase はスコアの指数の底を設定するオプションです。
func WithBase(b float64) Option {
	return func(c *Config) { c.Base = b }
}

// WithSizer は値のバイト数を測る関数を設定するオプションです。
func WithSizer(f SizeFunc) Option {
	return func(c *Config) { c.Sizer = f }
}

// WithLogger はストアのロガーを設定するオプションです。
func WithLogger(l logLike) Option {
	return func(c *Config) { c.Logger = l }
}

// WithMetrics はストアのメトリクスを設定するオプションです。
func WithMetrics(m metrics.Interface) Option {
	return func(c *Config) { c.Metrics = m }
}

// WithHitReinforcement は Get のヒット時に Put と同じようにスコアを加算するオプションです。
// ヒットごとに tick も進みます。
func WithHitReinforcement() Option {
	return func(c *Config) { c.HitReinforcement = true }
}

// WithMissTracking は Get のミス回数を記録し、次の Put でその回数分のスコアを上乗せするオプションです。
func WithMissTracking() Option {
	return func(c *Config) { c.MissTracking = true }
}

// WithOldScoreLimit は旧スコア台帳の上限を設定するオプションです。
// 上限を超えると最も長く書き込まれていないキーの記録を忘れます。
func WithOldScoreLimit(n int) Option {
	return func(c *Config) { c.OldScoreLimit = n }
}

func newConfig(opts []Option) Config {
	cfg := Config{Capacity: DefaultCapacity, Base: DefaultBase}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.Base <= 0 || math.IsNaN(cfg.Base) || math.IsInf(cfg.Base, 0) {
		cfg.Base = DefaultBase
	}
	if cfg.Sizer == nil {
		cfg.Sizer = DefaultSize
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Noop{}
	}
	if cfg.OldScoreLimit < 0 {
		cfg.OldScoreLimit = 0
	}
	return cfg
}

package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger はアプリケーション全体で使うロガーの抽象です。
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// Slog は slog を使った Logger 実装です。
type Slog struct {
	l *slog.Logger
}

// New は LOG_LEVEL / LOG_FORMAT 環境変数に従って標準出力へ書くロガーを作成します。
func New() *Slog {
	return NewWithWriter(os.Stdout, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// NewWithWriter は w に書き込むロガーを作成します。
// level は debug/info/warn/error（既定 info）、format は text/json（既定 text）。
func NewWithWriter(w io.Writer, level, format string) *Slog {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return &Slog{l: slog.New(h)}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With は属性を付与したロガーを返します。
func (s *Slog) With(args ...any) *Slog { return &Slog{l: s.l.With(args...)} }

func (s *Slog) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s *Slog) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s *Slog) Error(msg string, args ...any) { s.l.Error(msg, args...) }

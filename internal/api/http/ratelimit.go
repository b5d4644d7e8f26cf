package http

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitMiddleware はトークンバケットで流量を制限するミドルウェアです。
// トークンが無い場合は 429 Too Many Requests を返します。
func RateLimitMiddleware(l *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l != nil && !l.Allow() {
				writeError(w, TooManyRequests("rate limit exceeded"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

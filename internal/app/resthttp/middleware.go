package resthttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sir_venger/mini_nas/internal/logger"
	"github.com/sir_venger/mini_nas/pkg/httperrors"
)

// observe пишет access-лог и метрики по каждому запросу.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		done := s.Metrics.Begin()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			done(route, r.Method, status)

			reqID := middleware.GetReqID(r.Context())
			switch {
			case status >= http.StatusInternalServerError:
				logger.Error("[%s] %s %s -> %d (%d bytes, %s)", reqID, r.Method, r.URL.Path, status, ww.BytesWritten(), time.Since(start))
			case status >= http.StatusBadRequest:
				logger.Warn("[%s] %s %s -> %d (%d bytes, %s)", reqID, r.Method, r.URL.Path, status, ww.BytesWritten(), time.Since(start))
			default:
				logger.Info("[%s] %s %s -> %d (%d bytes, %s)", reqID, r.Method, r.URL.Path, status, ww.BytesWritten(), time.Since(start))
			}
		}()

		next.ServeHTTP(ww, r)
	})
}

// limit отбрасывает запросы сверх лимита с 429.
func (s *Server) limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			httperrors.WriteStatus(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

package resthttp

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/sir_venger/mini_nas/internal/logger"
	"github.com/sir_venger/mini_nas/pkg/httperrors"
)

// gcOnce вручную запускает удаление брошенных временных файлов загрузки.
func (s *Server) gcOnce(w http.ResponseWriter, r *http.Request) {
	removed, err := s.FilesService.SweepStaleUploads(r.Context(), s.Cfg.GCTTL())
	s.Metrics.AddSwept(removed)
	if err != nil {
		httperrors.Write(w, err)
		return
	}
	logger.Info("manual gc removed %d stale uploads", removed)
	w.WriteHeader(http.StatusNoContent)
}

// StartGC стартует периодическую очистку и возвращает функцию остановки.
func (s *Server) StartGC(ttl time.Duration, every time.Duration) func() {
	if every <= 0 || ttl <= 0 {
		return func() {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	ticker := time.NewTicker(every)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				removed, err := s.FilesService.SweepStaleUploads(ctx, ttl)
				s.Metrics.AddSwept(removed)
				if err != nil && ctx.Err() == nil {
					logger.Warn("gc sweep failed: %v", err)
				} else if removed > 0 {
					logger.Info("gc removed %d stale uploads", removed)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}

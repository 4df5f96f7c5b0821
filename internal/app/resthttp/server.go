package resthttp

import (
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sir_venger/mini_nas/internal/config"
	"github.com/sir_venger/mini_nas/internal/metrics"
	"github.com/sir_venger/mini_nas/internal/ratelimiter"
	"github.com/sir_venger/mini_nas/internal/usecase/filesvc"
)

type Server struct {
	FilesService filesvc.Service
	Cfg          *config.Config
	Metrics      *metrics.HTTP

	limiter *ratelimiter.RateLimiter
}

// NewServer конструктор: поднимает сервис файлов над корнем из конфига и собирает роутер.
func NewServer(cfg *config.Config) (http.Handler, *Server, error) {
	files, err := filesvc.New(filesvc.Deps{
		Root:          cfg.StorageRoot,
		StripRootName: cfg.StripsRootName(),
	})
	if err != nil {
		return nil, nil, err
	}

	srv := &Server{
		FilesService: files,
		Cfg:          cfg,
		Metrics:      metrics.NewHTTP(),
		limiter:      ratelimiter.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
	}

	return srv.routes(), srv, nil
}

// routes регистрирует файловые, служебные и статические обработчики.
func (s *Server) routes() http.Handler {
	rtr := chi.NewRouter()
	rtr.Use(middleware.RequestID, middleware.RealIP, s.observe, middleware.Recoverer)

	rtr.Get("/health", s.health)
	rtr.Post("/admin/gc", s.gcOnce)
	rtr.Method(http.MethodGet, "/metrics", s.Metrics.Handler())

	rtr.Route("/files", func(fr chi.Router) {
		fr.Use(s.limit)

		fr.Get("/download/*", s.downloadFile)
		fr.Get("/stream/*", s.streamFile)
		fr.Head("/stream/*", s.streamFile)
		fr.Post("/upload/*", s.uploadFile)
		fr.Post("/mkdir/*", s.mkdir)
		fr.Delete("/delete/*", s.deleteFile)
		fr.Delete("/delete-dir/*", s.deleteDir)
		fr.Post("/rename/*", s.rename)
		fr.Get("/*", s.listDir)
	})

	s.mountFrontend(rtr)

	return rtr
}

// pathParam достаёт относительный путь из wildcard-сегмента chi.
// Если роутинг шёл по RawPath, значение ещё экранировано.
func pathParam(r *http.Request) string {
	p := chi.URLParam(r, "*")
	if r.URL.RawPath == "" {
		return p
	}
	if unescaped, err := url.PathUnescape(p); err == nil {
		return unescaped
	}
	return p
}

// relToRoot переводит абсолютный путь обратно в клиентский вид.
func (s *Server) relToRoot(abs string) string {
	rel, err := filepath.Rel(s.FilesService.Root(), abs)
	if err != nil {
		return filepath.Base(abs)
	}
	return filepath.ToSlash(rel)
}

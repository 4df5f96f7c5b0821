package resthttp

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/sir_venger/mini_nas/internal/logger"
)

const frontendMissingText = "Frontend not found. Build the frontend into the configured frontend_dir or create that directory."

// mountFrontend отдаёт статический фронтенд под /static/, если каталог существует.
func (s *Server) mountFrontend(rtr chi.Router) {
	dir := s.Cfg.FrontendDir
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		logger.Warn("static directory %q does not exist; skipping frontend mount", dir)
		rtr.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(frontendMissingText))
		})
		return
	}

	rtr.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(dir))))
	rtr.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
	})
}

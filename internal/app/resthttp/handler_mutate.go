package resthttp

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/sir_venger/mini_nas/pkg/httperrors"
	"github.com/sir_venger/mini_nas/pkg/nasproto"
)

// mkdir создаёт директорию name внутри пути (или сам путь, если name не задан).
func (s *Server) mkdir(w http.ResponseWriter, r *http.Request) {
	rel := pathParam(r)
	if name := r.URL.Query().Get(nasproto.QueryName); name != "" {
		rel = strings.TrimRight(rel, "/") + "/" + name
	}

	created, err := s.FilesService.Mkdir(r.Context(), rel)
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, map[string]string{
		"created": filepath.Base(created),
		"path":    s.relToRoot(created),
	})
}

func (s *Server) deleteFile(w http.ResponseWriter, r *http.Request) {
	rel := pathParam(r)
	if err := s.FilesService.DeleteFile(r.Context(), rel); err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, map[string]string{"deleted": rel})
}

// deleteDir без ?recursive=1 удаляет только пустую директорию (иначе 409).
func (s *Server) deleteDir(w http.ResponseWriter, r *http.Request) {
	rel := pathParam(r)
	recursive := queryFlag(r, nasproto.QueryRecursive)
	if err := s.FilesService.DeleteDir(r.Context(), rel, recursive); err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, map[string]string{"deleted": rel})
}

func (s *Server) rename(w http.ResponseWriter, r *http.Request) {
	rel := pathParam(r)
	dest, err := s.FilesService.Rename(r.Context(), rel, r.URL.Query().Get(nasproto.QueryNewName))
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, map[string]string{
		"renamed": rel,
		"path":    s.relToRoot(dest),
	})
}

// queryFlag понимает 1/true/yes/on без учёта регистра.
func queryFlag(r *http.Request, key string) bool {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

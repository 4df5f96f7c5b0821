package resthttp

import (
	"net/http"

	"github.com/sir_venger/mini_nas/pkg/httperrors"
)

func (s *Server) listDir(w http.ResponseWriter, r *http.Request) {
	entries, err := s.FilesService.List(r.Context(), pathParam(r))
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, entries)
}

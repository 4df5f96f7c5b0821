package resthttp

import (
	"io"
	"mime"
	"net/http"
	"os"
	"strconv"

	"github.com/sir_venger/mini_nas/internal/logger"
	"github.com/sir_venger/mini_nas/internal/metrics"
	"github.com/sir_venger/mini_nas/internal/models"
	"github.com/sir_venger/mini_nas/internal/usecase/filesvc"
	"github.com/sir_venger/mini_nas/pkg/httperrors"
)

// downloadFile отдаёт файл целиком как вложение.
func (s *Server) downloadFile(w http.ResponseWriter, r *http.Request) {
	info, err := s.FilesService.Fetch(r.Context(), pathParam(r))
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	f, err := os.Open(info.Path)
	if err != nil {
		// Файл пропал между Fetch и Open.
		httperrors.Write(w, &models.PathError{Op: "download", Path: info.Name, Err: models.ErrNotFound})
		return
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	w.Header().Set("Content-Length", strconv.FormatInt(st.Size(), 10))
	w.Header().Set("Content-Type", filesvc.ContentType(info.Name))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": info.Name}))

	n, err := io.Copy(w, io.LimitReader(f, st.Size()))
	s.Metrics.AddBytes(metrics.DirectionOut, n)
	if err != nil {
		// Заголовки уже ушли, остаётся только залогировать обрыв.
		logger.Debug("download %s interrupted after %d bytes: %v", info.Path, n, err)
	}
}

package resthttp

import (
	"context"
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/sir_venger/mini_nas/internal/logger"
	"github.com/sir_venger/mini_nas/pkg/httperrors"
)

// healthStats — payload ответа /health.
type healthStats struct {
	Status     string `json:"status"`
	OK         bool   `json:"ok"`
	TotalBytes int64  `json:"total_bytes"`
}

// health возвращает статус и суммарный объём файлов под корнем.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	total, err := diskUsage(r.Context(), s.FilesService.Root())
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, healthStats{
		Status:     "ok",
		OK:         true,
		TotalBytes: total,
	})
}

// diskUsage суммирует размер файлов под root. Нечитаемые подкаталоги и
// пропавшие по ходу обхода файлы пропускаются; ошибкой считается только сам корень.
func diskUsage(ctx context.Context, root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			logger.Debug("health: skip %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += info.Size()

		return nil
	})

	return total, err
}

package filesvc

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sir_venger/mini_nas/internal/models"
)

// Fetch находит файл для отдачи целиком.
func (s *Files) Fetch(_ context.Context, rel string) (models.FileInfo, error) {
	return s.fetch(opFetch, rel)
}

func (s *Files) fetch(op, rel string) (models.FileInfo, error) {
	target, err := s.resolve(op, rel)
	if err != nil {
		return models.FileInfo{}, err
	}

	info, err := os.Stat(target)
	if err != nil {
		if isNotExist(err) {
			return models.FileInfo{}, pathErr(op, rel, models.ErrNotFound)
		}
		return models.FileInfo{}, err
	}
	if info.IsDir() {
		return models.FileInfo{}, pathErr(op, rel, models.ErrNotFound)
	}

	return models.FileInfo{
		Path: target,
		Name: filepath.Base(target),
		Size: info.Size(),
	}, nil
}

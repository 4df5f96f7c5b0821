package filesvc

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sir_venger/mini_nas/internal/models"
)

// List возвращает непосредственных потомков директории в порядке обхода ФС.
func (s *Files) List(_ context.Context, rel string) ([]models.Entry, error) {
	target, err := s.resolve(opList, rel)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(target)
	if err != nil {
		if isNotExist(err) {
			return nil, pathErr(opList, rel, models.ErrNotFound)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, pathErr(opList, rel, models.ErrNotFound)
	}

	dir, err := os.Open(target)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	// ReadDir(-1) у *os.File не сортирует записи, в отличие от os.ReadDir.
	children, err := dir.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	entries := make([]models.Entry, 0, len(children))
	for _, child := range children {
		if isTempUpload(child.Name()) {
			continue
		}

		entry := models.Entry{Name: child.Name()}
		// Stat идёт по симлинкам; битая ссылка отдаётся как файл без размера.
		if fi, err := os.Stat(filepath.Join(target, child.Name())); err == nil {
			entry.IsDir = fi.IsDir()
			if !fi.IsDir() {
				size := fi.Size()
				entry.Size = &size
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

package filesvc

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/sir_venger/mini_nas/internal/models"
)

// DeleteFile удаляет только файлы; директории отклоняются с ErrAccessDenied.
func (s *Files) DeleteFile(_ context.Context, rel string) error {
	target, err := s.resolve(opDeleteFile, rel)
	if err != nil {
		return err
	}

	info, err := os.Stat(target)
	if err != nil {
		if isNotExist(err) {
			return pathErr(opDeleteFile, rel, models.ErrNotFound)
		}
		return err
	}
	if info.IsDir() {
		return pathErr(opDeleteFile, rel, models.ErrAccessDenied)
	}

	if err = os.Remove(target); err != nil {
		if isNotExist(err) {
			return pathErr(opDeleteFile, rel, models.ErrNotFound)
		}
		return err
	}

	return nil
}

// DeleteDir удаляет директорию. Без recursive удаляется только пустая,
// для непустой возвращается ErrNotEmpty. Сам корень удалить нельзя.
func (s *Files) DeleteDir(_ context.Context, rel string, recursive bool) error {
	target, err := s.resolve(opDeleteDir, rel)
	if err != nil {
		return err
	}

	info, err := os.Stat(target)
	if err != nil {
		if isNotExist(err) {
			return pathErr(opDeleteDir, rel, models.ErrNotFound)
		}
		return err
	}
	if !info.IsDir() || target == s.root {
		return pathErr(opDeleteDir, rel, models.ErrAccessDenied)
	}

	if recursive {
		return os.RemoveAll(target)
	}

	if err = os.Remove(target); err != nil {
		empty, emptyErr := isEmptyDir(target)
		if emptyErr == nil && !empty {
			return pathErr(opDeleteDir, rel, models.ErrNotEmpty)
		}
		return err
	}

	return nil
}

func isEmptyDir(path string) (bool, error) {
	dir, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer dir.Close()

	if _, err = dir.Readdirnames(1); errors.Is(err, io.EOF) {
		return true, nil
	}
	return false, err
}

package filesvc

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sir_venger/mini_nas/internal/logger"
	"github.com/sir_venger/mini_nas/internal/models"
)

// Rename меняет последний сегмент пути на newName, оставляя объект в той же директории.
func (s *Files) Rename(_ context.Context, rel string, newName string) (string, error) {
	if !validName(newName) {
		return "", pathErr(opRename, newName, models.ErrInvalidName)
	}

	source, err := s.resolve(opRename, rel)
	if err != nil {
		return "", err
	}
	if _, err = os.Lstat(source); err != nil {
		if isNotExist(err) {
			return "", pathErr(opRename, rel, models.ErrNotFound)
		}
		return "", err
	}
	if source == s.root {
		return "", pathErr(opRename, rel, models.ErrAccessDenied)
	}

	dest := filepath.Join(filepath.Dir(source), newName)
	if !within(s.root, dest) {
		logger.Warn("%s: new name %q escapes storage root", opRename, newName)
		return "", pathErr(opRename, newName, models.ErrAccessDenied)
	}

	if _, err = os.Lstat(dest); err == nil {
		return "", pathErr(opRename, newName, models.ErrAlreadyExists)
	} else if !isNotExist(err) {
		return "", err
	}

	if err = os.Rename(source, dest); err != nil {
		return "", err
	}

	return dest, nil
}

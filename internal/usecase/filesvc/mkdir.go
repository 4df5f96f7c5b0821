package filesvc

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"syscall"

	"github.com/sir_venger/mini_nas/internal/models"
)

// Mkdir создаёт директорию вместе с недостающими родителями.
func (s *Files) Mkdir(_ context.Context, rel string) (string, error) {
	target, err := s.resolve(opMkdir, rel)
	if err != nil {
		return "", err
	}

	if _, err = os.Lstat(target); err == nil {
		return "", pathErr(opMkdir, rel, models.ErrAlreadyExists)
	} else if !isNotExist(err) {
		return "", err
	}

	if err = os.MkdirAll(target, 0o755); err != nil {
		// На месте одного из родителей лежит файл.
		if errors.Is(err, syscall.ENOTDIR) || errors.Is(err, fs.ErrExist) {
			return "", pathErr(opMkdir, rel, models.ErrAlreadyExists)
		}
		return "", err
	}

	return target, nil
}

package filesvc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sir_venger/mini_nas/internal/logger"
	"github.com/sir_venger/mini_nas/internal/models"
)

// Временные файлы загрузки живут рядом с целевым файлом и скрыты из листинга.
const (
	tempUploadPrefix = ".upload-"
	tempUploadSuffix = ".part"
)

// Save сохраняет поток r в dirRel/name. Директория создаётся при необходимости,
// существующий файл не перезаписывается.
func (s *Files) Save(ctx context.Context, dirRel string, name string, r io.Reader) (models.SavedFile, error) {
	if !validName(name) || isTempUpload(name) {
		return models.SavedFile{}, pathErr(opSave, name, models.ErrInvalidName)
	}

	dir, err := s.resolve(opSave, dirRel)
	if err != nil {
		return models.SavedFile{}, err
	}

	if err = os.MkdirAll(dir, 0o755); err != nil {
		// На месте одной из директорий лежит файл.
		if errors.Is(err, syscall.ENOTDIR) || errors.Is(err, fs.ErrExist) {
			return models.SavedFile{}, pathErr(opSave, dirRel, models.ErrAlreadyExists)
		}
		return models.SavedFile{}, err
	}

	dest := filepath.Join(dir, name)
	if !within(s.root, dest) {
		return models.SavedFile{}, pathErr(opSave, name, models.ErrAccessDenied)
	}
	if _, err = os.Lstat(dest); err == nil {
		return models.SavedFile{}, pathErr(opSave, filepath.Join(dirRel, name), models.ErrAlreadyExists)
	} else if !isNotExist(err) {
		return models.SavedFile{}, err
	}

	if err = ctx.Err(); err != nil {
		return models.SavedFile{}, err
	}

	tmp := filepath.Join(dir, tempUploadPrefix+uuid.NewString()+tempUploadSuffix)
	size, err := writeTemp(tmp, r)
	if err != nil {
		_ = os.Remove(tmp)
		return models.SavedFile{}, fmt.Errorf("save %q: %w", name, err)
	}
	defer os.Remove(tmp)

	if err = publish(tmp, dest); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return models.SavedFile{}, pathErr(opSave, filepath.Join(dirRel, name), models.ErrAlreadyExists)
		}
		return models.SavedFile{}, fmt.Errorf("save %q: %w", name, err)
	}

	logger.Debug("saved %s (%d bytes)", dest, size)
	return models.SavedFile{Path: dest, Name: name, Size: size}, nil
}

// writeTemp пишет поток в новый файл и сбрасывает его на диск.
func writeTemp(path string, r io.Reader) (int64, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		return n, err
	}
	if err = f.Sync(); err != nil {
		_ = f.Close()
		return n, err
	}

	return n, f.Close()
}

// publish делает готовый файл видимым под итоговым именем без перезаписи.
// Хардлинк падает с EEXIST, если кто-то успел создать dest; на ФС без хардлинков
// откатываемся на проверку + rename.
func publish(tmp, dest string) error {
	err := os.Link(tmp, dest)
	if err == nil || errors.Is(err, fs.ErrExist) {
		return err
	}

	logger.Debug("link %s failed (%v), falling back to rename", dest, err)
	if _, statErr := os.Lstat(dest); statErr == nil {
		return fs.ErrExist
	}
	return os.Rename(tmp, dest)
}

func isTempUpload(name string) bool {
	return strings.HasPrefix(name, tempUploadPrefix) && strings.HasSuffix(name, tempUploadSuffix)
}

// SweepStaleUploads удаляет временные файлы загрузок старше ttl во всём дереве.
// Возвращает число удалённых файлов.
func (s *Files) SweepStaleUploads(ctx context.Context, ttl time.Duration) (int, error) {
	now := time.Now()
	removed := 0

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Каталог могли удалить во время обхода.
			if isNotExist(err) {
				return nil
			}
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !isTempUpload(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if now.Sub(info.ModTime()) < ttl {
			return nil
		}

		if err = os.Remove(path); err == nil {
			removed++
		}
		return nil
	})

	return removed, err
}

package filesvc

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sir_venger/mini_nas/internal/logger"
	"github.com/sir_venger/mini_nas/internal/models"
)

// Имена операций для PathError.
const (
	opList       = "list"
	opFetch      = "fetch"
	opStream     = "stream"
	opSave       = "save"
	opMkdir      = "mkdir"
	opDeleteFile = "delete"
	opDeleteDir  = "delete-dir"
	opRename     = "rename"
)

// normalize срезает ведущие слэши и, если включено, лишний сегмент с именем корня
// ("storage/fotos" и "fotos" указывают на одно и то же).
func (s *Files) normalize(raw string) string {
	rel := strings.TrimLeft(raw, "/")
	if !s.strip || s.rootName == "" || s.rootName == string(filepath.Separator) || s.rootName == "." {
		return rel
	}

	if rel == s.rootName || strings.HasPrefix(rel, s.rootName+"/") {
		rel = strings.TrimLeft(rel[len(s.rootName):], "/")
	}

	return rel
}

// maxSymlinkHops ограничивает число раскрытых симлинков на один путь (как MAXSYMLINKS в ядре).
const maxSymlinkHops = 40

// resolve превращает клиентский путь в абсолютный путь внутри корня.
// Проверка вложенности делается только после полного разрешения (".." и симлинки).
func (s *Files) resolve(op, raw string) (string, error) {
	resolved, err := walkPath(s.root, filepath.FromSlash(s.normalize(raw)))
	if err != nil {
		return "", &models.PathError{Op: op, Path: raw, Err: err}
	}

	if !within(s.root, resolved) {
		logger.Warn("%s: path %q escapes storage root (resolved to %s)", op, raw, resolved)
		return "", &models.PathError{Op: op, Path: raw, Err: models.ErrAccessDenied}
	}

	return resolved, nil
}

// walkPath разбирает rel от base по одному сегменту, как это делает ядро:
// симлинк раскрывается до применения следующего "..", висячий симлинк тоже
// раскрывается. Несуществующий хвост дописывается как есть.
func walkPath(base, rel string) (string, error) {
	pending := splitPath(rel)
	cur := base
	hops := 0
	missing := false

	for len(pending) > 0 {
		name := pending[0]
		pending = pending[1:]

		switch name {
		case "", ".":
			continue
		case "..":
			cur = filepath.Dir(cur)
			continue
		}

		next := filepath.Join(cur, name)
		if missing {
			cur = next
			continue
		}

		info, err := os.Lstat(next)
		if err != nil {
			if !isNotExist(err) {
				return "", err
			}
			missing = true
			cur = next
			continue
		}
		if info.Mode()&fs.ModeSymlink == 0 {
			cur = next
			continue
		}

		hops++
		if hops > maxSymlinkHops {
			return "", syscall.ELOOP
		}
		target, err := os.Readlink(next)
		if err != nil {
			return "", err
		}
		if filepath.IsAbs(target) {
			cur = filepath.VolumeName(target) + string(filepath.Separator)
		}
		pending = append(splitPath(target), pending...)
	}

	return cur, nil
}

func splitPath(p string) []string {
	return strings.Split(p, string(filepath.Separator))
}

// within сообщает, совпадает ли target с root или лежит внутри него.
func within(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil || filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// validName проверяет, что имя — ровно один непустой сегмент пути.
func validName(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return false
	}
	return name != "." && name != ".."
}

// isNotExist также считает отсутствующим путь, в середине которого лежит файл.
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

func pathErr(op, path string, err error) error {
	return &models.PathError{Op: op, Path: path, Err: err}
}

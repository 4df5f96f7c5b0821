package filesvc

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sir_venger/mini_nas/internal/models"
)

type (
	// Service объединяет операции над деревом файлов внутри корня хранилища.
	Service interface {
		Root() string
		List(ctx context.Context, rel string) ([]models.Entry, error)
		Fetch(ctx context.Context, rel string) (models.FileInfo, error)
		Stream(ctx context.Context, rel string, rangeHeader string) (*Stream, error)
		Save(ctx context.Context, dirRel string, name string, r io.Reader) (models.SavedFile, error)
		Mkdir(ctx context.Context, rel string) (string, error)
		DeleteFile(ctx context.Context, rel string) error
		DeleteDir(ctx context.Context, rel string, recursive bool) error
		Rename(ctx context.Context, rel string, newName string) (string, error)
		SweepStaleUploads(ctx context.Context, ttl time.Duration) (int, error)
	}
)

// Deps — параметры сервиса, задаются один раз при старте процесса.
type Deps struct {
	// Root — каталог хранилища; создаётся, если его нет.
	Root string
	// StripRootName разрешает клиентам присылать имя корня первым сегментом пути.
	StripRootName bool
}

type Files struct {
	root     string
	rootName string
	strip    bool
}

var _ Service = (*Files)(nil)

// New конструирует сервис: приводит корень к абсолютному пути без симлинков.
func New(deps Deps) (*Files, error) {
	if deps.Root == "" {
		return nil, fmt.Errorf("storage root is empty")
	}

	abs, err := filepath.Abs(deps.Root)
	if err != nil {
		return nil, err
	}
	if err = os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage root %s is not a directory", resolved)
	}

	return &Files{
		root:     resolved,
		rootName: filepath.Base(resolved),
		strip:    deps.StripRootName,
	}, nil
}

// Root возвращает абсолютный разрешённый путь корня.
func (s *Files) Root() string {
	return s.root
}

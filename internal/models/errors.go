package models

import (
	"errors"
	"fmt"
)

// Таксономия ошибок Storage Manager. Роутинг сопоставляет их со статус-кодами.
var (
	ErrNotFound            = errors.New("not found")
	ErrAccessDenied        = errors.New("access denied")
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotEmpty            = errors.New("directory not empty")
	ErrInvalidRange        = errors.New("invalid range")
	ErrRangeNotSatisfiable = errors.New("range not satisfiable")
	ErrInvalidName         = errors.New("invalid name")
)

// PathError связывает ошибку с операцией и клиентским путём.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// Kind возвращает машиночитаемое имя вида ошибки для ответа клиенту.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAccessDenied):
		return "access_denied"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrNotEmpty):
		return "not_empty"
	case errors.Is(err, ErrInvalidRange):
		return "invalid_range"
	case errors.Is(err, ErrRangeNotSatisfiable):
		return "range_not_satisfiable"
	case errors.Is(err, ErrInvalidName):
		return "invalid_name"
	default:
		return "io_error"
	}
}

// RangeError несёт размер ресурса, чтобы транспорт мог ответить "Content-Range: bytes */size".
type RangeError struct {
	Header string
	Size   int64
	Err    error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("range %q (size %d): %v", e.Header, e.Size, e.Err)
}

func (e *RangeError) Unwrap() error { return e.Err }

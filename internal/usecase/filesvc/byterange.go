package filesvc

import (
	"regexp"
	"strconv"

	"github.com/sir_venger/mini_nas/internal/models"
)

var rangeHeaderRe = regexp.MustCompile(`^bytes=(\d+)-(\d*)$`)

// ParseRange разбирает заголовок вида "bytes=<start>-<end>". Если end не указан,
// возвращается -1. Мульти-диапазоны и suffix-форма ("bytes=-500") не поддерживаются.
func ParseRange(header string) (start, end int64, err error) {
	m := rangeHeaderRe.FindStringSubmatch(header)
	if m == nil {
		return 0, 0, models.ErrInvalidRange
	}

	start, err = strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, 0, models.ErrInvalidRange
	}

	end = -1
	if m[2] != "" {
		end, err = strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			return 0, 0, models.ErrInvalidRange
		}
	}

	return start, end, nil
}

// ResolveRange вычисляет окно байтов для файла текущего размера size.
// Конец за пределами файла обрезается до последнего байта.
func ResolveRange(header string, size int64) (models.ByteRange, error) {
	start, end, err := ParseRange(header)
	if err != nil {
		return models.ByteRange{}, &models.RangeError{Header: header, Size: size, Err: err}
	}

	if start >= size || (end >= 0 && start > end) {
		return models.ByteRange{}, &models.RangeError{Header: header, Size: size, Err: models.ErrRangeNotSatisfiable}
	}
	if end < 0 || end >= size {
		end = size - 1
	}

	return models.ByteRange{Start: start, End: end, Size: size}, nil
}

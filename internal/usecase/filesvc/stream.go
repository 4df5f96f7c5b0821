package filesvc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sir_venger/mini_nas/internal/models"
)

// ChunkSize — максимальный объём одного чтения с диска при стриминге.
const ChunkSize = 1 << 20

// Stream — ленивая конечная последовательность чанков одного окна файла.
// Читается ровно один раз; файл закрывается по достижении конца окна,
// на ошибке или при явном Close.
type Stream struct {
	Name        string
	ContentType string
	Range       models.ByteRange
	// Partial — запрошен Range, ответ должен быть 206.
	Partial bool

	file   *os.File
	offset int64
	left   int64
	buf    []byte
}

// Stream открывает файл и готовит окно по заголовку Range (пустой — весь файл).
// Размер берётся с открытого дескриптора на момент запроса.
func (s *Files) Stream(_ context.Context, rel string, rangeHeader string) (*Stream, error) {
	info, err := s.fetch(opStream, rel)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(info.Path)
	if err != nil {
		if isNotExist(err) {
			return nil, pathErr(opStream, rel, models.ErrNotFound)
		}
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	size := st.Size()

	window := models.ByteRange{Start: 0, End: size - 1, Size: size}
	partial := rangeHeader != ""
	if partial {
		window, err = ResolveRange(rangeHeader, size)
		if err != nil {
			_ = f.Close()
			return nil, pathErr(opStream, rel, err)
		}
	}

	return &Stream{
		Name:        info.Name,
		ContentType: ContentType(info.Name),
		Range:       window,
		Partial:     partial,
		file:        f,
		offset:      window.Start,
		left:        window.Length(),
	}, nil
}

// Next возвращает следующий чанк. Срез валиден до следующего вызова.
// После последнего чанка возвращает io.EOF.
func (st *Stream) Next() ([]byte, error) {
	if st.file == nil {
		return nil, io.EOF
	}
	if st.left <= 0 {
		_ = st.Close()
		return nil, io.EOF
	}

	n := min(int64(ChunkSize), st.left)
	if st.buf == nil {
		st.buf = make([]byte, n)
	}

	got, err := st.file.ReadAt(st.buf[:n], st.offset)
	if int64(got) < n {
		_ = st.Close()
		if err == nil || errors.Is(err, io.EOF) {
			// Файл укоротился после того, как окно было вычислено.
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("read %s at %d: %w", st.Name, st.offset, err)
	}

	st.offset += n
	st.left -= n
	return st.buf[:n], nil
}

// CopyTo пишет окно в w, проверяя ctx перед каждым чтением,
// чтобы разрыв соединения останавливал цикл без лишних чтений с диска.
func (st *Stream) CopyTo(ctx context.Context, w io.Writer) (int64, error) {
	defer st.Close()

	var written int64
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		chunk, err := st.Next()
		if errors.Is(err, io.EOF) {
			return written, nil
		}
		if err != nil {
			return written, err
		}

		n, err := w.Write(chunk)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
}

// Close освобождает файл. Повторный вызов безопасен.
func (st *Stream) Close() error {
	if st.file == nil {
		return nil
	}
	err := st.file.Close()
	st.file = nil
	return err
}

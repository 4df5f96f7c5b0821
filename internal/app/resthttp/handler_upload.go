package resthttp

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/sir_venger/mini_nas/internal/metrics"
	"github.com/sir_venger/mini_nas/pkg/httperrors"
	"github.com/sir_venger/mini_nas/pkg/nasproto"
)

// uploadResp — тело ответа с метаданными загруженного файла.
type uploadResp struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Path     string `json:"path"`
}

var errNoFilePart = errors.New("multipart form has no \"file\" field")

// uploadFile принимает multipart-форму (поле "file") или сырое тело с именем в заголовке
// и потоково сохраняет его, не буферизуя в памяти.
func (s *Server) uploadFile(w http.ResponseWriter, r *http.Request) {
	dir := pathParam(r)
	if limit := s.Cfg.MaxUploadBytes(); limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}

	body, name, err := uploadSource(r)
	if err != nil {
		if errors.Is(err, errNoFilePart) {
			httperrors.WriteStatus(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		httperrors.Write(w, err)
		return
	}
	if c, ok := body.(io.Closer); ok {
		defer c.Close()
	}

	counted := &countingReader{r: body}
	saved, err := s.FilesService.Save(r.Context(), dir, name, counted)
	s.Metrics.AddBytes(metrics.DirectionIn, counted.n)
	if err != nil {
		httperrors.Write(w, err)
		return
	}

	writeJSON(w, uploadResp{
		Filename: saved.Name,
		Size:     saved.Size,
		Path:     s.relToRoot(saved.Path),
	})
}

// uploadSource выбирает поток данных и имя файла из запроса.
func uploadSource(r *http.Request) (io.Reader, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, extractFileName(r), nil
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, "", fmt.Errorf("read multipart: %w", err)
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, "", errNoFilePart
		}
		if err != nil {
			return nil, "", fmt.Errorf("read multipart: %w", err)
		}
		if part.FormName() == nasproto.FormFieldFile {
			return part, part.FileName(), nil
		}
		_ = part.Close()
	}
}

// extractFileName пытается вытащить имя файла из заголовков или query-параметра.
func extractFileName(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(nasproto.HeaderFileName)); v != "" {
		return v
	}
	if v := strings.TrimSpace(r.Header.Get("X-Filename")); v != "" {
		return v
	}
	if v := strings.TrimSpace(r.URL.Query().Get(nasproto.QueryFilename)); v != "" {
		return v
	}
	return ""
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

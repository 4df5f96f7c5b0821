// Package nasclient — HTTP-клиент файлового API с индикатором прогресса для загрузок и скачиваний.
package nasclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/sir_venger/mini_nas/internal/models"
	"github.com/sir_venger/mini_nas/pkg/httperrors"
	"github.com/sir_venger/mini_nas/pkg/nasproto"
)

// UploadRequest описывает одну загрузку в директорию Dir.
type UploadRequest struct {
	Dir    string
	Name   string
	Reader io.Reader
	// Size нужен только для прогресса; 0 — неизвестен.
	Size int64
}

// UploadResult — ответ сервера на загрузку.
type UploadResult struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Path     string `json:"path"`
}

// Download — тело скачанного файла и метаданные ответа.
type Download struct {
	Body io.ReadCloser
	// Status равен 206 для частичного ответа.
	Status        int
	ContentType   string
	ContentRange  string
	ContentLength int64
}

type Client interface {
	// List Содержимое директории
	List(ctx context.Context, dir string) ([]models.Entry, error)
	// Upload Положить файл в хранилище
	Upload(ctx context.Context, req UploadRequest) (UploadResult, error)
	// Download Достать файл целиком (rangeHeader пустой) или его диапазон
	Download(ctx context.Context, p string, rangeHeader string) (*Download, error)
	Mkdir(ctx context.Context, p string) error
	DeleteFile(ctx context.Context, p string) error
	DeleteDir(ctx context.Context, p string, recursive bool) error
	Rename(ctx context.Context, p string, newName string) (string, error)
}

// StatusError — ответ сервера с кодом ошибки.
type StatusError struct {
	Op     string
	Status int
	Body   httperrors.Body
}

func (e *StatusError) Error() string {
	if e.Body.Message != "" {
		return fmt.Sprintf("%s failed: %d %s: %s", e.Op, e.Status, e.Body.Error, e.Body.Message)
	}
	return fmt.Sprintf("%s failed: %d", e.Op, e.Status)
}

type httpClient struct {
	c        *http.Client
	baseURL  string
	progress io.Writer
}

// Option настраивает клиент.
type Option func(*httpClient)

// WithHTTPClient подменяет транспорт (например, клиент httptest-сервера).
func WithHTTPClient(c *http.Client) Option {
	return func(h *httpClient) { h.c = c }
}

// WithProgress включает индикатор прогресса и пишет его в w.
func WithProgress(w io.Writer) Option {
	return func(h *httpClient) { h.progress = w }
}

// New создаёт клиент для сервера по baseURL.
func New(baseURL string, opts ...Option) Client {
	h := &httpClient{
		c:       &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// endpoint собирает URL: prefix + экранированный путь по сегментам.
func (h *httpClient) endpoint(prefix, p string, query url.Values) string {
	segs := strings.Split(strings.Trim(p, "/"), "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	u := h.baseURL + prefix + strings.Join(segs, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do выполняет запрос и превращает неуспешный ответ в StatusError.
func (h *httpClient) do(req *http.Request, op string) (*http.Response, error) {
	resp, err := h.c.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close()
		se := &StatusError{Op: op, Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(&se.Body)
		return nil, se
	}
	return resp, nil
}

func (h *httpClient) doJSON(req *http.Request, op string, out any) error {
	resp, err := h.do(req, op)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (h *httpClient) List(ctx context.Context, dir string) ([]models.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.endpoint(nasproto.PathList, dir, nil), nil)
	if err != nil {
		return nil, err
	}
	var entries []models.Entry
	if err = h.doJSON(req, "list", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Upload отправляет файл сырым телом с именем в заголовке.
func (h *httpClient) Upload(ctx context.Context, req UploadRequest) (UploadResult, error) {
	body := req.Reader
	var bar *progressBar
	if body != nil && h.progress != nil {
		bar = newProgressBar(h.progress, fmt.Sprintf("Uploading %s", path.Join(req.Dir, req.Name)), req.Size)
		body = io.TeeReader(req.Reader, progressWriter{bar: bar})
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint(nasproto.PathUpload, req.Dir, nil), body)
	if err != nil {
		bar.Fail(err)
		return UploadResult{}, err
	}
	bar.render(true, "")

	if req.Size > 0 {
		httpReq.ContentLength = req.Size
	}
	httpReq.Header.Set("Content-Type", "application/octet-stream")
	httpReq.Header.Set(nasproto.HeaderFileName, req.Name)

	var res UploadResult
	if err = h.doJSON(httpReq, "upload", &res); err != nil {
		bar.Fail(err)
		return UploadResult{}, err
	}

	bar.Finish()
	return res, nil
}

// Download скачивает файл. С непустым rangeHeader идёт через стриминговый эндпоинт.
func (h *httpClient) Download(ctx context.Context, p string, rangeHeader string) (*Download, error) {
	prefix := nasproto.PathDownload
	if rangeHeader != "" {
		prefix = nasproto.PathStream
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.endpoint(prefix, p, nil), nil)
	if err != nil {
		return nil, err
	}
	if rangeHeader != "" {
		req.Header.Set(nasproto.HeaderRange, rangeHeader)
	}

	resp, err := h.do(req, "download")
	if err != nil {
		return nil, err
	}

	expectedSize := resp.ContentLength
	body := resp.Body
	if h.progress != nil {
		bar := newProgressBar(h.progress, fmt.Sprintf("Downloading %s", p), expectedSize)
		bar.render(true, "")
		body = newProgressReadCloser(resp.Body, bar)
	}

	return &Download{
		Body:          body,
		Status:        resp.StatusCode,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentRange:  resp.Header.Get(nasproto.HeaderContentRange),
		ContentLength: expectedSize,
	}, nil
}

func (h *httpClient) Mkdir(ctx context.Context, p string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint(nasproto.PathMkdir, p, nil), nil)
	if err != nil {
		return err
	}
	return h.doJSON(req, "mkdir", nil)
}

func (h *httpClient) DeleteFile(ctx context.Context, p string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, h.endpoint(nasproto.PathDelete, p, nil), nil)
	if err != nil {
		return err
	}
	return h.doJSON(req, "delete", nil)
}

func (h *httpClient) DeleteDir(ctx context.Context, p string, recursive bool) error {
	var q url.Values
	if recursive {
		q = url.Values{nasproto.QueryRecursive: {"1"}}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, h.endpoint(nasproto.PathDeleteDir, p, q), nil)
	if err != nil {
		return err
	}
	return h.doJSON(req, "delete-dir", nil)
}

// Rename переименовывает p в пределах его директории и возвращает новый путь.
func (h *httpClient) Rename(ctx context.Context, p string, newName string) (string, error) {
	q := url.Values{nasproto.QueryNewName: {newName}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint(nasproto.PathRename, p, q), nil)
	if err != nil {
		return "", err
	}
	var out struct {
		Path string `json:"path"`
	}
	if err = h.doJSON(req, "rename", &out); err != nil {
		return "", err
	}
	return out.Path, nil
}

package integration

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sir_venger/mini_nas/internal/app/resthttp"
	"github.com/sir_venger/mini_nas/internal/config"
	"github.com/sir_venger/mini_nas/internal/logger"
	"github.com/sir_venger/mini_nas/pkg/nasclient"
)

type stack struct {
	url    string
	root   string
	srv    *resthttp.Server
	client nasclient.Client
}

// newStack поднимает сервер над свежим корнем "<tmp>/storage".
func newStack(t *testing.T, mutate func(cfg *config.Config)) *stack {
	t.Helper()
	logger.SetOutput(io.Discard)
	t.Cleanup(func() { logger.SetOutput(os.Stdout) })

	base := t.TempDir()
	cfg := &config.Config{
		ListenAddr:  ":0",
		StorageRoot: filepath.Join(base, "storage"),
		FrontendDir: filepath.Join(base, "frontend"),
	}
	if mutate != nil {
		mutate(cfg)
	}
	config.ApplyDefaults(cfg)

	h, srv, err := resthttp.NewServer(cfg)
	if err != nil {
		t.Fatal(err)
	}
	rest := httptest.NewServer(h)
	t.Cleanup(rest.Close)

	return &stack{
		url:    rest.URL,
		root:   srv.FilesService.Root(),
		srv:    srv,
		client: nasclient.New(rest.URL, nasclient.WithHTTPClient(rest.Client())),
	}
}

func (s *stack) do(t *testing.T, method, path string, body io.Reader, hdr map[string]string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, s.url+path, body)
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, b
}

func writeFile(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

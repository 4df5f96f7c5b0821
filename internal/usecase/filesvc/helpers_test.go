package filesvc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestFiles создаёт сервис над свежим корнем "<tmp>/storage".
func newTestFiles(t *testing.T) *Files {
	t.Helper()
	svc, err := New(Deps{Root: filepath.Join(t.TempDir(), "storage"), StripRootName: true})
	require.NoError(t, err)
	return svc
}

func writeFile(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, data, 0o644))
}

func mkdir(t *testing.T, root, rel string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(rel)), 0o755))
}

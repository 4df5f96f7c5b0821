package filesvc

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sir_venger/mini_nas/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	svc := newTestFiles(t)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "leading slashes", input: "///fotos/a.jpg", expected: "fotos/a.jpg"},
		{name: "root name alone", input: "storage", expected: ""},
		{name: "root name prefix", input: "storage/fotos", expected: "fotos"},
		{name: "root name with slash", input: "/storage//fotos", expected: "fotos"},
		{name: "similar prefix kept", input: "storage2/fotos", expected: "storage2/fotos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, svc.normalize(tt.input))
		})
	}
}

func TestNormalize_StripDisabled(t *testing.T) {
	svc, err := New(Deps{Root: filepath.Join(t.TempDir(), "storage")})
	require.NoError(t, err)

	assert.Equal(t, "storage/fotos", svc.normalize("/storage/fotos"))
}

func TestResolve_StaysInsideRoot(t *testing.T) {
	svc := newTestFiles(t)

	got, err := svc.resolve(opList, "")
	require.NoError(t, err)
	assert.Equal(t, svc.Root(), got)

	got, err = svc.resolve(opList, "a/./b/../c")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(svc.Root(), "a", "c"), got)

	// ".." внутри корня допустимы, пока не выводят наружу.
	got, err = svc.resolve(opList, "a/..")
	require.NoError(t, err)
	assert.Equal(t, svc.Root(), got)
}

func TestWithin(t *testing.T) {
	assert.True(t, within("/srv/root", "/srv/root"))
	assert.True(t, within("/srv/root", "/srv/root/a/b"))
	assert.True(t, within("/srv/root", "/srv/root/..hidden"))
	assert.False(t, within("/srv/root", "/srv"))
	assert.False(t, within("/srv/root", "/srv/root2"))
	assert.False(t, within("/srv/root", "/etc/passwd"))
}

func TestValidName(t *testing.T) {
	for _, name := range []string{"final.txt", "..a", "a b", "ünïcode"} {
		assert.True(t, validName(name), name)
	}
	for _, name := range []string{"", "   ", "a/b", `a\b`, ".", "..", "/"} {
		assert.False(t, validName(name), name)
	}
}

// Каждая операция должна отвечать ErrAccessDenied на выход за корень
// и не трогать ничего снаружи.
func TestTraversal_AllOperationsDenied(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	root := filepath.Join(base, "storage")
	svc, err := New(Deps{Root: root, StripRootName: true})
	require.NoError(t, err)

	outside := filepath.Join(base, "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("top secret"), 0o644))
	mkdir(t, base, "outdir/child")
	require.NoError(t, os.Symlink(base, filepath.Join(svc.Root(), "escape")))
	// Висячие ссылки наружу: цель ещё не существует.
	require.NoError(t, os.Symlink(filepath.Join(base, "out", "newdir"), filepath.Join(svc.Root(), "dangling")))
	require.NoError(t, os.Symlink(filepath.Join("..", "out2", "x"), filepath.Join(svc.Root(), "dangling-rel")))

	paths := []string{
		"../secret.txt",
		"../../etc/passwd",
		"a/../../secret.txt",
		"storage/../secret.txt",
		"escape/secret.txt",
		"escape/outdir",
		"escape",
		"dangling",
		"dangling/deeper",
		"dangling-rel",
	}

	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			ops := map[string]func() error{
				"list": func() error { _, err := svc.List(ctx, p); return err },
				"fetch": func() error { _, err := svc.Fetch(ctx, p); return err },
				"stream": func() error {
					st, err := svc.Stream(ctx, p, "")
					if st != nil {
						st.Close()
					}
					return err
				},
				"save": func() error {
					_, err := svc.Save(ctx, p, "dropped.txt", strings.NewReader("x"))
					return err
				},
				"mkdir":      func() error { _, err := svc.Mkdir(ctx, p+"/new"); return err },
				"delete":     func() error { return svc.DeleteFile(ctx, p) },
				"delete-dir": func() error { return svc.DeleteDir(ctx, p, true) },
				"rename":     func() error { _, err := svc.Rename(ctx, p, "renamed"); return err },
			}
			for name, op := range ops {
				assert.ErrorIs(t, op(), models.ErrAccessDenied, name)
			}
		})
	}

	data, err := os.ReadFile(outside)
	require.NoError(t, err)
	assert.Equal(t, "top secret", string(data))
	assert.DirExists(t, filepath.Join(base, "outdir", "child"))
	assert.NoFileExists(t, filepath.Join(base, "dropped.txt"))
	assert.NoDirExists(t, filepath.Join(base, "new"))
	assert.NoDirExists(t, filepath.Join(base, "out"))
	assert.NoDirExists(t, filepath.Join(base, "out2"))
	// Ссылки внутри корня остались на месте.
	_, err = os.Lstat(filepath.Join(svc.Root(), "dangling"))
	assert.NoError(t, err)
}

func TestResolve_SymlinkInsideRootAllowed(t *testing.T) {
	svc := newTestFiles(t)
	writeFile(t, svc.Root(), "real/file.txt", []byte("hello"))
	require.NoError(t, os.Symlink(filepath.Join(svc.Root(), "real"), filepath.Join(svc.Root(), "alias")))

	info, err := svc.Fetch(context.Background(), "alias/file.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(svc.Root(), "real", "file.txt"), info.Path)
	assert.EqualValues(t, 5, info.Size)
}

func TestResolve_DotDotAfterSymlinkFollowsTarget(t *testing.T) {
	svc := newTestFiles(t)
	mkdir(t, svc.Root(), "real/sub")
	require.NoError(t, os.Symlink(filepath.Join(svc.Root(), "real", "sub"), filepath.Join(svc.Root(), "alias")))

	// ".." применяется к цели ссылки, а не к самой ссылке.
	got, err := svc.resolve(opFetch, "alias/../x.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(svc.Root(), "real", "x.txt"), got)

	require.NoError(t, os.Symlink(filepath.Join("real", "sub"), filepath.Join(svc.Root(), "rel-alias")))
	got, err = svc.resolve(opFetch, "rel-alias/../y")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(svc.Root(), "real", "y"), got)
}

func TestResolve_DanglingSymlinkInsideRoot(t *testing.T) {
	ctx := context.Background()
	svc := newTestFiles(t)
	require.NoError(t, os.Symlink(filepath.Join(svc.Root(), "later"), filepath.Join(svc.Root(), "link")))

	got, err := svc.resolve(opMkdir, "link")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(svc.Root(), "later"), got)

	// Mkdir создаёт цель ссылки.
	created, err := svc.Mkdir(ctx, "link")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(svc.Root(), "later"), created)
	assert.DirExists(t, created)
}

func TestResolve_SymlinkLoop(t *testing.T) {
	svc := newTestFiles(t)
	require.NoError(t, os.Symlink("b", filepath.Join(svc.Root(), "a")))
	require.NoError(t, os.Symlink("a", filepath.Join(svc.Root(), "b")))

	_, err := svc.resolve(opList, "a/x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrAccessDenied)
}

package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFiles(t *testing.T) {
	// --- Arrange ---
	root := t.TempDir()
	for _, rel := range []string{
		"Views/Home/Index.spark",
		"Views/Home/Index.SPARK.bak",
		"Views/bindings.xml",
		"Views/Upper.Spark",
		"node_modules/lib/x.spark",
		"readme.md",
	} {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	}

	// --- Act ---
	files, err := FindFiles(root, []string{".spark", ".xml"}, []string{"node_modules"})

	// --- Assert ---
	require.NoError(t, err)
	want := []string{
		filepath.Join(root, "Views", "Home", "Index.spark"),
		filepath.Join(root, "Views", "Upper.Spark"),
		filepath.Join(root, "Views", "bindings.xml"),
	}
	assert.Equal(t, want, files)
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.hcl"), []byte(""), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.yaml"), []byte(""), 0o600))

	files, err := FindFilesByExtension(root, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a.hcl")}, files)

	assert.Panics(t, func() { _, _ = FindFilesByExtension(root, "") })
}

func TestFindFiles_MissingRoot(t *testing.T) {
	_, err := FindFiles(filepath.Join(t.TempDir(), "missing"), []string{".spark"}, nil)
	assert.Error(t, err)
}

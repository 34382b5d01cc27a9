package hcl

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/viewbind/internal/config"
	"github.com/vk/viewbind/internal/testutil"
)

func strPtr(s string) *string { return &s }

func TestLoader_Load(t *testing.T) {
	// --- Arrange ---
	dir := testutil.WriteTree(t, map[string]string{
		"viewbind.hcl": `
templates {
  root       = "views"
  extensions = [".spark"]
  ignore     = ["node_modules"]
}

binding {
  master_fallback = "Site"
  shared_dirs     = ["Shared", "Layouts"]
  workers         = 8
}

types {
  packages = ["./..."]
}

view "Home/Index.spark" {
  model      = "example.com/shop/views.HomeModel"
  master     = "Wide"
  namespaces = ["example.com/shop/helpers"]
}

view "Home/Print.spark" {
  master = ""
}

view "Home/About.spark" {
  master = null
  model  = "example.com/shop/views.AboutModel"
}
`,
	})

	// --- Act ---
	model, err := NewLoader().Load(context.Background(), testutil.Path(dir, "viewbind.hcl"))

	// --- Assert ---
	require.NoError(t, err)
	want := &config.Model{
		Templates: config.Templates{
			Root:       filepath.Join(dir, "views"),
			Extensions: []string{".spark"},
			Ignore:     []string{"node_modules"},
		},
		Binding: config.Binding{MasterFallback: "Site", SharedDirs: []string{"Shared", "Layouts"}, Workers: 8},
		Types:   config.Types{Packages: []string{"./..."}},
		Views: map[string]*config.ViewOverride{
			"Home/Index.spark": {
				Path:       "Home/Index.spark",
				Model:      "example.com/shop/views.HomeModel",
				Master:     strPtr("Wide"),
				Namespaces: []string{"example.com/shop/helpers"},
			},
			"Home/Print.spark": {Path: "Home/Print.spark", Master: strPtr("")},
			"Home/About.spark": {Path: "Home/About.spark", Model: "example.com/shop/views.AboutModel"},
		},
	}
	if diff := cmp.Diff(want, model); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_LoadDirectoryMergesFiles(t *testing.T) {
	dir := testutil.WriteTree(t, map[string]string{
		"a_base.hcl":      `templates { root = "/srv/views" }`,
		"b_views.hcl":     `view "Index.spark" { model = "x.Model" }`,
		"nested/c.hcl":    `binding { workers = 2 }`,
		"nested/notes.md": `not configuration`,
	})

	model, err := NewLoader().Load(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, "/srv/views", model.Templates.Root)
	assert.Equal(t, 2, model.Binding.Workers)
	require.NotNil(t, model.View("Index.spark"))
	assert.Equal(t, "x.Model", model.View("Index.spark").Model)
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		errText string
	}{
		{name: "syntax error", content: `templates {`, errText: "failed to parse HCL file"},
		{name: "unknown attribute", content: `templates { rooot = "x" }`, errText: "failed to decode HCL file"},
		{name: "master of wrong type", content: `view "a.spark" { master = ["x"] }`, errText: "master must be a string"},
		{name: "master referencing a variable", content: `view "a.spark" { master = var.x }`, errText: "invalid master"},
		{
			name:    "duplicate view",
			content: "view \"a.spark\" {}\nview \"./a.spark\" {}",
			errText: "duplicate view override",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := testutil.WriteTree(t, map[string]string{"c.hcl": tc.content})

			_, err := NewLoader().Load(context.Background(), testutil.Path(dir, "c.hcl"))

			assert.ErrorContains(t, err, tc.errText)
		})
	}
}

func TestLoader_MissingPath(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing.hcl"))
	assert.ErrorContains(t, err, "error accessing config path")

	_, err = NewLoader().Load(context.Background(), t.TempDir())
	assert.ErrorContains(t, err, "no .hcl files found")
}

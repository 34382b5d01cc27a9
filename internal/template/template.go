package template

import (
	"path/filepath"
	"strings"
)

const (
	// SparkExtension marks a file as a view template.
	SparkExtension = ".spark"
	// XMLExtension marks a file as an XML declaration file.
	XMLExtension = ".xml"
)

// Template is a single discovered template file.
type Template struct {
	// Path is the file path of the template as found by discovery.
	Path string
	// Root is the discovery root the template was found under.
	Root string

	descriptor Descriptor
}

// New creates a template for the file at path, discovered under root.
func New(path, root string) *Template {
	return &Template{
		Path: filepath.Clean(path),
		Root: filepath.Clean(root),
	}
}

// FileName is the base name of the template file, extension included.
func (t *Template) FileName() string {
	return filepath.Base(t.Path)
}

// Name is the logical name of the template: its file name without extension.
func (t *Template) Name() string {
	base := t.FileName()
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Dir is the directory containing the template.
func (t *Template) Dir() string {
	return filepath.Dir(t.Path)
}

// RelativePath is the template path relative to its root, using forward
// slashes. It falls back to Path if the template is not under Root.
func (t *Template) RelativePath() string {
	rel, err := filepath.Rel(t.Root, t.Path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(t.Path)
	}
	return filepath.ToSlash(rel)
}

func (t *Template) IsSparkView() bool {
	return strings.EqualFold(filepath.Ext(t.Path), SparkExtension)
}

// IsPartial reports whether the template is a partial. Partials are named
// with a leading underscore.
func (t *Template) IsPartial() bool {
	return strings.HasPrefix(t.FileName(), "_")
}

func (t *Template) IsXML() bool {
	return strings.EqualFold(filepath.Ext(t.Path), XMLExtension)
}

// Descriptor returns the descriptor attached to the template, or nil.
func (t *Template) Descriptor() Descriptor {
	return t.descriptor
}

// SetDescriptor attaches d to the template, replacing any previous one.
func (t *Template) SetDescriptor(d Descriptor) {
	t.descriptor = d
}

func (t *Template) String() string {
	return t.Path
}

package config

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"sort"

	"github.com/vk/viewbind/internal/binding"
	"github.com/vk/viewbind/internal/discovery"
	"github.com/vk/viewbind/internal/locator"
)

// DefaultWorkers is the number of templates bound concurrently when the
// configuration does not say otherwise.
const DefaultWorkers = 4

var (
	// ErrNoTemplateRoot is returned by Validate when no template root is set.
	ErrNoTemplateRoot = errors.New("templates.root is required")
	// ErrInvalidWorkers is returned by Validate for a negative worker count.
	ErrInvalidWorkers = errors.New("binding.workers must not be negative")
	// ErrDuplicateView is returned when two overrides name the same view.
	ErrDuplicateView = errors.New("duplicate view override")
)

// Model is the unified, format-agnostic representation of the configuration.
type Model struct {
	Templates Templates
	Binding   Binding
	Types     Types
	Views     map[string]*ViewOverride
}

// Templates controls template discovery.
type Templates struct {
	Root       string
	Extensions []string
	Ignore     []string
}

// Binding controls the binder chain.
type Binding struct {
	MasterFallback string
	BindingsFile   string
	SharedDirs     []string
	Workers        int
}

// Types controls the Go package type catalog. With no packages, only types
// registered in code are resolvable.
type Types struct {
	Packages []string
	Dir      string
}

// ViewOverride replaces the directives a view declares in its markup. Empty
// fields keep the declared value. Master is nil when the override does not
// touch the master; a pointer to "" removes the master.
type ViewOverride struct {
	Path       string
	Model      string
	Master     *string
	Namespaces []string
}

// New returns an empty model.
func New() *Model {
	return &Model{Views: make(map[string]*ViewOverride)}
}

// AddView registers an override. The path is normalised to a clean,
// slash-separated relative path.
func (m *Model) AddView(v *ViewOverride) error {
	if m.Views == nil {
		m.Views = make(map[string]*ViewOverride)
	}
	v.Path = path.Clean(filepath.ToSlash(v.Path))
	if _, exists := m.Views[v.Path]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateView, v.Path)
	}
	m.Views[v.Path] = v
	return nil
}

// View returns the override for the view at the slash-separated relative
// path rel, or nil.
func (m *Model) View(rel string) *ViewOverride {
	return m.Views[path.Clean(rel)]
}

// ViewPaths returns the overridden view paths in lexical order.
func (m *Model) ViewPaths() []string {
	paths := make([]string, 0, len(m.Views))
	for p := range m.Views {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// ApplyDefaults fills every unset setting with its default.
func (m *Model) ApplyDefaults() {
	if len(m.Templates.Extensions) == 0 {
		m.Templates.Extensions = append([]string(nil), discovery.DefaultExtensions...)
	}
	if m.Binding.MasterFallback == "" {
		m.Binding.MasterFallback = binding.FallbackMaster
	}
	if m.Binding.BindingsFile == "" {
		m.Binding.BindingsFile = binding.BindingsFile
	}
	if len(m.Binding.SharedDirs) == 0 {
		m.Binding.SharedDirs = append([]string(nil), locator.DefaultSharedDirs...)
	}
	if m.Binding.Workers == 0 {
		m.Binding.Workers = DefaultWorkers
	}
	if m.Types.Dir == "" {
		m.Types.Dir = m.Templates.Root
	}
	if m.Views == nil {
		m.Views = make(map[string]*ViewOverride)
	}
}

// Validate reports the first invalid setting.
func (m *Model) Validate() error {
	if m.Templates.Root == "" {
		return ErrNoTemplateRoot
	}
	if m.Binding.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, m.Binding.Workers)
	}
	for _, ext := range m.Templates.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			return fmt.Errorf("templates.extensions: %q must start with a dot", ext)
		}
	}
	for _, p := range m.ViewPaths() {
		if path.IsAbs(p) || p == ".." || len(p) > 2 && p[:3] == "../" {
			return fmt.Errorf("view %q: path must be relative to templates.root", p)
		}
	}
	return nil
}

// ResolvePaths makes the template root and type directory absolute,
// interpreting relative paths against base.
func (m *Model) ResolvePaths(base string) {
	m.Templates.Root = resolve(base, m.Templates.Root)
	m.Types.Dir = resolve(base, m.Types.Dir)
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Merge folds other into m. Settings set in other replace those of m; view
// overrides are added and must not collide.
func (m *Model) Merge(other *Model) error {
	if other.Templates.Root != "" {
		m.Templates.Root = other.Templates.Root
	}
	if len(other.Templates.Extensions) > 0 {
		m.Templates.Extensions = other.Templates.Extensions
	}
	if len(other.Templates.Ignore) > 0 {
		m.Templates.Ignore = other.Templates.Ignore
	}
	if other.Binding.MasterFallback != "" {
		m.Binding.MasterFallback = other.Binding.MasterFallback
	}
	if other.Binding.BindingsFile != "" {
		m.Binding.BindingsFile = other.Binding.BindingsFile
	}
	if len(other.Binding.SharedDirs) > 0 {
		m.Binding.SharedDirs = other.Binding.SharedDirs
	}
	if other.Binding.Workers != 0 {
		m.Binding.Workers = other.Binding.Workers
	}
	if len(other.Types.Packages) > 0 {
		m.Types.Packages = other.Types.Packages
	}
	if other.Types.Dir != "" {
		m.Types.Dir = other.Types.Dir
	}
	for _, p := range other.ViewPaths() {
		if err := m.AddView(other.Views[p]); err != nil {
			return err
		}
	}
	return nil
}

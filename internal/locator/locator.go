// Package locator finds templates and directories reachable from a given
// template within a discovered template set.
//
// Reachability follows the folder hierarchy: a template can see its own
// directory, every ancestor directory up to its discovery root, and the
// shared sub-directories of each of those.
package locator

import (
	"path/filepath"
	"strings"

	"github.com/vk/viewbind/internal/template"
)

// DefaultSharedDirs are the directory names searched for shared templates.
var DefaultSharedDirs = []string{"Shared"}

// Directory is a directory reachable from a template.
type Directory struct {
	Path string
	// Shared is set for shared sub-directories of an ancestor.
	Shared bool
}

// ReachableDirectoryLocator computes the directories reachable from a
// template.
type ReachableDirectoryLocator interface {
	// Directories returns the directories reachable from target, nearest
	// first. candidates is the full template set.
	Directories(target *template.Template, candidates []*template.Template) []Directory
}

// SharedTemplateLocator resolves a named template reachable from a target.
type SharedTemplateLocator interface {
	// LocateTemplate returns the template called name that is reachable
	// from target among candidates, or nil.
	LocateTemplate(name string, target *template.Template, candidates []*template.Template) *template.Template
}

// Reachables is the default ReachableDirectoryLocator.
type Reachables struct {
	sharedDirs []string
}

// NewReachables returns a locator that treats the given directory names as
// shared folders. With no names, DefaultSharedDirs is used.
func NewReachables(sharedDirs ...string) *Reachables {
	if len(sharedDirs) == 0 {
		sharedDirs = DefaultSharedDirs
	}
	return &Reachables{sharedDirs: sharedDirs}
}

// Directories walks from the target's directory up to its root. Shared
// sub-directories are only reported when some candidate lives in them.
func (r *Reachables) Directories(target *template.Template, candidates []*template.Template) []Directory {
	if target == nil {
		return nil
	}

	occupied := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		occupied[c.Dir()] = struct{}{}
	}

	var dirs []Directory
	seen := make(map[string]struct{})
	add := func(d Directory) {
		if _, dup := seen[d.Path]; dup {
			return
		}
		seen[d.Path] = struct{}{}
		dirs = append(dirs, d)
	}

	dir := target.Dir()
	for {
		add(Directory{Path: dir})
		for _, name := range r.sharedDirs {
			shared := filepath.Join(dir, name)
			if _, ok := occupied[shared]; ok {
				add(Directory{Path: shared, Shared: true})
			}
		}

		parent := filepath.Dir(dir)
		if dir == target.Root || parent == dir || !within(parent, target.Root) {
			break
		}
		dir = parent
	}
	return dirs
}

func within(dir, root string) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Shared is the default SharedTemplateLocator. It searches reachable
// directories nearest first and returns the first spark view with the
// requested name.
type Shared struct {
	reachables ReachableDirectoryLocator
}

// NewShared returns a locator searching the directories produced by
// reachables.
func NewShared(reachables ReachableDirectoryLocator) *Shared {
	return &Shared{reachables: reachables}
}

func (s *Shared) LocateTemplate(name string, target *template.Template, candidates []*template.Template) *template.Template {
	if name == "" {
		return nil
	}
	for _, dir := range s.reachables.Directories(target, candidates) {
		for _, c := range candidates {
			if c.IsSparkView() && c.Name() == name && c.Dir() == dir.Path {
				return c
			}
		}
	}
	return nil
}

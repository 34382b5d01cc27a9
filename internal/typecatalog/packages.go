package typecatalog

import (
	"context"
	"fmt"
	"go/types"
	"strings"

	"github.com/vk/viewbind/internal/ctxlog"
	"golang.org/x/tools/go/packages"
)

// PackageCatalog is a catalog of the exported named types declared by a set
// of Go packages, loaded from source.
type PackageCatalog struct {
	byName map[string][]Type
	// Errors holds non-fatal package errors reported while loading.
	Errors []string
}

// LoadPackages loads the packages matching patterns, resolved relative to
// dir, and catalogs every exported type name they declare at package scope.
// Import resolution errors are not reported; they are environmental and do
// not affect the declared names of the loaded packages.
func LoadPackages(ctx context.Context, dir string, patterns ...string) (*PackageCatalog, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading Go packages for type catalog.", "dir", dir, "patterns", patterns)

	cfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedTypes,
		Dir:     dir,
		Tests:   false,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages %v: %w", patterns, err)
	}

	c := &PackageCatalog{byName: make(map[string][]Type)}
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if !isImportRelatedError(e.Msg) {
				c.Errors = append(c.Errors, fmt.Sprintf("%s: %s", pkg.PkgPath, e.Msg))
			}
		}
		if pkg.Types == nil {
			continue
		}
		c.addScope(pkg.PkgPath, pkg.Types.Scope())
	}

	logger.Debug("Type catalog loaded.", "packages", len(pkgs), "types", c.Len(), "errors", len(c.Errors))
	return c, nil
}

func (c *PackageCatalog) addScope(pkgPath string, scope *types.Scope) {
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !tn.Exported() {
			continue
		}
		t := Type{Name: name, PkgPath: pkgPath}
		c.byName[t.FullName()] = append(c.byName[t.FullName()], t)
	}
}

func (c *PackageCatalog) TypesWithFullName(name string) []Type {
	found := c.byName[name]
	if len(found) == 0 {
		return nil
	}
	out := make([]Type, len(found))
	copy(out, found)
	return out
}

// Len returns the number of catalogued types.
func (c *PackageCatalog) Len() int {
	n := 0
	for _, ts := range c.byName {
		n += len(ts)
	}
	return n
}

func isImportRelatedError(msg string) bool {
	lower := strings.ToLower(msg)
	for _, phrase := range []string{
		"could not import",
		"can't find import",
		"cannot find package",
		"no required module provides",
	} {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

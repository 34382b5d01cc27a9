// Package typecatalog resolves configured view-model type names to concrete
// Go types.
//
// A Catalog answers exact full-name lookups. Full names follow the Go
// convention of package path and type name joined by a dot, for example
// "github.com/acme/shop/views.ProductModel". A lookup may return zero, one
// or several types; interpreting ambiguity is left to the caller.
package typecatalog

import (
	"reflect"
	"strings"
)

// Type is a named type known to a catalog.
type Type struct {
	// Name is the unqualified type name.
	Name string
	// PkgPath is the import path of the declaring package.
	PkgPath string
	// Reflect is the runtime type, when the catalog was built from compiled
	// code. It is nil for types discovered from source.
	Reflect reflect.Type
}

// FullName returns the package-qualified name of the type.
func (t Type) FullName() string {
	if t.PkgPath == "" {
		return t.Name
	}
	return t.PkgPath + "." + t.Name
}

func (t Type) String() string {
	return t.FullName()
}

// Catalog looks up types by their full name.
type Catalog interface {
	// TypesWithFullName returns every type whose full name equals name.
	// Absence is an empty result, never an error.
	TypesWithFullName(name string) []Type
}

// SplitFullName splits a full name into package path and type name at the
// last dot. A name without a dot has an empty package path.
func SplitFullName(fullName string) (pkgPath, name string) {
	i := strings.LastIndex(fullName, ".")
	if i < 0 {
		return "", fullName
	}
	return fullName[:i], fullName[i+1:]
}

// Union combines several catalogs. A lookup returns the concatenation of
// every member's results in member order.
type Union []Catalog

func (u Union) TypesWithFullName(name string) []Type {
	var out []Type
	for _, c := range u {
		if c == nil {
			continue
		}
		out = append(out, c.TypesWithFullName(name)...)
	}
	return out
}

// Overlay consults its members in order and returns the results of the
// first one that knows the name. Later members are shadowed, so a type
// known to several members is not reported as ambiguous.
type Overlay []Catalog

func (o Overlay) TypesWithFullName(name string) []Type {
	for _, c := range o {
		if c == nil {
			continue
		}
		if types := c.TypesWithFullName(name); len(types) > 0 {
			return types
		}
	}
	return nil
}

// Empty is a catalog that knows no types.
var Empty Catalog = Union(nil)

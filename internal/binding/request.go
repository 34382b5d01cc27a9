package binding

import (
	"github.com/vk/viewbind/internal/template"
	"github.com/vk/viewbind/internal/typecatalog"
)

// Logger receives the diagnostics binders emit for a template. Implementations
// must not panic and must be safe for concurrent use when used with RunAll.
type Logger interface {
	Log(t *template.Template, format string, args ...any)
}

// NopLogger discards every entry.
type NopLogger struct{}

func (NopLogger) Log(*template.Template, string, ...any) {}

type masterKind uint8

const (
	masterDefault masterKind = iota
	masterNone
	masterExplicit
)

// MasterName is the configured master for a view. The zero value means
// "use the binder's fallback master".
type MasterName struct {
	kind masterKind
	name string
}

// DefaultMaster asks for the binder's fallback master.
func DefaultMaster() MasterName {
	return MasterName{kind: masterDefault}
}

// NoMaster states explicitly that the view has no master.
func NoMaster() MasterName {
	return MasterName{kind: masterNone}
}

// ExplicitMaster names the master to use. An empty name is the same as
// NoMaster.
func ExplicitMaster(name string) MasterName {
	if name == "" {
		return NoMaster()
	}
	return MasterName{kind: masterExplicit, name: name}
}

// MasterNameFromDirective maps a master setting that may be absent: absent
// selects the default, an empty value means no master, anything else is an
// explicit name.
func MasterNameFromDirective(value string, present bool) MasterName {
	if !present {
		return DefaultMaster()
	}
	return ExplicitMaster(value)
}

func (m MasterName) IsDefault() bool { return m.kind == masterDefault }
func (m MasterName) IsNone() bool    { return m.kind == masterNone }

// Resolve returns the explicit name, or fallback for the default.
// It returns "" for NoMaster.
func (m MasterName) Resolve(fallback string) string {
	switch m.kind {
	case masterExplicit:
		return m.name
	case masterDefault:
		return fallback
	default:
		return ""
	}
}

func (m MasterName) String() string {
	switch m.kind {
	case masterExplicit:
		return m.name
	case masterNone:
		return "<none>"
	default:
		return "<default>"
	}
}

// Request is the per-template context a binder chain runs against. It is
// built fresh for each template and is not modified by binders.
type Request struct {
	Target *template.Template

	Master        MasterName
	ViewModelType string
	Namespaces    []string

	// Templates is the full discovered template set. Binders treat it as
	// read-only.
	Templates []*template.Template
	Types     typecatalog.Catalog
	Logger    Logger
}

func (r *Request) logger() Logger {
	if r.Logger == nil {
		return NopLogger{}
	}
	return r.Logger
}

func (r *Request) types() typecatalog.Catalog {
	if r.Types == nil {
		return typecatalog.Empty
	}
	return r.Types
}

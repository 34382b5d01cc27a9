package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/vk/viewbind/internal/typecatalog"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("registry: nil reflect.Type provided")
	// ErrEmptyName is returned when an empty name is provided.
	ErrEmptyName = errors.New("registry: empty name provided")
	// ErrNotNamed is returned when a type has no name after unwrapping
	// pointers, slices, arrays and channels.
	ErrNotNamed = errors.New("registry: type has no name")
)

// maxUnwrap bounds how many container levels are peeled off a type.
const maxUnwrap = 8

// Module is the interface application packages implement to contribute
// their view-model types.
type Module interface {
	Register(r *Registry) error
}

// ModuleFunc adapts a plain function to the Module interface.
type ModuleFunc func(r *Registry) error

func (f ModuleFunc) Register(r *Registry) error {
	return f(r)
}

// Registry holds the registered view-model types of one application
// instance. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string][]typecatalog.Type
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		byName: make(map[string][]typecatalog.Type),
	}
}

// Load registers the types of every module in order, stopping at the first
// failure.
func (r *Registry) Load(modules ...Module) error {
	for i, mod := range modules {
		if mod == nil {
			continue
		}
		if err := mod.Register(r); err != nil {
			return fmt.Errorf("module %d (%T): %w", i, mod, err)
		}
	}
	return nil
}

// Register catalogues the nearest named type of t under its
// package-qualified name.
func (r *Registry) Register(t reflect.Type) error {
	named, err := normalize(t)
	if err != nil {
		return err
	}
	return r.add(fullName(named), named)
}

// RegisterAs catalogues the nearest named type of t under name. Registering
// the same type under the same name twice is a no-op.
func (r *Registry) RegisterAs(t reflect.Type, name string) error {
	if name == "" {
		return ErrEmptyName
	}
	named, err := normalize(t)
	if err != nil {
		return err
	}
	return r.add(name, named)
}

// RegisterValues registers the dynamic types of the given values, which is
// the usual way to list view models: RegisterValues(HomeModel{}, &CartModel{}).
func (r *Registry) RegisterValues(values ...any) error {
	for _, v := range values {
		if err := r.Register(reflect.TypeOf(v)); err != nil {
			return fmt.Errorf("register %T: %w", v, err)
		}
	}
	return nil
}

func (r *Registry) add(name string, t reflect.Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byName[name] {
		if existing.Reflect == t {
			return nil
		}
	}
	r.byName[name] = append(r.byName[name], typecatalog.Type{
		Name:    t.Name(),
		PkgPath: t.PkgPath(),
		Reflect: t,
	})
	return nil
}

func (r *Registry) TypesWithFullName(name string) []typecatalog.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := r.byName[name]
	if len(found) == 0 {
		return nil
	}
	out := make([]typecatalog.Type, len(found))
	copy(out, found)
	return out
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered (name, type) pairs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, ts := range r.byName {
		n += len(ts)
	}
	return n
}

func normalize(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, ErrNilType
	}
	for i := 0; i < maxUnwrap && t.Name() == ""; i++ {
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Chan:
			t = t.Elem()
		default:
			return nil, fmt.Errorf("%w: %s", ErrNotNamed, t)
		}
	}
	if t.Name() == "" {
		return nil, fmt.Errorf("%w: %s", ErrNotNamed, t)
	}
	return t, nil
}

func fullName(t reflect.Type) string {
	return typecatalog.Type{Name: t.Name(), PkgPath: t.PkgPath()}.FullName()
}

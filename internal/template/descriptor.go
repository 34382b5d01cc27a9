package template

import "github.com/vk/viewbind/internal/typecatalog"

// Descriptor is the resolved metadata attached to a template. The only
// implementation is *ViewDescriptor.
type Descriptor interface {
	// Template returns the template the descriptor belongs to.
	Template() *Template

	descriptor()
}

// ViewDescriptor marks its template as a renderable view and carries the
// metadata resolved for it by the binding pipeline.
type ViewDescriptor struct {
	template *Template

	// Master is the layout template wrapping the view, if one was found. It
	// never refers to the owning template.
	Master *Template
	// ViewModel is the view-model type the view binds to, if it resolved to
	// exactly one type.
	ViewModel *typecatalog.Type

	bindings []*Template
}

// NewViewDescriptor returns an empty descriptor owned by t.
func NewViewDescriptor(t *Template) *ViewDescriptor {
	return &ViewDescriptor{template: t}
}

func (d *ViewDescriptor) Template() *Template {
	return d.template
}

func (*ViewDescriptor) descriptor() {}

// AddBinding appends a binding declaration file. Duplicates are kept.
func (d *ViewDescriptor) AddBinding(b *Template) {
	d.bindings = append(d.bindings, b)
}

// Bindings returns the binding declaration files in the order they were
// added.
func (d *ViewDescriptor) Bindings() []*Template {
	return d.bindings
}

// ViewOf returns the view descriptor attached to t, or nil if t is not a
// view.
func ViewOf(t *Template) *ViewDescriptor {
	if t == nil {
		return nil
	}
	vd, _ := t.descriptor.(*ViewDescriptor)
	return vd
}

// IsView reports whether t carries a view descriptor.
func IsView(t *Template) bool {
	return ViewOf(t) != nil
}

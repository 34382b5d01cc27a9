package binding

import (
	"github.com/vk/viewbind/internal/locator"
	"github.com/vk/viewbind/internal/template"
)

const (
	// FallbackMaster is the master used when a view does not name one.
	FallbackMaster = "Application"
	// BindingsFile is the file name of binding declaration files.
	BindingsFile = "bindings.xml"
)

// Binder contributes one piece of metadata to a template's descriptor. The
// set of binders is closed; see Pipeline for the order they run in.
type Binder interface {
	// CanBind reports whether the binder applies to the request.
	CanBind(req *Request) bool
	// Bind applies the binder. It is only called when CanBind is true.
	Bind(req *Request)

	binder()
}

// ViewDescriptorBinder classifies templates as views. It applies to
// non-partial spark views that declare a view-model type.
type ViewDescriptorBinder struct{}

func (ViewDescriptorBinder) binder() {}

func (ViewDescriptorBinder) CanBind(req *Request) bool {
	t := req.Target
	return t.IsSparkView() && !t.IsPartial() && req.ViewModelType != ""
}

// Bind attaches a new, empty ViewDescriptor. A descriptor left by an earlier
// pass is replaced.
func (ViewDescriptorBinder) Bind(req *Request) {
	req.Target.SetDescriptor(template.NewViewDescriptor(req.Target))
}

// MasterPageBinder resolves the master template of a view.
type MasterPageBinder struct {
	locator locator.SharedTemplateLocator
	// MasterName is used when the request asks for the default master.
	MasterName string
}

// NewMasterPageBinder returns a binder resolving masters through loc, using
// FallbackMaster as the default master name.
func NewMasterPageBinder(loc locator.SharedTemplateLocator) *MasterPageBinder {
	return &MasterPageBinder{locator: loc, MasterName: FallbackMaster}
}

func (*MasterPageBinder) binder() {}

// CanBind requires a view whose master has not been explicitly disabled.
func (*MasterPageBinder) CanBind(req *Request) bool {
	return template.IsView(req.Target) && !req.Master.IsNone()
}

func (b *MasterPageBinder) Bind(req *Request) {
	target := req.Target
	tracer := req.logger()
	masterName := req.Master.Resolve(b.MasterName)

	master := b.locator.LocateTemplate(masterName, target, req.Templates)
	if master == nil {
		tracer.Log(target, "Expected master page [%s] not found.", masterName)
		return
	}

	if master.Path == target.Path {
		tracer.Log(target, "Master page skipped on itself.")
		return
	}

	template.ViewOf(target).Master = master
	tracer.Log(target, "Master page [%s] found at %s", masterName, master.Path)
}

// ViewModelBinder resolves the view-model type of a view by full name.
type ViewModelBinder struct{}

func (ViewModelBinder) binder() {}

func (ViewModelBinder) CanBind(req *Request) bool {
	return template.IsView(req.Target) && req.ViewModelType != ""
}

// Bind sets the view model only when the name matches exactly one type.
// No match and several matches both leave it unset.
func (ViewModelBinder) Bind(req *Request) {
	target := req.Target
	descriptor := template.ViewOf(target)

	descriptor.ViewModel = nil
	if types := req.types().TypesWithFullName(req.ViewModelType); len(types) == 1 {
		vm := types[0]
		descriptor.ViewModel = &vm
	}

	resolved := "<none>"
	if descriptor.ViewModel != nil {
		resolved = descriptor.ViewModel.FullName()
	}
	req.logger().Log(target, "View model type is : [%s]", resolved)
}

// ReachableBindingsBinder attaches the binding declaration files reachable
// from a view.
type ReachableBindingsBinder struct {
	locator locator.ReachableDirectoryLocator
	// FileName is the name binding declaration files must have.
	FileName string
}

// NewReachableBindingsBinder returns a binder using loc for reachability and
// BindingsFile as the declaration file name.
func NewReachableBindingsBinder(loc locator.ReachableDirectoryLocator) *ReachableBindingsBinder {
	return &ReachableBindingsBinder{locator: loc, FileName: BindingsFile}
}

func (*ReachableBindingsBinder) binder() {}

func (*ReachableBindingsBinder) CanBind(req *Request) bool {
	return template.IsView(req.Target)
}

func (b *ReachableBindingsBinder) Bind(req *Request) {
	descriptor := template.ViewOf(req.Target)

	var candidates []*template.Template
	for _, t := range req.Templates {
		if t.FileName() == b.FileName && t.IsXML() {
			candidates = append(candidates, t)
		}
	}

	reachable := make(map[string]struct{})
	for _, d := range b.locator.Directories(req.Target, req.Templates) {
		reachable[d.Path] = struct{}{}
	}

	for _, c := range candidates {
		if _, ok := reachable[c.Dir()]; ok {
			descriptor.AddBinding(c)
		}
	}
}

package binding

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/viewbind/internal/locator"
	"github.com/vk/viewbind/internal/template"
	"github.com/vk/viewbind/internal/typecatalog"
)

type logEntry struct {
	template *template.Template
	message  string
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) Log(t *template.Template, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{template: t, message: fmt.Sprintf(format, args...)})
}

func (l *recordingLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e.message)
	}
	return out
}

// fakeSharedLocator returns a fixed template and counts lookups.
type fakeSharedLocator struct {
	result *template.Template
	calls  int
	names  []string
}

func (f *fakeSharedLocator) LocateTemplate(name string, _ *template.Template, _ []*template.Template) *template.Template {
	f.calls++
	f.names = append(f.names, name)
	return f.result
}

type fakeReachables []locator.Directory

func (f fakeReachables) Directories(*template.Template, []*template.Template) []locator.Directory {
	return f
}

type fakeCatalog map[string][]typecatalog.Type

func (f fakeCatalog) TypesWithFullName(name string) []typecatalog.Type {
	return f[name]
}

func tmpl(path string) *template.Template {
	return template.New(filepath.FromSlash(path), "app")
}

func viewRequest(target *template.Template, logger Logger) *Request {
	return &Request{
		Target:        target,
		ViewModelType: "example.com/app/views.HomeModel",
		Templates:     []*template.Template{target},
		Logger:        logger,
	}
}

func TestViewDescriptorBinder_CanBind(t *testing.T) {
	testCases := []struct {
		name          string
		path          string
		viewModelType string
		want          bool
	}{
		{name: "view with model", path: "app/Views/Home/Index.spark", viewModelType: "x.Model", want: true},
		{name: "view without model", path: "app/Views/Home/Index.spark", viewModelType: "", want: false},
		{name: "partial with model", path: "app/Views/Home/_Item.spark", viewModelType: "x.Model", want: false},
		{name: "xml with model", path: "app/Views/bindings.xml", viewModelType: "x.Model", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := &Request{Target: tmpl(tc.path), ViewModelType: tc.viewModelType}
			assert.Equal(t, tc.want, ViewDescriptorBinder{}.CanBind(req))
		})
	}
}

func TestViewDescriptorBinder_BindAttachesFreshDescriptor(t *testing.T) {
	target := tmpl("app/Views/Home/Index.spark")
	req := viewRequest(target, nil)

	run(req, ViewDescriptorBinder{})

	vd := template.ViewOf(target)
	require.NotNil(t, vd)
	assert.Same(t, target, vd.Template())
	assert.Nil(t, vd.Master)
	assert.Nil(t, vd.ViewModel)
	assert.Empty(t, vd.Bindings())
}

func TestViewDescriptorBinder_NonViewUnchanged(t *testing.T) {
	partial := tmpl("app/Views/Home/_Item.spark")
	run(viewRequest(partial, nil), ViewDescriptorBinder{})
	assert.Nil(t, partial.Descriptor())

	noModel := tmpl("app/Views/Home/Index.spark")
	run(&Request{Target: noModel}, ViewDescriptorBinder{})
	assert.Nil(t, noModel.Descriptor())
}

func TestViewDescriptorBinder_RebindOverwritesDescriptor(t *testing.T) {
	target := tmpl("app/Views/Home/Index.spark")
	req := viewRequest(target, nil)

	run(req, ViewDescriptorBinder{})
	first := template.ViewOf(target)
	first.Master = tmpl("app/Views/Shared/Application.spark")
	first.AddBinding(tmpl("app/Views/bindings.xml"))

	run(req, ViewDescriptorBinder{})
	second := template.ViewOf(target)

	require.NotNil(t, second)
	assert.NotSame(t, first, second)
	assert.Nil(t, second.Master)
	assert.Empty(t, second.Bindings())
}

func TestMasterPageBinder_CanBind(t *testing.T) {
	view := tmpl("app/Views/Home/Index.spark")
	view.SetDescriptor(template.NewViewDescriptor(view))
	plain := tmpl("app/Views/Home/Other.spark")
	b := NewMasterPageBinder(&fakeSharedLocator{})

	assert.True(t, b.CanBind(&Request{Target: view, Master: DefaultMaster()}))
	assert.True(t, b.CanBind(&Request{Target: view, Master: ExplicitMaster("Site")}))
	assert.False(t, b.CanBind(&Request{Target: view, Master: NoMaster()}))
	assert.False(t, b.CanBind(&Request{Target: plain, Master: DefaultMaster()}))
}

func TestMasterPageBinder_Found(t *testing.T) {
	target := tmpl("app/Views/Home/Index.spark")
	master := tmpl("app/Views/Shared/Application.spark")
	templates := []*template.Template{target, master}
	logger := &recordingLogger{}

	pipeline := NewPipeline()
	req := &Request{
		Target:        target,
		ViewModelType: "x.Model",
		Templates:     templates,
		Logger:        logger,
	}
	run(req, ViewDescriptorBinder{})
	run(req, pipeline.master)

	assert.Same(t, master, template.ViewOf(target).Master)
	assert.Equal(t, []string{
		fmt.Sprintf("Master page [Application] found at %s", master.Path),
	}, logger.messages())
	assert.Same(t, target, logger.entries[0].template)
}

func TestMasterPageBinder_NotFound(t *testing.T) {
	target := tmpl("app/Views/Home/Index.spark")
	target.SetDescriptor(template.NewViewDescriptor(target))
	loc := &fakeSharedLocator{}
	logger := &recordingLogger{}

	b := NewMasterPageBinder(loc)
	run(&Request{Target: target, Master: ExplicitMaster("Site"), Logger: logger}, b)

	assert.Nil(t, template.ViewOf(target).Master)
	assert.Equal(t, []string{"Site"}, loc.names)
	assert.Equal(t, []string{"Expected master page [Site] not found."}, logger.messages())
}

func TestMasterPageBinder_SkipsItself(t *testing.T) {
	target := tmpl("app/Views/Shared/Application.spark")
	target.SetDescriptor(template.NewViewDescriptor(target))
	sameFile := tmpl("app/Views/Shared/Application.spark")
	logger := &recordingLogger{}

	b := NewMasterPageBinder(&fakeSharedLocator{result: sameFile})
	run(&Request{Target: target, Logger: logger}, b)

	assert.Nil(t, template.ViewOf(target).Master)
	assert.Equal(t, []string{"Master page skipped on itself."}, logger.messages())
}

func TestMasterPageBinder_FallbackName(t *testing.T) {
	target := tmpl("app/Views/Home/Index.spark")
	target.SetDescriptor(template.NewViewDescriptor(target))
	loc := &fakeSharedLocator{}

	b := NewMasterPageBinder(loc)
	b.MasterName = "Site"
	run(&Request{Target: target, Logger: &recordingLogger{}}, b)
	run(&Request{Target: target, Master: ExplicitMaster("Admin"), Logger: &recordingLogger{}}, b)

	assert.Equal(t, []string{"Site", "Admin"}, loc.names)
}

func TestViewModelBinder(t *testing.T) {
	home := typecatalog.Type{Name: "HomeModel", PkgPath: "example.com/app/views"}
	other := typecatalog.Type{Name: "HomeModel", PkgPath: "example.com/app/views", Reflect: nil}
	catalog := fakeCatalog{
		"example.com/app/views.HomeModel": {home},
		"example.com/app/views.Ambiguous": {home, other},
	}

	testCases := []struct {
		name     string
		typeName string
		want     *typecatalog.Type
		wantLog  string
	}{
		{
			name:     "exactly one match",
			typeName: "example.com/app/views.HomeModel",
			want:     &home,
			wantLog:  "View model type is : [example.com/app/views.HomeModel]",
		},
		{
			name:     "no match",
			typeName: "example.com/app/views.Missing",
			wantLog:  "View model type is : [<none>]",
		},
		{
			name:     "two matches",
			typeName: "example.com/app/views.Ambiguous",
			wantLog:  "View model type is : [<none>]",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			target := tmpl("app/Views/Home/Index.spark")
			logger := &recordingLogger{}
			req := &Request{Target: target, ViewModelType: tc.typeName, Types: catalog, Logger: logger}

			run(req, ViewDescriptorBinder{}, ViewModelBinder{})

			assert.Equal(t, tc.want, template.ViewOf(target).ViewModel)
			assert.Equal(t, []string{tc.wantLog}, logger.messages())
		})
	}
}

func TestViewModelBinder_CanBind(t *testing.T) {
	view := tmpl("app/Views/Home/Index.spark")
	view.SetDescriptor(template.NewViewDescriptor(view))

	assert.True(t, ViewModelBinder{}.CanBind(&Request{Target: view, ViewModelType: "x.Model"}))
	assert.False(t, ViewModelBinder{}.CanBind(&Request{Target: view}))
	assert.False(t, ViewModelBinder{}.CanBind(&Request{Target: tmpl("app/Other.spark"), ViewModelType: "x.Model"}))
}

func TestReachableBindingsBinder(t *testing.T) {
	target := tmpl("app/Views/Home/Index.spark")
	rootBindings := tmpl("app/bindings.xml")
	unreachable := tmpl("app/Views/Admin/bindings.xml")
	viewsBindings := tmpl("app/Views/bindings.xml")
	notXML := tmpl("app/Views/Home/bindings.spark")
	otherXML := tmpl("app/Views/Home/other.xml")

	templates := []*template.Template{target, rootBindings, unreachable, viewsBindings, notXML, otherXML}
	target.SetDescriptor(template.NewViewDescriptor(target))

	b := NewReachableBindingsBinder(locator.NewReachables())
	run(&Request{Target: target, Templates: templates}, b)

	assert.Equal(t, []*template.Template{rootBindings, viewsBindings}, template.ViewOf(target).Bindings(),
		"reachable bindings must keep template set order")
}

func TestReachableBindingsBinder_UsesLocatorDirectories(t *testing.T) {
	target := tmpl("app/Views/Home/Index.spark")
	a := tmpl("app/a/bindings.xml")
	b := tmpl("app/b/bindings.xml")
	target.SetDescriptor(template.NewViewDescriptor(target))

	binder := NewReachableBindingsBinder(fakeReachables{{Path: b.Dir()}})
	run(&Request{Target: target, Templates: []*template.Template{target, a, b}}, binder)

	assert.Equal(t, []*template.Template{b}, template.ViewOf(target).Bindings())
}

func TestReachableBindingsBinder_NoCandidates(t *testing.T) {
	target := tmpl("app/Views/Home/Index.spark")
	target.SetDescriptor(template.NewViewDescriptor(target))

	run(&Request{Target: target, Templates: []*template.Template{target}}, NewReachableBindingsBinder(locator.NewReachables()))

	assert.Empty(t, template.ViewOf(target).Bindings())
	assert.False(t, NewReachableBindingsBinder(nil).CanBind(&Request{Target: tmpl("app/x.spark")}))
}

func TestMasterNameFromDirective(t *testing.T) {
	assert.True(t, MasterNameFromDirective("", false).IsDefault())
	assert.True(t, MasterNameFromDirective("ignored", false).IsDefault())
	assert.True(t, MasterNameFromDirective("", true).IsNone())

	explicit := MasterNameFromDirective("Site", true)
	assert.False(t, explicit.IsDefault())
	assert.False(t, explicit.IsNone())
	assert.Equal(t, "Site", explicit.Resolve("Application"))

	assert.Equal(t, "Application", DefaultMaster().Resolve("Application"))
	assert.Equal(t, "", NoMaster().Resolve("Application"))
	assert.Equal(t, NoMaster(), ExplicitMaster(""))
	assert.Equal(t, DefaultMaster(), MasterName{})
}

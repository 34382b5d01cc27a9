package app

import (
	"github.com/vk/viewbind/internal/discovery"
	"github.com/vk/viewbind/internal/template"
)

// Result lists the views resolved by a pass in discovery order.
type Result struct {
	ReportID string `json:"reportId"`
	Root     string `json:"root"`
	Views    []View `json:"views"`
}

// View is the resolved metadata of one view. Paths are relative to the
// template root and slash-separated.
type View struct {
	Path      string   `json:"path"`
	Master    string   `json:"master,omitempty"`
	ViewModel string   `json:"viewModel,omitempty"`
	Bindings  []string `json:"bindings,omitempty"`
}

func newResult(reportID string, set *discovery.Set) *Result {
	res := &Result{ReportID: reportID, Root: set.Root, Views: []View{}}
	for _, t := range set.Views() {
		d := template.ViewOf(t)
		v := View{Path: t.RelativePath()}
		if d.Master != nil {
			v.Master = d.Master.RelativePath()
		}
		if d.ViewModel != nil {
			v.ViewModel = d.ViewModel.FullName()
		}
		for _, b := range d.Bindings() {
			v.Bindings = append(v.Bindings, b.RelativePath())
		}
		res.Views = append(res.Views, v)
	}
	return res
}

// View returns the resolved view at the relative path rel.
func (r *Result) View(rel string) (View, bool) {
	for _, v := range r.Views {
		if v.Path == rel {
			return v, true
		}
	}
	return View{}, false
}

package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/viewbind/internal/config"
	"github.com/vk/viewbind/internal/schema"
)

// translateFile converts a decoded file into the format-agnostic model.
func translateFile(f *schema.File) (*config.Model, error) {
	m := config.New()
	if t := f.Templates; t != nil {
		m.Templates = config.Templates{Root: t.Root, Extensions: t.Extensions, Ignore: t.Ignore}
	}
	if b := f.Binding; b != nil {
		m.Binding = config.Binding{
			MasterFallback: b.MasterFallback,
			BindingsFile:   b.BindingsFile,
			SharedDirs:     b.SharedDirs,
			Workers:        b.Workers,
		}
	}
	if t := f.Types; t != nil {
		m.Types = config.Types{Packages: t.Packages, Dir: t.Dir}
	}

	for _, v := range f.Views {
		master, err := translateMaster(v.Master)
		if err != nil {
			return nil, fmt.Errorf("view %q: %w", v.Path, err)
		}
		override := &config.ViewOverride{
			Path:       v.Path,
			Model:      v.Model,
			Master:     master,
			Namespaces: v.Namespaces,
		}
		if err := m.AddView(override); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// translateMaster evaluates a master expression. An absent or null master
// yields nil; any other value must convert to a string.
func translateMaster(expr hcl.Expression) (*string, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid master: %w", diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("master must be a known value")
	}

	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return nil, fmt.Errorf("master must be a string: %w", err)
	}
	var name string
	if err := gocty.FromCtyValue(str, &name); err != nil {
		return nil, fmt.Errorf("master must be a string: %w", err)
	}
	return &name, nil
}

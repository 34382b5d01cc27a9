// Package schema holds the gohcl decoding targets for viewbind HCL
// configuration files.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// File represents the top-level structure of a configuration file. Unknown
// blocks and attributes are decoding errors.
type File struct {
	Templates *Templates `hcl:"templates,block"`
	Binding   *Binding   `hcl:"binding,block"`
	Types     *Types     `hcl:"types,block"`
	Views     []*View    `hcl:"view,block"`
}

// Templates is the `templates` block.
type Templates struct {
	Root       string   `hcl:"root,optional"`
	Extensions []string `hcl:"extensions,optional"`
	Ignore     []string `hcl:"ignore,optional"`
}

// Binding is the `binding` block.
type Binding struct {
	MasterFallback string   `hcl:"master_fallback,optional"`
	BindingsFile   string   `hcl:"bindings_file,optional"`
	SharedDirs     []string `hcl:"shared_dirs,optional"`
	Workers        int      `hcl:"workers,optional"`
}

// Types is the `types` block.
type Types struct {
	Packages []string `hcl:"packages,optional"`
	Dir      string   `hcl:"dir,optional"`
}

// View is a `view "<path>"` override block. Master stays an expression so
// that a null or absent master can be told apart from an empty one.
type View struct {
	Path       string         `hcl:"path,label"`
	Model      string         `hcl:"model,optional"`
	Master     hcl.Expression `hcl:"master,optional"`
	Namespaces []string       `hcl:"namespaces,optional"`
}

// Package hcl provides the HCL implementation of config.Loader. It parses
// configuration files with hclparse, decodes them into the structures of
// the schema package with gohcl, and translates the result into the
// format-agnostic config.Model.
package hcl

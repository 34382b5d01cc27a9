// Package config defines the format-agnostic configuration model of a
// binding pass and the Loader interface implemented by the format-specific
// packages (internal/hcl, internal/yamlconfig).
//
// A Model carries the template root and discovery settings, the binder
// settings, the type catalog settings, and per-view overrides keyed by the
// view's slash-separated path relative to the template root.
package config

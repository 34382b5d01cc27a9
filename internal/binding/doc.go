// Package binding resolves rendering metadata for discovered templates.
//
// # Pipeline
//
// For every template a Request is built and handed to a Pipeline, which runs
// a fixed, closed chain of binders:
//
//	ViewDescriptorBinder     attach a ViewDescriptor to qualifying views
//	MasterPageBinder         resolve the master/layout template
//	ViewModelBinder          resolve the view-model type
//	ReachableBindingsBinder  collect reachable bindings.xml files
//
// Each binder first reports whether it applies to the request and is skipped
// silently if not. The order is significant: every binder after the first
// requires the descriptor the first one attaches, so running them out of
// order degrades into skipped binders rather than failures.
//
// # Outcomes
//
// Binding never fails. A missing master, a master that resolves to the view
// itself, a view-model name matching zero or several types, and a view with
// no reachable bindings are all normal results. The master and view-model
// binders report their outcome through the request's Logger; partial
// results are kept as they are.
//
// # Concurrency
//
// Chains for different templates are independent. Binders only read the
// shared template set and type catalog and only write the target's own
// descriptor, so RunAll can process templates in parallel without extra
// locking provided the Logger is safe for concurrent use.
package binding

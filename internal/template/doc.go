// Package template defines the discovered view-template unit and the
// descriptor that is attached to it once it has been classified as a
// renderable view.
//
// A Template is created by discovery and lives for as long as the template
// set that owns it. Its descriptor slot starts empty. The binding pipeline
// assigns a ViewDescriptor to templates that qualify as views and then only
// ever mutates that descriptor's contents; non-view templates never acquire
// one.
package template

// Package registry provides a reflect-backed type catalog for view models
// compiled into the binary.
//
// Application packages describe their view models through a Module. During
// startup every module registers its types, and the populated Registry is
// handed to the binding pipeline as its typecatalog.Catalog. A type is
// catalogued under its package-qualified name unless it is registered under
// an explicit name, which is how several types can end up sharing one name;
// lookups then return all of them and leave the ambiguity to the caller.
package registry

// Package shapes canonicalizes the return-expression tree of an
// object-to-JSON transformation function into a recursive schema description.
//
// The input is a Node tree recorded by a source-fact provider: literal
// objects and arrays, scalar literals, type casts, accessor chains (with
// optional "skip if missing" links), conditional-inclusion wrappers,
// structural merges, closures, references to other transformation types, and
// pagination calls. The analyzer walks the tree once and produces a
// SchemaNode; anything it cannot reduce becomes an explicit mixed-typed node
// or a dynamic-structure notice, never an error.
//
// # Type heuristics
//
// Accessor chains have no declared types, so the analyzer infers them from an
// ordered heuristic table evaluated top to bottom with early exit: formatting
// calls, enumeration-value accessors, boolean-verb method names, collection
// accessors, and finally field-name suffix/prefix conventions. See
// chainHeuristics in analyzer.go for the single readable table.
package shapes

// Package rules canonicalizes heterogeneous validation-rule expressions into
// ordered rule-token lists and derives parameter descriptors from them.
//
// The input is an expression tree (Expr) recorded by a source-fact provider:
// flat pipe-delimited strings, token lists, fluent rule-builder calls, custom
// rule-object constructions, variable references, merges, concatenations, and
// conditional or match-style branches. The analyzer reduces whatever it can
// statically and degrades everything else to explicit Unresolved tokens or
// result notices. It never returns an error for malformed input shape.
//
// # Canonicalization
//
// Equivalent representations normalize to identical token lists:
//
//	"required|string|max:255"
//	["required", "string", "max:255"]
//
// both yield [Literal(required), Literal(string), Literal(max, 255)].
//
// # Descriptors
//
// DescriptorsFor flattens a field's token list into a single parameter
// descriptor: type, format, required, nullable, enum values, and numeric or
// length constraints, with a human-readable description generated from the
// field name unless a label override is supplied.
package rules

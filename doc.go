// Package inferspec is the root package for the inferspec toolkit, which
// synthesizes OpenAPI specification documents from statically analyzed
// web-service source facts: the route table, declarative validation-rule
// expressions, and object-to-JSON transformation trees.
//
// Every fact in a generated document is derived by static analysis; nothing is
// ever executed and no manual annotations are consumed. Expressions that cannot
// be statically reduced surface as explicit in-band markers rather than guesses.
//
// # Packages
//
//   - spec: the OpenAPI 3.0.x/3.1.x document model and serialization
//   - routes: route-fact input model and provider boundary
//   - rules: canonicalizes validation-rule expressions into rule tokens and
//     parameter descriptors
//   - shapes: canonicalizes transformation-function trees into schema nodes
//   - assemble: merges analyzer output and route facts into a versioned document
//   - requirements: evaluates a fixed list of structural requirement checks
//     against an assembled document
//   - cache: fingerprint-keyed memoization for repeated analysis runs
//
// # Pipeline
//
// Route facts, rule sources, and transformation trees flow through the rules
// and shapes analyzers into canonical descriptors; the assemble package merges
// descriptors into a spec.Document; the requirements package checks the result.
// The checker never mutates the document.
package inferspec

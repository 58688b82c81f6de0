// Package assemble builds versioned OpenAPI documents from statically
// gathered service facts: the route table, per-handler validation-rule
// expressions, and per-handler response-transformation trees.
//
// The entry point is [New], which configures an [Assembler] through
// functional options, and [Assembler.Assemble], which fans analysis out over
// a worker pool (one operation per task) and merges the results into a single
// [spec.Document] under a lock. [Assembler.AssembleOperation] builds one
// route's path item for callers that drive iteration themselves.
//
// # Pipeline
//
// For every route and HTTP method the assembler:
//
//   - analyzes the validation rules into parameter descriptors (rules
//     package), routing them to the request body for body-carrying methods
//     and to query parameters otherwise
//   - reconciles {name} path-template segments against declared parameters,
//     synthesizing required path parameters that the rules did not cover
//   - merges query-accessor facts with rule-derived parameters, rule facts
//     winning on conflicts
//   - analyzes the transformation tree into a response schema (shapes
//     package), applying pagination wrappers and registering referenced
//     resource schemas as shared components
//   - maps authentication middleware onto named security-scheme components
//   - attaches declared response links and recursive callbacks
//
// Version differences between 3.0.x and 3.1.x (nullable keyword versus type
// arrays, jsonSchemaDialect, webhooks) are applied in a final document pass,
// so the construction code is version-independent.
//
// Analysis never fails on malformed input: unanalyzable fragments surface as
// in-band markers ("_notice" properties, unresolved-expression descriptions)
// and collaborator-level problems are reported through an issue collector.
package assemble

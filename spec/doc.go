// Package spec defines the OpenAPI Specification document model produced by
// the inferspec pipeline.
//
// The model covers OAS 3.0.x and 3.1.x. Unlike a general-purpose parser model
// it is generation-oriented: documents are built in memory by the assemble
// package and serialized once; the package does not read foreign documents
// beyond what the requirements checker needs.
//
// # Version handling
//
// Version is a document-level attribute that alters a fixed set of
// serialization rules (the nullable keyword vs. type arrays, the
// jsonSchemaDialect and webhooks requirements) but never the document's
// logical content. See the assemble package for how nullability facts are
// rendered per version.
//
// # Determinism
//
// All serialization is deterministic: JSON object keys for map-typed fields
// are emitted in sorted order, so two assemblies of identical input produce
// byte-identical output.
package spec

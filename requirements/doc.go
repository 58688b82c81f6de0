// Package requirements validates an assembled OpenAPI document against a
// fixed registry of versioned requirement checks.
//
// Every check is evaluated independently against the document's raw JSON
// form and reports pass, fail, or skip: a check whose applicable-version set
// excludes the document's version is skipped, never silently passed. The
// validator is read-only; it never mutates or repairs the document.
//
// Local $ref pointers are resolved during checking, bounded to 8 indirection
// hops. An unresolvable or externally rooted reference makes the referencing
// object invisible to the check rather than failing the run.
//
// Check RQ-OAS-001 carries an external schema-conformance verdict: callers
// either validate the document against the official OpenAPI meta-schema
// themselves or use [Conform], and hand the resulting [Verdict] in.
package requirements

package requirements

import (
	"encoding/json"
	"fmt"

	"github.com/inferspec/inferspec/spec"
)

// check is one registry entry. run returns the violation list; nil means
// pass.
type check struct {
	id          string
	description string
	appliesTo   applicability
	run         func(*target) []string
}

// applicability pairs the version predicate a check is gated on with the
// version labels reported for it.
type applicability struct {
	versions []string
	matches  func(spec.Version) bool
}

var (
	anyVersion = applicability{[]string{"3.0.x", "3.1.x"}, func(spec.Version) bool { return true }}
	only30     = applicability{[]string{"3.0.x"}, spec.Version.Is30}
	only31     = applicability{[]string{"3.1.x"}, spec.Version.Is31}
)

// Check evaluates the full requirement registry against a document.
//
// raw is the document's serialized JSON form; pass nil to have it serialized
// here. verdict is the external schema-conformance result for RQ-OAS-001;
// nil skips that check. Checks never mutate the document.
func Check(doc *spec.Document, raw []byte, version spec.Version, verdict *Verdict) (*Report, error) {
	if raw == nil {
		var err error
		raw, err = spec.ToJSON(doc)
		if err != nil {
			return nil, fmt.Errorf("requirements: serializing document: %w", err)
		}
	}
	var root map[string]any
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("requirements: decoding document: %w", err)
	}

	t := &target{root: root, version: version, verdict: verdict}
	results := make([]CheckResult, 0, len(registry))
	for _, c := range registry {
		result := CheckResult{
			ID:                 c.id,
			Description:        c.description,
			ApplicableVersions: c.appliesTo.versions,
		}
		if !c.appliesTo.matches(version) {
			result.Status = StatusSkip
		} else if violations := c.run(t); len(violations) > 0 {
			result.Status = StatusFail
			result.Violations = violations
		} else {
			result.Status = StatusPass
		}
		results = append(results, result)
	}
	return buildReport(results), nil
}

// registry is the fixed, ordered check list.
var registry = []check{
	{
		id:          "RQ-OAS-001",
		description: "document conforms to the official OpenAPI meta-schema",
		appliesTo:   anyVersion,
		run:         checkConformanceVerdict,
	},
	{
		id:          "RQ-ROOT-001",
		description: "required root fields are present",
		appliesTo:   anyVersion,
		run:         checkRootFields,
	},
	{
		id:          "RQ-PATH-001",
		description: "path keys are well-formed templates",
		appliesTo:   anyVersion,
		run:         checkPathKeys,
	},
	{
		id:          "RQ-PATH-002",
		description: "path items carry only legal fields",
		appliesTo:   anyVersion,
		run:         checkPathItemShape,
	},
	{
		id:          "RQ-PATH-003",
		description: "templated path parameters are declared and required",
		appliesTo:   anyVersion,
		run:         checkPathParameters,
	},
	{
		id:          "RQ-OP-001",
		description: "operation ids are unique",
		appliesTo:   anyVersion,
		run:         checkOperationIDs,
	},
	{
		id:          "RQ-OP-002",
		description: "operations declare responses with valid status keys",
		appliesTo:   anyVersion,
		run:         checkResponses,
	},
	{
		id:          "RQ-PARAM-001",
		description: "parameters are well-formed",
		appliesTo:   anyVersion,
		run:         checkParameterShape,
	},
	{
		id:          "RQ-PARAM-002",
		description: "no duplicate parameter name and location",
		appliesTo:   anyVersion,
		run:         checkParameterDuplicates,
	},
	{
		id:          "RQ-BODY-001",
		description: "request bodies declare media-typed content",
		appliesTo:   anyVersion,
		run:         checkRequestBodies,
	},
	{
		id:          "RQ-MEDIA-001",
		description: "media type objects are well-formed",
		appliesTo:   anyVersion,
		run:         checkMediaTypes,
	},
	{
		id:          "RQ-SEC-001",
		description: "security requirements reference declared schemes",
		appliesTo:   anyVersion,
		run:         checkSecurityRequirements,
	},
	{
		id:          "RQ-SEC-002",
		description: "security schemes match their type's shape",
		appliesTo:   anyVersion,
		run:         checkSecuritySchemes,
	},
	{
		id:          "RQ-LINK-001",
		description: "links target exactly one of operationId and operationRef",
		appliesTo:   anyVersion,
		run:         checkLinks,
	},
	{
		id:          "RQ-EX-001",
		description: "example and examples are mutually exclusive",
		appliesTo:   anyVersion,
		run:         checkExamples,
	},
	{
		id:          "RQ-COMP-001",
		description: "component sections and keys are legal",
		appliesTo:   anyVersion,
		run:         checkComponents,
	},
	{
		id:          "RQ-SCHEMA-001",
		description: "schemas satisfy recursive semantic rules",
		appliesTo:   anyVersion,
		run:         checkSchemas,
	},
	{
		id:          "RQ-CB-001",
		description: "callbacks and webhooks map expressions to path items",
		appliesTo:   anyVersion,
		run:         checkCallbacks,
	},
	{
		id:          "RQ-TAG-001",
		description: "tag names are unique",
		appliesTo:   anyVersion,
		run:         checkTags,
	},
	{
		id:          "RQ-30-001",
		description: "3.0 documents avoid 3.1-only constructs",
		appliesTo:   only30,
		run:         check30Constructs,
	},
	{
		id:          "RQ-31-001",
		description: "3.1 documents declare dialect and webhooks and avoid nullable",
		appliesTo:   only31,
		run:         check31Constructs,
	},
}

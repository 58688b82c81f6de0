package assemble

import (
	"github.com/inferspec/inferspec/routes"
	"github.com/inferspec/inferspec/rules"
	"github.com/inferspec/inferspec/shapes"
)

// Input binds every fact the assembler consumes for one run. It is the JSON
// facts-file format: route discovery, rule extraction, and tree extraction
// happen outside this module and hand their results over in this shape.
type Input struct {
	// Operations lists one entry per registered route.
	Operations []OperationFacts `json:"operations"`

	// Resources holds the transformation trees of named resource types, so
	// nested resource references resolve to shared component schemas.
	Resources map[string]shapes.Node `json:"resources,omitempty"`
}

// OperationFacts carries the statically gathered facts for one route.
type OperationFacts struct {
	// Route is the registered endpoint.
	Route routes.Route `json:"route"`

	// OperationID overrides the derived operation identifier.
	OperationID string `json:"operationId,omitempty"`

	// Summary defaults to a humanized handler-method name when empty.
	Summary     string   `json:"summary,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	// Rules is the handler's validation-rule expression, when it validates
	// its request.
	Rules *rules.Expr `json:"rules,omitempty"`

	// Labels carries human-readable field-label overrides from the rule
	// source.
	Labels map[string]string `json:"labels,omitempty"`

	// EnumValues carries reflected value sets per enumeration class name.
	EnumValues map[string][]any `json:"enumValues,omitempty"`

	// Query lists bare query-accessor facts observed in the handler body.
	// They merge additively with rule-derived parameters; rule facts win.
	Query []QueryFact `json:"queryAccessors,omitempty"`

	// Response is the return-expression tree of the handler's transformation
	// function, or nil for handlers returning no body.
	Response *shapes.Node `json:"response,omitempty"`

	// Status is the success status key; defaults to "200", or "204" when
	// Response is nil.
	Status string `json:"status,omitempty"`

	// Links declares response links.
	Links []LinkFact `json:"links,omitempty"`

	// Callbacks declares operation callbacks.
	Callbacks []CallbackFact `json:"callbacks,omitempty"`
}

// QueryFact is one observed query-parameter access.
type QueryFact struct {
	Name string `json:"name"`

	// Type is the accessor-implied JSON type; empty means "string".
	Type string `json:"type,omitempty"`

	// Default is the fallback value passed to the accessor, if any.
	Default any `json:"default,omitempty"`
}

// LinkFact declares one response link. Exactly one of OperationID and
// OperationRef must be set.
type LinkFact struct {
	// Name keys the link in the response's links map.
	Name string `json:"name"`

	// Status selects the response the link attaches to; empty means the
	// operation's success status.
	Status string `json:"status,omitempty"`

	OperationID  string `json:"operationId,omitempty"`
	OperationRef string `json:"operationRef,omitempty"`
	Description  string `json:"description,omitempty"`

	// Parameters maps target parameter names to runtime expressions.
	Parameters map[string]any `json:"parameters,omitempty"`
}

// CallbackFact declares one out-of-band callback the service makes. The
// nested operation facts describe the callback request and may themselves
// declare callbacks.
type CallbackFact struct {
	// Name keys the callback in the operation's callbacks map.
	Name string `json:"name"`

	// Expression is the runtime expression resolving the callback URL.
	Expression string `json:"expression"`

	// Operation describes the callback request; its route's methods select
	// the path-item operations.
	Operation OperationFacts `json:"operation"`
}

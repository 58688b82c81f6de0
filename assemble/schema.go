package assemble

import (
	"fmt"

	"github.com/inferspec/inferspec/shapes"
	"github.com/inferspec/inferspec/spec"
)

// schemaFromShape converts an analyzed transformation tree into the response
// schema, wrapping the root in the recognized pagination envelope when the
// return expression paginates.
func (a *run) schemaFromShape(result *shapes.Result) *spec.Schema {
	root := a.schemaFromNode(result.Root)
	switch result.Pagination {
	case shapes.PaginationFull:
		return fullPaginationWrapper(root)
	case shapes.PaginationSimple:
		return simplePaginationWrapper(root)
	case shapes.PaginationCursor:
		return cursorPaginationWrapper(root)
	default:
		return root
	}
}

// schemaFromNode converts one schema node. Resource references become shared
// components; conditional and relation facts surface as description text
// since OpenAPI has no native conditional-presence vocabulary.
func (a *run) schemaFromNode(n *shapes.SchemaNode) *spec.Schema {
	if n == nil {
		return &spec.Schema{}
	}

	var s *spec.Schema
	if n.SourceResourceName != "" {
		s = a.resourceRef(n.SourceResourceName)
	} else {
		s = a.plainSchemaFromNode(n)
	}

	if desc := nodeDescription(n); desc != "" {
		if s.Ref != "" {
			// $ref with siblings is invalid in 3.0; wrap it.
			s = &spec.Schema{AllOf: []*spec.Schema{s}, Description: desc}
		} else {
			s.Description = joinSentences(s.Description, desc)
		}
	}
	if n.Nullable {
		if s.Ref != "" {
			s = &spec.Schema{AllOf: []*spec.Schema{s}, Nullable: true}
		} else {
			s.Nullable = true
		}
	}
	return s
}

func (a *run) plainSchemaFromNode(n *shapes.SchemaNode) *spec.Schema {
	s := &spec.Schema{Format: n.Format}

	switch n.Kind {
	case shapes.KindObject:
		s.Type = "object"
		for _, prop := range n.Properties {
			ensureProperties(s)
			child := a.schemaFromNode(prop.Node)
			s.Properties[prop.Name] = child
			if !prop.Node.Conditional {
				s.Required = appendUnique(s.Required, prop.Name)
			}
		}
		if n.Notice != "" {
			ensureProperties(s)
			s.Properties["_notice"] = noticeSchema([]string{n.Notice})
		}
	case shapes.KindArray:
		s.Type = "array"
		s.Items = a.schemaFromNode(n.Items)
	default:
		switch n.Type {
		case "", "mixed":
			// Untyped.
		default:
			s.Type = n.Type
		}
		if n.Unresolved != "" {
			s.Description = fmt.Sprintf("Unanalyzed expression: %s", n.Unresolved)
		}
	}
	return s
}

// nodeDescription renders conditional-presence facts as prose.
func nodeDescription(n *shapes.SchemaNode) string {
	switch {
	case n.RelationName != "":
		return fmt.Sprintf("Included when the %s relation is loaded.", n.RelationName)
	case n.Conditional:
		return "Included conditionally."
	default:
		return ""
	}
}

// resourceRef returns a $ref to the named resource's component schema,
// registering the component on first use. A resource without a supplied tree
// degrades to an inline untyped object naming its source.
func (a *run) resourceRef(name string) *spec.Schema {
	a.mu.Lock()
	node, known := a.resources[name]
	if !known {
		a.mu.Unlock()
		return &spec.Schema{Type: "object", Description: name + " resource"}
	}
	if a.resourceDone[name] {
		a.mu.Unlock()
		return &spec.Schema{Ref: "#/components/schemas/" + name}
	}
	// Mark before building so mutually recursive resources terminate.
	a.resourceDone[name] = true
	a.mu.Unlock()

	result := a.analyzeShape(node)
	schema := a.schemaFromNode(result.Root)

	a.mu.Lock()
	a.doc.AddSchema(name, schema)
	a.mu.Unlock()
	return &spec.Schema{Ref: "#/components/schemas/" + name}
}

// Pagination wrappers. The item schema always lands under "data"; metadata
// fields differ per wrapper kind.

func fullPaginationWrapper(item *spec.Schema) *spec.Schema {
	return &spec.Schema{
		Type: "object",
		Properties: map[string]*spec.Schema{
			"data": {Type: "array", Items: item},
			"links": {
				Type: "object",
				Properties: map[string]*spec.Schema{
					"first": {Type: "string", Nullable: true},
					"last":  {Type: "string", Nullable: true},
					"prev":  {Type: "string", Nullable: true},
					"next":  {Type: "string", Nullable: true},
				},
			},
			"meta": {
				Type: "object",
				Properties: map[string]*spec.Schema{
					"current_page": {Type: "integer"},
					"from":         {Type: "integer", Nullable: true},
					"last_page":    {Type: "integer"},
					"path":         {Type: "string"},
					"per_page":     {Type: "integer"},
					"to":           {Type: "integer", Nullable: true},
					"total":        {Type: "integer"},
				},
				Required: []string{"current_page", "last_page", "per_page", "total"},
			},
		},
		Required: []string{"data", "links", "meta"},
	}
}

// simplePaginationWrapper has first/next URLs but no totals or last page.
func simplePaginationWrapper(item *spec.Schema) *spec.Schema {
	return &spec.Schema{
		Type: "object",
		Properties: map[string]*spec.Schema{
			"data": {Type: "array", Items: item},
			"links": {
				Type: "object",
				Properties: map[string]*spec.Schema{
					"first": {Type: "string", Nullable: true},
					"prev":  {Type: "string", Nullable: true},
					"next":  {Type: "string", Nullable: true},
				},
			},
			"meta": {
				Type: "object",
				Properties: map[string]*spec.Schema{
					"current_page": {Type: "integer"},
					"from":         {Type: "integer", Nullable: true},
					"path":         {Type: "string"},
					"per_page":     {Type: "integer"},
					"to":           {Type: "integer", Nullable: true},
				},
				Required: []string{"current_page", "per_page"},
			},
		},
		Required: []string{"data", "links", "meta"},
	}
}

// cursorPaginationWrapper has opaque cursors and no page-number metadata.
func cursorPaginationWrapper(item *spec.Schema) *spec.Schema {
	return &spec.Schema{
		Type: "object",
		Properties: map[string]*spec.Schema{
			"data": {Type: "array", Items: item},
			"links": {
				Type: "object",
				Properties: map[string]*spec.Schema{
					"prev": {Type: "string", Nullable: true},
					"next": {Type: "string", Nullable: true},
				},
			},
			"meta": {
				Type: "object",
				Properties: map[string]*spec.Schema{
					"path":        {Type: "string"},
					"per_page":    {Type: "integer"},
					"next_cursor": {Type: "string", Nullable: true},
					"prev_cursor": {Type: "string", Nullable: true},
				},
				Required: []string{"per_page"},
			},
		},
		Required: []string{"data", "links", "meta"},
	}
}

package shapes

// SchemaKind classifies a SchemaNode's structural shape.
type SchemaKind int

const (
	// KindScalar is a leaf value.
	KindScalar SchemaKind = iota
	// KindObject has named properties.
	KindObject
	// KindArray has a single item shape.
	KindArray
)

// SchemaNode is the canonical, recursive description of an emitted JSON value
// shape. Properties keep source order.
type SchemaNode struct {
	Kind SchemaKind
	// Type is the inferred JSON type: "string", "integer", "number",
	// "boolean", "array", "object", or "mixed" when inference gave up.
	Type string
	// Format is the inferred string format, if any.
	Format string
	// Source tags where the value comes from, e.g. "enum" for
	// enumeration-value accessors.
	Source string
	// Nullable is set when any accessor link used the skip-if-missing
	// operator, or the value was a null literal.
	Nullable bool

	// Conditional marks fields emitted only when some condition holds.
	Conditional bool
	// ConditionalKind identifies the wrapper kind ("when", "whenLoaded",
	// "mergeWhen", ...).
	ConditionalKind string
	// RelationName records the relation-like identifier named by the
	// condition, when there is one.
	RelationName string
	// SourceResourceName records the transformation type that produces this
	// value, when the wrapped value is a typed-item or typed-collection
	// constructor.
	SourceResourceName string
	// HasTransformation marks closure-valued fields.
	HasTransformation bool

	// Properties holds the ordered fields of an object node.
	Properties []Property
	// Items holds the element shape of an array node.
	Items *SchemaNode

	// Notice carries the synthetic dynamic-structure explanation attached to
	// an object whose full shape could not be determined. Rendered as a
	// "_notice" property downstream; never silently omitted.
	Notice string
	// Unresolved carries the printed text of an expression the analyzer gave
	// up on, so "gave up" is distinguishable from "inferred nothing".
	Unresolved string
}

// Property is one ordered object field.
type Property struct {
	Name string
	Node *SchemaNode
}

// Get returns the named property's node, or nil.
func (s *SchemaNode) Get(name string) *SchemaNode {
	for i := range s.Properties {
		if s.Properties[i].Name == name {
			return s.Properties[i].Node
		}
	}
	return nil
}

// setProperty appends or overwrites a property, preserving insertion order
// for new names and position for overwritten ones.
func (s *SchemaNode) setProperty(name string, node *SchemaNode) {
	for i := range s.Properties {
		if s.Properties[i].Name == name {
			s.Properties[i].Node = node
			return
		}
	}
	s.Properties = append(s.Properties, Property{Name: name, Node: node})
}

// Result is the analyzer output for one transformation function.
type Result struct {
	// Root describes the emitted JSON shape. For paginated returns this is
	// the item shape; Pagination records the wrapper.
	Root *SchemaNode
	// Pagination is the recognized pagination wrapper, or PaginationNone.
	Pagination PaginationKind
	// NestedResources lists, deduplicated in first-seen order, the other
	// transformation types referenced by the tree.
	NestedResources []string
}

func (r *Result) addNestedResource(name string) {
	for _, n := range r.NestedResources {
		if n == name {
			return
		}
	}
	r.NestedResources = append(r.NestedResources, name)
}

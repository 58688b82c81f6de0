package shapes

import "strings"

// NoticeDynamicStructure explains an incrementally built result whose full
// shape could not be determined statically.
const NoticeDynamicStructure = "Dynamic structure detected: only unconditionally reachable fields were analyzed"

// Analyze walks a transformation function's return-expression tree and
// produces its schema description. It is purely functional and never fails:
// unanalyzable fragments degrade to mixed-typed nodes or notices.
func Analyze(node Node) *Result {
	r := &Result{}
	r.Root = r.walk(node)
	return r
}

func (r *Result) walk(node Node) *SchemaNode {
	switch node.Kind {
	case NodeObject:
		out := &SchemaNode{Kind: KindObject, Type: "object"}
		for _, entry := range node.Entries {
			out.setProperty(entry.Key, r.walk(entry.Value))
		}
		return out

	case NodeList:
		out := &SchemaNode{Kind: KindArray, Type: "array"}
		if len(node.Items) > 0 {
			out.Items = r.walk(node.Items[0])
		} else {
			out.Items = &SchemaNode{Kind: KindScalar, Type: "mixed"}
		}
		return out

	case NodeString:
		return &SchemaNode{Kind: KindScalar, Type: "string"}
	case NodeInt:
		return &SchemaNode{Kind: KindScalar, Type: "integer"}
	case NodeFloat:
		return &SchemaNode{Kind: KindScalar, Type: "number"}
	case NodeBool:
		return &SchemaNode{Kind: KindScalar, Type: "boolean"}
	case NodeNull:
		return &SchemaNode{Kind: KindScalar, Type: "mixed", Nullable: true}

	case NodeCast:
		return r.walkCast(node)

	case NodeChain:
		return analyzeChain(node.Chain)

	case NodeWhen:
		return r.walkWhen(node)

	case NodeMerge:
		return r.walkMerge(node)

	case NodeClosure:
		var out *SchemaNode
		if node.Inner != nil {
			out = r.walk(*node.Inner)
		} else {
			out = &SchemaNode{Kind: KindScalar, Type: "mixed"}
		}
		out.HasTransformation = true
		return out

	case NodeResource:
		return r.walkResource(node)

	case NodePagination:
		if r.Pagination == PaginationNone {
			r.Pagination = node.Pagination
		}
		if node.Inner != nil {
			return r.walk(*node.Inner)
		}
		return &SchemaNode{Kind: KindScalar, Type: "mixed"}

	case NodeDynamic:
		var out *SchemaNode
		if node.Inner != nil {
			out = r.walk(*node.Inner)
		} else {
			out = &SchemaNode{Kind: KindObject, Type: "object"}
		}
		out.Notice = NoticeDynamicStructure
		return out

	case NodeUnknown, NodeInvalid:
		return &SchemaNode{Kind: KindScalar, Type: "mixed", Unresolved: node.Str}

	default:
		return &SchemaNode{Kind: KindScalar, Type: "mixed", Unresolved: node.Str}
	}
}

// walkCast analyzes the operand first, then overrides the inferred type with
// the cast target.
func (r *Result) walkCast(node Node) *SchemaNode {
	var out *SchemaNode
	if node.Inner != nil {
		out = r.walk(*node.Inner)
	} else {
		out = &SchemaNode{Kind: KindScalar, Type: "mixed"}
	}
	switch node.Cast {
	case CastInt:
		out.Kind, out.Type, out.Items = KindScalar, "integer", nil
	case CastFloat:
		out.Kind, out.Type, out.Items = KindScalar, "number", nil
	case CastBool:
		out.Kind, out.Type, out.Items = KindScalar, "boolean", nil
	case CastString:
		out.Kind, out.Type, out.Items = KindScalar, "string", nil
	case CastArray:
		if out.Kind != KindObject && out.Kind != KindArray {
			out.Kind = KindArray
			out.Type = "array"
			out.Items = &SchemaNode{Kind: KindScalar, Type: "mixed"}
		}
	}
	return out
}

func (r *Result) walkWhen(node Node) *SchemaNode {
	var out *SchemaNode
	if node.Inner != nil {
		out = r.walk(*node.Inner)
	} else {
		out = &SchemaNode{Kind: KindScalar, Type: "mixed"}
	}
	out.Conditional = true
	out.ConditionalKind = node.Str
	if node.Condition != "" && isRelationWrapper(node.Str) {
		out.RelationName = node.Condition
	}
	if node.Closure {
		out.HasTransformation = true
	}
	return out
}

// isRelationWrapper reports whether a conditional wrapper's condition names a
// relation-like identifier.
func isRelationWrapper(kind string) bool {
	return strings.Contains(kind, "Loaded") || strings.Contains(kind, "Counted") ||
		strings.Contains(kind, "Aggregated") || strings.Contains(kind, "Relationship")
}

// walkMerge recursively analyzes and flattens all fragments into one
// top-level node in source order, later fragments overriding earlier keys.
// Fragments behind a conditional wrapper contribute their fields with the
// conditional facts copied onto each.
func (r *Result) walkMerge(node Node) *SchemaNode {
	out := &SchemaNode{Kind: KindObject, Type: "object"}
	for _, fragment := range node.Items {
		frag := r.walk(fragment)
		if frag.Kind != KindObject {
			// A non-object fragment cannot be flattened field-by-field; keep
			// the degradation visible.
			if out.Notice == "" {
				out.Notice = NoticeDynamicStructure
			}
			continue
		}
		for _, prop := range frag.Properties {
			child := prop.Node
			if frag.Conditional && !child.Conditional {
				copied := *child
				copied.Conditional = true
				copied.ConditionalKind = frag.ConditionalKind
				copied.RelationName = frag.RelationName
				child = &copied
			}
			out.setProperty(prop.Name, child)
		}
		if frag.Notice != "" {
			out.Notice = frag.Notice
		}
	}
	return out
}

func (r *Result) walkResource(node Node) *SchemaNode {
	r.addNestedResource(node.Str)
	item := &SchemaNode{
		Kind:               KindObject,
		Type:               "object",
		SourceResourceName: node.Str,
	}
	if node.Collection {
		return &SchemaNode{Kind: KindArray, Type: "array", Items: item}
	}
	return item
}

// chainHeuristic is one priority-ordered inference rule for accessor chains.
type chainHeuristic struct {
	name    string
	applies func(chain []Link) bool
	typ     string
	format  string
	source  string
	isArray bool
}

// chainHeuristics is evaluated top to bottom with early exit; order is the
// contract.
var chainHeuristics = []chainHeuristic{
	{
		name:    "date formatting call",
		applies: func(chain []Link) bool { l := lastLink(chain); return l.Call && dateFormatCalls[l.Name] },
		typ:     "string",
		format:  "date-time",
	},
	{
		name: "enum value accessor",
		applies: func(chain []Link) bool {
			l := lastLink(chain)
			return !l.Call && l.Name == "value" && len(chain) >= 2
		},
		typ:    "string",
		source: "enum",
	},
	{
		name:    "boolean verb method",
		applies: func(chain []Link) bool { l := lastLink(chain); return l.Call && hasBooleanVerbPrefix(l.Name) },
		typ:     "boolean",
	},
	{
		name:    "collection accessor",
		applies: func(chain []Link) bool { l := lastLink(chain); return l.Call && collectionCalls[l.Name] },
		typ:     "array",
		isArray: true,
	},
}

var dateFormatCalls = map[string]bool{
	"format":                true,
	"calendar":              true,
	"isoFormat":             true,
	"toDateString":          true,
	"toDateTimeString":      true,
	"toFormattedDateString": true,
	"toIso8601String":       true,
	"toISOString":           true,
	"diffForHumans":         true,
}

var collectionCalls = map[string]bool{
	"pluck":   true,
	"map":     true,
	"filter":  true,
	"only":    true,
	"except":  true,
	"values":  true,
	"keys":    true,
	"flatten": true,
	"take":    true,
	"skip":    true,
	"sortBy":  true,
	"where":   true,
	"reject":  true,
	"chunk":   true,
}

func hasBooleanVerbPrefix(name string) bool {
	for _, prefix := range []string{"is", "has", "can", "should"} {
		if name == prefix {
			return true
		}
		if strings.HasPrefix(name, prefix) && len(name) > len(prefix) {
			next := name[len(prefix)]
			if next >= 'A' && next <= 'Z' || next == '_' {
				return true
			}
		}
	}
	return false
}

// analyzeChain infers the type of an accessor chain. A dynamically named
// link anywhere in the chain falls back safely to mixed, nullable; an
// optional link anywhere marks the node nullable regardless of which
// heuristic produced the type.
func analyzeChain(chain []Link) *SchemaNode {
	out := &SchemaNode{Kind: KindScalar}

	if hasDynamic(chain) {
		out.Type = "mixed"
		out.Nullable = true
		return out
	}

	matched := false
	for _, h := range chainHeuristics {
		if h.applies(chain) {
			out.Type = h.typ
			out.Format = h.format
			out.Source = h.source
			if h.isArray {
				out.Kind = KindArray
				out.Items = &SchemaNode{Kind: KindScalar, Type: "mixed"}
			}
			matched = true
			break
		}
	}
	if !matched {
		out.Type = typeFromFieldName(chainFieldName(chain))
	}

	if hasOptional(chain) {
		out.Nullable = true
	}
	return out
}

// typeFromFieldName applies the suffix/prefix conventions used when no
// structural heuristic matched.
func typeFromFieldName(name string) string {
	switch {
	case name == "":
		return "mixed"
	case name == "id" || strings.HasSuffix(name, "_id"):
		return "integer"
	case strings.HasSuffix(name, "_url") || strings.HasSuffix(name, "_at"):
		return "string"
	case strings.HasPrefix(name, "is_") || strings.HasPrefix(name, "has_"):
		return "boolean"
	case strings.HasSuffix(name, "_amount") || strings.HasSuffix(name, "_price"):
		return "number"
	case strings.HasSuffix(name, "_count"):
		return "integer"
	default:
		return "mixed"
	}
}

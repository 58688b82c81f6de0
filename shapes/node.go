package shapes

import "strings"

// NodeKind discriminates the closed set of transformation-tree node kinds.
type NodeKind int

const (
	// NodeInvalid is the zero value; it analyzes as an unresolved mixed node.
	NodeInvalid NodeKind = iota
	// NodeObject is a keyed literal structure (ordered entries).
	NodeObject
	// NodeList is an unkeyed literal list.
	NodeList
	// NodeString, NodeInt, NodeFloat, NodeBool, NodeNull are scalar literals.
	NodeString
	NodeInt
	NodeFloat
	NodeBool
	NodeNull
	// NodeCast is an explicit type cast applied to an inner expression.
	NodeCast
	// NodeChain is an accessor chain reading a (possibly nested) member,
	// optionally through skip-if-missing links.
	NodeChain
	// NodeWhen is a conditional-inclusion wrapper: the field is emitted only
	// when some condition holds.
	NodeWhen
	// NodeMerge is a structural merge combining object fragments into one.
	NodeMerge
	// NodeClosure is a field whose value comes from invoking an inline
	// function.
	NodeClosure
	// NodeResource is a typed-item or typed-collection constructor naming
	// another transformation type.
	NodeResource
	// NodePagination is a pagination call producing a wrapped collection.
	NodePagination
	// NodeDynamic marks a result built incrementally through mutable bindings
	// with conditional branches; only Base holds the unconditionally
	// reachable fields.
	NodeDynamic
	// NodeUnknown carries the printed text of an expression the provider
	// could not classify.
	NodeUnknown
)

// CastKind enumerates explicit cast targets.
type CastKind int

const (
	CastInt CastKind = iota
	CastFloat
	CastBool
	CastString
	CastArray
)

// PaginationKind enumerates recognized pagination wrapper shapes.
type PaginationKind int

const (
	// PaginationNone means the node is not paginated.
	PaginationNone PaginationKind = iota
	// PaginationFull includes page/total/per-page/last-page metadata.
	PaginationFull
	// PaginationSimple includes first/next page URLs but no totals.
	PaginationSimple
	// PaginationCursor includes next/previous cursor tokens only.
	PaginationCursor
)

// Node is a tagged-union transformation-tree node. Which fields are
// meaningful depends on Kind.
type Node struct {
	Kind NodeKind

	// Str holds the string literal (NodeString), the printed text
	// (NodeUnknown), the resource name (NodeResource), or the wrapper kind
	// (NodeWhen: "when", "whenLoaded", "whenNotNull", "whenHas",
	// "mergeWhen", ...).
	Str string
	// Int, Float, Bool hold the scalar literals.
	Int   int64
	Float float64
	Bool  bool

	// Entries holds the ordered fields of a NodeObject.
	Entries []Entry
	// Items holds NodeList elements or NodeMerge fragments.
	Items []Node
	// Inner holds the wrapped value: the cast operand (NodeCast), the
	// conditional value (NodeWhen, may be nil when the wrapper supplies no
	// inline value), the closure body (NodeClosure), the paginated item
	// (NodePagination), or the unconditional base (NodeDynamic).
	Inner *Node

	// Chain holds the accessor links of a NodeChain, outermost first.
	Chain []Link

	// Condition names the conditional wrapper's subject, e.g. the relation
	// name of a whenLoaded call (NodeWhen).
	Condition string
	// Closure marks a NodeWhen whose value is produced by a closure.
	Closure bool

	// Collection marks a NodeResource collection constructor.
	Collection bool

	// Cast is the target of a NodeCast.
	Cast CastKind
	// Pagination is the wrapper shape of a NodePagination.
	Pagination PaginationKind
}

// Entry is one ordered field of an object literal.
type Entry struct {
	Key   string
	Value Node
}

// Link is one step of an accessor chain.
type Link struct {
	// Name is the property or method name. Empty or "?" when Dynamic.
	Name string
	// Call marks a method call rather than a property access.
	Call bool
	// Optional marks a skip-if-empty/missing link.
	Optional bool
	// Dynamic marks a non-literal (runtime-computed) property or method name.
	Dynamic bool
}

// Convenience constructors used by providers and tests.

// Object returns a keyed literal structure.
func Object(entries ...Entry) Node { return Node{Kind: NodeObject, Entries: entries} }

// Field returns one object entry.
func Field(key string, value Node) Entry { return Entry{Key: key, Value: value} }

// ListOf returns an unkeyed literal list.
func ListOf(items ...Node) Node { return Node{Kind: NodeList, Items: items} }

// Text returns a string literal node.
func Text(s string) Node { return Node{Kind: NodeString, Str: s} }

// IntLit returns an integer literal node.
func IntLit(n int64) Node { return Node{Kind: NodeInt, Int: n} }

// FloatLit returns a float literal node.
func FloatLit(f float64) Node { return Node{Kind: NodeFloat, Float: f} }

// BoolLit returns a boolean literal node.
func BoolLit(b bool) Node { return Node{Kind: NodeBool, Bool: b} }

// NullLit returns a null literal node.
func NullLit() Node { return Node{Kind: NodeNull} }

// Cast returns an explicit cast node.
func Cast(kind CastKind, inner Node) Node {
	return Node{Kind: NodeCast, Cast: kind, Inner: &inner}
}

// Chain returns an accessor-chain node.
func Chain(links ...Link) Node { return Node{Kind: NodeChain, Chain: links} }

// Prop returns a property-access link.
func Prop(name string) Link { return Link{Name: name} }

// OptProp returns an optional (skip-if-missing) property-access link.
func OptProp(name string) Link { return Link{Name: name, Optional: true} }

// Method returns a method-call link.
func Method(name string) Link { return Link{Name: name, Call: true} }

// DynamicLink returns a link with a runtime-computed name.
func DynamicLink() Link { return Link{Dynamic: true} }

// When returns a conditional-inclusion wrapper. value may be nil.
func When(kind, condition string, value *Node) Node {
	return Node{Kind: NodeWhen, Str: kind, Condition: condition, Inner: value}
}

// MergeOf returns a structural-merge node over object fragments.
func MergeOf(fragments ...Node) Node { return Node{Kind: NodeMerge, Items: fragments} }

// ClosureOf returns a closure-valued node.
func ClosureOf(body Node) Node { return Node{Kind: NodeClosure, Inner: &body} }

// Resource returns a typed-item constructor node naming another
// transformation type.
func Resource(name string) Node { return Node{Kind: NodeResource, Str: name} }

// ResourceCollection returns a typed-collection constructor node.
func ResourceCollection(name string) Node {
	return Node{Kind: NodeResource, Str: name, Collection: true}
}

// Paginated wraps an item node in a pagination call.
func Paginated(kind PaginationKind, item Node) Node {
	return Node{Kind: NodePagination, Pagination: kind, Inner: &item}
}

// Dynamic returns a dynamic-structure marker with an optional unconditional
// base.
func Dynamic(base *Node) Node { return Node{Kind: NodeDynamic, Inner: base} }

// Unknown returns an unclassified node carrying its printed text.
func Unknown(text string) Node { return Node{Kind: NodeUnknown, Str: text} }

// lastLink returns the final link of a chain, or a zero Link.
func lastLink(chain []Link) Link {
	if len(chain) == 0 {
		return Link{}
	}
	return chain[len(chain)-1]
}

// hasOptional reports whether any link uses the skip-if-missing operator.
func hasOptional(chain []Link) bool {
	for _, l := range chain {
		if l.Optional {
			return true
		}
	}
	return false
}

// hasDynamic reports whether any link has a runtime-computed name.
func hasDynamic(chain []Link) bool {
	for _, l := range chain {
		if l.Dynamic {
			return true
		}
	}
	return false
}

// chainFieldName returns the last literally named link, used by the
// field-name heuristics.
func chainFieldName(chain []Link) string {
	for i := len(chain) - 1; i >= 0; i-- {
		if !chain[i].Dynamic && chain[i].Name != "" {
			return chain[i].Name
		}
	}
	return ""
}

// baseResourceName strips namespace qualifiers from a transformation type
// name: "App\Http\Resources\UserResource" -> "UserResource".
func baseResourceName(name string) string {
	if idx := strings.LastIndexAny(name, `\/`); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

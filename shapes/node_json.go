package shapes

import (
	"encoding/json"
	"fmt"
)

// The wire form of a Node is a kind-discriminated JSON object mirroring the
// rules expression codec, so facts files can carry transformation trees:
//
//	{"kind": "object", "entries": [{"key": "id", "value": {"kind": "chain", ...}}]}
//	{"kind": "chain", "chain": [{"name": "created_at"}, {"name": "toISOString", "call": true}]}

var nodeKindToString = map[NodeKind]string{
	NodeObject:     "object",
	NodeList:       "list",
	NodeString:     "string",
	NodeInt:        "int",
	NodeFloat:      "float",
	NodeBool:       "bool",
	NodeNull:       "null",
	NodeCast:       "cast",
	NodeChain:      "chain",
	NodeWhen:       "when",
	NodeMerge:      "merge",
	NodeClosure:    "closure",
	NodeResource:   "resource",
	NodePagination: "pagination",
	NodeDynamic:    "dynamic",
	NodeUnknown:    "unknown",
}

var stringToNodeKind = func() map[string]NodeKind {
	m := make(map[string]NodeKind, len(nodeKindToString))
	for k, v := range nodeKindToString {
		m[v] = k
	}
	return m
}()

var castToString = map[CastKind]string{
	CastInt:    "int",
	CastFloat:  "float",
	CastBool:   "bool",
	CastString: "string",
	CastArray:  "array",
}

var stringToCast = func() map[string]CastKind {
	m := make(map[string]CastKind, len(castToString))
	for k, v := range castToString {
		m[v] = k
	}
	return m
}()

var paginationToString = map[PaginationKind]string{
	PaginationFull:   "full",
	PaginationSimple: "simple",
	PaginationCursor: "cursor",
}

var stringToPagination = func() map[string]PaginationKind {
	m := make(map[string]PaginationKind, len(paginationToString))
	for k, v := range paginationToString {
		m[v] = k
	}
	return m
}()

type nodeEnvelope struct {
	Kind       string          `json:"kind"`
	Value      json.RawMessage `json:"value,omitempty"`
	Name       string          `json:"name,omitempty"`
	Text       string          `json:"text,omitempty"`
	Wrapper    string          `json:"wrapper,omitempty"`
	Condition  string          `json:"condition,omitempty"`
	Closure    bool            `json:"closure,omitempty"`
	Collection bool            `json:"collection,omitempty"`
	Cast       string          `json:"cast,omitempty"`
	Pagination string          `json:"pagination,omitempty"`
	Entries    []entryEnvelope `json:"entries,omitempty"`
	Items      []Node          `json:"items,omitempty"`
	Inner      *Node           `json:"inner,omitempty"`
	Chain      []Link          `json:"chain,omitempty"`
}

type entryEnvelope struct {
	Key   string `json:"key"`
	Value Node   `json:"value"`
}

// MarshalJSON implements json.Marshaler for Link with lowercase keys.
func (l Link) MarshalJSON() ([]byte, error) {
	type wire struct {
		Name     string `json:"name,omitempty"`
		Call     bool   `json:"call,omitempty"`
		Optional bool   `json:"optional,omitempty"`
		Dynamic  bool   `json:"dynamic,omitempty"`
	}
	return json.Marshal(wire(l))
}

// UnmarshalJSON implements json.Unmarshaler for Link.
func (l *Link) UnmarshalJSON(data []byte) error {
	type wire struct {
		Name     string `json:"name,omitempty"`
		Call     bool   `json:"call,omitempty"`
		Optional bool   `json:"optional,omitempty"`
		Dynamic  bool   `json:"dynamic,omitempty"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*l = Link(w)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Node) MarshalJSON() ([]byte, error) {
	env := nodeEnvelope{
		Kind:      nodeKindToString[n.Kind],
		Items:     n.Items,
		Inner:     n.Inner,
		Chain:     n.Chain,
		Condition: n.Condition,
	}
	if env.Kind == "" {
		env.Kind = "unknown"
	}

	switch n.Kind {
	case NodeString:
		raw, err := json.Marshal(n.Str)
		if err != nil {
			return nil, err
		}
		env.Value = raw
	case NodeInt:
		raw, err := json.Marshal(n.Int)
		if err != nil {
			return nil, err
		}
		env.Value = raw
	case NodeFloat:
		raw, err := json.Marshal(n.Float)
		if err != nil {
			return nil, err
		}
		env.Value = raw
	case NodeBool:
		raw, err := json.Marshal(n.Bool)
		if err != nil {
			return nil, err
		}
		env.Value = raw
	case NodeWhen:
		env.Wrapper = n.Str
		env.Closure = n.Closure
	case NodeResource:
		env.Name = n.Str
		env.Collection = n.Collection
	case NodeCast:
		env.Cast = castToString[n.Cast]
	case NodePagination:
		env.Pagination = paginationToString[n.Pagination]
	case NodeUnknown:
		env.Text = n.Str
	}

	for _, e := range n.Entries {
		env.Entries = append(env.Entries, entryEnvelope{Key: e.Key, Value: e.Value})
	}
	return json.Marshal(env)
}

// UnmarshalJSON implements json.Unmarshaler. Unknown kinds decode as
// NodeUnknown rather than failing, per the degradation policy.
func (n *Node) UnmarshalJSON(data []byte) error {
	var env nodeEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	kind, ok := stringToNodeKind[env.Kind]
	if !ok {
		*n = Unknown(fmt.Sprintf("<unknown node kind %q>", env.Kind))
		return nil
	}

	out := Node{
		Kind:      kind,
		Items:     env.Items,
		Inner:     env.Inner,
		Chain:     env.Chain,
		Condition: env.Condition,
	}
	switch kind {
	case NodeString:
		if err := decodeLiteral(env.Value, &out.Str); err != nil {
			*n = Unknown(fmt.Sprintf("<malformed %s literal>", env.Kind))
			return nil
		}
	case NodeInt:
		if err := decodeLiteral(env.Value, &out.Int); err != nil {
			*n = Unknown(fmt.Sprintf("<malformed %s literal>", env.Kind))
			return nil
		}
	case NodeFloat:
		if err := decodeLiteral(env.Value, &out.Float); err != nil {
			*n = Unknown(fmt.Sprintf("<malformed %s literal>", env.Kind))
			return nil
		}
	case NodeBool:
		if err := decodeLiteral(env.Value, &out.Bool); err != nil {
			*n = Unknown(fmt.Sprintf("<malformed %s literal>", env.Kind))
			return nil
		}
	case NodeWhen:
		out.Str = env.Wrapper
		out.Closure = env.Closure
	case NodeResource:
		out.Str = env.Name
		out.Collection = env.Collection
	case NodeCast:
		if c, ok := stringToCast[env.Cast]; ok {
			out.Cast = c
		}
	case NodePagination:
		if p, ok := stringToPagination[env.Pagination]; ok {
			out.Pagination = p
		}
	case NodeUnknown:
		out.Str = env.Text
	}

	for _, e := range env.Entries {
		out.Entries = append(out.Entries, Entry{Key: e.Key, Value: e.Value})
	}
	*n = out
	return nil
}

// decodeLiteral decodes a scalar literal payload. A scalar node with no
// value field decodes as the zero literal.
func decodeLiteral(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

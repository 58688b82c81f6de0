package rules

import (
	"encoding/json"
	"fmt"
)

// The wire form of an Expr is a kind-discriminated JSON object, so recorded
// facts files and MCP tool inputs can carry rule sources:
//
//	{"kind": "string", "value": "required|max:255"}
//	{"kind": "builder", "name": "in", "items": [{"kind": "list", "items": [...]}]}
//	{"kind": "map", "entries": [{"key": "name", "value": {...}}]}

var kindToString = map[ExprKind]string{
	ExprString:  "string",
	ExprInt:     "int",
	ExprFloat:   "float",
	ExprBool:    "bool",
	ExprNull:    "null",
	ExprList:    "list",
	ExprMap:     "map",
	ExprBuilder: "builder",
	ExprNew:     "new",
	ExprClass:   "class",
	ExprVar:     "var",
	ExprMerge:   "merge",
	ExprConcat:  "concat",
	ExprCond:    "cond",
	ExprMatch:   "match",
	ExprCall:    "call",
	ExprRaw:     "raw",
}

var stringToKind = func() map[string]ExprKind {
	m := make(map[string]ExprKind, len(kindToString))
	for k, v := range kindToString {
		m[v] = k
	}
	return m
}()

type exprEnvelope struct {
	Kind    string          `json:"kind"`
	Value   json.RawMessage `json:"value,omitempty"`
	Name    string          `json:"name,omitempty"`
	Subject string          `json:"subject,omitempty"`
	Items   []Expr          `json:"items,omitempty"`
	Entries []pairEnvelope  `json:"entries,omitempty"`
	Chain   []chainEnvelope `json:"chain,omitempty"`
	Cases   []caseEnvelope  `json:"cases,omitempty"`
}

type pairEnvelope struct {
	Key   string `json:"key"`
	Value Expr   `json:"value"`
}

type chainEnvelope struct {
	Name string `json:"name"`
	Args []Expr `json:"args,omitempty"`
}

type caseEnvelope struct {
	When string `json:"when"`
	Body Expr   `json:"body"`
}

// MarshalJSON implements json.Marshaler.
func (e Expr) MarshalJSON() ([]byte, error) {
	env := exprEnvelope{Kind: kindToString[e.Kind]}
	if env.Kind == "" {
		env.Kind = "raw"
	}

	switch e.Kind {
	case ExprString:
		raw, err := json.Marshal(e.Str)
		if err != nil {
			return nil, err
		}
		env.Value = raw
	case ExprInt:
		raw, err := json.Marshal(e.Int)
		if err != nil {
			return nil, err
		}
		env.Value = raw
	case ExprFloat:
		raw, err := json.Marshal(e.Float)
		if err != nil {
			return nil, err
		}
		env.Value = raw
	case ExprBool:
		raw, err := json.Marshal(e.Bool)
		if err != nil {
			return nil, err
		}
		env.Value = raw
	case ExprNull:
		// kind alone is sufficient
	case ExprVar, ExprClass, ExprCall, ExprRaw:
		env.Name = e.Str
	case ExprBuilder, ExprNew:
		env.Name = e.Str
		env.Items = e.Items
	case ExprMatch:
		env.Subject = e.Str
	}

	if e.Kind != ExprBuilder && e.Kind != ExprNew {
		env.Items = e.Items
	}
	for _, p := range e.Pairs {
		env.Entries = append(env.Entries, pairEnvelope{Key: p.Key, Value: p.Value})
	}
	for _, c := range e.Chain {
		env.Chain = append(env.Chain, chainEnvelope{Name: c.Name, Args: c.Args})
	}
	for _, c := range e.Cases {
		env.Cases = append(env.Cases, caseEnvelope{When: c.When, Body: c.Body})
	}
	return json.Marshal(env)
}

// UnmarshalJSON implements json.Unmarshaler. Unknown kinds decode as ExprRaw
// rather than failing, per the degradation policy.
func (e *Expr) UnmarshalJSON(data []byte) error {
	var env exprEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	kind, ok := stringToKind[env.Kind]
	if !ok {
		*e = Raw(fmt.Sprintf("<unknown expression kind %q>", env.Kind))
		return nil
	}

	out := Expr{Kind: kind, Items: env.Items, Str: env.Name}
	switch kind {
	case ExprString:
		if err := decodeScalar(env.Value, &out.Str); err != nil {
			*e = Raw(fmt.Sprintf("<malformed %s literal>", env.Kind))
			return nil
		}
	case ExprInt:
		if err := decodeScalar(env.Value, &out.Int); err != nil {
			*e = Raw(fmt.Sprintf("<malformed %s literal>", env.Kind))
			return nil
		}
	case ExprFloat:
		if err := decodeScalar(env.Value, &out.Float); err != nil {
			*e = Raw(fmt.Sprintf("<malformed %s literal>", env.Kind))
			return nil
		}
	case ExprBool:
		if err := decodeScalar(env.Value, &out.Bool); err != nil {
			*e = Raw(fmt.Sprintf("<malformed %s literal>", env.Kind))
			return nil
		}
	case ExprMatch:
		out.Str = env.Subject
	}

	for _, p := range env.Entries {
		out.Pairs = append(out.Pairs, Pair{Key: p.Key, Value: p.Value})
	}
	for _, c := range env.Chain {
		out.Chain = append(out.Chain, ChainCall{Name: c.Name, Args: c.Args})
	}
	for _, c := range env.Cases {
		out.Cases = append(out.Cases, MatchCase{When: c.When, Body: c.Body})
	}
	*e = out
	return nil
}

// decodeScalar decodes a scalar literal payload. A scalar expression with no
// value field decodes as the zero literal.
func decodeScalar(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

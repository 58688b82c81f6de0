package shapes

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeDecodeFromFacts(t *testing.T) {
	raw := `{
		"kind": "object",
		"entries": [
			{"key": "id", "value": {"kind": "chain", "chain": [{"name": "id"}]}},
			{"key": "created_at", "value": {"kind": "chain", "chain": [
				{"name": "created_at", "optional": true},
				{"name": "toISOString", "call": true}
			]}},
			{"key": "author", "value": {"kind": "when", "wrapper": "whenLoaded",
				"condition": "author",
				"inner": {"kind": "resource", "name": "UserResource"}}}
		]
	}`
	var node Node
	require.NoError(t, json.Unmarshal([]byte(raw), &node))

	result := Analyze(node)
	created := result.Root.Get("created_at")
	require.NotNil(t, created)
	assert.Equal(t, "string", created.Type)
	assert.Equal(t, "date-time", created.Format)
	assert.True(t, created.Nullable)

	author := result.Root.Get("author")
	require.NotNil(t, author)
	assert.Equal(t, "author", author.RelationName)
	assert.Equal(t, "UserResource", author.SourceResourceName)
}

func TestNodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		node Node
	}{
		{"object of literals", Object(Field("a", IntLit(1)), Field("b", Text("x")))},
		{"list", ListOf(FloatLit(1.5), BoolLit(true), NullLit())},
		{"cast", Cast(CastArray, Chain(Prop("meta")))},
		{"conditional closure", func() Node {
			n := When("when", "$cond", nil)
			n.Closure = true
			return n
		}()},
		{"merge", MergeOf(Object(Field("id", IntLit(1))), Object(Field("x", Text("y"))))},
		{"paginated collection", Paginated(PaginationCursor, ResourceCollection("TagResource"))},
		{"dynamic with base", Dynamic(&Node{Kind: NodeObject, Entries: []Entry{Field("k", Text("v"))}})},
		{"unknown text", Unknown("helper()")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.node)
			require.NoError(t, err)
			var back Node
			require.NoError(t, json.Unmarshal(raw, &back))
			assert.Equal(t, tt.node, back)
		})
	}
}

func TestNodeScalarWithoutValueDecodesZero(t *testing.T) {
	tests := []struct {
		raw  string
		want Node
	}{
		{`{"kind": "string"}`, Text("")},
		{`{"kind": "int"}`, IntLit(0)},
		{`{"kind": "float"}`, FloatLit(0)},
		{`{"kind": "bool"}`, BoolLit(false)},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var node Node
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &node))
			assert.Equal(t, tt.want, node)
		})
	}
}

func TestNodeMalformedScalarValueDegrades(t *testing.T) {
	var node Node
	require.NoError(t, json.Unmarshal([]byte(`{"kind": "int", "value": "oops"}`), &node))
	assert.Equal(t, NodeUnknown, node.Kind)
	assert.Contains(t, node.Str, "int")
}

func TestNodeUnknownKindDegrades(t *testing.T) {
	var node Node
	require.NoError(t, json.Unmarshal([]byte(`{"kind": "spread"}`), &node))
	assert.Equal(t, NodeUnknown, node.Kind)
	assert.Contains(t, node.Str, "spread")
}

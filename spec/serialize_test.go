package spec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *Document {
	doc := &Document{
		OpenAPI: "3.0.3",
		Info:    &Info{Title: "API", Version: "1.0.0"},
		Paths: Paths{
			"/users/{id}": &PathItem{
				Get: &Operation{
					OperationID: "getUsersById",
					Responses: Responses{
						"200": &Response{Description: "Successful response"},
					},
				},
			},
		},
	}
	doc.AddSchema("User", &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"id":   {Type: "integer"},
			"name": {Type: "string"},
		},
		Required: []string{"id", "name"},
	})
	return doc
}

func TestToJSONDeterministic(t *testing.T) {
	first, err := ToJSON(sampleDocument())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := ToJSON(sampleDocument())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestToJSONEmptyPathsSerialized(t *testing.T) {
	doc := &Document{
		OpenAPI: "3.0.3",
		Info:    &Info{Title: "API", Version: "1.0.0"},
		Paths:   Paths{},
	}
	raw, err := ToJSON(doc)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	paths, ok := decoded["paths"]
	require.True(t, ok, "empty paths map must still serialize")
	assert.Equal(t, map[string]any{}, paths)
}

func TestToJSONNilPathsOmitted(t *testing.T) {
	doc := &Document{
		OpenAPI:  "3.1.0",
		Info:     &Info{Title: "API", Version: "1.0.0"},
		Webhooks: map[string]*PathItem{},
	}
	raw, err := ToJSON(doc)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	_, hasPaths := decoded["paths"]
	assert.False(t, hasPaths)
	webhooks, hasWebhooks := decoded["webhooks"]
	require.True(t, hasWebhooks, "empty webhooks map must still serialize")
	assert.Equal(t, map[string]any{}, webhooks)
}

func TestToJSONIndentNoHTMLEscaping(t *testing.T) {
	doc := sampleDocument()
	doc.Info.Description = "a < b && b > c"
	raw, err := ToJSONIndent(doc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "a < b && b > c")
}

func TestToYAMLRoundTripsCoreFields(t *testing.T) {
	raw, err := ToYAML(sampleDocument())
	require.NoError(t, err)

	s := string(raw)
	assert.Contains(t, s, "openapi: 3.0.3")
	assert.Contains(t, s, "title: API")
	assert.Contains(t, s, "/users/{id}:")
	assert.Contains(t, s, "operationId: getUsersById")
}

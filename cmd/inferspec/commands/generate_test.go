package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFacts = `{
	"operations": [
		{
			"route": {
				"pathTemplate": "/users/{id}",
				"httpMethods": ["get"],
				"handlerBinding": {"class": "App\\Http\\Controllers\\UserController", "method": "show"}
			},
			"response": {
				"kind": "object",
				"entries": [
					{"key": "id", "value": {"kind": "int"}},
					{"key": "name", "value": {"kind": "string"}}
				]
			}
		}
	]
}`

func writeFacts(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "facts.json")
	require.NoError(t, os.WriteFile(path, []byte(testFacts), 0o600))
	return path
}

func TestHandleGenerate_WritesJSONDocument(t *testing.T) {
	factsPath := writeFacts(t)
	outPath := filepath.Join(t.TempDir(), "openapi.json")

	err := HandleGenerate([]string{"-q", "-o", outPath, factsPath})
	require.NoError(t, err)

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])
	assert.Contains(t, doc["paths"].(map[string]any), "/users/{id}")
}

func TestHandleGenerate_YAMLInferredFromExtension(t *testing.T) {
	factsPath := writeFacts(t)
	outPath := filepath.Join(t.TempDir(), "openapi.yaml")

	err := HandleGenerate([]string{"-q", "-t", "3.1", "-o", outPath, factsPath})
	require.NoError(t, err)

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "openapi: 3.1.0")
}

func TestHandleGenerate_InfoOverrides(t *testing.T) {
	factsPath := writeFacts(t)
	outPath := filepath.Join(t.TempDir(), "openapi.json")

	err := HandleGenerate([]string{"-q", "-title", "Users API", "-api-version", "2.4.0", "-o", outPath, factsPath})
	require.NoError(t, err)

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	info := doc["info"].(map[string]any)
	assert.Equal(t, "Users API", info["title"])
	assert.Equal(t, "2.4.0", info["version"])
}

func TestHandleGenerate_BadVersion(t *testing.T) {
	err := HandleGenerate([]string{"-t", "2.0", writeFacts(t)})
	assert.Error(t, err)
}

func TestHandleGenerate_BadFormat(t *testing.T) {
	err := HandleGenerate([]string{"-format", "xml", writeFacts(t)})
	assert.Error(t, err)
}

func TestHandleGenerate_MalformedFacts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facts.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"operations": 7}`), 0o600))

	err := HandleGenerate([]string{"-q", path})
	assert.Error(t, err)
}

func TestHandleGenerate_MissingArgument(t *testing.T) {
	err := HandleGenerate(nil)
	assert.Error(t, err)
}

package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDoc = `{
	"openapi": "3.0.3",
	"info": {"title": "API", "version": "1.0.0"},
	"paths": {
		"/health": {
			"get": {
				"operationId": "getHealth",
				"responses": {"204": {"description": "No content"}}
			}
		}
	}
}`

func TestCheckTool_ValidDocument(t *testing.T) {
	input := checkInput{
		Document: docInput{Content: testDoc},
	}
	result, output, err := handleCheck(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.True(t, output.Valid)
	assert.Equal(t, "3.0.3", output.Version)
	assert.Equal(t, output.Total, output.Passed+output.Failed+output.Skipped)
	assert.Empty(t, output.Failures)
}

func TestCheckTool_SniffsVersion(t *testing.T) {
	input := checkInput{
		Document: docInput{Content: `{"openapi": "3.0.9", "info": {"title": "API", "version": "1"}, "paths": {}}`},
	}
	result, output, err := handleCheck(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)
	// Unlisted patch releases fall back to the line's base version.
	assert.Equal(t, "3.0.0", output.Version)
}

func TestCheckTool_FailingDocument(t *testing.T) {
	input := checkInput{
		Document: docInput{Content: `{"openapi": "3.0.3", "paths": {}}`},
	}
	result, output, err := handleCheck(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.False(t, output.Valid)
	assert.NotEmpty(t, output.Failures)
}

func TestCheckTool_MetaSchemaVerdict(t *testing.T) {
	schema := `{"type": "object", "required": ["servers"]}`
	input := checkInput{
		Document:   docInput{Content: testDoc},
		MetaSchema: &docInput{Content: schema},
	}
	result, output, err := handleCheck(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.False(t, output.Valid)
	found := false
	for _, c := range output.Checks {
		if c.ID == "RQ-OAS-001" {
			found = true
			assert.Equal(t, "fail", c.Status)
		}
	}
	assert.True(t, found)
}

func TestCheckTool_MissingVersion(t *testing.T) {
	input := checkInput{
		Document: docInput{Content: `{"info": {"title": "API"}}`},
	}
	result, _, err := handleCheck(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

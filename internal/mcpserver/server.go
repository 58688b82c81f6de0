// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes inferspec capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/inferspec/inferspec"
)

const serverInstructions = `inferspec MCP server — synthesizes and checks OpenAPI documents from statically gathered service facts.

Tools:
- generate: turn a JSON facts file (routes, validation-rule expressions, transformation trees) into an OpenAPI 3.0.x or 3.1.x document. Nothing is executed; expressions that cannot be statically reduced surface as in-band markers, never as guesses.
- check: run the structural requirement report against a serialized OpenAPI document.

Configuration: defaults are configurable via INFERSPEC_* environment variables set in your MCP client config.

Key settings:
- INFERSPEC_DEFAULT_VERSION (default: 3.0.3) — target version when generate input omits one
- INFERSPEC_WORKERS (default: 0, one per CPU) — assembler worker-pool size
- INFERSPEC_FAIL_FAST (default: false) — abort generation on the first error-severity issue
- INFERSPEC_MAX_INLINE_SIZE (default: 10MiB) — inline content size cap`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "inferspec", Version: inferspec.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate an OpenAPI document from a JSON facts file describing routes, validation rules, and response transformation trees. Set version to 3.0/3.1 (or an exact release like 3.1.0) and format to json or yaml. Returns the serialized document plus every analysis issue with its severity and context.",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check",
		Description: "Run the structural requirement report against a serialized OpenAPI document (JSON). Each check reports pass, fail, or skip; version-specific checks are skipped rather than silently passed. Pass a meta_schema to also fold a JSON-Schema conformance verdict into the report.",
	}, handleCheck)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

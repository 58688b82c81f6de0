package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/inferspec/inferspec/assemble"
	"github.com/inferspec/inferspec/internal/issues"
	"github.com/inferspec/inferspec/spec"
)

type generateInput struct {
	Facts    docInput `json:"facts"              jsonschema:"The JSON facts file: operations (routes, rules, response trees) and shared resources"`
	Version  string   `json:"version,omitempty"  jsonschema:"Target OpenAPI version: 3.0, 3.1, or an exact release like 3.1.0 (default from INFERSPEC_DEFAULT_VERSION)"`
	Format   string   `json:"format,omitempty"   jsonschema:"Output format: json (default) or yaml"`
	Title    string   `json:"title,omitempty"    jsonschema:"Document info.title override"`
	APIVer   string   `json:"api_version,omitempty" jsonschema:"Document info.version override"`
	FailFast *bool    `json:"fail_fast,omitempty" jsonschema:"Abort on the first error-severity issue"`
}

type generateIssue struct {
	Severity string `json:"severity"`
	Context  string `json:"context"`
	Path     string `json:"path,omitempty"`
	Message  string `json:"message"`
}

type generateOutput struct {
	Document   string          `json:"document"`
	Format     string          `json:"format"`
	Version    string          `json:"version"`
	IssueCount int             `json:"issue_count"`
	Issues     []generateIssue `json:"issues,omitempty"`
}

func handleGenerate(ctx context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	raw, err := input.Facts.resolve()
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}
	var facts assemble.Input
	if err := json.Unmarshal(raw, &facts); err != nil {
		return errResult(fmt.Errorf("decoding facts: %w", err)), generateOutput{}, nil
	}

	version, err := resolveVersion(input.Version, cfg.DefaultVersion)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}
	format := input.Format
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "yaml" {
		return errResult(fmt.Errorf("invalid format %q; valid values: json, yaml", input.Format)), generateOutput{}, nil
	}
	failFast := cfg.FailFast
	if input.FailFast != nil {
		failFast = *input.FailFast
	}

	collector := issues.NewCollector(failFast)
	opts := []assemble.Option{
		assemble.WithVersion(version),
		assemble.WithCollector(collector),
	}
	if cfg.Workers > 0 {
		opts = append(opts, assemble.WithWorkers(cfg.Workers))
	}
	if input.Title != "" || input.APIVer != "" {
		info := &spec.Info{Title: input.Title, Version: input.APIVer}
		if info.Title == "" {
			info.Title = "API"
		}
		if info.Version == "" {
			info.Version = "0.0.0"
		}
		opts = append(opts, assemble.WithInfo(info))
	}

	assembler, err := assemble.New(opts...)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}
	doc, err := assembler.Assemble(ctx, facts)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	var serialized []byte
	if format == "yaml" {
		serialized, err = spec.ToYAML(doc)
	} else {
		serialized, err = spec.ToJSONIndent(doc)
	}
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		Document: string(serialized),
		Format:   format,
		Version:  version.String(),
	}
	for _, issue := range collector.Issues() {
		output.Issues = append(output.Issues, generateIssue{
			Severity: issue.Severity.String(),
			Context:  issue.Context,
			Path:     issue.Path,
			Message:  issue.Message,
		})
	}
	output.IssueCount = len(output.Issues)
	return nil, output, nil
}

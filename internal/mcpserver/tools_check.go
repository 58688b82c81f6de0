package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/inferspec/inferspec/requirements"
	"github.com/inferspec/inferspec/spec"
)

type checkInput struct {
	Document   docInput  `json:"document"              jsonschema:"The serialized OpenAPI document (JSON) to check"`
	Version    string    `json:"version,omitempty"     jsonschema:"Target version the document claims; default is sniffed from its openapi field"`
	MetaSchema *docInput `json:"meta_schema,omitempty" jsonschema:"Optional JSON-Schema meta-schema; when set, a conformance verdict is folded into the report"`
}

type checkResultOutput struct {
	ID          string   `json:"id"`
	Status      string   `json:"status"`
	Description string   `json:"description"`
	Violations  []string `json:"violations,omitempty"`
}

type checkOutput struct {
	Valid    bool                `json:"valid"`
	Version  string              `json:"version"`
	Total    int                 `json:"total"`
	Passed   int                 `json:"passed"`
	Failed   int                 `json:"failed"`
	Skipped  int                 `json:"skipped"`
	Checks   []checkResultOutput `json:"checks"`
	Failures []string            `json:"failures,omitempty"`
}

func handleCheck(_ context.Context, _ *mcp.CallToolRequest, input checkInput) (*mcp.CallToolResult, checkOutput, error) {
	raw, err := input.Document.resolve()
	if err != nil {
		return errResult(err), checkOutput{}, nil
	}

	var version spec.Version
	if input.Version != "" {
		version, err = resolveVersion(input.Version, spec.VersionUnknown)
	} else {
		version, err = sniffVersion(raw)
	}
	if err != nil {
		return errResult(err), checkOutput{}, nil
	}

	var verdict *requirements.Verdict
	if input.MetaSchema != nil {
		schemaRaw, err := input.MetaSchema.resolve()
		if err != nil {
			return errResult(err), checkOutput{}, nil
		}
		verdict, err = requirements.Conform(schemaRaw, raw)
		if err != nil {
			return errResult(err), checkOutput{}, nil
		}
	}

	report, err := requirements.Check(nil, raw, version, verdict)
	if err != nil {
		return errResult(err), checkOutput{}, nil
	}

	output := checkOutput{
		Valid:    report.Valid(),
		Version:  version.String(),
		Total:    report.Summary.Total,
		Passed:   report.Summary.Passed,
		Failed:   report.Summary.Failed,
		Skipped:  report.Summary.Skipped,
		Failures: report.Failures,
	}
	output.Checks = make([]checkResultOutput, 0, len(report.Checks))
	for _, r := range report.Checks {
		output.Checks = append(output.Checks, checkResultOutput{
			ID:          r.ID,
			Status:      string(r.Status),
			Description: r.Description,
			Violations:  r.Violations,
		})
	}
	return nil, output, nil
}

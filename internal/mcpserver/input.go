package mcpserver

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/inferspec/inferspec/spec"
)

// docInput represents the two ways a JSON document can be provided to a tool.
// Exactly one of File or Content must be set.
type docInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a JSON file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline JSON content"`
}

// resolve returns the raw document bytes from whichever input was provided.
func (d docInput) resolve() ([]byte, error) {
	switch {
	case d.File != "" && d.Content != "":
		return nil, fmt.Errorf("only one of file or content may be provided")
	case d.File != "":
		raw, err := os.ReadFile(d.File)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", d.File, err)
		}
		return raw, nil
	case d.Content != "":
		if int64(len(d.Content)) > cfg.MaxInlineSize {
			return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set INFERSPEC_MAX_INLINE_SIZE to increase",
				len(d.Content), cfg.MaxInlineSize)
		}
		return []byte(d.Content), nil
	default:
		return nil, fmt.Errorf("one of file or content must be provided")
	}
}

// resolveVersion maps a tool-input version string to a target version. An
// empty string returns the fallback; a bare major.minor pair selects that
// line's base release.
func resolveVersion(s string, fallback spec.Version) (spec.Version, error) {
	switch s {
	case "":
		return fallback, nil
	case "3.0":
		return spec.Version300, nil
	case "3.1":
		return spec.Version310, nil
	}
	return spec.ParseVersion(s)
}

// sniffVersion infers the target version from a serialized document's
// openapi field.
func sniffVersion(raw []byte) (spec.Version, error) {
	var probe struct {
		OpenAPI string `json:"openapi"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return spec.VersionUnknown, fmt.Errorf("decoding document: %w", err)
	}
	if probe.OpenAPI == "" {
		return spec.VersionUnknown, fmt.Errorf("document has no openapi field; pass version explicitly")
	}
	if v, err := spec.ParseVersion(probe.OpenAPI); err == nil {
		return v, nil
	}
	switch {
	case strings.HasPrefix(probe.OpenAPI, "3.0."):
		return spec.Version300, nil
	case strings.HasPrefix(probe.OpenAPI, "3.1."):
		return spec.Version310, nil
	}
	return spec.VersionUnknown, fmt.Errorf("unsupported openapi version %q", probe.OpenAPI)
}

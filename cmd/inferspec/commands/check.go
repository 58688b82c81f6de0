package commands

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/inferspec/inferspec"
	"github.com/inferspec/inferspec/requirements"
	"github.com/inferspec/inferspec/spec"
)

// CheckFlags contains flags for the check command
type CheckFlags struct {
	Target     string
	MetaSchema string
	Format     string
	Quiet      bool
}

// SetupCheckFlags creates and configures a FlagSet for the check command.
// Returns the FlagSet and a CheckFlags struct with bound flag variables.
func SetupCheckFlags() (*flag.FlagSet, *CheckFlags) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	flags := &CheckFlags{}

	fs.StringVar(&flags.Target, "target", "", "version to check against (default: the document's openapi field)")
	fs.StringVar(&flags.Target, "t", "", "version to check against (default: the document's openapi field)")
	fs.StringVar(&flags.MetaSchema, "meta-schema", "", "JSON-Schema meta-schema file; folds a conformance verdict into the report")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output failures, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output failures, no diagnostic messages")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: inferspec check [flags] <file|->\n\n")
		Writef(fs.Output(), "Run the structural requirement report against a serialized OpenAPI document (JSON).\n")
		Writef(fs.Output(), "Each check reports pass, fail, or skip; version-specific checks are skipped\n")
		Writef(fs.Output(), "rather than silently passed.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  inferspec check openapi.json\n")
		Writef(fs.Output(), "  inferspec check --meta-schema oas-3.0-schema.json openapi.json\n")
		Writef(fs.Output(), "  inferspec generate facts.json | inferspec check -q -\n")
		Writef(fs.Output(), "  inferspec check --format json openapi.json | jq '.summary'\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    All applicable checks passed\n")
		Writef(fs.Output(), "  1    At least one check failed\n")
	}

	return fs, flags
}

// HandleCheck executes the check command
func HandleCheck(args []string) error {
	fs, flags := SetupCheckFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("check command requires exactly one file path or '-' for stdin")
	}
	docPath := fs.Arg(0)

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	raw, err := ReadInput(docPath)
	if err != nil {
		return err
	}

	var version spec.Version
	if flags.Target != "" {
		version, err = ParseTargetVersion(flags.Target)
	} else {
		version, err = sniffDocumentVersion(raw)
	}
	if err != nil {
		return err
	}

	var verdict *requirements.Verdict
	if flags.MetaSchema != "" {
		schemaRaw, err := os.ReadFile(flags.MetaSchema)
		if err != nil {
			return fmt.Errorf("reading meta-schema: %w", err)
		}
		verdict, err = requirements.Conform(schemaRaw, raw)
		if err != nil {
			return err
		}
	}

	report, err := requirements.Check(nil, raw, version, verdict)
	if err != nil {
		return err
	}

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		if err := OutputStructured(report, flags.Format); err != nil {
			return err
		}
		if !report.Valid() {
			os.Exit(1)
		}
		return nil
	}

	if !flags.Quiet {
		Writef(os.Stderr, "OpenAPI Requirement Report\n")
		Writef(os.Stderr, "==========================\n\n")
		Writef(os.Stderr, "inferspec version: %s\n", inferspec.Version())
		Writef(os.Stderr, "Document: %s\n", FormatSpecPath(docPath))
		Writef(os.Stderr, "Checked Version: %s\n\n", version.String())

		for _, c := range report.Checks {
			Writef(os.Stderr, "  %-4s %-12s %s\n", c.Status, c.ID, c.Description)
		}
		Writef(os.Stderr, "\n")
	}

	for _, failure := range report.Failures {
		Writef(os.Stderr, "  %s\n", failure)
	}

	if !flags.Quiet {
		s := report.Summary
		if report.Valid() {
			Writef(os.Stderr, "\n✓ %d passed, %d skipped\n", s.Passed, s.Skipped)
		} else {
			Writef(os.Stderr, "\n✗ %d failed, %d passed, %d skipped\n", s.Failed, s.Passed, s.Skipped)
		}
	}

	if !report.Valid() {
		os.Exit(1)
	}
	return nil
}

// sniffDocumentVersion infers the check version from the document's openapi
// field. Unlisted patch releases fall back to the line's base release.
func sniffDocumentVersion(raw []byte) (spec.Version, error) {
	var probe struct {
		OpenAPI string `json:"openapi"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return spec.VersionUnknown, fmt.Errorf("decoding document: %w", err)
	}
	if probe.OpenAPI == "" {
		return spec.VersionUnknown, fmt.Errorf("document has no openapi field; pass --target explicitly")
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

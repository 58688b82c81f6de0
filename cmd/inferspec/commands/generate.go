package commands

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/inferspec/inferspec/assemble"
	"github.com/inferspec/inferspec/internal/issues"
	"github.com/inferspec/inferspec/internal/severity"
	"github.com/inferspec/inferspec/spec"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Output     string
	Target     string
	Format     string
	Title      string
	APIVersion string
	Workers    int
	FailFast   bool
	Quiet      bool
	Verbose    bool
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
// Returns the FlagSet and a GenerateFlags struct with bound flag variables.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Target, "target", "3.0.3", "target OpenAPI version: 3.0, 3.1, or an exact release like 3.1.0")
	fs.StringVar(&flags.Target, "t", "3.0.3", "target OpenAPI version: 3.0, 3.1, or an exact release like 3.1.0")
	fs.StringVar(&flags.Format, "format", "", "output format: json or yaml (default: inferred from output extension, else json)")
	fs.StringVar(&flags.Title, "title", "", "document info.title override")
	fs.StringVar(&flags.APIVersion, "api-version", "", "document info.version override")
	fs.IntVar(&flags.Workers, "workers", 0, "assembler worker count (0 = one per CPU)")
	fs.BoolVar(&flags.FailFast, "fail-fast", false, "abort on the first error-severity issue")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: suppress diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: suppress diagnostic messages")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose mode: log assembly progress to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "verbose mode: log assembly progress to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: inferspec generate [flags] <facts-file|->\n\n")
		Writef(fs.Output(), "Generate an OpenAPI document from a JSON facts file describing routes,\n")
		Writef(fs.Output(), "validation-rule expressions, and response transformation trees.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  inferspec generate facts.json\n")
		Writef(fs.Output(), "  inferspec generate -t 3.1 -o openapi.yaml facts.json\n")
		Writef(fs.Output(), "  cat facts.json | inferspec generate -q -\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Document generated\n")
		Writef(fs.Output(), "  1    Generation failed\n")
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	fs, flags := SetupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one facts-file path or '-' for stdin")
	}
	factsPath := fs.Arg(0)

	version, err := ParseTargetVersion(flags.Target)
	if err != nil {
		return err
	}
	format := flags.Format
	if format == "" {
		format = FormatJSON
		if strings.HasSuffix(flags.Output, ".yaml") || strings.HasSuffix(flags.Output, ".yml") {
			format = FormatYAML
		}
	}
	if format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", flags.Format, FormatJSON, FormatYAML)
	}

	raw, err := ReadInput(factsPath)
	if err != nil {
		return err
	}
	var facts assemble.Input
	if err := json.Unmarshal(raw, &facts); err != nil {
		return fmt.Errorf("decoding facts: %w", err)
	}

	collector := issues.NewCollector(flags.FailFast)
	opts := []assemble.Option{
		assemble.WithVersion(version),
		assemble.WithCollector(collector),
	}
	if flags.Workers > 0 {
		opts = append(opts, assemble.WithWorkers(flags.Workers))
	}
	if flags.FailFast {
		opts = append(opts, assemble.WithFailFast())
	}
	if flags.Title != "" || flags.APIVersion != "" {
		info := &spec.Info{Title: flags.Title, Version: flags.APIVersion}
		if info.Title == "" {
			info.Title = "API"
		}
		if info.Version == "" {
			info.Version = "0.0.0"
		}
		opts = append(opts, assemble.WithInfo(info))
	}
	if flags.Verbose {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, assemble.WithLogger(assemble.NewSlogAdapter(slog.New(handler))))
	}

	assembler, err := assemble.New(opts...)
	if err != nil {
		return err
	}
	doc, err := assembler.Assemble(context.Background(), facts)

	if !flags.Quiet {
		printIssues(collector)
	}
	if err != nil {
		return fmt.Errorf("assembling document: %w", err)
	}

	var serialized []byte
	if format == FormatYAML {
		serialized, err = spec.ToYAML(doc)
	} else {
		serialized, err = spec.ToJSONIndent(doc)
	}
	if err != nil {
		return fmt.Errorf("serializing document: %w", err)
	}

	if flags.Output == "" {
		fmt.Println(string(serialized))
		return nil
	}
	cleaned := filepath.Clean(flags.Output)
	if err := RejectSymlinkOutput(cleaned); err != nil {
		return err
	}
	if err := os.WriteFile(cleaned, serialized, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", cleaned, err)
	}
	if !flags.Quiet {
		Writef(os.Stderr, "Wrote %s document to %s\n", version.String(), cleaned)
	}
	return nil
}

// printIssues writes collected analysis issues to stderr, most severe first.
func printIssues(collector *issues.Collector) {
	all := collector.Issues()
	if len(all) == 0 {
		return
	}
	Writef(os.Stderr, "Issues (%d):\n", len(all))
	order := []severity.Severity{
		severity.SeverityCritical,
		severity.SeverityError,
		severity.SeverityWarning,
		severity.SeverityInfo,
	}
	for _, sev := range order {
		for _, issue := range all {
			if issue.Severity == sev {
				Writef(os.Stderr, "  %s\n", issue.String())
			}
		}
	}
	Writef(os.Stderr, "\n")
}

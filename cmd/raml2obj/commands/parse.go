package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/raml2obj/internal/cliutil"
	"github.com/erraggy/raml2obj/walker"
)

// ParseFlags contains flags for the parse command
type ParseFlags struct {
	CommonFlags
}

// SetupParseFlags creates and configures a FlagSet for the parse command.
// Returns the FlagSet and a ParseFlags struct with bound flag variables.
func SetupParseFlags() (*flag.FlagSet, *ParseFlags) {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	flags := &ParseFlags{}
	flags.register(fs, FormatJSON)

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: raml2obj parse [flags] <file|url|->\n\n")
		Writef(output, "Load a RAML 1.0 document and output the enriched documentation tree.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  raml2obj parse api.raml\n")
		Writef(output, "  raml2obj parse --format yaml -o api.yaml api.raml\n")
		Writef(output, "  raml2obj parse --normalize-types https://example.com/api.raml\n")
		Writef(output, "  cat api.raml | raml2obj parse -q -\n")
		Writef(output, "\nConfiguration:\n")
		Writef(output, "  --config names a TOML file whose keys (format, normalize_types, strict_ids,\n")
		Writef(output, "  log_level, user_agent, max_include_depth) set defaults for unset flags.\n")
		Writef(output, "\nExit Codes:\n")
		Writef(output, "  0    Document loaded and enriched\n")
		Writef(output, "  1    Loading or enrichment failed\n")
	}

	return fs, flags
}

// HandleParse executes the parse command
func HandleParse(args []string) error {
	fs, flags := SetupParseFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("parse command requires exactly one file path, URL, or '-' for stdin")
	}
	if err := flags.applyDefaults(fs); err != nil {
		return err
	}
	if flags.Format == FormatText {
		return fmt.Errorf("parse command supports formats %s and %s", FormatJSON, FormatYAML)
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	specPath := fs.Arg(0)
	result, err := flags.load(context.Background(), specPath)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", FormatSpecPath(specPath), err)
	}

	if !flags.Quiet {
		cliutil.Heading(os.Stderr, "RAML Documentation Tree")
		OutputSourceHeader(specPath, result.Document.Title)
		Writef(os.Stderr, "Source Size: %s\n", FormatBytes(result.SourceSize))
		if resources, err := walker.CollectResources(result.Document); err == nil {
			Writef(os.Stderr, "Resources: %d\n", len(resources.All))
		}
		Writef(os.Stderr, "Diagnostics: %d (%d errors)\n", len(result.Diagnostics), len(result.Errors()))
		Writef(os.Stderr, "Load Time: %v\n\n", result.LoadTime)
	}

	data, err := MarshalStructured(result.Document, flags.Format)
	if err != nil {
		return err
	}
	return writeOutput(flags.Output, specPath, data)
}

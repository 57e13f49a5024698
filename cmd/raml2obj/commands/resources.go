package commands

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/erraggy/raml2obj/raml"
	"github.com/erraggy/raml2obj/walker"
)

// ResourcesFlags contains flags for the resources command
type ResourcesFlags struct {
	CommonFlags
	Method string
}

// ResourceLine is one row of the resources listing.
type ResourceLine struct {
	UniqueID      string   `json:"uniqueId"`
	Path          string   `json:"path"`
	Methods       []string `json:"methods,omitempty"`
	URIParameters []string `json:"uriParameters,omitempty"`
}

// SetupResourcesFlags creates and configures a FlagSet for the resources command.
func SetupResourcesFlags() (*flag.FlagSet, *ResourcesFlags) {
	fs := flag.NewFlagSet("resources", flag.ContinueOnError)
	flags := &ResourcesFlags{}
	flags.register(fs, FormatText)
	fs.StringVar(&flags.Method, "method", "", "only list resources that declare this HTTP method")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: raml2obj resources [flags] <file|url|->\n\n")
		Writef(output, "List every resource with its unique identifier, full path, methods\n")
		Writef(output, "and inherited URI parameter names.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  raml2obj resources api.raml\n")
		Writef(output, "  raml2obj resources --method post api.raml\n")
		Writef(output, "  raml2obj resources --format json api.raml\n")
	}

	return fs, flags
}

// HandleResources executes the resources command
func HandleResources(args []string) error {
	fs, flags := SetupResourcesFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("resources command requires exactly one file path, URL, or '-' for stdin")
	}
	if err := flags.applyDefaults(fs); err != nil {
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	specPath := fs.Arg(0)
	result, err := flags.load(context.Background(), specPath)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", FormatSpecPath(specPath), err)
	}

	lines, err := ListResources(result.Document, flags.Method)
	if err != nil {
		return err
	}

	if !flags.Quiet {
		OutputSourceHeader(specPath, result.Document.Title)
		Writef(os.Stderr, "Resources: %d\n\n", len(lines))
	}

	var data []byte
	if flags.Format == FormatText {
		data = renderResourceLines(lines)
	} else {
		data, err = MarshalStructured(lines, flags.Format)
		if err != nil {
			return err
		}
	}
	return writeOutput(flags.Output, specPath, data)
}

// ListResources collects one line per resource in document order. When
// method is set, only resources declaring that method are listed.
func ListResources(doc *raml.Document, method string) ([]ResourceLine, error) {
	collector, err := walker.CollectResources(doc)
	if err != nil {
		return nil, err
	}
	method = strings.ToLower(method)

	lines := make([]ResourceLine, 0, len(collector.All))
	for _, info := range collector.All {
		if method != "" && info.Resource.Method(method) == nil {
			continue
		}
		lines = append(lines, ResourceLine{
			UniqueID:      info.Resource.UniqueID,
			Path:          info.FullPath,
			Methods:       info.Methods,
			URIParameters: uriParameterNames(info.Resource.AllURIParameters),
		})
	}
	return lines, nil
}

func uriParameterNames(params []any) []string {
	var names []string
	for _, p := range params {
		obj, ok := raml.AsObject(p)
		if !ok {
			continue
		}
		if name, ok := obj.Get("name"); ok {
			names = append(names, fmt.Sprint(name))
		}
	}
	return names
}

func renderResourceLines(lines []ResourceLine) []byte {
	var buf bytes.Buffer
	for _, l := range lines {
		methods := "-"
		if len(l.Methods) > 0 {
			methods = strings.ToUpper(strings.Join(l.Methods, ","))
		}
		params := "-"
		if len(l.URIParameters) > 0 {
			params = strings.Join(l.URIParameters, ",")
		}
		Writef(&buf, "%s\t%s\t%s\t%s\n", l.UniqueID, l.Path, methods, params)
	}
	return buf.Bytes()
}

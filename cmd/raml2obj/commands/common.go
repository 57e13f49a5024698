// Package commands provides CLI command handlers for raml2obj.
package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/erraggy/raml2obj"
	"github.com/erraggy/raml2obj/internal/cliutil"
	"github.com/erraggy/raml2obj/internal/fileutil"
	"go.yaml.in/yaml/v4"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// MarshalStructured marshals data as indented JSON or as block-style YAML.
//
// YAML is produced from the JSON encoding so that ordered RAML objects keep
// their key order.
func MarshalStructured(data any, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling to %s: %w", format, err)
		}
		return out, nil
	case FormatYAML:
		out, err := jsonToYAML(data)
		if err != nil {
			return nil, fmt.Errorf("marshaling to %s: %w", format, err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("invalid format for structured output: %s", format)
	}
}

func jsonToYAML(data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, err
	}
	clearStyle(&node)
	return yaml.Marshal(&node)
}

// clearStyle drops the flow and quoting styles the JSON input carried.
func clearStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		clearStyle(child)
	}
}

// ValidateOutputPath checks if the output path is safe to write to.
func ValidateOutputPath(outputPath string, inputPaths []string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	for _, inputPath := range inputPaths {
		if inputPath == StdinFilePath {
			continue
		}
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}

		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}

	return RejectSymlinkOutput(filepath.Clean(outputPath))
}

// RejectSymlinkOutput checks if the output path is a symlink and returns an error if so.
func RejectSymlinkOutput(cleanedPath string) error {
	info, err := os.Lstat(cleanedPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", cleanedPath)
	}
	return nil
}

// writeOutput writes data to outputPath, or to stdout when outputPath is empty.
func writeOutput(outputPath string, inputPath string, data []byte) error {
	if outputPath == "" {
		Writef(os.Stdout, "%s\n", bytes.TrimRight(data, "\n"))
		return nil
	}
	if err := ValidateOutputPath(outputPath, []string{inputPath}); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, data, fileutil.OwnerReadWrite); err != nil {
		return fmt.Errorf("commands: writing output file: %w", err)
	}
	return nil
}

// FormatSpecPath returns a display-friendly path for the document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// FormatBytes formats a byte count into a human-readable string using binary units (KiB, MiB, etc.)
func FormatBytes(size int64) string {
	if size < 0 {
		return fmt.Sprintf("%d B", size)
	}

	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// OutputSourceHeader writes the common source header to stderr.
func OutputSourceHeader(specPath, title string) {
	Writef(os.Stderr, "raml2obj version: %s\n", raml2obj.Version())
	Writef(os.Stderr, "Source: %s\n", FormatSpecPath(specPath))
	Writef(os.Stderr, "Title: %s\n", title)
}

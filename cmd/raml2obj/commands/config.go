package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/erraggy/raml2obj/enricher"
	"github.com/erraggy/raml2obj/raml"
	"github.com/pelletier/go-toml/v2"
)

// Defaults holds command defaults read from a TOML file. Flags given on the
// command line take precedence over values from the file.
//
//	format = "yaml"
//	normalize_types = true
//	strict_ids = false
//	log_level = "warn"
//	user_agent = "docs-bot/1.0"
//	max_include_depth = 16
type Defaults struct {
	Format          string `toml:"format"`
	NormalizeTypes  *bool  `toml:"normalize_types"`
	StrictIDs       *bool  `toml:"strict_ids"`
	LogLevel        string `toml:"log_level"`
	UserAgent       string `toml:"user_agent"`
	MaxIncludeDepth int    `toml:"max_include_depth"`
}

// LoadDefaults reads a TOML defaults file.
func LoadDefaults(path string) (*Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("commands: reading config: %w", err)
	}
	var d Defaults
	if err := toml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("commands: parsing config %s: %w", path, err)
	}
	return &d, nil
}

// CommonFlags are the flags shared by the parse and resources commands.
type CommonFlags struct {
	Format          string
	NormalizeTypes  bool
	StrictIDs       bool
	LogLevel        string
	ConfigPath      string
	Quiet           bool
	Output          string
	UserAgent       string
	MaxIncludeDepth int
}

func (c *CommonFlags) register(fs *flag.FlagSet, defaultFormat string) {
	fs.StringVar(&c.Format, "format", defaultFormat, "output format: json, yaml or text")
	fs.BoolVar(&c.NormalizeTypes, "normalize-types", false, "normalize declared types (wrap optional properties)")
	fs.BoolVar(&c.StrictIDs, "strict-ids", false, "fail when two resources get the same unique identifier")
	fs.StringVar(&c.LogLevel, "log-level", "warn", "log level: debug, info, warn or error")
	fs.StringVar(&c.ConfigPath, "config", "", "TOML file with default flag values")
	fs.BoolVar(&c.Quiet, "q", false, "quiet mode: only output the result, no summary")
	fs.BoolVar(&c.Quiet, "quiet", false, "quiet mode: only output the result, no summary")
	fs.StringVar(&c.Output, "o", "", "write output to file instead of stdout")
	fs.StringVar(&c.Output, "output", "", "write output to file instead of stdout")
}

// applyDefaults loads the config file, if any, and copies its values into
// every flag that was not set on the command line.
func (c *CommonFlags) applyDefaults(fs *flag.FlagSet) error {
	if c.ConfigPath == "" {
		return nil
	}
	d, err := LoadDefaults(c.ConfigPath)
	if err != nil {
		return err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if d.Format != "" && !set["format"] {
		c.Format = d.Format
	}
	if d.NormalizeTypes != nil && !set["normalize-types"] {
		c.NormalizeTypes = *d.NormalizeTypes
	}
	if d.StrictIDs != nil && !set["strict-ids"] {
		c.StrictIDs = *d.StrictIDs
	}
	if d.LogLevel != "" && !set["log-level"] {
		c.LogLevel = d.LogLevel
	}
	c.UserAgent = d.UserAgent
	c.MaxIncludeDepth = d.MaxIncludeDepth
	return nil
}

// NewLogger builds a text logger on w at the named level.
func NewLogger(w io.Writer, level string) (raml.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: valid levels: debug, info, warn, error", level)
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return raml.NewSlogAdapter(slog.New(handler)), nil
}

// load parses and enriches the document named by specPath.
func (c *CommonFlags) load(ctx context.Context, specPath string) (*enricher.Result, error) {
	logger, err := NewLogger(os.Stderr, c.LogLevel)
	if err != nil {
		return nil, err
	}

	opts := []enricher.Option{
		enricher.WithLogger(logger),
		enricher.WithNormalizeDeclaredTypes(c.NormalizeTypes),
		enricher.WithStrictIDs(c.StrictIDs),
	}
	if c.UserAgent != "" {
		opts = append(opts, enricher.WithUserAgent(c.UserAgent))
	}
	if c.MaxIncludeDepth > 0 {
		opts = append(opts, enricher.WithMaxIncludeDepth(c.MaxIncludeDepth))
	}
	if specPath == StdinFilePath {
		opts = append(opts, enricher.WithReader(os.Stdin))
	} else {
		opts = append(opts, enricher.WithFilePath(specPath))
	}

	return enricher.ParseWithOptions(ctx, opts...)
}

package enricher

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/erraggy/raml2obj/internal/options"
	"github.com/erraggy/raml2obj/raml"
	"github.com/erraggy/raml2obj/ramlerrors"
)

// Option is a function that configures a parse operation.
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation.
type parseConfig struct {
	// Input source (exactly one must be set for ParseWithOptions)
	filePath *string
	reader   io.Reader
	bytes    []byte
	document *raml.Document

	normalizeDeclaredTypes bool
	strictIDs              bool
	userAgent              string
	httpClient             *http.Client
	logger                 raml.Logger
	maxIncludeDepth        int
}

func (cfg *parseConfig) hasSource() bool {
	return cfg.filePath != nil || cfg.reader != nil || cfg.bytes != nil || cfg.document != nil
}

func (cfg *parseConfig) parser() *Parser {
	return &Parser{
		Config: Config{
			NormalizeDeclaredTypes: cfg.normalizeDeclaredTypes,
			StrictIDs:              cfg.strictIDs,
		},
		Logger:          cfg.logger,
		HTTPClient:      cfg.httpClient,
		UserAgent:       cfg.userAgent,
		MaxIncludeDepth: cfg.maxIncludeDepth,
	}
}

func newConfig(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Parse loads and enriches source using the configuration options in opts.
// See [Parser.Parse] for the accepted source kinds. Source options
// (WithFilePath and friends) belong to [ParseWithOptions] and are rejected here.
//
// Example:
//
//	result, err := enricher.Parse(ctx, "api.raml",
//	    enricher.WithNormalizeDeclaredTypes(true),
//	)
func Parse(ctx context.Context, source any, opts ...Option) (*Result, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("enricher: invalid options: %w", err)
	}
	if cfg.hasSource() {
		return nil, &ramlerrors.ConfigError{
			Option:  "source",
			Message: "enricher: source options are only accepted by ParseWithOptions",
		}
	}
	return cfg.parser().Parse(ctx, source)
}

// ParseWithOptions loads and enriches the single source selected by
// WithFilePath, WithBytes, WithReader or WithDocument.
//
// Example:
//
//	result, err := enricher.ParseWithOptions(ctx,
//	    enricher.WithFilePath("api.raml"),
//	    enricher.WithStrictIDs(true),
//	)
func ParseWithOptions(ctx context.Context, opts ...Option) (*Result, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("enricher: invalid options: %w", err)
	}
	if err := options.ValidateSingleInputSource(
		"enricher: must specify an input source (use WithFilePath, WithBytes, WithReader, or WithDocument)",
		"enricher: must specify exactly one input source",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil, cfg.document != nil,
	); err != nil {
		return nil, fmt.Errorf("enricher: invalid options: %w", err)
	}

	p := cfg.parser()
	switch {
	case cfg.filePath != nil:
		return p.parseAPI(ctx, *cfg.filePath)
	case cfg.bytes != nil:
		return p.parseData(ctx, cfg.bytes)
	case cfg.reader != nil:
		return p.Parse(ctx, cfg.reader)
	default:
		return p.Parse(ctx, cfg.document)
	}
}

// WithFilePath specifies a file path or URL as the input source.
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithBytes specifies RAML text as the input source.
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return &ramlerrors.ConfigError{Option: "bytes", Message: "bytes cannot be nil"}
		}
		cfg.bytes = data
		return nil
	}
}

// WithReader specifies an io.Reader producing RAML text as the input source.
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return &ramlerrors.ConfigError{Option: "reader", Message: "reader cannot be nil"}
		}
		cfg.reader = r
		return nil
	}
}

// WithDocument specifies an already loaded document as the input source.
// It is enriched in place; no diagnostics are produced.
func WithDocument(doc *raml.Document) Option {
	return func(cfg *parseConfig) error {
		if doc == nil {
			return &ramlerrors.ConfigError{Option: "document", Message: "document cannot be nil"}
		}
		cfg.document = doc
		return nil
	}
}

// WithLogger sets a structured logger for diagnostics and warnings.
// By default nothing is logged.
//
// Example:
//
//	logger := raml.NewSlogAdapter(slog.Default())
//	result, err := enricher.Parse(ctx, "api.raml", enricher.WithLogger(logger))
func WithLogger(l raml.Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithNormalizeDeclaredTypes enables the declaration normalization pass.
// Default: false
func WithNormalizeDeclaredTypes(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.normalizeDeclaredTypes = enabled
		return nil
	}
}

// WithStrictIDs makes resource identifier collisions an error.
// Default: false (collisions are logged at warn level)
func WithStrictIDs(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.strictIDs = enabled
		return nil
	}
}

// WithHTTPClient sets the HTTP client used for URL sources and includes.
// A nil client leaves the default in place.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *parseConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests.
// Default: "raml2obj/vX.Y.Z"
func WithUserAgent(ua string) Option {
	return func(cfg *parseConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithMaxIncludeDepth bounds nested !include chains.
// A value of 0 means use the default (32).
// Returns an error if depth is negative.
func WithMaxIncludeDepth(depth int) Option {
	return func(cfg *parseConfig) error {
		if depth < 0 {
			return &ramlerrors.ConfigError{Option: "maxIncludeDepth", Value: depth, Message: "cannot be negative"}
		}
		cfg.maxIncludeDepth = depth
		return nil
	}
}

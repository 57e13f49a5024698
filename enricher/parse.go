package enricher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/erraggy/raml2obj/raml"
	"github.com/erraggy/raml2obj/ramlerrors"
)

// sourceMessage is the error message for unsupported parse sources.
const sourceMessage = "enricher: you must supply either file, url, data or obj as source"

// Config selects the optional enrichment passes.
type Config struct {
	// NormalizeDeclaredTypes runs the declaration normalization pass
	// (see [Normalizer.NormalizeDeclarations]) before enrichment.
	NormalizeDeclaredTypes bool
	// StrictIDs makes a repeated resource identifier an error.
	StrictIDs bool
}

// Parser loads RAML sources and returns enriched documents.
type Parser struct {
	Config

	// Logger receives diagnostics and normalization warnings. Nil discards them.
	Logger raml.Logger
	// HTTPClient fetches URL sources and includes.
	HTTPClient *http.Client
	// UserAgent is sent with HTTP requests. Defaults to raml2obj/<version>.
	UserAgent string
	// MaxIncludeDepth bounds nested includes (0 means the loader default).
	MaxIncludeDepth int
}

// New creates a Parser with default settings.
func New() *Parser {
	return &Parser{}
}

// Result is an enriched document with information about how it was loaded.
type Result struct {
	// Document is the enriched tree.
	Document *raml.Document
	// Diagnostics holds every loader diagnostic, advisory ones included.
	// It is empty for documents passed in directly.
	Diagnostics []raml.Diagnostic
	// SourcePath is the file path or URL, "Load.raml" for in-memory
	// sources, or "" for documents passed in directly.
	SourcePath string
	// LoadTime is the time spent loading the source.
	LoadTime time.Duration
	// SourceSize is the size of the source in bytes, 0 when unknown.
	SourceSize int64
}

// Errors returns the diagnostics that are not advisory.
func (r *Result) Errors() []raml.Diagnostic {
	var out []raml.Diagnostic
	for _, d := range r.Diagnostics {
		if !d.Advisory() {
			out = append(out, d)
		}
	}
	return out
}

func (p *Parser) log() raml.Logger {
	if p.Logger == nil {
		return raml.NopLogger{}
	}
	return p.Logger
}

func (p *Parser) loader() *raml.Loader {
	l := raml.New()
	l.HTTPClient = p.HTTPClient
	l.UserAgent = p.UserAgent
	l.Logger = p.Logger
	if p.MaxIncludeDepth > 0 {
		l.MaxIncludeDepth = p.MaxIncludeDepth
	}
	return l
}

// Parse loads and enriches source, which may be:
//
//   - a string naming an existing file or starting with "http" (loaded
//     from disk or fetched), or otherwise raw RAML text,
//   - a []byte or io.Reader holding RAML text,
//   - a *raml.Document, which is enriched as is.
//
// Any other source yields an error matching [ramlerrors.ErrSource].
// Load failures are returned unchanged; loader diagnostics are logged and
// reported in the Result.
func (p *Parser) Parse(ctx context.Context, source any) (*Result, error) {
	switch s := source.(type) {
	case string:
		if isFileOrURL(s) {
			return p.parseAPI(ctx, s)
		}
		return p.parseData(ctx, []byte(s))
	case []byte:
		return p.parseData(ctx, s)
	case *raml.Document:
		if s == nil {
			return nil, &ramlerrors.SourceError{Source: source, Message: sourceMessage}
		}
		return p.finish(&Result{Document: s}, nil)
	case io.Reader:
		data, err := io.ReadAll(io.LimitReader(s, raml.DefaultMaxFileSize+1))
		if err != nil {
			return nil, fmt.Errorf("enricher: failed to read source: %w", err)
		}
		return p.parseData(ctx, data)
	}
	return nil, &ramlerrors.SourceError{Source: source, Message: sourceMessage}
}

// isFileOrURL reports whether a string source names a file or URL rather
// than holding RAML text.
func isFileOrURL(s string) bool {
	if strings.HasPrefix(s, "http") {
		return true
	}
	if strings.Contains(s, "\n") {
		return false
	}
	_, err := os.Stat(s)
	return err == nil
}

func (p *Parser) parseAPI(ctx context.Context, pathOrURL string) (*Result, error) {
	start := time.Now()
	api, err := p.loader().LoadAPI(ctx, pathOrURL)
	if err != nil {
		return nil, err
	}
	result := &Result{SourcePath: api.SourcePath, LoadTime: time.Since(start)}
	if info, err := os.Stat(pathOrURL); err == nil {
		result.SourceSize = info.Size()
	}
	return p.finish(result, api)
}

func (p *Parser) parseData(ctx context.Context, data []byte) (*Result, error) {
	start := time.Now()
	api, err := p.loader().Load(ctx, data)
	if err != nil {
		return nil, err
	}
	result := &Result{SourcePath: api.SourcePath, LoadTime: time.Since(start), SourceSize: int64(len(data))}
	return p.finish(result, api)
}

// finish logs diagnostics, optionally normalizes declarations, and enriches
// the document. api is nil for documents passed in directly.
func (p *Parser) finish(result *Result, api *raml.API) (*Result, error) {
	if api != nil {
		result.Diagnostics = api.Errors()
		p.logDiagnostics(result.Diagnostics)
		result.Document = api.ToDocument()
		if p.NormalizeDeclaredTypes {
			(&Normalizer{Logger: p.Logger}).NormalizeDeclarations(result.Document, api)
		}
	}

	enricher := &Enricher{StrictIDs: p.StrictIDs, Logger: p.Logger}
	if _, err := enricher.Enhance(result.Document); err != nil {
		return result, err
	}
	p.log().Debug("enriched RAML document",
		"source", result.SourcePath,
		"resources", len(result.Document.Resources),
		"diagnostics", len(result.Diagnostics))
	return result, nil
}

// logDiagnostics logs every diagnostic that is neither a warning nor informational.
func (p *Parser) logDiagnostics(diags []raml.Diagnostic) {
	for _, d := range diags {
		if d.Advisory() {
			continue
		}
		p.log().Error("error in parsing",
			"code", int(d.Code),
			"message", d.Message,
			"path", d.Path,
			"line", d.Line,
			"column", d.Column,
			"isWarning", d.IsWarning)
	}
}

package raml

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/erraggy/raml2obj/ramlerrors"
	"go.yaml.in/yaml/v4"
)

// Defaults applied by [New].
const (
	// DefaultMaxIncludeDepth bounds nested !include chains.
	DefaultMaxIncludeDepth = 32
	// DefaultMaxFileSize bounds every file or URL body read by the loader.
	DefaultMaxFileSize int64 = 10 << 20

	// DefaultMediaType is used for bodies without a media type key when the
	// document declares no mediaType.
	DefaultMediaType = "application/json"

	// inMemorySource names documents loaded from bytes.
	inMemorySource = "Load.raml"
)

var (
	headerPattern  = regexp.MustCompile(`^#%RAML\s+(\d+\.\d+)(?:\s+(\S+))?`)
	yamlLineNumber = regexp.MustCompile(`line (\d+)`)
)

// Loader reads RAML documents from files, URLs or memory.
//
// The zero value is usable; [New] fills in the documented defaults.
type Loader struct {
	// HTTPClient fetches URL sources and URL includes. A client with a
	// 30 second timeout is used when nil.
	HTTPClient *http.Client
	// UserAgent is sent with every HTTP request. Defaults to raml2obj/<version>.
	UserAgent string
	// Logger receives debug records about include resolution and expansion.
	Logger Logger
	// MaxIncludeDepth bounds nested !include chains (0 means DefaultMaxIncludeDepth).
	MaxIncludeDepth int
	// MaxFileSize bounds every file read (0 means DefaultMaxFileSize).
	MaxFileSize int64
}

// New returns a Loader with default limits.
func New() *Loader {
	return &Loader{
		MaxIncludeDepth: DefaultMaxIncludeDepth,
		MaxFileSize:     DefaultMaxFileSize,
	}
}

func (l *Loader) log() Logger {
	if l.Logger == nil {
		return NopLogger{}
	}
	return l.Logger
}

func (l *Loader) maxIncludeDepth() int {
	if l.MaxIncludeDepth <= 0 {
		return DefaultMaxIncludeDepth
	}
	return l.MaxIncludeDepth
}

func (l *Loader) maxFileSize() int64 {
	if l.MaxFileSize <= 0 {
		return DefaultMaxFileSize
	}
	return l.MaxFileSize
}

// LoadAPI loads the RAML document at pathOrURL. Includes are resolved
// relative to the document's location.
func (l *Loader) LoadAPI(ctx context.Context, pathOrURL string) (*API, error) {
	if isURL(pathOrURL) {
		base, err := url.Parse(pathOrURL)
		if err != nil {
			return nil, fmt.Errorf("raml: invalid URL: %w", err)
		}
		data, err := l.fetchURL(ctx, pathOrURL)
		if err != nil {
			return nil, err
		}
		return l.load(ctx, data, source{name: pathOrURL, url: base})
	}

	abs, err := filepath.Abs(pathOrURL)
	if err != nil {
		return nil, fmt.Errorf("raml: failed to resolve path: %w", err)
	}
	data, err := l.readFile(abs)
	if err != nil {
		return nil, err
	}
	return l.load(ctx, data, source{name: pathOrURL, file: abs, dir: filepath.Dir(abs)})
}

// Load loads a RAML document from memory. Includes are resolved relative to
// the working directory.
func (l *Loader) Load(ctx context.Context, data []byte) (*API, error) {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	return l.load(ctx, data, source{name: inMemorySource, dir: dir})
}

// source is where a document (or included fragment) came from.
type source struct {
	name string   // as reported in diagnostics
	file string   // absolute path, empty for URLs and memory
	dir  string   // directory includes resolve against
	url  *url.URL // set for URL sources
}

func (l *Loader) load(ctx context.Context, data []byte, src source) (*API, error) {
	if int64(len(data)) > l.maxFileSize() {
		return nil, &ramlerrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        l.maxFileSize(),
			Actual:       int64(len(data)),
			Message:      src.name,
		}
	}

	rep := &reporter{path: src.name}
	version := checkHeader(data, rep)

	root, err := decodeYAML(data, src.name)
	if err != nil {
		return nil, err
	}
	if !isMapping(root) {
		return nil, &ramlerrors.ParseError{
			Path:    src.name,
			Line:    root.Line,
			Column:  root.Column,
			Message: "document root must be a mapping",
		}
	}

	inc := &includeResolver{loader: l, ctx: ctx, rootDir: src.dir}
	if err := inc.resolveRoot(root, src); err != nil {
		return nil, err
	}

	api := &API{
		SourcePath:       src.name,
		Version:          version,
		root:             root,
		defaultMediaType: defaultMediaType(root),
	}

	newExpander(root, rep, l.log()).expand()
	newDeclarer(api.defaultMediaType, rep).declare(api, root)
	api.diagnostics = rep.diags

	l.log().Debug("loaded RAML document",
		"source", src.name,
		"version", version,
		"resources", len(api.resources),
		"diagnostics", len(api.diagnostics))
	return api, nil
}

// checkHeader validates the #%RAML header line and returns the version.
func checkHeader(data []byte, rep *reporter) string {
	first, _, _ := bytes.Cut(bytes.TrimPrefix(data, []byte("\ufeff")), []byte("\n"))
	m := headerPattern.FindSubmatch(bytes.TrimSpace(first))
	if m == nil {
		rep.add(Diagnostic{
			Code:    CodeMissingHeader,
			Message: "missing #%RAML 1.0 header",
			Line:    1,
			Column:  1,
		})
		return ""
	}
	version := string(m[1])
	switch version {
	case "1.0":
	case "0.8":
		rep.add(Diagnostic{
			Code:      CodeUnsupportedVersion,
			Message:   "RAML 0.8 is loaded on a best-effort basis",
			Line:      1,
			Column:    1,
			IsWarning: true,
		})
	default:
		rep.add(Diagnostic{
			Code:    CodeUnsupportedVersion,
			Message: fmt.Sprintf("unsupported RAML version %s", version),
			Line:    1,
			Column:  1,
		})
	}
	if len(m[2]) > 0 {
		rep.add(Diagnostic{
			Code:      CodeUnsupportedFeature,
			Message:   fmt.Sprintf("document is a %s fragment; loading it as an API", m[2]),
			Line:      1,
			Column:    1,
			IsWarning: true,
		})
	}
	return version
}

// decodeYAML parses data into a node tree and returns the document's
// root content node.
func decodeYAML(data []byte, name string) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		perr := &ramlerrors.ParseError{Path: name, Message: "invalid YAML", Cause: err}
		if m := yamlLineNumber.FindStringSubmatch(err.Error()); m != nil {
			perr.Line, _ = strconv.Atoi(m[1])
		}
		return nil, perr
	}
	root := deref(&doc)
	if root == nil {
		return nil, &ramlerrors.ParseError{Path: name, Message: "document is empty"}
	}
	return root, nil
}

// defaultMediaType returns the first root mediaType, or DefaultMediaType.
func defaultMediaType(root *yaml.Node) string {
	if types := stringList(lookup(root, "mediaType")); len(types) > 0 {
		return types[0]
	}
	return DefaultMediaType
}

// isURL reports whether s is an http(s) URL.
func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// LoadAPI loads a document with a default Loader.
func LoadAPI(ctx context.Context, pathOrURL string) (*API, error) {
	return New().LoadAPI(ctx, pathOrURL)
}

// Load loads an in-memory document with a default Loader.
func Load(ctx context.Context, data []byte) (*API, error) {
	return New().Load(ctx, data)
}

package walker

import (
	"context"
	"errors"
	"fmt"

	"github.com/erraggy/raml2obj/enricher"
	"github.com/erraggy/raml2obj/raml"
)

// WithFilePath specifies a RAML file path or URL to parse, enrich and walk.
func WithFilePath(path string) Option {
	return func(w *Walker) {
		w.filePath = &path
	}
}

// WithDocument specifies an enriched document to walk.
func WithDocument(doc *raml.Document) Option {
	return func(w *Walker) {
		w.document = doc
	}
}

// WithUserContext sets the context for cancellation and deadline propagation.
// The context is available to handlers via wc.Context(), and a canceled
// context ends the walk with its error.
func WithUserContext(ctx context.Context) Option {
	return func(w *Walker) {
		w.userCtx = ctx
	}
}

// WithParentTracking enables tracking of parent nodes during traversal.
// When enabled, WalkContext.Parent provides access to ancestor nodes, and
// ParentResource(), ParentMethod(), ParentResponse(), Ancestors() and
// Depth() become meaningful.
//
// By default, parent tracking is disabled.
func WithParentTracking() Option {
	return func(w *Walker) {
		w.trackParent = true
	}
}

// WalkWithOptions walks a document using functional options for input, handlers, and configuration.
//
// Example:
//
//	walker.WalkWithOptions(
//	    walker.WithFilePath("api.raml"),
//	    walker.WithResourceHandler(func(wc *walker.WalkContext, r *raml.Resource) walker.Action {
//	        fmt.Println(r.UniqueID, wc.ResourcePath)
//	        return walker.Continue
//	    }),
//	)
func WalkWithOptions(opts ...Option) error {
	w := New()
	for _, opt := range opts {
		opt(w)
	}

	if w.document == nil && w.filePath == nil {
		return errors.New("walker: no input source specified: use WithFilePath or WithDocument")
	}
	if w.document != nil && w.filePath != nil {
		return errors.New("walker: multiple input sources specified: use only one")
	}

	doc := w.document
	if w.filePath != nil {
		ctx := w.userCtx
		if ctx == nil {
			ctx = context.Background()
		}
		result, err := enricher.ParseWithOptions(ctx, enricher.WithFilePath(*w.filePath))
		if err != nil {
			return fmt.Errorf("walker: failed to parse: %w", err)
		}
		doc = result.Document
	}

	return w.walk(doc)
}

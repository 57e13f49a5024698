package walker

import (
	"context"
	"errors"
	"fmt"

	"github.com/erraggy/raml2obj/raml"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// Handler types for each node of the enriched tree.
// Each handler receives the walk context and the node, and returns an Action.

// DocumentHandler is called for the root document.
type DocumentHandler func(wc *WalkContext, doc *raml.Document) Action

// DocumentationHandler is called for each documentation section.
type DocumentationHandler func(wc *WalkContext, section *raml.DocumentationSection) Action

// TypeHandler is called for each declared type. wc.Name is the type name.
type TypeHandler func(wc *WalkContext, decl any) Action

// TraitHandler is called for each trait. wc.Name is the trait name.
type TraitHandler func(wc *WalkContext, trait *raml.Method) Action

// ResourceTypeHandler is called for each resource type.
type ResourceTypeHandler func(wc *WalkContext, rt *raml.ResourceType) Action

// SecuritySchemeHandler is called for each security scheme.
type SecuritySchemeHandler func(wc *WalkContext, scheme *raml.SecurityScheme) Action

// ResourceHandler is called for each resource, parents before children.
type ResourceHandler func(wc *WalkContext, res *raml.Resource) Action

// ResourcePostHandler is called after a resource's children have been walked.
// It is not called when the resource handler returned SkipChildren or Stop.
type ResourcePostHandler func(wc *WalkContext, res *raml.Resource)

// MethodHandler is called for each method, including methods of resource
// types. wc.Method is the verb.
type MethodHandler func(wc *WalkContext, m *raml.Method) Action

// ResponseHandler is called for each response. wc.StatusCode is the code.
type ResponseHandler func(wc *WalkContext, resp *raml.Response) Action

// BodyHandler is called for each body. wc.Name is the media type.
type BodyHandler func(wc *WalkContext, body any) Action

// ParameterHandler is called for each named parameter. wc.Name is the
// parameter name and wc.Location one of the Location constants.
type ParameterHandler func(wc *WalkContext, param any) Action

// Walker traverses enriched RAML documents and calls handlers for each node type.
type Walker struct {
	// Handlers
	onDocument       DocumentHandler
	onDocumentation  DocumentationHandler
	onType           TypeHandler
	onTrait          TraitHandler
	onResourceType   ResourceTypeHandler
	onSecurityScheme SecuritySchemeHandler
	onResource       ResourceHandler
	onResourcePost   ResourcePostHandler
	onMethod         MethodHandler
	onResponse       ResponseHandler
	onBody           BodyHandler
	onParameter      ParameterHandler

	// Configuration
	maxDepth    int
	trackParent bool

	// Input sources for WalkWithOptions
	filePath *string
	document *raml.Document

	// Internal state
	userCtx context.Context
	stopped bool
}

// DefaultMaxDepth is the default limit on resource nesting.
const DefaultMaxDepth = 100

// New creates a new Walker with default settings.
func New() *Walker {
	return &Walker{
		maxDepth: DefaultMaxDepth,
	}
}

// Option configures the Walker.
type Option func(*Walker)

// WithDocumentHandler sets the handler for the root document.
func WithDocumentHandler(fn DocumentHandler) Option {
	return func(w *Walker) { w.onDocument = fn }
}

// WithDocumentationHandler sets the handler for documentation sections.
func WithDocumentationHandler(fn DocumentationHandler) Option {
	return func(w *Walker) { w.onDocumentation = fn }
}

// WithTypeHandler sets the handler for declared types.
func WithTypeHandler(fn TypeHandler) Option {
	return func(w *Walker) { w.onType = fn }
}

// WithTraitHandler sets the handler for traits.
func WithTraitHandler(fn TraitHandler) Option {
	return func(w *Walker) { w.onTrait = fn }
}

// WithResourceTypeHandler sets the handler for resource types.
func WithResourceTypeHandler(fn ResourceTypeHandler) Option {
	return func(w *Walker) { w.onResourceType = fn }
}

// WithSecuritySchemeHandler sets the handler for security schemes.
func WithSecuritySchemeHandler(fn SecuritySchemeHandler) Option {
	return func(w *Walker) { w.onSecurityScheme = fn }
}

// WithResourceHandler sets the handler for resources.
func WithResourceHandler(fn ResourceHandler) Option {
	return func(w *Walker) { w.onResource = fn }
}

// WithResourcePostHandler sets the handler called after a resource's
// children have been visited.
func WithResourcePostHandler(fn ResourcePostHandler) Option {
	return func(w *Walker) { w.onResourcePost = fn }
}

// WithMethodHandler sets the handler for methods.
func WithMethodHandler(fn MethodHandler) Option {
	return func(w *Walker) { w.onMethod = fn }
}

// WithResponseHandler sets the handler for responses.
func WithResponseHandler(fn ResponseHandler) Option {
	return func(w *Walker) { w.onResponse = fn }
}

// WithBodyHandler sets the handler for bodies.
func WithBodyHandler(fn BodyHandler) Option {
	return func(w *Walker) { w.onBody = fn }
}

// WithParameterHandler sets the handler for named parameters.
func WithParameterHandler(fn ParameterHandler) Option {
	return func(w *Walker) { w.onParameter = fn }
}

// WithMaxDepth sets the maximum resource nesting depth.
// Default is 100. If depth is <= 0, the default is kept.
func WithMaxDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}

// Walk traverses doc and calls registered handlers for each node.
func Walk(doc *raml.Document, opts ...Option) error {
	if doc == nil {
		return errors.New("walker: nil Document")
	}

	w := New()
	for _, opt := range opts {
		opt(w)
	}

	return w.walk(doc)
}

// walk performs the actual traversal.
func (w *Walker) walk(doc *raml.Document) error {
	w.stopped = false
	state := &walkState{ctx: w.userCtx, trackParent: w.trackParent}
	return w.walkDocument(doc, state)
}

// handleAction processes the action returned by a handler.
// Returns true if walking should continue to children.
func (w *Walker) handleAction(action Action) bool {
	switch action {
	case Stop:
		w.stopped = true
		return false
	case SkipChildren:
		return false
	default:
		return true
	}
}

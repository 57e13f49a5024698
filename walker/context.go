package walker

import "context"

// Parameter locations reported in WalkContext.Location.
const (
	LocationBaseURI = "baseUri"
	LocationURI     = "uri"
	LocationQuery   = "query"
	LocationHeader  = "header"
)

// WalkContext provides contextual information about the current node being visited.
// It follows the http.Request pattern for context access.
type WalkContext struct {
	// JSONPath is the full JSON path to the current node.
	// Always populated. Example: "$.resources[0].resources[1].methods.get"
	JSONPath string

	// ResourcePath is the full path of the enclosing resource.
	// Empty outside the resource tree. Example: "/users/{id}"
	ResourcePath string

	// Method is the HTTP method when walking within a method scope.
	// Empty when not in method scope. Example: "get", "post"
	Method string

	// StatusCode is the HTTP status code when walking within a response scope.
	StatusCode string

	// Name is the map key for named items: type, trait, resource type and
	// security scheme names, parameter names, body media types.
	Name string

	// Location is where a parameter is declared (LocationURI and friends).
	// Only set for parameters.
	Location string

	// IsDeclaration is true when the current node is within types, traits,
	// resource types or security schemes.
	IsDeclaration bool

	// Parent is the nearest ancestor when parent tracking is enabled.
	Parent *ParentInfo

	ctx context.Context
}

// Context returns the context.Context for cancellation and deadline propagation.
// Returns context.Background() if no context was set.
func (wc *WalkContext) Context() context.Context {
	if wc.ctx == nil {
		return context.Background()
	}
	return wc.ctx
}

// WithContext returns a shallow copy of WalkContext with the new context.
func (wc *WalkContext) WithContext(ctx context.Context) *WalkContext {
	wc2 := *wc
	wc2.ctx = ctx
	return &wc2
}

// InResourceScope returns true if currently walking within the resource tree.
func (wc *WalkContext) InResourceScope() bool {
	return wc.ResourcePath != ""
}

// InMethodScope returns true if currently walking within a method.
func (wc *WalkContext) InMethodScope() bool {
	return wc.Method != ""
}

// InResponseScope returns true if currently walking within a response.
func (wc *WalkContext) InResponseScope() bool {
	return wc.StatusCode != ""
}

// walkState tracks context as we descend through the document.
type walkState struct {
	resourcePath  string
	method        string
	statusCode    string
	name          string
	location      string
	isDeclaration bool
	ctx           context.Context

	trackParent bool
	parent      *ParentInfo
}

// buildContext creates a WalkContext from the current walk state.
func (s *walkState) buildContext(jsonPath string) *WalkContext {
	return &WalkContext{
		JSONPath:      jsonPath,
		ResourcePath:  s.resourcePath,
		Method:        s.method,
		StatusCode:    s.statusCode,
		Name:          s.name,
		Location:      s.location,
		IsDeclaration: s.isDeclaration,
		Parent:        s.parent,
		ctx:           s.ctx,
	}
}

// clone creates a copy of the walk state for child traversal.
func (s *walkState) clone() *walkState {
	c := *s
	return &c
}

// context returns the walk's context, never nil.
func (s *walkState) context() context.Context {
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

// pushParent returns a child state whose parent chain starts at node.
// It returns s unchanged when parent tracking is disabled.
func (s *walkState) pushParent(node any, jsonPath string) *walkState {
	if !s.trackParent {
		return s
	}
	c := s.clone()
	c.parent = &ParentInfo{Node: node, JSONPath: jsonPath, Parent: s.parent}
	return c
}

package walker

import "github.com/erraggy/raml2obj/raml"

// ParentInfo provides information about a parent node in the traversal.
// This enables handlers to access ancestor nodes for context-aware processing.
type ParentInfo struct {
	// Node is the parent node (*raml.Resource, *raml.Method, etc.)
	Node any

	// JSONPath is the JSON path to this parent node
	JSONPath string

	// Parent is the grandparent, enabling ancestor chain traversal.
	// nil for the root-level parent.
	Parent *ParentInfo
}

// ParentResource returns the nearest ancestor that is a Resource, if any.
func (wc *WalkContext) ParentResource() (*raml.Resource, bool) {
	for p := wc.Parent; p != nil; p = p.Parent {
		if r, ok := p.Node.(*raml.Resource); ok {
			return r, true
		}
	}
	return nil, false
}

// ParentMethod returns the nearest ancestor that is a Method, if any.
// Traits and security scheme descriptions count as methods.
func (wc *WalkContext) ParentMethod() (*raml.Method, bool) {
	for p := wc.Parent; p != nil; p = p.Parent {
		if m, ok := p.Node.(*raml.Method); ok {
			return m, true
		}
	}
	return nil, false
}

// ParentResponse returns the nearest ancestor that is a Response, if any.
func (wc *WalkContext) ParentResponse() (*raml.Response, bool) {
	for p := wc.Parent; p != nil; p = p.Parent {
		if r, ok := p.Node.(*raml.Response); ok {
			return r, true
		}
	}
	return nil, false
}

// Ancestors returns all ancestors from immediate parent to root.
// Returns nil if parent tracking is not enabled or there are no ancestors.
func (wc *WalkContext) Ancestors() []*ParentInfo {
	var ancestors []*ParentInfo
	for p := wc.Parent; p != nil; p = p.Parent {
		ancestors = append(ancestors, p)
	}
	return ancestors
}

// Depth returns the number of ancestors.
// Returns 0 if at root level or parent tracking is not enabled.
func (wc *WalkContext) Depth() int {
	depth := 0
	for p := wc.Parent; p != nil; p = p.Parent {
		depth++
	}
	return depth
}

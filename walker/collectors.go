package walker

import (
	"github.com/erraggy/raml2obj/raml"
)

// ResourceInfo contains information about a collected resource.
type ResourceInfo struct {
	// Resource is the collected resource.
	Resource *raml.Resource

	// FullPath is the resource path from the API root (e.g., "/users/{id}").
	FullPath string

	// JSONPath is the full JSON path to the resource.
	JSONPath string

	// Methods lists the resource's verbs in declaration order.
	Methods []string

	// Depth is the nesting level, 1 for top-level resources.
	Depth int
}

// ResourceCollector holds resources collected during a walk.
type ResourceCollector struct {
	// All contains all resources in traversal order (parents before children).
	All []*ResourceInfo

	// ByPath provides lookup by full path.
	ByPath map[string]*ResourceInfo

	// ByID provides lookup by unique identifier. Resources are only
	// indexed once the document has been enriched. If identifiers collide,
	// the last resource wins.
	ByID map[string]*ResourceInfo
}

// CollectResources walks the document and collects all resources.
func CollectResources(doc *raml.Document) (*ResourceCollector, error) {
	collector := &ResourceCollector{
		All:    make([]*ResourceInfo, 0),
		ByPath: make(map[string]*ResourceInfo),
		ByID:   make(map[string]*ResourceInfo),
	}

	err := Walk(doc,
		WithParentTracking(),
		WithResourceHandler(func(wc *WalkContext, res *raml.Resource) Action {
			info := &ResourceInfo{
				Resource: res,
				FullPath: wc.ResourcePath,
				JSONPath: wc.JSONPath,
				Methods:  raml.Keys(res.Methods),
				Depth:    resourceDepth(wc),
			}

			collector.All = append(collector.All, info)
			collector.ByPath[info.FullPath] = info
			if res.UniqueID != "" {
				collector.ByID[res.UniqueID] = info
			}
			return Continue
		}),
	)
	if err != nil {
		return nil, err
	}

	return collector, nil
}

// resourceDepth counts the resources among the current node and its ancestors.
func resourceDepth(wc *WalkContext) int {
	depth := 1
	for _, p := range wc.Ancestors() {
		if _, ok := p.Node.(*raml.Resource); ok {
			depth++
		}
	}
	return depth
}

// MethodInfo contains information about a collected method.
type MethodInfo struct {
	// Method is the collected method.
	Method *raml.Method

	// Resource owns the method.
	Resource *raml.Resource

	// ResourcePath is the full path of the owning resource.
	ResourcePath string

	// Verb is the HTTP method (e.g., "get", "post").
	Verb string

	// JSONPath is the full JSON path to the method.
	JSONPath string
}

// MethodCollector holds the methods of the resource tree.
type MethodCollector struct {
	// All contains all methods in traversal order.
	All []*MethodInfo

	// ByResource groups methods by full resource path.
	ByResource map[string][]*MethodInfo

	// ByVerb groups methods by HTTP method.
	ByVerb map[string][]*MethodInfo
}

// CollectMethods walks the document and collects the methods of all
// resources. Methods of resource types are not included.
func CollectMethods(doc *raml.Document) (*MethodCollector, error) {
	collector := &MethodCollector{
		All:        make([]*MethodInfo, 0),
		ByResource: make(map[string][]*MethodInfo),
		ByVerb:     make(map[string][]*MethodInfo),
	}

	err := Walk(doc,
		WithParentTracking(),
		WithMethodHandler(func(wc *WalkContext, m *raml.Method) Action {
			if wc.IsDeclaration {
				return SkipChildren
			}
			res, _ := wc.ParentResource()
			info := &MethodInfo{
				Method:       m,
				Resource:     res,
				ResourcePath: wc.ResourcePath,
				Verb:         wc.Method,
				JSONPath:     wc.JSONPath,
			}

			collector.All = append(collector.All, info)
			collector.ByResource[info.ResourcePath] = append(collector.ByResource[info.ResourcePath], info)
			collector.ByVerb[info.Verb] = append(collector.ByVerb[info.Verb], info)
			return SkipChildren
		}),
	)
	if err != nil {
		return nil, err
	}

	return collector, nil
}

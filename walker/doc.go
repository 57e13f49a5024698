// Package walker provides a traversal API for enriched RAML documents.
//
// The walker visits a [raml.Document] in a single pass: the root, its
// documentation sections, the declarations (types, traits, resource types,
// security schemes) and then the resource tree, parents before children.
// Handlers receive the live nodes and may mutate them.
//
// # Quick Start
//
// Print every resource with its identifier:
//
//	result, _ := enricher.Parse(ctx, "api.raml")
//
//	err := walker.Walk(result.Document,
//	    walker.WithResourceHandler(func(wc *walker.WalkContext, r *raml.Resource) walker.Action {
//	        fmt.Println(r.UniqueID, wc.ResourcePath)
//	        return walker.Continue
//	    }),
//	)
//
// # Flow Control
//
// Handlers return an [Action] to control traversal:
//
//   - [Continue]: continue traversing children and siblings normally
//   - [SkipChildren]: skip all children of the current node, continue with siblings
//   - [Stop]: stop the entire walk immediately
//
// Example skipping an internal subtree:
//
//	walker.Walk(doc,
//	    walker.WithResourceHandler(func(wc *walker.WalkContext, r *raml.Resource) walker.Action {
//	        if strings.HasPrefix(wc.ResourcePath, "/internal") {
//	            return walker.SkipChildren
//	        }
//	        return walker.Continue
//	    }),
//	)
//
// # Walk Context
//
// Every handler receives a [WalkContext] with the JSON path of the node and
// the scope it sits in: ResourcePath, Method, StatusCode, Name, Location
// (for parameters) and IsDeclaration. With [WithParentTracking] the context
// also exposes the ancestor chain.
//
// # Collectors
//
// [CollectResources] and [CollectMethods] gather the resource tree into
// lookup tables for the common cases.
package walker

package walker

import (
	"fmt"

	"github.com/erraggy/raml2obj/raml"
)

// keyPath appends a named member to a JSON path.
func keyPath(base, key string) string {
	return base + "['" + key + "']"
}

// indexPath appends an array index to a JSON path.
func indexPath(base string, i int) string {
	return fmt.Sprintf("%s[%d]", base, i)
}

// walkDocument traverses the document root, its declarations and the
// resource tree.
func (w *Walker) walkDocument(doc *raml.Document, state *walkState) error {
	if w.onDocument != nil {
		if !w.handleAction(w.onDocument(state.buildContext("$"), doc)) {
			return nil
		}
	}

	state = state.pushParent(doc, "$")

	w.walkParameters(doc.BaseURIParameters, "$.baseUriParameters", LocationBaseURI, state)

	for i, section := range doc.Documentation {
		if w.stopped {
			return nil
		}
		if section != nil && w.onDocumentation != nil {
			w.handleAction(w.onDocumentation(state.buildContext(indexPath("$.documentation", i)), section))
		}
	}

	if err := w.walkDeclarations(doc, state); err != nil || w.stopped {
		return err
	}

	return w.walkResources(doc.Resources, "$.resources", 1, state)
}

// walkDeclarations visits types, traits, resource types and security schemes.
func (w *Walker) walkDeclarations(doc *raml.Document, state *walkState) error {
	declState := state.clone()
	declState.isDeclaration = true

	if doc.Types != nil && w.onType != nil {
		for pair := doc.Types.Oldest(); pair != nil && !w.stopped; pair = pair.Next() {
			s := declState.clone()
			s.name = pair.Key
			w.handleAction(w.onType(s.buildContext(keyPath("$.types", pair.Key)), pair.Value))
		}
	}

	if doc.Traits != nil {
		for pair := doc.Traits.Oldest(); pair != nil && !w.stopped; pair = pair.Next() {
			if pair.Value == nil {
				continue
			}
			s := declState.clone()
			s.name = pair.Key
			path := keyPath("$.traits", pair.Key)
			if w.onTrait != nil && !w.handleAction(w.onTrait(s.buildContext(path), pair.Value)) {
				continue
			}
			w.walkMethodContents(pair.Value, path, s.pushParent(pair.Value, path))
		}
	}

	if doc.ResourceTypes != nil {
		for pair := doc.ResourceTypes.Oldest(); pair != nil && !w.stopped; pair = pair.Next() {
			rt := pair.Value
			if rt == nil {
				continue
			}
			s := declState.clone()
			s.name = pair.Key
			path := keyPath("$.resourceTypes", pair.Key)
			if w.onResourceType != nil && !w.handleAction(w.onResourceType(s.buildContext(path), rt)) {
				continue
			}
			s = s.pushParent(rt, path)
			w.walkParameters(rt.URIParameters, path+".uriParameters", LocationURI, s)
			w.walkMethods(rt.Methods, path+".methods", s)
		}
	}

	if doc.SecuritySchemes != nil {
		for pair := doc.SecuritySchemes.Oldest(); pair != nil && !w.stopped; pair = pair.Next() {
			scheme := pair.Value
			if scheme == nil {
				continue
			}
			s := declState.clone()
			s.name = pair.Key
			path := keyPath("$.securitySchemes", pair.Key)
			if w.onSecurityScheme != nil && !w.handleAction(w.onSecurityScheme(s.buildContext(path), scheme)) {
				continue
			}
			if scheme.DescribedBy != nil {
				describedPath := path + ".describedBy"
				w.walkMethodContents(scheme.DescribedBy, describedPath,
					s.pushParent(scheme, path).pushParent(scheme.DescribedBy, describedPath))
			}
		}
	}

	return nil
}

// walkResources walks a level of the resource tree. depth is the nesting
// level of the resources being walked, starting at 1.
func (w *Walker) walkResources(resources []*raml.Resource, basePath string, depth int, state *walkState) error {
	if depth > w.maxDepth {
		return nil
	}
	for i, res := range resources {
		if w.stopped {
			return nil
		}
		if err := state.context().Err(); err != nil {
			return err
		}
		if res == nil {
			continue
		}
		if err := w.walkResource(res, indexPath(basePath, i), depth, state); err != nil {
			return err
		}
	}
	return nil
}

// walkResource walks a single resource and its subtree.
func (w *Walker) walkResource(res *raml.Resource, path string, depth int, state *walkState) error {
	resState := state.clone()
	resState.resourcePath = state.resourcePath + res.RelativeURI
	resState.name = ""

	if w.onResource != nil {
		if !w.handleAction(w.onResource(resState.buildContext(path), res)) {
			return nil
		}
	}

	childState := resState.pushParent(res, path)
	w.walkParameters(res.URIParameters, path+".uriParameters", LocationURI, childState)
	w.walkMethods(res.Methods, path+".methods", childState)
	if w.stopped {
		return nil
	}

	if err := w.walkResources(res.Resources, path+".resources", depth+1, childState); err != nil {
		return err
	}

	if w.onResourcePost != nil && !w.stopped {
		w.onResourcePost(resState.buildContext(path), res)
	}
	return nil
}

// walkMethods walks the methods of a resource or resource type.
func (w *Walker) walkMethods(methods *raml.Methods, basePath string, state *walkState) {
	if methods == nil {
		return
	}
	for pair := methods.Oldest(); pair != nil && !w.stopped; pair = pair.Next() {
		m := pair.Value
		if m == nil {
			continue
		}
		s := state.clone()
		s.method = pair.Key
		s.name = ""
		path := keyPath(basePath, pair.Key)
		if w.onMethod != nil && !w.handleAction(w.onMethod(s.buildContext(path), m)) {
			continue
		}
		w.walkMethodContents(m, path, s.pushParent(m, path))
	}
}

// walkMethodContents walks the parameters, bodies and responses of a
// method-shaped node.
func (w *Walker) walkMethodContents(m *raml.Method, path string, state *walkState) {
	w.walkParameters(m.QueryParameters, path+".queryParameters", LocationQuery, state)
	w.walkParameters(m.Headers, path+".headers", LocationHeader, state)
	w.walkBodies(m.Body, path+".body", state)

	if m.Responses == nil {
		return
	}
	for pair := m.Responses.Oldest(); pair != nil && !w.stopped; pair = pair.Next() {
		resp := pair.Value
		if resp == nil {
			continue
		}
		s := state.clone()
		s.statusCode = pair.Key
		s.name = ""
		respPath := keyPath(path+".responses", pair.Key)
		if w.onResponse != nil && !w.handleAction(w.onResponse(s.buildContext(respPath), resp)) {
			continue
		}
		s = s.pushParent(resp, respPath)
		w.walkParameters(resp.Headers, respPath+".headers", LocationHeader, s)
		w.walkBodies(resp.Body, respPath+".body", s)
	}
}

// walkBodies calls the body handler for each media type.
func (w *Walker) walkBodies(bodies *raml.Object, basePath string, state *walkState) {
	if bodies == nil || w.onBody == nil {
		return
	}
	for pair := bodies.Oldest(); pair != nil && !w.stopped; pair = pair.Next() {
		s := state.clone()
		s.name = pair.Key
		w.handleAction(w.onBody(s.buildContext(keyPath(basePath, pair.Key)), pair.Value))
	}
}

// walkParameters calls the parameter handler for each named parameter.
func (w *Walker) walkParameters(params *raml.Object, basePath, location string, state *walkState) {
	if params == nil || w.onParameter == nil {
		return
	}
	for pair := params.Oldest(); pair != nil && !w.stopped; pair = pair.Next() {
		s := state.clone()
		s.name = pair.Key
		s.location = location
		w.handleAction(w.onParameter(s.buildContext(keyPath(basePath, pair.Key)), pair.Value))
	}
}

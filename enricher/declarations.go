package enricher

import (
	"github.com/erraggy/raml2obj/raml"
)

// methodTarget pairs a method-shaped declaration with the document node it
// describes.
type methodTarget struct {
	family string
	name   string
	method *raml.Method
	decl   *raml.MethodDeclaration
}

// NormalizeDeclarations normalizes the properties and query parameters of
// every declaration family of api within doc: named types, resource type
// templates, live resource methods, security scheme describedBy blocks and
// traits. doc must be the tree produced by api.ToDocument.
func (n *Normalizer) NormalizeDeclarations(doc *raml.Document, api *raml.API) {
	if doc == nil || api == nil {
		return
	}

	for _, t := range api.Types() {
		n.normalizeType(doc, t)
	}

	for _, target := range collectMethodTargets(doc, api) {
		if target.method == nil {
			n.log().Warn("declaration has no matching method", "family", target.family, "name", target.name)
			continue
		}
		n.normalizeMethod(target.method, target.decl)
	}
}

func (n *Normalizer) normalizeType(doc *raml.Document, t *raml.TypeDeclaration) {
	if len(t.Properties()) == 0 {
		return
	}
	var container any
	found := false
	if doc.Types != nil {
		container, found = doc.Types.Get(t.Name())
	}
	if !found {
		n.log().Warn("type declaration has no value", "type", t.Name())
		return
	}
	for _, prop := range t.Properties() {
		container = n.ProcessProps(container, prop)
	}
	doc.Types.Set(t.Name(), container)
}

// collectMethodTargets locates the document node of every method-shaped
// declaration. Targets whose node cannot be found carry a nil method.
func collectMethodTargets(doc *raml.Document, api *raml.API) []methodTarget {
	var targets []methodTarget

	for _, rt := range api.ResourceTypes() {
		var tmpl *raml.ResourceType
		if doc.ResourceTypes != nil {
			tmpl, _ = doc.ResourceTypes.Get(rt.Name())
		}
		for _, m := range rt.Methods() {
			var target *raml.Method
			if tmpl != nil {
				target = tmpl.Method(m.Method())
			}
			targets = append(targets, methodTarget{family: "resourceType", name: rt.Name() + " " + m.Method(), method: target, decl: m})
		}
	}

	for _, res := range api.AllResources() {
		live := locateResource(doc, res)
		for _, m := range res.Methods() {
			var target *raml.Method
			if live != nil {
				target = live.Method(m.Method())
			}
			targets = append(targets, methodTarget{family: "resource", name: res.AbsolutePath() + " " + m.Method(), method: target, decl: m})
		}
	}

	for _, ss := range api.SecuritySchemes() {
		if ss.DescribedBy() == nil {
			continue
		}
		var target *raml.Method
		if doc.SecuritySchemes != nil {
			if scheme, ok := doc.SecuritySchemes.Get(ss.Name()); ok && scheme != nil {
				target = scheme.DescribedBy
			}
		}
		targets = append(targets, methodTarget{family: "securityScheme", name: ss.Name(), method: target, decl: ss.DescribedBy()})
	}

	for _, t := range api.AllTraits() {
		var target *raml.Method
		if doc.Traits != nil {
			target, _ = doc.Traits.Get(t.Name())
		}
		targets = append(targets, methodTarget{family: "trait", name: t.Name(), method: target, decl: t.Declaration()})
	}

	return targets
}

// locateResource finds the document resource for a declaration by walking
// the relative URIs of its ancestors from the root.
func locateResource(doc *raml.Document, res *raml.ResourceDeclaration) *raml.Resource {
	if res == nil {
		return nil
	}
	if res.ParentResource() == nil {
		return doc.Resource(res.RelativeURI())
	}
	parent := locateResource(doc, res.ParentResource())
	if parent == nil {
		return nil
	}
	return parent.Child(res.RelativeURI())
}

// normalizeMethod walks method → responses → bodies → properties,
// method → bodies → properties and method → query parameters.
func (n *Normalizer) normalizeMethod(target *raml.Method, decl *raml.MethodDeclaration) {
	for _, resp := range decl.Responses() {
		var live *raml.Response
		if target.Responses != nil {
			live, _ = target.Responses.Get(resp.Code())
		}
		if live == nil {
			n.log().Warn("response declaration has no value", "code", resp.Code())
			continue
		}
		n.normalizeBodies(live.Body, resp.Bodies())
	}

	n.normalizeBodies(target.Body, decl.Bodies())

	for _, qp := range decl.QueryParameters() {
		if target.QueryParameters == nil {
			n.log().Warn("query parameter declaration has no value", "parameter", qp.Name())
			continue
		}
		current, found := target.QueryParameters.Get(qp.Name())
		if !found {
			if !qp.IsOptional() {
				continue
			}
			n.log().Warn("property declaration has no value", "property", qp.Name())
		}
		target.QueryParameters.Set(qp.Name(), n.ProcessTypes(current, qp))
	}
}

func (n *Normalizer) normalizeBodies(body *raml.Object, decls []*raml.BodyDeclaration) {
	for _, b := range decls {
		if len(b.Properties()) == 0 {
			continue
		}
		var container any
		found := false
		if body != nil {
			container, found = body.Get(b.Name())
		}
		if !found {
			n.log().Warn("body declaration has no value", "mediaType", b.Name())
			continue
		}
		for _, prop := range b.Properties() {
			container = n.ProcessProps(container, prop)
		}
		body.Set(b.Name(), container)
	}
}

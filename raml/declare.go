package raml

import (
	"github.com/erraggy/raml2obj/internal/httputil"
	"go.yaml.in/yaml/v4"
)

// declarer reads the declaration view of a loaded document and reports the
// structural diagnostics found along the way.
type declarer struct {
	defaultMediaType string
	rep              *reporter
}

func newDeclarer(defaultMediaType string, rep *reporter) *declarer {
	return &declarer{defaultMediaType: defaultMediaType, rep: rep}
}

func (d *declarer) declare(api *API, root *yaml.Node) {
	if scalar(lookup(root, "title")) == "" {
		d.rep.errorf(CodeMissingTitle, root, "missing required title")
	}
	if uses := lookup(root, "uses"); uses != nil {
		d.rep.warnf(CodeUnsupportedFeature, uses, "libraries (uses) are not loaded")
	}

	types := lookup(root, "types")
	if types == nil {
		types = lookup(root, "schemas")
	}
	for _, entry := range namedEntries(types) {
		api.types = append(api.types, &TypeDeclaration{
			name:       entry.name,
			properties: d.properties(lookup(entry.value, "properties")),
		})
	}

	for _, entry := range namedEntries(lookup(root, "resourceTypes")) {
		rt := &ResourceTypeDeclaration{name: entry.name}
		d.expectMapping(entry.value, "resource type", entry.name)
		forEachPair(entry.value, func(key, value *yaml.Node) {
			if verb, _ := optionalName(key.Value); httputil.IsMethod(verb) {
				rt.methods = append(rt.methods, d.method(verb, value))
			}
		})
		api.resourceTypes = append(api.resourceTypes, rt)
	}

	for _, entry := range namedEntries(lookup(root, "traits")) {
		d.expectMapping(entry.value, "trait", entry.name)
		api.traits = append(api.traits, &TraitDeclaration{name: entry.name, decl: d.method("", entry.value)})
	}

	for _, entry := range namedEntries(lookup(root, "securitySchemes")) {
		scheme := &SecuritySchemeDeclaration{name: entry.name}
		if describedBy := lookup(entry.value, "describedBy"); describedBy != nil {
			scheme.describedBy = d.method("", describedBy)
		}
		api.securitySchemes = append(api.securitySchemes, scheme)
	}

	api.resources = d.resources(root, nil, api.resources)
}

// resources appends the resources below parent in pre-order.
func (d *declarer) resources(n *yaml.Node, parent *ResourceDeclaration, out []*ResourceDeclaration) []*ResourceDeclaration {
	forEachPair(n, func(key, value *yaml.Node) {
		if !isResourceKey(key.Value) {
			return
		}
		res := &ResourceDeclaration{relativeURI: key.Value, parent: parent}
		if !isNull(value) && !isMapping(value) {
			d.rep.errorf(CodeInvalidNode, value, "resource %s must be a mapping", res.AbsolutePath())
		}
		declared := lookup(value, "uriParameters")
		for _, name := range uriTemplateVars(key.Value) {
			if !hasKey(declared, name) {
				d.rep.infof(key, "URI parameter %q of %s is not declared; assuming a required string", name, res.AbsolutePath())
			}
		}
		forEachPair(value, func(k, v *yaml.Node) {
			if httputil.IsMethod(k.Value) {
				res.methods = append(res.methods, d.method(k.Value, v))
			}
		})
		out = append(out, res)
		out = d.resources(value, res, out)
	})
	return out
}

// method reads anything method-shaped.
func (d *declarer) method(verb string, n *yaml.Node) *MethodDeclaration {
	m := &MethodDeclaration{
		method:          verb,
		bodies:          d.bodies(lookup(n, "body")),
		queryParameters: d.parameters(lookup(n, "queryParameters")),
	}
	forEachPair(lookup(n, "responses"), func(key, value *yaml.Node) {
		if !httputil.ValidateStatusCode(key.Value) {
			d.rep.errorf(CodeInvalidStatusCode, key, "invalid status code %q", key.Value)
		}
		m.responses = append(m.responses, &ResponseDeclaration{
			code:   key.Value,
			bodies: d.bodies(lookup(value, "body")),
		})
	})
	return m
}

// bodies reads a body node: either keyed by media type, or a single body
// under the default media type.
func (d *declarer) bodies(n *yaml.Node) []*BodyDeclaration {
	if n == nil || isNull(n) {
		return nil
	}
	if !isMediaTypeKeyed(n) {
		return []*BodyDeclaration{{mediaType: d.defaultMediaType, properties: d.properties(lookup(n, "properties"))}}
	}
	var out []*BodyDeclaration
	forEachPair(n, func(key, value *yaml.Node) {
		out = append(out, &BodyDeclaration{mediaType: key.Value, properties: d.properties(lookup(value, "properties"))})
	})
	return out
}

// properties reads a properties mapping. A property is optional when it
// declares required: false, or has no required facet and its key ends in "?".
func (d *declarer) properties(n *yaml.Node) []Declaration {
	var out []Declaration
	forEachPair(n, func(key, value *yaml.Node) {
		name, optional := declaredName(key.Value, value)
		out = append(out, &PropertyDeclaration{
			name:       name,
			optional:   optional,
			properties: d.properties(lookup(value, "properties")),
			line:       key.Line,
		})
	})
	return out
}

// parameters reads a query parameter mapping.
func (d *declarer) parameters(n *yaml.Node) []Declaration {
	var out []Declaration
	forEachPair(n, func(key, value *yaml.Node) {
		name, optional := declaredName(key.Value, value)
		out = append(out, &ParameterDeclaration{name: name, optional: optional})
	})
	return out
}

func (d *declarer) expectMapping(n *yaml.Node, kind, name string) {
	if !isNull(n) && !isMapping(n) {
		d.rep.errorf(CodeInvalidNode, n, "%s %q must be a mapping", kind, name)
	}
}

// isMediaTypeKeyed reports whether a body mapping is keyed by media type.
func isMediaTypeKeyed(n *yaml.Node) bool {
	keyed := false
	forEachPair(n, func(key, _ *yaml.Node) {
		if httputil.IsMediaType(key.Value) {
			keyed = true
		}
	})
	return keyed
}

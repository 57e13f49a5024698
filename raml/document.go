package raml

import (
	"regexp"
	"strings"

	"github.com/erraggy/raml2obj/internal/httputil"
	"go.yaml.in/yaml/v4"
)

var uriTemplateVar = regexp.MustCompile(`\{([^{}]+)\}`)

// uriTemplateVars returns the variable names of a URI template in order.
func uriTemplateVars(uri string) []string {
	var names []string
	for _, m := range uriTemplateVar.FindAllStringSubmatch(uri, -1) {
		names = append(names, strings.TrimPrefix(m[1], "+"))
	}
	return names
}

// documentBuilder converts the expanded node tree into a Document.
type documentBuilder struct {
	defaultMediaType string
}

func newDocumentBuilder(defaultMediaType string) *documentBuilder {
	if defaultMediaType == "" {
		defaultMediaType = DefaultMediaType
	}
	return &documentBuilder{defaultMediaType: defaultMediaType}
}

func (b *documentBuilder) document(root *yaml.Node) *Document {
	doc := &Document{
		Title:       scalar(lookup(root, "title")),
		Description: scalar(lookup(root, "description")),
		Version:     scalar(lookup(root, "version")),
		BaseURI:     scalar(lookup(root, "baseUri")),
		MediaType:   stringList(lookup(root, "mediaType")),
		SecuredBy:   anyList(lookup(root, "securedBy")),
	}

	var implicit []string
	for _, name := range uriTemplateVars(doc.BaseURI) {
		if name != "version" {
			implicit = append(implicit, name)
		}
	}
	doc.BaseURIParameters = b.uriParameters(lookup(root, "baseUriParameters"), implicit)

	doc.Protocols = protocols(lookup(root, "protocols"), doc.BaseURI)

	for _, item := range sequenceItems(lookup(root, "documentation")) {
		doc.Documentation = append(doc.Documentation, &DocumentationSection{
			Title:   scalar(lookup(item, "title")),
			Content: scalar(lookup(item, "content")),
		})
	}

	types := lookup(root, "types")
	if types == nil {
		types = lookup(root, "schemas")
	}
	if entries := namedEntries(types); len(entries) > 0 {
		doc.Types = NewObject()
		for _, entry := range entries {
			doc.Types.Set(entry.name, toValue(entry.value, entry.name))
		}
	}

	if entries := namedEntries(lookup(root, "traits")); len(entries) > 0 {
		doc.Traits = NewMethods()
		for _, entry := range entries {
			doc.Traits.Set(entry.name, b.method("", entry.value))
		}
	}

	if entries := namedEntries(lookup(root, "resourceTypes")); len(entries) > 0 {
		doc.ResourceTypes = NewResourceTypes()
		for _, entry := range entries {
			doc.ResourceTypes.Set(entry.name, b.resourceType(entry.name, entry.value))
		}
	}

	if entries := namedEntries(lookup(root, "securitySchemes")); len(entries) > 0 {
		doc.SecuritySchemes = NewSecuritySchemes()
		for _, entry := range entries {
			doc.SecuritySchemes.Set(entry.name, b.securityScheme(entry.name, entry.value))
		}
	}

	doc.Resources = b.resources(root)
	return doc
}

func (b *documentBuilder) resources(n *yaml.Node) []*Resource {
	var out []*Resource
	forEachPair(n, func(key, value *yaml.Node) {
		if isResourceKey(key.Value) {
			out = append(out, b.resource(key.Value, value))
		}
	})
	return out
}

func (b *documentBuilder) resource(relativeURI string, n *yaml.Node) *Resource {
	res := &Resource{
		RelativeURI: relativeURI,
		DisplayName: scalar(lookup(n, "displayName")),
		Description: scalar(lookup(n, "description")),
		Type:        toValue(lookup(n, "type"), "type"),
		Is:          anyList(lookup(n, "is")),
		SecuredBy:   anyList(lookup(n, "securedBy")),
	}
	if res.DisplayName == "" {
		res.DisplayName = relativeURI
	}
	res.URIParameters = b.uriParameters(lookup(n, "uriParameters"), uriTemplateVars(relativeURI))

	forEachPair(n, func(key, value *yaml.Node) {
		if !httputil.IsMethod(key.Value) {
			return
		}
		if res.Methods == nil {
			res.Methods = NewMethods()
		}
		res.Methods.Set(key.Value, b.method(key.Value, value))
	})

	res.Resources = b.resources(n)
	return res
}

// method builds a resource method, trait, or describedBy block.
func (b *documentBuilder) method(verb string, n *yaml.Node) *Method {
	m := &Method{
		Method:          verb,
		DisplayName:     scalar(lookup(n, "displayName")),
		Description:     scalar(lookup(n, "description")),
		Usage:           scalar(lookup(n, "usage")),
		Is:              anyList(lookup(n, "is")),
		SecuredBy:       anyList(lookup(n, "securedBy")),
		Protocols:       protocols(lookup(n, "protocols"), ""),
		Headers:         toObject(lookup(n, "headers"), "headers"),
		QueryParameters: toObject(lookup(n, "queryParameters"), "queryParameters"),
		Body:            b.body(lookup(n, "body")),
	}
	forEachPair(lookup(n, "responses"), func(key, value *yaml.Node) {
		if m.Responses == nil {
			m.Responses = NewResponses()
		}
		m.Responses.Set(key.Value, &Response{
			Code:        key.Value,
			Description: scalar(lookup(value, "description")),
			Headers:     toObject(lookup(value, "headers"), "headers"),
			Body:        b.body(lookup(value, "body")),
		})
	})
	return m
}

// body returns media type to body descriptor. Bodies that are not keyed by
// media type are filed under the default media type.
func (b *documentBuilder) body(n *yaml.Node) *Object {
	if n == nil || isNull(n) {
		return nil
	}
	out := NewObject()
	if !isMediaTypeKeyed(n) {
		out.Set(b.defaultMediaType, toValue(n, "body"))
		return out
	}
	forEachPair(n, func(key, value *yaml.Node) {
		out.Set(key.Value, toValue(value, "body"))
	})
	return out
}

func (b *documentBuilder) resourceType(name string, n *yaml.Node) *ResourceType {
	rt := &ResourceType{
		Name:        name,
		DisplayName: scalar(lookup(n, "displayName")),
		Description: scalar(lookup(n, "description")),
		Usage:       scalar(lookup(n, "usage")),
	}
	rt.URIParameters = toObject(lookup(n, "uriParameters"), "uriParameters")
	forEachPair(n, func(key, value *yaml.Node) {
		verb, _ := optionalName(key.Value)
		if !httputil.IsMethod(verb) {
			return
		}
		if rt.Methods == nil {
			rt.Methods = NewMethods()
		}
		rt.Methods.Set(verb, b.method(verb, value))
	})
	return rt
}

func (b *documentBuilder) securityScheme(name string, n *yaml.Node) *SecurityScheme {
	scheme := &SecurityScheme{
		Name:        name,
		Type:        scalar(lookup(n, "type")),
		DisplayName: scalar(lookup(n, "displayName")),
		Description: scalar(lookup(n, "description")),
		Settings:    toObject(lookup(n, "settings"), "settings"),
	}
	if describedBy := lookup(n, "describedBy"); describedBy != nil {
		scheme.DescribedBy = b.method("", describedBy)
	}
	return scheme
}

// uriParameters builds the named URI parameters of a resource or base URI.
// Every parameter is an Object with name, displayName, type and required;
// template variables without a declaration get a required string parameter.
func (b *documentBuilder) uriParameters(declared *yaml.Node, implicit []string) *Object {
	params := NewObject()
	forEachPair(declared, func(key, value *yaml.Node) {
		name, _ := declaredName(key.Value, value)
		params.Set(name, uriParameter(name, value))
	})
	for _, name := range implicit {
		if _, ok := params.Get(name); !ok {
			params.Set(name, uriParameter(name, nil))
		}
	}
	if params.Len() == 0 {
		return nil
	}
	return params
}

func uriParameter(name string, n *yaml.Node) *Object {
	param := NewObject()
	param.Set("name", name)
	param.Set("displayName", name)
	param.Set("type", "string")
	param.Set("required", true)

	switch {
	case isMapping(n):
		forEachPair(n, func(key, value *yaml.Node) {
			param.Set(key.Value, toValue(value, key.Value))
		})
	case !isNull(n):
		// Type shorthand: "id: integer".
		param.Set("type", toValue(n, "type"))
	}
	return param
}

// protocols returns the declared protocols upper-cased, or the scheme of
// baseURI when none are declared.
func protocols(n *yaml.Node, baseURI string) []string {
	declared := stringList(n)
	if len(declared) == 0 {
		switch {
		case strings.HasPrefix(baseURI, "https://"):
			return []string{"HTTPS"}
		case strings.HasPrefix(baseURI, "http://"):
			return []string{"HTTP"}
		}
		return nil
	}
	out := make([]string, len(declared))
	for i, p := range declared {
		out[i] = upperString(p)
	}
	return out
}

// sequenceItems returns the items of a sequence node.
func sequenceItems(n *yaml.Node) []*yaml.Node {
	n = deref(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	return n.Content
}

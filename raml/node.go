package raml

import (
	"strings"

	"go.yaml.in/yaml/v4"
)

// Mapping keys whose children are named declarations; a trailing "?" on
// those child keys marks the declaration optional and is not part of the name.
var declarationMaps = map[string]bool{
	"properties":        true,
	"queryParameters":   true,
	"headers":           true,
	"uriParameters":     true,
	"baseUriParameters": true,
}

// deref follows alias nodes and unwraps document nodes.
func deref(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.AliasNode:
			n = n.Alias
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		default:
			return n
		}
	}
	return nil
}

func isMapping(n *yaml.Node) bool {
	n = deref(n)
	return n != nil && n.Kind == yaml.MappingNode
}

func isSequence(n *yaml.Node) bool {
	n = deref(n)
	return n != nil && n.Kind == yaml.SequenceNode
}

func isNull(n *yaml.Node) bool {
	n = deref(n)
	return n == nil || (n.Kind == yaml.ScalarNode && (n.Tag == "!!null" || (n.Value == "" && n.Style == 0)))
}

// forEachPair calls fn for every key/value pair of a mapping node.
func forEachPair(n *yaml.Node, fn func(key, value *yaml.Node)) {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		fn(n.Content[i], deref(n.Content[i+1]))
	}
}

// lookup returns the value stored under key in a mapping node, or nil.
func lookup(n *yaml.Node, key string) *yaml.Node {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return deref(n.Content[i+1])
		}
	}
	return nil
}

// scalar returns the value of a scalar node, or "" for anything else.
func scalar(n *yaml.Node) string {
	n = deref(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return ""
	}
	return n.Value
}

// optionalName strips the trailing "?" of an optional declaration key.
func optionalName(key string) (string, bool) {
	if name, ok := strings.CutSuffix(key, "?"); ok && name != "" {
		return name, true
	}
	return key, false
}

// declaredName resolves the name and optionality of a property or parameter.
// An explicit required facet wins over the "?" suffix, which then stays part
// of the name.
func declaredName(key string, value *yaml.Node) (string, bool) {
	switch strings.ToLower(scalar(lookup(value, "required"))) {
	case "true":
		return key, false
	case "false":
		return key, true
	}
	return optionalName(key)
}

// stringList reads a scalar or a sequence of scalars.
func stringList(n *yaml.Node) []string {
	n = deref(n)
	if n == nil {
		return nil
	}
	switch n.Kind {
	case yaml.ScalarNode:
		if v := scalar(n); v != "" {
			return []string{v}
		}
	case yaml.SequenceNode:
		out := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if v := scalar(item); v != "" {
				out = append(out, v)
			}
		}
		return out
	}
	return nil
}

// anyList converts a scalar or sequence to a slice of values.
func anyList(n *yaml.Node) []any {
	n = deref(n)
	if isNull(n) {
		return nil
	}
	if n.Kind == yaml.SequenceNode {
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			out = append(out, toValue(item, ""))
		}
		return out
	}
	return []any{toValue(n, "")}
}

// toValue converts a node into the plain value tree used by Document:
// mappings become *Object, sequences []any, scalars their decoded value.
// parentKey is the mapping key the node was found under.
func toValue(n *yaml.Node, parentKey string) any {
	n = deref(n)
	if n == nil {
		return nil
	}
	switch n.Kind {
	case yaml.MappingNode:
		obj := NewObject()
		stripOptional := declarationMaps[parentKey]
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			if stripOptional {
				key, _ = declaredName(key, n.Content[i+1])
			}
			obj.Set(key, toValue(n.Content[i+1], key))
		}
		return obj
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			out = append(out, toValue(item, parentKey))
		}
		return out
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return n.Value
		}
		return v
	}
	return nil
}

// toObject converts a mapping node to an *Object, or returns nil.
func toObject(n *yaml.Node, parentKey string) *Object {
	if !isMapping(n) {
		return nil
	}
	obj, _ := toValue(n, parentKey).(*Object)
	return obj
}

// cloneNode deep-copies a node tree. Aliases are expanded so the copy
// never shares structure with the original.
func cloneNode(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	if n.Kind == yaml.AliasNode {
		return cloneNode(n.Alias)
	}
	out := *n
	out.Anchor = ""
	if len(n.Content) > 0 {
		out.Content = make([]*yaml.Node, len(n.Content))
		for i, c := range n.Content {
			out.Content[i] = cloneNode(c)
		}
	}
	return &out
}

// ensureMapping turns an empty scalar ("get:" with no body) into an empty
// mapping so that templates can be merged into it.
func ensureMapping(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && isNull(n) {
		n.Kind = yaml.MappingNode
		n.Tag = "!!map"
		n.Value = ""
		n.Style = 0
		n.Content = nil
	}
}

func newScalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// setPair sets key to value on a mapping node, replacing an existing pair.
func setPair(n *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			n.Content[i+1] = value
			return
		}
	}
	n.Content = append(n.Content, newScalar(key), value)
}

// removePair deletes key from a mapping node.
func removePair(n *yaml.Node, key string) {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			n.Content = append(n.Content[:i], n.Content[i+2:]...)
			return
		}
	}
}

// namedNode is an entry of a named declaration section.
type namedNode struct {
	name  string
	key   *yaml.Node
	value *yaml.Node
}

// namedEntries reads a declaration section: a mapping of name to definition,
// or (RAML 0.8 style) a sequence of such mappings.
func namedEntries(n *yaml.Node) []namedNode {
	n = deref(n)
	if n == nil {
		return nil
	}
	var out []namedNode
	collect := func(key, value *yaml.Node) {
		out = append(out, namedNode{name: key.Value, key: key, value: value})
	}
	switch n.Kind {
	case yaml.MappingNode:
		forEachPair(n, collect)
	case yaml.SequenceNode:
		for _, item := range n.Content {
			forEachPair(item, collect)
		}
	}
	return out
}

// isResourceKey reports whether a mapping key introduces a nested resource.
func isResourceKey(key string) bool {
	return strings.HasPrefix(key, "/")
}

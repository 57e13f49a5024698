package raml

import (
	"maps"
	"regexp"
	"strings"

	"github.com/erraggy/raml2obj/internal/httputil"
	"go.yaml.in/yaml/v4"
)

var (
	placeholderPattern = regexp.MustCompile(`<<\s*([A-Za-z_][A-Za-z0-9_]*)\s*((?:\|\s*!\w+\s*)*)>>`)
	transformerPattern = regexp.MustCompile(`!(\w+)`)
)

// maxTemplateDepth bounds resource types that inherit from other resource types.
const maxTemplateDepth = 16

// expander applies resource types and traits to the live resource tree.
//
// Template content never overrides what the resource or method declares
// itself: mappings merge recursively, scalars already present win, and "is"
// lists are unioned.
type expander struct {
	root          *yaml.Node
	rep           *reporter
	log           Logger
	resourceTypes map[string]*yaml.Node
	traits        map[string]*yaml.Node
}

func newExpander(root *yaml.Node, rep *reporter, log Logger) *expander {
	e := &expander{
		root:          root,
		rep:           rep,
		log:           log,
		resourceTypes: make(map[string]*yaml.Node),
		traits:        make(map[string]*yaml.Node),
	}
	for _, entry := range namedEntries(lookup(root, "resourceTypes")) {
		e.resourceTypes[entry.name] = entry.value
	}
	for _, entry := range namedEntries(lookup(root, "traits")) {
		e.traits[entry.name] = entry.value
	}
	return e
}

func (e *expander) expand() {
	e.resources(e.root, "")
}

func (e *expander) resources(parent *yaml.Node, parentPath string) {
	forEachPair(parent, func(key, value *yaml.Node) {
		if !isResourceKey(key.Value) || value == nil {
			return
		}
		ensureMapping(value)
		if value.Kind == yaml.MappingNode {
			e.resource(value, parentPath+key.Value)
		}
	})
}

func (e *expander) resource(r *yaml.Node, absPath string) {
	if ref := lookup(r, "type"); ref != nil {
		e.applyResourceType(r, r, ref, absPath, 0)
	}

	resourceIs := lookup(r, "is")
	forEachPair(r, func(key, value *yaml.Node) {
		if !httputil.IsMethod(key.Value) || value == nil {
			return
		}
		ensureMapping(value)
		if value.Kind != yaml.MappingNode {
			return
		}
		var refs []*yaml.Node
		refs = append(refs, refList(lookup(value, "is"))...)
		refs = append(refs, refList(resourceIs)...)
		e.applyTraits(value, refs, absPath, key.Value)
	})

	e.resources(r, absPath)
}

// applyResourceType merges the resource type named by ref into dst. res is
// the resource being expanded; it decides which optional methods apply.
func (e *expander) applyResourceType(dst, res, ref *yaml.Node, absPath string, depth int) {
	name, params := templateRef(ref)
	if name == "" {
		e.rep.errorf(CodeInvalidNode, ref, "resource type reference must be a name or a single-key mapping")
		return
	}
	def, ok := e.resourceTypes[name]
	if !ok {
		e.rep.errorf(CodeUnknownResourceType, ref, "unknown resource type %q", name)
		return
	}
	if depth >= maxTemplateDepth {
		e.rep.errorf(CodeInvalidNode, ref, "resource type %q nests too deeply", name)
		return
	}

	tmpl := cloneNode(def)
	ensureMapping(tmpl)
	if tmpl.Kind != yaml.MappingNode {
		e.rep.errorf(CodeInvalidNode, def, "resource type %q must be a mapping", name)
		return
	}
	removePair(tmpl, "usage")
	keepApplicableMethods(tmpl, res)

	vars := templateVars(params, absPath)
	forEachPair(tmpl, func(key, value *yaml.Node) {
		if httputil.IsMethod(key.Value) {
			methodVars := copyVars(vars)
			methodVars["methodName"] = key.Value
			e.substitute(value, methodVars)
			return
		}
		e.substitute(key, vars)
		e.substitute(value, vars)
	})

	if nested := lookup(tmpl, "type"); nested != nil {
		removePair(tmpl, "type")
		e.applyResourceType(tmpl, res, nested, absPath, depth+1)
	}

	mergeNodes(dst, tmpl)
	e.log.Debug("applied resource type", "resource", absPath, "type", name)
}

// applyTraits merges each referenced trait into the method node m.
func (e *expander) applyTraits(m *yaml.Node, refs []*yaml.Node, absPath, verb string) {
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		name, params := templateRef(ref)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		def, ok := e.traits[name]
		if !ok {
			e.rep.errorf(CodeUnknownTrait, ref, "unknown trait %q", name)
			continue
		}
		tmpl := cloneNode(def)
		ensureMapping(tmpl)
		if tmpl.Kind != yaml.MappingNode {
			e.rep.errorf(CodeInvalidNode, def, "trait %q must be a mapping", name)
			continue
		}
		removePair(tmpl, "usage")

		vars := templateVars(params, absPath)
		vars["methodName"] = verb
		e.substitute(tmpl, vars)

		mergeNodes(m, tmpl)
		e.log.Debug("applied trait", "resource", absPath, "method", verb, "trait", name)
	}
}

// substitute replaces <<name | !transformer>> placeholders in every scalar
// below n, keys included.
func (e *expander) substitute(n *yaml.Node, vars map[string]string) {
	if n == nil {
		return
	}
	if n.Kind != yaml.ScalarNode {
		for _, child := range n.Content {
			e.substitute(child, vars)
		}
		return
	}
	if !strings.Contains(n.Value, "<<") {
		return
	}
	out := placeholderPattern.ReplaceAllStringFunc(n.Value, func(match string) string {
		sub := placeholderPattern.FindStringSubmatch(match)
		value, ok := vars[sub[1]]
		if !ok {
			e.rep.errorf(CodeMissingParameter, n, "no value for template parameter %q", sub[1])
			return match
		}
		for _, t := range transformerPattern.FindAllStringSubmatch(sub[2], -1) {
			transformed, ok := transform(t[1], value)
			if !ok {
				e.rep.errorf(CodeInvalidNode, n, "unknown parameter transformer !%s", t[1])
				continue
			}
			value = transformed
		}
		return value
	})
	if out != n.Value {
		n.Value = out
		if n.Style == 0 {
			// Let the substituted text resolve to its own scalar type.
			n.Tag = ""
		}
	}
}

// keepApplicableMethods drops optional template methods ("get?") the
// resource does not declare and renames the rest to their plain verb.
func keepApplicableMethods(tmpl, res *yaml.Node) {
	kept := make([]*yaml.Node, 0, len(tmpl.Content))
	for i := 0; i+1 < len(tmpl.Content); i += 2 {
		key, value := tmpl.Content[i], tmpl.Content[i+1]
		if verb, optional := optionalName(key.Value); optional && httputil.IsMethod(verb) {
			if !hasKey(res, verb) {
				continue
			}
			key.Value = verb
		}
		kept = append(kept, key, value)
	}
	tmpl.Content = kept
}

// mergeNodes merges the mapping src into dst without overriding dst.
func mergeNodes(dst, src *yaml.Node) {
	for i := 0; i+1 < len(src.Content); i += 2 {
		key, value := src.Content[i], src.Content[i+1]
		idx := keyIndex(dst, key.Value)
		if idx < 0 {
			dst.Content = append(dst.Content, key, value)
			continue
		}
		current := dst.Content[idx+1]
		switch {
		case isMapping(current) && isMapping(value):
			mergeNodes(deref(current), deref(value))
		case isNull(current) && !isNull(value):
			dst.Content[idx+1] = value
		case key.Value == "is" && isSequence(current) && isSequence(value):
			unionRefs(deref(current), deref(value))
		}
	}
}

// keyIndex finds key in a mapping, treating "name?" and "name" as the same key.
func keyIndex(n *yaml.Node, key string) int {
	name, _ := optionalName(key)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if other, _ := optionalName(n.Content[i].Value); other == name {
			return i
		}
	}
	return -1
}

func hasKey(n *yaml.Node, key string) bool {
	n = deref(n)
	return n != nil && n.Kind == yaml.MappingNode && keyIndex(n, key) >= 0
}

// unionRefs appends the template references of src missing from dst.
func unionRefs(dst, src *yaml.Node) {
	present := make(map[string]bool, len(dst.Content))
	for _, item := range dst.Content {
		name, _ := templateRef(item)
		present[name] = true
	}
	for _, item := range src.Content {
		if name, _ := templateRef(item); !present[name] {
			dst.Content = append(dst.Content, item)
			present[name] = true
		}
	}
}

// templateRef reads a resource type or trait reference: either a plain
// name or a single-key mapping of name to parameters.
func templateRef(n *yaml.Node) (string, map[string]string) {
	n = deref(n)
	if n == nil {
		return "", nil
	}
	switch n.Kind {
	case yaml.ScalarNode:
		return scalar(n), nil
	case yaml.MappingNode:
		if len(n.Content) < 2 {
			return "", nil
		}
		params := make(map[string]string)
		forEachPair(n.Content[1], func(key, value *yaml.Node) {
			params[key.Value] = scalar(value)
		})
		return n.Content[0].Value, params
	}
	return "", nil
}

// refList returns the items of an "is" value.
func refList(n *yaml.Node) []*yaml.Node {
	n = deref(n)
	switch {
	case n == nil || isNull(n):
		return nil
	case n.Kind == yaml.SequenceNode:
		return n.Content
	default:
		return []*yaml.Node{n}
	}
}

// templateVars returns the parameters available to a template applied at absPath.
func templateVars(params map[string]string, absPath string) map[string]string {
	vars := make(map[string]string, len(params)+3)
	maps.Copy(vars, params)
	vars["resourcePath"] = absPath
	vars["resourcePathName"] = resourcePathName(absPath)
	return vars
}

func copyVars(vars map[string]string) map[string]string {
	out := make(map[string]string, len(vars)+1)
	maps.Copy(out, vars)
	return out
}

// resourcePathName returns the rightmost path segment that is not a URI
// parameter: "/users/{id}" gives "users".
func resourcePathName(absPath string) string {
	segments := strings.Split(absPath, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if s := segments[i]; s != "" && !strings.Contains(s, "{") {
			return s
		}
	}
	return ""
}

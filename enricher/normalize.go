package enricher

import (
	"github.com/erraggy/raml2obj/raml"
)

// Normalizer rewrites optional property and parameter descriptors into the
// uniform {type, isOptional: true} shape.
//
// Problems with the document shape never fail normalization; they are
// logged at warn level and the affected value is left as is or wrapped
// around a nil type.
type Normalizer struct {
	// Logger receives warnings about missing or malformed values. Nil discards them.
	Logger raml.Logger
}

func (n *Normalizer) log() raml.Logger {
	if n == nil || n.Logger == nil {
		return raml.NopLogger{}
	}
	return n.Logger
}

// ProcessProps normalizes the property decl names inside container's
// "properties" Object, then recurses into decl's nested declarations using
// the property itself as the next container. It returns container.
//
// An optional property holding a bare type tag is replaced with
// {type: <tag>, isOptional: true}; an optional property that is already an
// Object gains isOptional: true and keeps everything else. Applying it twice
// gives the same result as applying it once.
func (n *Normalizer) ProcessProps(container any, decl raml.Declaration) any {
	obj, ok := raml.AsObject(container)
	if !ok {
		n.log().Warn("property container is not an object", "property", decl.Name())
		return container
	}
	propsValue, _ := obj.Get("properties")
	props, ok := raml.AsObject(propsValue)
	if !ok {
		n.log().Warn("property container has no properties", "property", decl.Name())
		return container
	}

	name := decl.Name()
	if decl.IsOptional() {
		current, found := props.Get(name)
		if !found {
			n.log().Warn("property declaration has no value", "property", name)
		}
		props.Set(name, markOptional(current))
	}

	for _, nested := range decl.NestedProperties() {
		current, found := props.Get(name)
		if !found {
			n.log().Warn("property declaration has no value", "property", name, "nested", nested.Name())
			continue
		}
		props.Set(name, n.ProcessProps(current, nested))
	}
	return container
}

// ProcessTypes normalizes a single value, typically a query parameter. The
// result may be a new Object when value was a bare type tag, so callers must
// store the return value.
func (n *Normalizer) ProcessTypes(value any, decl raml.Declaration) any {
	if !decl.IsOptional() {
		return value
	}
	return markOptional(value)
}

// markOptional wraps a non-Object value as {type: value} and sets isOptional.
func markOptional(value any) *raml.Object {
	obj, ok := raml.AsObject(value)
	if !ok {
		obj = raml.ObjectFromPairs("type", value)
	}
	obj.Set("isOptional", true)
	return obj
}

var defaultNormalizer = &Normalizer{}

// ProcessProps normalizes decl within container without logging.
// See [Normalizer.ProcessProps].
func ProcessProps(container any, decl raml.Declaration) any {
	return defaultNormalizer.ProcessProps(container, decl)
}

// ProcessTypes normalizes a single value without logging.
// See [Normalizer.ProcessTypes].
func ProcessTypes(value any, decl raml.Declaration) any {
	return defaultNormalizer.ProcessTypes(value, decl)
}

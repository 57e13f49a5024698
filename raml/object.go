package raml

import (
	orderedmap "github.com/pb33f/ordered-map/v2"
)

// Object is an insertion-ordered JSON object.
//
// Every RAML mapping whose declaration order is observable downstream
// (types, parameters, bodies, properties) is emitted as an Object. Values are
// strings, numbers, booleans, nil, []any or nested *Object.
type Object = orderedmap.OrderedMap[string, any]

// Methods maps an HTTP verb to its Method, in declaration order.
type Methods = orderedmap.OrderedMap[string, *Method]

// Responses maps a status code to its Response, in declaration order.
type Responses = orderedmap.OrderedMap[string, *Response]

// ResourceTypes maps a resource type name to its template.
type ResourceTypes = orderedmap.OrderedMap[string, *ResourceType]

// SecuritySchemes maps a security scheme name to its description.
type SecuritySchemes = orderedmap.OrderedMap[string, *SecurityScheme]

// NewObject returns an empty Object.
func NewObject() *Object {
	return orderedmap.New[string, any]()
}

// NewMethods returns an empty Methods map.
func NewMethods() *Methods {
	return orderedmap.New[string, *Method]()
}

// NewResponses returns an empty Responses map.
func NewResponses() *Responses {
	return orderedmap.New[string, *Response]()
}

// AsObject reports whether v is a non-nil *Object and returns it.
func AsObject(v any) (*Object, bool) {
	obj, ok := v.(*Object)
	return obj, ok && obj != nil
}

// ObjectFromPairs builds an Object from alternating key-value arguments.
// It panics on an odd argument count or a non-string key; it is meant for
// literals in code and tests.
func ObjectFromPairs(kv ...any) *Object {
	if len(kv)%2 != 0 {
		panic("raml: ObjectFromPairs requires an even number of arguments")
	}
	obj := NewObject()
	for i := 0; i < len(kv); i += 2 {
		obj.Set(kv[i].(string), kv[i+1])
	}
	return obj
}

// Keys returns the keys of an ordered map in insertion order.
func Keys[V any](m *orderedmap.OrderedMap[string, V]) []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Values returns the values of an ordered map in insertion order.
func Values[V any](m *orderedmap.OrderedMap[string, V]) []V {
	if m == nil {
		return nil
	}
	values := make([]V, 0, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		values = append(values, pair.Value)
	}
	return values
}

// NewResourceTypes returns an empty ResourceTypes map.
func NewResourceTypes() *ResourceTypes {
	return orderedmap.New[string, *ResourceType]()
}

// NewSecuritySchemes returns an empty SecuritySchemes map.
func NewSecuritySchemes() *SecuritySchemes {
	return orderedmap.New[string, *SecurityScheme]()
}

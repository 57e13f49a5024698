package raml

import (
	"go.yaml.in/yaml/v4"
)

// API is a loaded RAML document.
//
// It exposes two views of the same source: the declaration accessors
// (Types, ResourceTypes, AllResources, SecuritySchemes, AllTraits), which
// report how things were declared, and [API.ToDocument], which produces the
// JSON-shaped tree.
type API struct {
	// SourcePath is the file path or URL the document was loaded from,
	// or "Load.raml" for in-memory sources.
	SourcePath string
	// Version is the RAML version from the header ("1.0", "0.8"), empty if missing.
	Version string

	root             *yaml.Node
	defaultMediaType string
	diagnostics      []Diagnostic

	types           []*TypeDeclaration
	resourceTypes   []*ResourceTypeDeclaration
	resources       []*ResourceDeclaration
	securitySchemes []*SecuritySchemeDeclaration
	traits          []*TraitDeclaration
}

// Errors returns every diagnostic reported while loading, warnings included.
func (a *API) Errors() []Diagnostic {
	return a.diagnostics
}

// Types returns the named type declarations in declaration order.
func (a *API) Types() []*TypeDeclaration { return a.types }

// ResourceTypes returns the resource type templates in declaration order.
func (a *API) ResourceTypes() []*ResourceTypeDeclaration { return a.resourceTypes }

// AllResources returns every resource of the tree in pre-order.
func (a *API) AllResources() []*ResourceDeclaration { return a.resources }

// SecuritySchemes returns the security scheme declarations.
func (a *API) SecuritySchemes() []*SecuritySchemeDeclaration { return a.securitySchemes }

// AllTraits returns the trait declarations.
func (a *API) AllTraits() []*TraitDeclaration { return a.traits }

// ToDocument builds a fresh JSON-shaped tree. Each call returns an
// independent tree; mutating one never affects another.
func (a *API) ToDocument() *Document {
	return newDocumentBuilder(a.defaultMediaType).document(a.root)
}

// Declaration is a property or parameter declaration.
//
// Leaf declarations return an empty NestedProperties slice.
type Declaration interface {
	Name() string
	IsOptional() bool
	NestedProperties() []Declaration
}

// PropertyDeclaration is a property of a type or body, possibly with
// nested properties of its own.
type PropertyDeclaration struct {
	name       string
	optional   bool
	properties []Declaration
	line       int
}

// NewPropertyDeclaration creates a property declaration. Used by callers that
// build documents in code.
func NewPropertyDeclaration(name string, optional bool, nested ...Declaration) *PropertyDeclaration {
	return &PropertyDeclaration{name: name, optional: optional, properties: nested}
}

// Name implements Declaration.
func (p *PropertyDeclaration) Name() string { return p.name }

// IsOptional implements Declaration.
func (p *PropertyDeclaration) IsOptional() bool { return p.optional }

// NestedProperties implements Declaration.
func (p *PropertyDeclaration) NestedProperties() []Declaration { return p.properties }

// Line returns the source line of the declaration (0 if unknown).
func (p *PropertyDeclaration) Line() int { return p.line }

// ParameterDeclaration is a query parameter declaration. Parameters never
// carry nested properties.
type ParameterDeclaration struct {
	name     string
	optional bool
}

// NewParameterDeclaration creates a parameter declaration.
func NewParameterDeclaration(name string, optional bool) *ParameterDeclaration {
	return &ParameterDeclaration{name: name, optional: optional}
}

// Name implements Declaration.
func (p *ParameterDeclaration) Name() string { return p.name }

// IsOptional implements Declaration.
func (p *ParameterDeclaration) IsOptional() bool { return p.optional }

// NestedProperties implements Declaration.
func (p *ParameterDeclaration) NestedProperties() []Declaration { return nil }

var (
	_ Declaration = (*PropertyDeclaration)(nil)
	_ Declaration = (*ParameterDeclaration)(nil)
)

// TypeDeclaration is a named entry of the root types section.
type TypeDeclaration struct {
	name       string
	properties []Declaration
}

// Name returns the type name.
func (t *TypeDeclaration) Name() string { return t.name }

// Properties returns the inline property declarations of the type.
func (t *TypeDeclaration) Properties() []Declaration { return t.properties }

// BodyDeclaration is the body of a method or response for one media type.
type BodyDeclaration struct {
	mediaType  string
	properties []Declaration
}

// Name returns the media type.
func (b *BodyDeclaration) Name() string { return b.mediaType }

// Properties returns the inline property declarations of the body.
func (b *BodyDeclaration) Properties() []Declaration { return b.properties }

// ResponseDeclaration is a response of a method declaration.
type ResponseDeclaration struct {
	code   string
	bodies []*BodyDeclaration
}

// Code returns the status code as written.
func (r *ResponseDeclaration) Code() string { return r.code }

// Bodies returns the response bodies.
func (r *ResponseDeclaration) Bodies() []*BodyDeclaration { return r.bodies }

// MethodDeclaration is anything method-shaped: a resource method, a
// resource type method, a trait, or a security scheme's describedBy block.
type MethodDeclaration struct {
	method          string
	bodies          []*BodyDeclaration
	responses       []*ResponseDeclaration
	queryParameters []Declaration
}

// Method returns the HTTP verb, or "" for traits and describedBy blocks.
func (m *MethodDeclaration) Method() string { return m.method }

// Bodies returns the request bodies.
func (m *MethodDeclaration) Bodies() []*BodyDeclaration { return m.bodies }

// Responses returns the responses.
func (m *MethodDeclaration) Responses() []*ResponseDeclaration { return m.responses }

// QueryParameters returns the query parameter declarations.
func (m *MethodDeclaration) QueryParameters() []Declaration { return m.queryParameters }

// ResourceTypeDeclaration is a resource type template.
type ResourceTypeDeclaration struct {
	name    string
	methods []*MethodDeclaration
}

// Name returns the resource type name.
func (r *ResourceTypeDeclaration) Name() string { return r.name }

// Methods returns the template's method declarations. Optional template
// methods ("get?") are reported under their plain verb.
func (r *ResourceTypeDeclaration) Methods() []*MethodDeclaration { return r.methods }

// TraitDeclaration is a trait.
type TraitDeclaration struct {
	name string
	decl *MethodDeclaration
}

// Name returns the trait name.
func (t *TraitDeclaration) Name() string { return t.name }

// Declaration returns the method-shaped body of the trait.
func (t *TraitDeclaration) Declaration() *MethodDeclaration { return t.decl }

// SecuritySchemeDeclaration is a security scheme.
type SecuritySchemeDeclaration struct {
	name        string
	describedBy *MethodDeclaration
}

// Name returns the scheme name.
func (s *SecuritySchemeDeclaration) Name() string { return s.name }

// DescribedBy returns the describedBy block, or nil when absent.
func (s *SecuritySchemeDeclaration) DescribedBy() *MethodDeclaration { return s.describedBy }

// ResourceDeclaration is a resource of the live tree, after resource types
// and traits have been applied.
type ResourceDeclaration struct {
	relativeURI string
	parent      *ResourceDeclaration
	methods     []*MethodDeclaration
}

// RelativeURI returns the resource key, e.g. "/{id}".
func (r *ResourceDeclaration) RelativeURI() string { return r.relativeURI }

// ParentResource returns the enclosing resource, or nil at the top level.
func (r *ResourceDeclaration) ParentResource() *ResourceDeclaration { return r.parent }

// Methods returns the method declarations of the resource.
func (r *ResourceDeclaration) Methods() []*MethodDeclaration { return r.methods }

// AbsolutePath returns the concatenated relative URIs from the root.
func (r *ResourceDeclaration) AbsolutePath() string {
	if r.parent == nil {
		return r.relativeURI
	}
	return r.parent.AbsolutePath() + r.relativeURI
}

package raml

// Document is the JSON-shaped tree of a RAML API description.
//
// It is produced by [API.ToDocument] and is the value the enricher mutates
// in place. Field names follow the RAML vocabulary so the marshaled form is
// what documentation templates expect.
type Document struct {
	Title             string                  `json:"title,omitempty"`
	Description       string                  `json:"description,omitempty"`
	Version           string                  `json:"version,omitempty"`
	BaseURI           string                  `json:"baseUri,omitempty"`
	BaseURIParameters *Object                 `json:"baseUriParameters,omitempty"`
	Protocols         []string                `json:"protocols,omitempty"`
	MediaType         []string                `json:"mediaType,omitempty"`
	SecuredBy         []any                   `json:"securedBy,omitempty"`
	Documentation     []*DocumentationSection `json:"documentation,omitempty"`
	Types             *Object                 `json:"types,omitempty"`
	Traits            *Methods                `json:"traits,omitempty"`
	ResourceTypes     *ResourceTypes          `json:"resourceTypes,omitempty"`
	SecuritySchemes   *SecuritySchemes        `json:"securitySchemes,omitempty"`
	Resources         []*Resource             `json:"resources,omitempty"`
}

// DocumentationSection is a top-level documentation chapter.
type DocumentationSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	// UniqueID is assigned by the enricher.
	UniqueID string `json:"uniqueId,omitempty"`
}

// Resource is a node of the resource tree.
type Resource struct {
	RelativeURI   string      `json:"relativeUri"`
	DisplayName   string      `json:"displayName,omitempty"`
	Description   string      `json:"description,omitempty"`
	Type          any         `json:"type,omitempty"`
	Is            []any       `json:"is,omitempty"`
	SecuredBy     []any       `json:"securedBy,omitempty"`
	URIParameters *Object     `json:"uriParameters,omitempty"`
	Methods       *Methods    `json:"methods,omitempty"`
	Resources     []*Resource `json:"resources,omitempty"`

	// Assigned by the enricher.
	ParentURL        string `json:"parentUrl"`
	UniqueID         string `json:"uniqueId"`
	AllURIParameters []any  `json:"allUriParameters"`
}

// FullPath returns the resource path from the API root. It is only
// meaningful after the enricher has set ParentURL.
func (r *Resource) FullPath() string {
	return r.ParentURL + r.RelativeURI
}

// Method returns the method for verb, or nil.
func (r *Resource) Method(verb string) *Method {
	if r.Methods == nil {
		return nil
	}
	m, _ := r.Methods.Get(verb)
	return m
}

// Child returns the direct child resource with the given relative URI, or nil.
func (r *Resource) Child(relativeURI string) *Resource {
	return findResource(r.Resources, relativeURI)
}

// Resource returns the top-level resource with the given relative URI, or nil.
func (d *Document) Resource(relativeURI string) *Resource {
	return findResource(d.Resources, relativeURI)
}

func findResource(resources []*Resource, relativeURI string) *Resource {
	for _, r := range resources {
		if r.RelativeURI == relativeURI {
			return r
		}
	}
	return nil
}

// Method is an HTTP method on a resource. Traits and the describedBy block
// of a security scheme share this shape.
type Method struct {
	Method          string     `json:"method,omitempty"`
	DisplayName     string     `json:"displayName,omitempty"`
	Description     string     `json:"description,omitempty"`
	Usage           string     `json:"usage,omitempty"`
	Is              []any      `json:"is,omitempty"`
	SecuredBy       []any      `json:"securedBy,omitempty"`
	Protocols       []string   `json:"protocols,omitempty"`
	Headers         *Object    `json:"headers,omitempty"`
	QueryParameters *Object    `json:"queryParameters,omitempty"`
	Body            *Object    `json:"body,omitempty"`
	Responses       *Responses `json:"responses,omitempty"`

	// AllURIParameters is shared with the owning resource after enrichment.
	AllURIParameters []any `json:"allUriParameters"`
}

// Response describes one status code of a method.
type Response struct {
	Code        string  `json:"code"`
	Description string  `json:"description,omitempty"`
	Headers     *Object `json:"headers,omitempty"`
	Body        *Object `json:"body,omitempty"`
}

// ResourceType is a reusable resource template.
type ResourceType struct {
	Name          string   `json:"name"`
	DisplayName   string   `json:"displayName,omitempty"`
	Description   string   `json:"description,omitempty"`
	Usage         string   `json:"usage,omitempty"`
	URIParameters *Object  `json:"uriParameters,omitempty"`
	Methods       *Methods `json:"methods,omitempty"`
}

// SecurityScheme describes an authentication mechanism.
type SecurityScheme struct {
	Name        string  `json:"name"`
	Type        string  `json:"type,omitempty"`
	DisplayName string  `json:"displayName,omitempty"`
	Description string  `json:"description,omitempty"`
	DescribedBy *Method `json:"describedBy,omitempty"`
	Settings    *Object `json:"settings,omitempty"`
}

// Method returns the template method for verb, or nil.
func (rt *ResourceType) Method(verb string) *Method {
	if rt.Methods == nil {
		return nil
	}
	m, _ := rt.Methods.Get(verb)
	return m
}

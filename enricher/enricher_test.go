package enricher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/erraggy/raml2obj/raml"
	"github.com/erraggy/raml2obj/ramlerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uriParam(name string) *raml.Object {
	return raml.ObjectFromPairs("name", name, "type", "string", "required", true)
}

func paramsOf(names ...string) *raml.Object {
	obj := raml.NewObject()
	for _, n := range names {
		obj.Set(n, uriParam(n))
	}
	return obj
}

func methodsOf(verbs ...string) *raml.Methods {
	m := raml.NewMethods()
	for _, v := range verbs {
		m.Set(v, &raml.Method{Method: v})
	}
	return m
}

// sampleTree builds /orgs/{org}/{repo} with a sibling /orgs/{org}/members
// and a parameterless /health.
func sampleTree() *raml.Document {
	repo := &raml.Resource{RelativeURI: "/{repo}", URIParameters: paramsOf("repo"), Methods: methodsOf("get", "delete")}
	members := &raml.Resource{RelativeURI: "/members", Methods: methodsOf("get")}
	org := &raml.Resource{
		RelativeURI:   "/{org}",
		URIParameters: paramsOf("org"),
		Methods:       methodsOf("get"),
		Resources:     []*raml.Resource{repo, members},
	}
	orgs := &raml.Resource{RelativeURI: "/orgs", Resources: []*raml.Resource{org}}
	health := &raml.Resource{RelativeURI: "/health"}
	return &raml.Document{Resources: []*raml.Resource{orgs, health}}
}

func paramNames(params []any) []string {
	var names []string
	for _, p := range params {
		obj, _ := raml.AsObject(p)
		name, _ := obj.Get("name")
		names = append(names, name.(string))
	}
	return names
}

func TestEnhancePropagatesURIParameters(t *testing.T) {
	doc := Enhance(sampleTree())

	orgs := doc.Resource("/orgs")
	org := orgs.Child("/{org}")
	repo := org.Child("/{repo}")
	members := org.Child("/members")
	health := doc.Resource("/health")

	assert.Equal(t, "", orgs.ParentURL)
	assert.Equal(t, "/orgs", org.ParentURL)
	assert.Equal(t, "/orgs/{org}", repo.ParentURL)

	assert.Equal(t, "orgs", orgs.UniqueID)
	assert.Equal(t, "orgs__org_", org.UniqueID)
	assert.Equal(t, "orgs__org___repo_", repo.UniqueID)
	assert.Equal(t, "orgs__org__members", members.UniqueID)
	assert.Equal(t, "health", health.UniqueID)

	assert.Empty(t, orgs.AllURIParameters)
	assert.NotNil(t, orgs.AllURIParameters, "every resource gets its own slice")
	assert.Equal(t, []string{"org"}, paramNames(org.AllURIParameters))
	assert.Equal(t, []string{"org", "repo"}, paramNames(repo.AllURIParameters))
	assert.Equal(t, []string{"org"}, paramNames(members.AllURIParameters), "siblings do not see each other's parameters")
	assert.Empty(t, health.AllURIParameters)

	// Inherited elements are the ancestor's own descriptors.
	orgParam, _ := org.URIParameters.Get("org")
	assert.Same(t, orgParam, repo.AllURIParameters[0])
}

func TestEnhanceMethodsShareResourceParameters(t *testing.T) {
	doc := Enhance(sampleTree())

	var check func(resources []*raml.Resource)
	check = func(resources []*raml.Resource) {
		for _, r := range resources {
			for _, m := range raml.Values(r.Methods) {
				assert.Equal(t, r.AllURIParameters, m.AllURIParameters, r.FullPath())
				if len(r.AllURIParameters) > 0 {
					assert.Same(t, &r.AllURIParameters[0], &m.AllURIParameters[0], "methods share the resource slice")
				}
			}
			check(r.Resources)
		}
	}
	check(doc.Resources)
}

func TestEnhanceParentSliceNotAliased(t *testing.T) {
	doc := Enhance(sampleTree())
	org := doc.Resource("/orgs").Child("/{org}")
	repo := org.Child("/{repo}")

	repo.AllURIParameters[0] = "mutated"
	orgParam, _ := org.URIParameters.Get("org")
	assert.Same(t, orgParam, org.AllURIParameters[0])
}

func TestEnhanceBaseURI(t *testing.T) {
	tests := []struct {
		name     string
		baseURI  string
		version  string
		expected string
	}{
		{"substituted", "https://api.example.com/{version}", "v1", "https://api.example.com/v1"},
		{"every occurrence", "https://{version}.example.com/{version}", "v2", "https://v2.example.com/v2"},
		{"no token", "https://api.example.com", "v1", "https://api.example.com"},
		{"other variables untouched", "https://{region}.example.com/{version}", "v1", "https://{region}.example.com/v1"},
		{"no version", "https://api.example.com/{version}", "", "https://api.example.com/{version}"},
		{"no base URI", "", "v1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Enhance(&raml.Document{BaseURI: tt.baseURI, Version: tt.version})
			assert.Equal(t, tt.expected, doc.BaseURI)
			assert.Equal(t, tt.version, doc.Version)
		})
	}
}

func TestEnhanceDocumentation(t *testing.T) {
	doc := Enhance(&raml.Document{Documentation: []*raml.DocumentationSection{
		{Title: "Getting Started!", Content: "..."},
		{Title: "FAQ", Content: "..."},
		nil,
	}})

	assert.Equal(t, "Getting-Started-", doc.Documentation[0].UniqueID)
	assert.Equal(t, "FAQ", doc.Documentation[1].UniqueID)
}

func TestEnhanceEmptyDocument(t *testing.T) {
	doc := &raml.Document{Title: "Empty"}
	assert.Same(t, doc, Enhance(doc))
	assert.Nil(t, Enhance(nil))
}

func TestEnhanceReturnsSameDocument(t *testing.T) {
	doc := sampleTree()
	enriched, err := (&Enricher{}).Enhance(doc)
	require.NoError(t, err)
	assert.Same(t, doc, enriched)
}

func TestEnhanceCollisions(t *testing.T) {
	collidingDoc := func() *raml.Document {
		return &raml.Document{Resources: []*raml.Resource{
			{RelativeURI: "/a-b"},
			{RelativeURI: "/a_b"},
		}}
	}

	t.Run("warns by default", func(t *testing.T) {
		logger := newRecordingLogger()
		doc, err := (&Enricher{Logger: logger}).Enhance(collidingDoc())
		require.NoError(t, err)
		assert.Equal(t, "a_b", doc.Resources[1].UniqueID)

		warnings := logger.at("warn")
		require.Len(t, warnings, 1)
		assert.Equal(t, "resource identifier collision", warnings[0].msg)
		assert.Equal(t, "a_b", warnings[0].attrs["uniqueId"])
	})

	t.Run("strict mode errors", func(t *testing.T) {
		doc, err := (&Enricher{StrictIDs: true}).Enhance(collidingDoc())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ramlerrors.ErrIdentifierCollision))

		var collErr *ramlerrors.CollisionError
		require.True(t, errors.As(err, &collErr))
		assert.Equal(t, "a_b", collErr.ID)
		assert.Equal(t, "/a-b", collErr.First)
		assert.Equal(t, "/a_b", collErr.Second)
		assert.Equal(t, "a_b", doc.Resources[1].UniqueID, "the document is still enriched")
	})

	t.Run("distinct ids pass strict mode", func(t *testing.T) {
		_, err := (&Enricher{StrictIDs: true}).Enhance(sampleTree())
		assert.NoError(t, err)
	})
}

func TestEnhanceJSONShape(t *testing.T) {
	result, err := Parse(context.Background(), "#%RAML 1.0\ntitle: T\n/users:\n  get:\n  /{id}:\n    get:\n")
	require.NoError(t, err)

	data, err := json.Marshal(result.Document.Resources)
	require.NoError(t, err)

	var resources []struct {
		AllURIParameters json.RawMessage `json:"allUriParameters"`
		Methods          map[string]struct {
			AllURIParameters json.RawMessage `json:"allUriParameters"`
		} `json:"methods"`
		Resources []struct {
			AllURIParameters json.RawMessage `json:"allUriParameters"`
			Methods          map[string]struct {
				AllURIParameters json.RawMessage `json:"allUriParameters"`
			} `json:"methods"`
		} `json:"resources"`
	}
	require.NoError(t, json.Unmarshal(data, &resources))
	require.Len(t, resources, 1)

	users := resources[0]
	assert.JSONEq(t, `[]`, string(users.AllURIParameters))
	assert.JSONEq(t, `[]`, string(users.Methods["get"].AllURIParameters), "methods carry the resource's parameters even when empty")

	require.Len(t, users.Resources, 1)
	id := users.Resources[0]
	assert.JSONEq(t, string(id.AllURIParameters), string(id.Methods["get"].AllURIParameters))
	assert.Contains(t, string(id.Methods["get"].AllURIParameters), `"name":"id"`)
}

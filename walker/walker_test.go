package walker

import (
	"context"
	"errors"
	"testing"

	"github.com/erraggy/raml2obj/enricher"
	"github.com/erraggy/raml2obj/internal/testutil"
	"github.com/erraggy/raml2obj/raml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadUsers(t *testing.T) *raml.Document {
	t.Helper()
	result, err := enricher.Parse(context.Background(), testutil.UsersRAML)
	require.NoError(t, err)
	require.Empty(t, result.Errors())
	return result.Document
}

// resourcePaths walks doc and returns the full path of each visited resource.
func resourcePaths(t *testing.T, doc *raml.Document, opts ...Option) []string {
	t.Helper()
	var paths []string
	opts = append(opts, WithResourceHandler(func(wc *WalkContext, _ *raml.Resource) Action {
		paths = append(paths, wc.ResourcePath)
		return Continue
	}))
	require.NoError(t, Walk(doc, opts...))
	return paths
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action Action
		want   string
		valid  bool
	}{
		{Continue, "Continue", true},
		{SkipChildren, "SkipChildren", true},
		{Stop, "Stop", true},
		{Action(7), "Action(7)", false},
		{Action(-1), "Action(-1)", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.action.String())
		assert.Equal(t, tt.valid, tt.action.IsValid())
	}
}

func TestWalkNilDocument(t *testing.T) {
	err := Walk(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil Document")
}

func TestWalkResourceOrder(t *testing.T) {
	doc := loadUsers(t)

	var jsonPaths, ids []string
	err := Walk(doc, WithResourceHandler(func(wc *WalkContext, r *raml.Resource) Action {
		assert.True(t, wc.InResourceScope())
		assert.False(t, wc.InMethodScope())
		assert.Equal(t, r.FullPath(), wc.ResourcePath)
		jsonPaths = append(jsonPaths, wc.JSONPath)
		ids = append(ids, r.UniqueID)
		return Continue
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"$.resources[0]",
		"$.resources[0].resources[0]",
		"$.resources[0].resources[0].resources[0]",
		"$.resources[1]",
		"$.resources[2]",
	}, jsonPaths)
	assert.Equal(t, []string{"users", "users__id_", "users__id__posts", "groups", "health"}, ids)
	assert.Equal(t,
		[]string{"/users", "/users/{id}", "/users/{id}/posts", "/groups", "/health"},
		resourcePaths(t, doc))
}

func TestWalkDeclarations(t *testing.T) {
	doc := loadUsers(t)

	var types, traits, resourceTypes, schemes, docs []string
	err := Walk(doc,
		WithDocumentationHandler(func(wc *WalkContext, s *raml.DocumentationSection) Action {
			docs = append(docs, wc.JSONPath+" "+s.UniqueID)
			return Continue
		}),
		WithTypeHandler(func(wc *WalkContext, _ any) Action {
			assert.True(t, wc.IsDeclaration)
			types = append(types, wc.Name)
			return Continue
		}),
		WithTraitHandler(func(wc *WalkContext, _ *raml.Method) Action {
			traits = append(traits, wc.JSONPath)
			return Continue
		}),
		WithResourceTypeHandler(func(wc *WalkContext, rt *raml.ResourceType) Action {
			resourceTypes = append(resourceTypes, rt.Name)
			return Continue
		}),
		WithSecuritySchemeHandler(func(wc *WalkContext, s *raml.SecurityScheme) Action {
			schemes = append(schemes, wc.Name+" "+s.Type)
			return Continue
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"$.documentation[0] Getting-Started-", "$.documentation[1] Rate-Limits"}, docs)
	assert.Equal(t, []string{"User"}, types)
	assert.Equal(t, []string{"$.traits['paged']"}, traits)
	assert.Equal(t, []string{"collection"}, resourceTypes)
	assert.Equal(t, []string{"oauth_2_0 OAuth 2.0"}, schemes)
}

func TestWalkParameterLocations(t *testing.T) {
	doc := loadUsers(t)

	type seen struct{ location, name, resource, method string }
	var params []seen
	var declared []string
	err := Walk(doc, WithParameterHandler(func(wc *WalkContext, _ any) Action {
		if wc.IsDeclaration {
			declared = append(declared, wc.JSONPath)
			return Continue
		}
		params = append(params, seen{wc.Location, wc.Name, wc.ResourcePath, wc.Method})
		return Continue
	}))
	require.NoError(t, err)

	assert.Equal(t, []seen{
		{LocationBaseURI, "region", "", ""},
		{LocationQuery, "page", "/users", "get"},
		{LocationQuery, "limit", "/users", "get"},
		{LocationURI, "id", "/users/{id}", ""},
		{LocationQuery, "page", "/users/{id}/posts", "get"},
		{LocationQuery, "limit", "/users/{id}/posts", "get"},
		{LocationQuery, "page", "/groups", "get"},
		{LocationQuery, "limit", "/groups", "get"},
	}, params)
	assert.Contains(t, declared, "$.traits['paged'].queryParameters['page']")
	assert.Contains(t, declared, "$.securitySchemes['oauth_2_0'].describedBy.headers['Authorization']")
}

func TestWalkResponsesAndBodies(t *testing.T) {
	doc := loadUsers(t)

	var responses, bodies []string
	err := Walk(doc,
		WithResponseHandler(func(wc *WalkContext, resp *raml.Response) Action {
			assert.True(t, wc.InResponseScope())
			assert.Equal(t, wc.StatusCode, resp.Code)
			responses = append(responses, wc.JSONPath)
			return Continue
		}),
		WithBodyHandler(func(wc *WalkContext, _ any) Action {
			if !wc.IsDeclaration {
				bodies = append(bodies, wc.ResourcePath+" "+wc.Method+" "+wc.StatusCode+" "+wc.Name)
			}
			return Continue
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"$.securitySchemes['oauth_2_0'].describedBy.responses['401']",
		"$.resources[0].methods['get'].responses['200']",
		"$.resources[0].resources[0].methods['get'].responses['200']",
	}, responses)
	assert.ElementsMatch(t, []string{
		"/users get 200 application/json",
		"/users/{id} get 200 application/json",
		"/groups post  application/json",
	}, bodies)
}

func TestWalkSkipChildren(t *testing.T) {
	doc := loadUsers(t)

	var methods []string
	err := Walk(doc,
		WithResourceHandler(func(wc *WalkContext, _ *raml.Resource) Action {
			if wc.ResourcePath == "/users" {
				return SkipChildren
			}
			return Continue
		}),
		WithMethodHandler(func(wc *WalkContext, _ *raml.Method) Action {
			if !wc.IsDeclaration {
				methods = append(methods, wc.ResourcePath+" "+wc.Method)
			}
			return Continue
		}),
	)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/groups get", "/groups post", "/health get"}, methods)
}

func TestWalkStop(t *testing.T) {
	doc := loadUsers(t)

	var visited, post []string
	err := Walk(doc,
		WithResourceHandler(func(wc *WalkContext, _ *raml.Resource) Action {
			visited = append(visited, wc.ResourcePath)
			if wc.ResourcePath == "/users/{id}" {
				return Stop
			}
			return Continue
		}),
		WithResourcePostHandler(func(wc *WalkContext, _ *raml.Resource) {
			post = append(post, wc.ResourcePath)
		}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"/users", "/users/{id}"}, visited)
	assert.Empty(t, post)
}

func TestWalkDocumentHandlerSkip(t *testing.T) {
	doc := loadUsers(t)

	called := 0
	paths := resourcePaths(t, doc, WithDocumentHandler(func(wc *WalkContext, d *raml.Document) Action {
		called++
		assert.Equal(t, "$", wc.JSONPath)
		assert.Equal(t, "Users API", d.Title)
		return SkipChildren
	}))
	assert.Equal(t, 1, called)
	assert.Empty(t, paths)
}

func TestWalkPostHandlerOrder(t *testing.T) {
	doc := loadUsers(t)

	var post []string
	err := Walk(doc, WithResourcePostHandler(func(wc *WalkContext, _ *raml.Resource) {
		post = append(post, wc.ResourcePath)
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"/users/{id}/posts", "/users/{id}", "/users", "/groups", "/health"}, post)
}

func TestWalkParentTracking(t *testing.T) {
	doc := loadUsers(t)

	var checked bool
	err := Walk(doc,
		WithParentTracking(),
		WithBodyHandler(func(wc *WalkContext, _ any) Action {
			if wc.ResourcePath != "/users/{id}" {
				return Continue
			}
			checked = true

			resp, ok := wc.ParentResponse()
			require.True(t, ok)
			assert.Equal(t, "200", resp.Code)

			m, ok := wc.ParentMethod()
			require.True(t, ok)
			assert.Same(t, doc.Resources[0].Resources[0].Method("get"), m)

			res, ok := wc.ParentResource()
			require.True(t, ok)
			assert.Equal(t, "/{id}", res.RelativeURI)

			// response, method, /{id}, /users, document
			assert.Equal(t, 5, wc.Depth())
			ancestors := wc.Ancestors()
			require.Len(t, ancestors, 5)
			assert.Equal(t, "$", ancestors[4].JSONPath)
			assert.Same(t, doc, ancestors[4].Node)
			return Continue
		}),
	)
	require.NoError(t, err)
	assert.True(t, checked)
}

func TestWalkWithoutParentTracking(t *testing.T) {
	doc := loadUsers(t)

	err := Walk(doc, WithMethodHandler(func(wc *WalkContext, _ *raml.Method) Action {
		assert.Nil(t, wc.Parent)
		assert.Zero(t, wc.Depth())
		_, ok := wc.ParentResource()
		assert.False(t, ok)
		return Continue
	}))
	require.NoError(t, err)
}

func TestWalkMaxDepth(t *testing.T) {
	doc := loadUsers(t)

	assert.Equal(t, []string{"/users", "/groups", "/health"}, resourcePaths(t, doc, WithMaxDepth(1)))
	assert.Len(t, resourcePaths(t, doc, WithMaxDepth(0)), 5, "non-positive depth keeps the default")
}

func TestWalkMutation(t *testing.T) {
	doc := loadUsers(t)

	err := Walk(doc, WithResourceHandler(func(_ *WalkContext, r *raml.Resource) Action {
		r.Description = "seen " + r.UniqueID
		return Continue
	}))
	require.NoError(t, err)
	assert.Equal(t, "seen users__id__posts", doc.Resources[0].Resources[0].Resources[0].Description)
}

func TestWalkUserContext(t *testing.T) {
	doc := loadUsers(t)

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "value")
	err := Walk(doc,
		WithUserContext(ctx),
		WithResourceHandler(func(wc *WalkContext, _ *raml.Resource) Action {
			assert.Equal(t, "value", wc.Context().Value(key{}))
			return Stop
		}),
	)
	require.NoError(t, err)

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	err = Walk(doc, WithUserContext(canceled))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestWalkContextDefaults(t *testing.T) {
	wc := &WalkContext{}
	assert.Equal(t, context.Background(), wc.Context())

	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, 1)
	wc2 := wc.WithContext(ctx)
	assert.Equal(t, 1, wc2.Context().Value(key{}))
	assert.Equal(t, context.Background(), wc.Context(), "original is unchanged")
}

func TestWalkWithOptions(t *testing.T) {
	t.Run("file path", func(t *testing.T) {
		path := testutil.WriteTempRAML(t, testutil.UsersRAML)
		var ids []string
		err := WalkWithOptions(
			WithFilePath(path),
			WithResourceHandler(func(_ *WalkContext, r *raml.Resource) Action {
				ids = append(ids, r.UniqueID)
				return Continue
			}),
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"users", "users__id_", "users__id__posts", "groups", "health"}, ids)
	})

	t.Run("document", func(t *testing.T) {
		count := 0
		err := WalkWithOptions(
			WithDocument(loadUsers(t)),
			WithResourceHandler(func(_ *WalkContext, _ *raml.Resource) Action {
				count++
				return Continue
			}),
		)
		require.NoError(t, err)
		assert.Equal(t, 5, count)
	})

	t.Run("no source", func(t *testing.T) {
		err := WalkWithOptions()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no input source")
	})

	t.Run("two sources", func(t *testing.T) {
		err := WalkWithOptions(WithFilePath("api.raml"), WithDocument(&raml.Document{}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "multiple input sources")
	})

	t.Run("missing file", func(t *testing.T) {
		err := WalkWithOptions(WithFilePath("/nonexistent/api.raml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "walker: failed to parse")
	})
}

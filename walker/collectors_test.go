package walker

import (
	"testing"

	"github.com/erraggy/raml2obj/raml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectResources(t *testing.T) {
	doc := loadUsers(t)

	collector, err := CollectResources(doc)
	require.NoError(t, err)
	require.Len(t, collector.All, 5)

	posts := collector.ByID["users__id__posts"]
	require.NotNil(t, posts)
	assert.Equal(t, "/users/{id}/posts", posts.FullPath)
	assert.Equal(t, "$.resources[0].resources[0].resources[0]", posts.JSONPath)
	assert.Equal(t, 3, posts.Depth)
	assert.Equal(t, []string{"get"}, posts.Methods)

	users := collector.ByPath["/users"]
	require.NotNil(t, users)
	assert.Same(t, doc.Resources[0], users.Resource)
	assert.Equal(t, 1, users.Depth)
	assert.Equal(t, []string{"get"}, users.Methods, "optional template methods are not applied")

	groups := collector.ByPath["/groups"]
	require.NotNil(t, groups)
	assert.ElementsMatch(t, []string{"get", "post"}, groups.Methods)
}

func TestCollectResourcesBeforeEnrichment(t *testing.T) {
	doc := &raml.Document{Resources: []*raml.Resource{{RelativeURI: "/a"}}}

	collector, err := CollectResources(doc)
	require.NoError(t, err)
	assert.Len(t, collector.All, 1)
	assert.Contains(t, collector.ByPath, "/a")
	assert.Empty(t, collector.ByID)
}

func TestCollectMethods(t *testing.T) {
	doc := loadUsers(t)

	collector, err := CollectMethods(doc)
	require.NoError(t, err)

	assert.Len(t, collector.All, 6, "resource type methods are excluded")
	assert.Len(t, collector.ByVerb["get"], 5)

	posts := collector.ByVerb["post"]
	require.Len(t, posts, 1)
	assert.Equal(t, "/groups", posts[0].ResourcePath)
	assert.Equal(t, "/groups", posts[0].Resource.RelativeURI)
	assert.Equal(t, "$.resources[1].methods['post']", posts[0].JSONPath)

	byID := collector.ByResource["/users/{id}"]
	require.Len(t, byID, 1)
	assert.Same(t, doc.Resources[0].Resources[0].Method("get"), byID[0].Method)
}

func TestCollectorsNilDocument(t *testing.T) {
	_, err := CollectResources(nil)
	assert.Error(t, err)
	_, err = CollectMethods(nil)
	assert.Error(t, err)
}

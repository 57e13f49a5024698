package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

// TestFixturesAreValidYAML verifies that the RAML fixtures parse as YAML and
// start with a RAML 1.0 header.
func TestFixturesAreValidYAML(t *testing.T) {
	for name, content := range map[string]string{
		"minimal": MinimalRAML,
		"users":   UsersRAML,
	} {
		t.Run(name, func(t *testing.T) {
			assert.True(t, strings.HasPrefix(content, "#%RAML 1.0\n"))

			var root map[string]any
			require.NoError(t, yaml.Unmarshal([]byte(content), &root))
			assert.NotEmpty(t, root["title"])
		})
	}
}

// TestWriteTempRAML verifies that content lands in an api.raml file.
func TestWriteTempRAML(t *testing.T) {
	path := WriteTempRAML(t, MinimalRAML)

	assert.FileExists(t, path)
	assert.Equal(t, "api.raml", filepath.Base(path))
	assert.True(t, filepath.IsAbs(path), "Path should be absolute")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, MinimalRAML, string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

// TestWriteTempTree verifies that nested files are created below one directory.
func TestWriteTempTree(t *testing.T) {
	dir := WriteTempTree(t, map[string]string{
		"api.raml":          MinimalRAML,
		"types/user.raml":   "type: object\n",
		"examples/one.json": `{"id": 1}`,
	})

	assert.FileExists(t, filepath.Join(dir, "api.raml"))
	assert.FileExists(t, filepath.Join(dir, "types", "user.raml"))

	data, err := os.ReadFile(filepath.Join(dir, "examples", "one.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 1}`, string(data))
}

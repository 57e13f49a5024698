// Package testutil provides test utilities and RAML fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/raml2obj/internal/fileutil"
)

// MinimalRAML is the smallest document the loader accepts without errors.
const MinimalRAML = `#%RAML 1.0
title: Minimal API
`

// UsersRAML is a complete document exercising every construct the loader
// and enricher handle: documentation, security schemes, types with optional
// and nested properties, traits, a resource type with an optional method,
// nested resources and URI parameters.
const UsersRAML = `#%RAML 1.0
title: Users API
version: v2
baseUri: https://api.example.com/{version}/{region}
mediaType: application/json
protocols: [ https ]
documentation:
  - title: Getting Started!
    content: Sign up for a key.
  - title: Rate Limits
    content: 100 requests per minute.
securitySchemes:
  oauth_2_0:
    type: OAuth 2.0
    describedBy:
      headers:
        Authorization:
          type: string
      queryParameters:
        access_token?:
          type: string
      responses:
        401:
          description: Bad token.
          body:
            application/json:
              properties:
                error: string
                detail?: string
    settings:
      accessTokenUri: https://auth.example.com/token
      authorizationGrants: [ client_credentials ]
types:
  User:
    type: object
    properties:
      id: integer
      name: string
      email?: string
      address?:
        type: object
        properties:
          street: string
          zip?: string
traits:
  paged:
    usage: Apply to list operations
    queryParameters:
      page?:
        type: integer
      limit:
        type: integer
        required: false
resourceTypes:
  collection:
    usage: A collection of <<resourcePathName>>
    description: The <<resourcePathName>> collection
    get:
      description: List <<resourcePathName>>
      is: [ paged ]
    post?:
      description: Create a <<resourcePathName | !singularize>>
      body:
        properties:
          name: string
          nickname?: string
securedBy: [ oauth_2_0 ]
/users:
  type: collection
  get:
    responses:
      200:
        body:
          application/json:
            properties:
              total: integer
              next?: string
  /{id}:
    uriParameters:
      id:
        type: integer
    get:
      responses:
        200:
          body:
            application/json:
              type: User
    /posts:
      get:
        is: [ paged ]
/groups:
  type: collection
  post:
/health:
  get:
`

// WriteTempRAML writes content to api.raml in a temporary directory.
// Returns the path to the file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempRAML(t *testing.T, content string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), "api.raml")
	if err := os.WriteFile(tmpFile, []byte(content), fileutil.OwnerReadWrite); err != nil {
		t.Fatalf("Failed to write temporary RAML file: %v", err)
	}
	return tmpFile
}

// WriteTempTree writes files (relative path to content) below a new
// temporary directory and returns the directory.
func WriteTempTree(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), fileutil.OwnerReadWriteExecute); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), fileutil.OwnerReadWrite); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

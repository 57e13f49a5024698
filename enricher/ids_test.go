package enricher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeResourceID(t *testing.T) {
	tests := []struct {
		name        string
		parentURL   string
		relativeURI string
		expected    string
	}{
		{"top level", "", "/users", "users"},
		{"child with parameter", "/users", "/{id}", "users__id_"},
		{"trailing slash parent", "/a/", "{id}", "a__id_"},
		{"deep", "/users/{id}", "/posts", "users__id__posts"},
		{"dots and dashes", "", "/v1.0/user-groups", "v1_0_user_groups"},
		{"underscores kept", "", "/snake_case", "snake_case"},
		{"only separators", "", "/", ""},
		{"non-ASCII letters replaced", "", "/café", "caf_"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MakeResourceID(tt.parentURL, tt.relativeURI))
		})
	}
}

func TestMakeResourceIDDeterministic(t *testing.T) {
	assert.Equal(t, MakeResourceID("/a/", "{id}"), MakeResourceID("/a/", "{id}"))
	assert.Equal(t, MakeResourceID("/a", "/b"), MakeResourceID("", "/a/b"), "only the concatenated path matters")
}

func TestMakeDocID(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Getting Started!", "Getting-Started-"},
		{"Overview", "Overview"},
		{"  Leading spaces", "--Leading-spaces"},
		{"snake_case title", "snake_case-title"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.expected, MakeDocID(tt.title))
		})
	}
}

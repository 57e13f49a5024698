package mcpserver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withConfig replaces fields of the package configuration for one test.
func withConfig(t *testing.T, mutate func(c *serverConfig)) {
	t.Helper()
	saved := *cfg
	mutate(cfg)
	t.Cleanup(func() { *cfg = saved })
}

func TestPaginate(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}

	tests := []struct {
		name   string
		items  []int
		offset int
		limit  int
		want   []int
	}{
		{"default limit returns all when under 100", items, 0, 0, []int{0, 1, 2, 3, 4}},
		{"explicit limit", items, 0, 2, []int{0, 1}},
		{"offset only", items, 2, 0, []int{2, 3, 4}},
		{"offset and limit", items, 1, 2, []int{1, 2}},
		{"offset at end", items, 4, 2, []int{4}},
		{"offset beyond end", items, 5, 2, nil},
		{"negative offset", items, -1, 2, nil},
		{"limit exceeds remaining", items, 3, 10, []int{3, 4}},
		{"nil slice", nil, 0, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paginate(tt.items, tt.offset, tt.limit))
		})
	}
}

func TestPaginateMaxLimit(t *testing.T) {
	withConfig(t, func(c *serverConfig) { c.MaxLimit = 3 })
	assert.Equal(t, []int{0, 1, 2}, paginate([]int{0, 1, 2, 3, 4}, 0, 50))
}

func TestDetailLimit(t *testing.T) {
	withConfig(t, func(c *serverConfig) { c.WalkDetailLimit = 7 })
	assert.Equal(t, 7, detailLimit(0))
	assert.Equal(t, 3, detailLimit(3))
}

func TestMakeSlice(t *testing.T) {
	assert.Nil(t, makeSlice[string](0))
	s := makeSlice[string](4)
	assert.NotNil(t, s)
	assert.Empty(t, s)
	assert.Equal(t, 4, cap(s))
}

func TestSanitizeError(t *testing.T) {
	assert.Empty(t, sanitizeError(nil))
	msg := sanitizeError(errors.New("raml: failed to read file: open /home/alice/api/users.raml: no such file"))
	assert.Equal(t, "raml: failed to read file: open <path>: no such file", msg)
	assert.Equal(t, "plain message", sanitizeError(errors.New("plain message")))
}

func TestErrResult(t *testing.T) {
	result := errResult(errors.New("bad /tmp/x.raml"))
	require.True(t, result.IsError)
	require.Len(t, result.Content, 1)
}

func TestGroupAndSort(t *testing.T) {
	items := [][]string{{"get"}, {"get", "post"}, {"delete"}, {"get"}, {"post"}}
	groups := groupAndSort(items, func(keys []string) []string { return keys })
	assert.Equal(t, []groupCount{
		{Key: "get", Count: 3},
		{Key: "post", Count: 2},
		{Key: "delete", Count: 1},
	}, groups)
}

func TestValidateGroupBy(t *testing.T) {
	allowed := []string{"method", "segment"}
	assert.NoError(t, validateGroupBy("", true, allowed))
	assert.NoError(t, validateGroupBy("Method", false, allowed))
	assert.ErrorContains(t, validateGroupBy("method", true, allowed), "cannot use both")
	assert.ErrorContains(t, validateGroupBy("tag", false, allowed), "valid values: method, segment")
}

func TestNewServer(t *testing.T) {
	assert.NotNil(t, newServer())
}

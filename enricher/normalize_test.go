package enricher

import (
	"encoding/json"
	"testing"

	"github.com/erraggy/raml2obj/raml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func container(props *raml.Object) *raml.Object {
	return raml.ObjectFromPairs("type", "object", "properties", props)
}

func TestProcessPropsUpgradesBareTags(t *testing.T) {
	c := container(raml.ObjectFromPairs("id", "integer", "nick", "string"))

	out := ProcessProps(c, raml.NewPropertyDeclaration("nick", true))

	assert.Same(t, c, out, "the container is mutated in place and returned")
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"id": "integer",
			"nick": {"type": "string", "isOptional": true}
		}
	}`, toJSON(t, out))
}

func TestProcessPropsKeepsObjects(t *testing.T) {
	c := container(raml.ObjectFromPairs(
		"address", raml.ObjectFromPairs(
			"type", "object",
			"description", "Where",
			"properties", raml.ObjectFromPairs("street", "string"),
		),
	))

	ProcessProps(c, raml.NewPropertyDeclaration("address", true))

	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"address": {
				"type": "object",
				"description": "Where",
				"properties": {"street": "string"},
				"isOptional": true
			}
		}
	}`, toJSON(t, c))
}

func TestProcessPropsRequiredLeftAlone(t *testing.T) {
	c := container(raml.ObjectFromPairs("id", "integer"))
	ProcessProps(c, raml.NewPropertyDeclaration("id", false))
	assert.JSONEq(t, `{"type":"object","properties":{"id":"integer"}}`, toJSON(t, c))
}

func TestProcessPropsNested(t *testing.T) {
	c := container(raml.ObjectFromPairs(
		"address", raml.ObjectFromPairs(
			"type", "object",
			"properties", raml.ObjectFromPairs(
				"street", "string",
				"zip", "string",
				"geo", raml.ObjectFromPairs(
					"properties", raml.ObjectFromPairs("lat", "number"),
				),
			),
		),
	))
	decl := raml.NewPropertyDeclaration("address", false,
		raml.NewPropertyDeclaration("street", false),
		raml.NewPropertyDeclaration("zip", true),
		raml.NewPropertyDeclaration("geo", true,
			raml.NewPropertyDeclaration("lat", true),
		),
	)

	ProcessProps(c, decl)

	assert.JSONEq(t, `{
		"type": "object",
		"properties": {
			"address": {
				"type": "object",
				"properties": {
					"street": "string",
					"zip": {"type": "string", "isOptional": true},
					"geo": {
						"properties": {"lat": {"type": "number", "isOptional": true}},
						"isOptional": true
					}
				}
			}
		}
	}`, toJSON(t, c))
}

func TestProcessPropsIdempotent(t *testing.T) {
	decl := raml.NewPropertyDeclaration("address", true,
		raml.NewPropertyDeclaration("zip", true),
	)
	build := func() *raml.Object {
		return container(raml.ObjectFromPairs(
			"address", raml.ObjectFromPairs(
				"type", "object",
				"properties", raml.ObjectFromPairs("zip", "string"),
			),
		))
	}

	once := ProcessProps(build(), decl)
	twice := ProcessProps(ProcessProps(build(), decl), decl)
	assert.JSONEq(t, toJSON(t, once), toJSON(t, twice))
}

func TestProcessTypes(t *testing.T) {
	optional := raml.NewParameterDeclaration("page", true)
	required := raml.NewParameterDeclaration("page", false)

	t.Run("bare tag is wrapped", func(t *testing.T) {
		out := ProcessTypes("integer", optional)
		assert.JSONEq(t, `{"type":"integer","isOptional":true}`, toJSON(t, out))
	})

	t.Run("object keeps its fields", func(t *testing.T) {
		in := raml.ObjectFromPairs("type", "integer", "minimum", 1)
		out := ProcessTypes(in, optional)
		assert.Same(t, in, out)
		assert.JSONEq(t, `{"type":"integer","minimum":1,"isOptional":true}`, toJSON(t, out))
	})

	t.Run("required is unchanged", func(t *testing.T) {
		assert.Equal(t, "integer", ProcessTypes("integer", required))
	})

	t.Run("idempotent", func(t *testing.T) {
		once := ProcessTypes("integer", optional)
		twice := ProcessTypes(ProcessTypes("integer", optional), optional)
		assert.JSONEq(t, toJSON(t, once), toJSON(t, twice))
	})
}

func TestProcessPropsDegradation(t *testing.T) {
	t.Run("missing optional property is wrapped and logged", func(t *testing.T) {
		logger := newRecordingLogger()
		n := &Normalizer{Logger: logger}
		c := container(raml.NewObject())

		n.ProcessProps(c, raml.NewPropertyDeclaration("ghost", true))

		assert.JSONEq(t, `{"type":"object","properties":{"ghost":{"type":null,"isOptional":true}}}`, toJSON(t, c))
		warnings := logger.at("warn")
		require.Len(t, warnings, 1)
		assert.Equal(t, "property declaration has no value", warnings[0].msg)
		assert.Equal(t, "ghost", warnings[0].attrs["property"])
	})

	t.Run("non-object container is returned unchanged", func(t *testing.T) {
		logger := newRecordingLogger()
		n := &Normalizer{Logger: logger}

		assert.Equal(t, "string", n.ProcessProps("string", raml.NewPropertyDeclaration("x", true)))
		assert.Nil(t, n.ProcessProps(nil, raml.NewPropertyDeclaration("x", true)))
		assert.Len(t, logger.at("warn"), 2)
	})

	t.Run("container without properties is returned unchanged", func(t *testing.T) {
		logger := newRecordingLogger()
		n := &Normalizer{Logger: logger}
		c := raml.ObjectFromPairs("type", "object")

		n.ProcessProps(c, raml.NewPropertyDeclaration("x", true))
		assert.JSONEq(t, `{"type":"object"}`, toJSON(t, c))
		assert.Len(t, logger.at("warn"), 1)
	})

	t.Run("nil normalizer does not log", func(t *testing.T) {
		var n *Normalizer
		c := container(raml.NewObject())
		n.ProcessProps(c, raml.NewPropertyDeclaration("ghost", true))
		assert.JSONEq(t, `{"type":"object","properties":{"ghost":{"type":null,"isOptional":true}}}`, toJSON(t, c))
	})
}

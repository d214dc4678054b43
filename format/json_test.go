package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/level3/level3/resource"
)

const exampleJSONRequest = `{
    "value": "bar",
    "bar": 1,
    "foo": true,
    "none": null,
    "float": 1.5,
    "array": {"bar": "foo"},
    "arrayOfarrays": [{"bar": "foo"}, {"foo": "bar"}],
    "arrayOfstrings": ["foo", "bar"],
    "unicode": "café"
}`

func TestJSONFromRequest(t *testing.T) {
	for _, f := range []*JSONFormatter{NewHALJSON(), NewSirenJSON()} {
		t.Run(f.ContentType(), func(t *testing.T) {
			m, err := f.FromRequest([]byte(exampleJSONRequest))
			require.NoError(t, err)
			assert.Equal(t, 9, m.Len())
			assert.Equal(t, []string{"value", "bar", "foo", "none", "float", "array", "arrayOfarrays", "arrayOfstrings", "unicode"}, m.Keys())

			bar, _ := m.Get("bar")
			assert.Equal(t, 1.0, bar)
			none, ok := m.Get("none")
			assert.True(t, ok)
			assert.Nil(t, none)
			array, _ := m.Get("array")
			assert.Equal(t, resource.MapOf("bar", "foo"), array)
			arrayOfarrays, _ := m.Get("arrayOfarrays")
			assert.Equal(t, []any{resource.MapOf("bar", "foo"), resource.MapOf("foo", "bar")}, arrayOfarrays)
			arrayOfstrings, _ := m.Get("arrayOfstrings")
			assert.Equal(t, []any{"foo", "bar"}, arrayOfstrings)
			unicode, _ := m.Get("unicode")
			assert.Equal(t, "café", unicode)
		})
	}
}

func TestJSONFromRequestEmpty(t *testing.T) {
	for _, in := range []string{"", "  \n"} {
		m, err := NewHALJSON().FromRequest([]byte(in))
		require.NoError(t, err)
		assert.Equal(t, 0, m.Len())
	}

	m, err := NewHALJSON().FromRequest([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestJSONFromRequestInvalid(t *testing.T) {
	for name, in := range map[string]string{
		"Garbage":        "foo",
		"Array":          `["foo"]`,
		"String":         `"foo"`,
		"Unterminated":   `{"foo": "bar"`,
		"MissingValue":   `{"foo": }`,
		"TrailingData":   `{"foo": "bar"} x`,
		"TrailingObject": `{"foo": "bar"}{}`,
	} {
		t.Run(name, func(t *testing.T) {
			m, err := NewHALJSON().FromRequest([]byte(in))
			assert.Nil(t, m)
			require.Error(t, err)
			assert.Equal(t, ErrMalformed, errors.Cause(err))
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	data := resource.MapOf(
		"value", "bar",
		"bar", 1.0,
		"foo", true,
		"none", nil,
	)

	f := NewHALJSON()
	for _, pretty := range []bool{false, true} {
		buf, err := f.ToResponse(resource.New().SetData(data), pretty)
		require.NoError(t, err)

		m, err := f.FromRequest(buf)
		require.NoError(t, err)
		assert.Equal(t, data, m)
	}
}

func TestJSONNumbersDecodeAsFloat64(t *testing.T) {
	f := NewHALJSON()
	buf, err := f.ToResponse(resource.New().SetData(resource.MapOf(
		"int", 1,
		"int64", int64(-7),
		"uint8", uint8(200),
		"float", 2.5,
		"nested", resource.MapOf("n", []any{3}),
	)), false)
	require.NoError(t, err)
	assert.Equal(t, `{"int":1,"int64":-7,"uint8":200,"float":2.5,"nested":{"n":[3]}}`, string(buf))

	m, err := f.FromRequest(buf)
	require.NoError(t, err)
	assert.Equal(t, resource.MapOf(
		"int", 1.0,
		"int64", -7.0,
		"uint8", 200.0,
		"float", 2.5,
		"nested", resource.MapOf("n", []any{3.0}),
	), m)
}

func TestJSONPretty(t *testing.T) {
	for _, f := range []*JSONFormatter{NewHALJSON(), NewSirenJSON()} {
		t.Run(f.ContentType(), func(t *testing.T) {
			compact, err := f.ToResponse(exampleResource(t), false)
			require.NoError(t, err)

			pretty, err := f.ToResponse(exampleResource(t), true)
			require.NoError(t, err)
			assert.True(t, strings.Contains(string(pretty), "\n    \""), string(pretty))

			var buf bytes.Buffer
			require.NoError(t, json.Compact(&buf, pretty))
			assert.Equal(t, string(compact), buf.String())
		})
	}
}

func TestJSONDoesNotEscapeHTML(t *testing.T) {
	buf, err := NewHALJSON().ToResponse(resource.New().AddData("q", "a<b&c"), false)
	require.NoError(t, err)
	assert.Equal(t, `{"q":"a<b&c"}`, string(buf))
}

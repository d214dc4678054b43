package document

import (
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/level3/level3/resource"
)

const exampleDocument = `
id: "1"
uri: /articles/1
title: Hello
repositoryKey: blog/articles
cache: 60
lastUpdate: 2020-01-02T03:04:05Z
data:
  title: Hello
  views: 10
  ratio: 0.5
  published: true
  tags: [a, b]
  meta:
    z: 1
    a: 2
links:
  edit: {href: "/articles/1/edit{?v}", templated: true, title: Edit}
  related:
    - href: /articles/2
    - href: /articles/3
linked:
  author: {uri: /people/9, data: {name: Dan}}
  comments:
    - uri: /comments/5
embedded:
  stats:
    data: {reads: 3}
`

func TestDecode(t *testing.T) {
	r, err := Decode(strings.NewReader(exampleDocument))
	require.NoError(t, err)

	assert.Equal(t, "1", r.ID())
	assert.Equal(t, "/articles/1", r.URI())
	assert.Equal(t, "Hello", r.Title())
	assert.Equal(t, []string{"blog", "articles"}, r.Class())
	assert.Equal(t, 60, r.Cache())
	assert.True(t, time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC).Equal(r.LastUpdate()))

	assert.Equal(t, resource.MapOf(
		"title", "Hello",
		"views", 10,
		"ratio", 0.5,
		"published", true,
		"tags", []any{"a", "b"},
		"meta", resource.MapOf("z", 1, "a", 2),
	), r.Data())

	assert.Equal(t, []string{"edit", "related"}, r.AllLinks().Names())
	edit, ok := r.Links("edit")
	require.True(t, ok)
	assert.False(t, edit.IsMany())
	assert.Equal(t, "/articles/1/edit{?v}", edit.Single().Href())
	assert.True(t, edit.Single().Templated())
	assert.Equal(t, "Edit", edit.Single().Title())

	related, ok := r.Links("related")
	require.True(t, ok)
	assert.True(t, related.IsMany())
	assert.Equal(t, 2, related.Len())

	assert.Equal(t, []string{"author", "comments"}, r.AllLinkedResources().Names())
	author, ok := r.LinkedResources("author")
	require.True(t, ok)
	assert.False(t, author.IsMany())
	assert.Equal(t, "/people/9", author.Single().URI())

	comments, ok := r.LinkedResources("comments")
	require.True(t, ok)
	assert.True(t, comments.IsMany())
	assert.Equal(t, "/comments/5", comments.Single().URI())

	stats, ok := r.Resources("stats")
	require.True(t, ok)
	assert.False(t, stats.IsMany())
	assert.Equal(t, resource.MapOf("reads", 3), stats.Single().Data())
}

func TestDecodeJSON(t *testing.T) {
	r, err := DecodeBytes([]byte(`{"uri": "/a", "data": {"b": 1, "a": [1, {"c": null}]}, "embedded": {"x": [{"data": {}}]}}`))
	require.NoError(t, err)
	assert.Equal(t, "/a", r.URI())
	assert.Equal(t, []string{"b", "a"}, r.Data().Keys())
	a, _ := r.Data().Get("a")
	assert.Equal(t, []any{1, resource.MapOf("c", nil)}, a)

	x, ok := r.Resources("x")
	require.True(t, ok)
	assert.True(t, x.IsMany())
	assert.Equal(t, 1, x.Len())
}

func TestDecodeInvalid(t *testing.T) {
	for name, tc := range map[string]struct {
		In              string
		InvalidArgument bool
	}{
		"Syntax": {
			In: "uri: [",
		},
		"LinkWithoutHref": {
			In: "links: {self: {title: x}}",
		},
		"LinkedWithoutURI": {
			In:              "linked: {author: {data: {name: x}}}",
			InvalidArgument: true,
		},
		"NestedLinkedWithoutURI": {
			In:              "embedded: {stats: {linked: {author: [{uri: /a}, {}]}}}",
			InvalidArgument: true,
		},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeBytes([]byte(tc.In))
			require.Error(t, err)
			if tc.InvalidArgument {
				assert.Equal(t, resource.ErrInvalidArgument, errors.Cause(err))
			}
		})
	}
}

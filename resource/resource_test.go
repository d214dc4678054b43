package resource

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceMetadata(t *testing.T) {
	r := New()
	now := time.Now()

	assert.Same(t, r, r.SetID("foo"))
	assert.Same(t, r, r.SetURI("/foo"))
	assert.Same(t, r, r.SetTitle("Foo"))
	assert.Same(t, r, r.SetRepositoryKey("a/b"))
	assert.Same(t, r, r.SetCache(10))
	assert.Same(t, r, r.SetLastUpdate(now))

	assert.Equal(t, "foo", r.ID())
	assert.Equal(t, "/foo", r.URI())
	assert.Equal(t, "Foo", r.Title())
	assert.Equal(t, "a/b", r.RepositoryKey())
	assert.Equal(t, []string{"a", "b"}, r.Class())
	assert.Equal(t, 10, r.Cache())
	assert.Equal(t, now, r.LastUpdate())
}

func TestResourceClass(t *testing.T) {
	assert.Nil(t, New().Class())
	assert.Equal(t, []string{"articles"}, New().SetRepositoryKey("articles").Class())
}

func TestResourceData(t *testing.T) {
	r := New()
	assert.Equal(t, 0, r.Data().Len())

	assert.Same(t, r, r.SetData(MapOf("foo", "bar")))
	assert.Equal(t, MapOf("foo", "bar"), r.Data())

	assert.Same(t, r, r.AddData("baz", 1))
	assert.Equal(t, []string{"foo", "baz"}, r.Data().Keys())

	r.SetData(nil)
	assert.Equal(t, 0, r.Data().Len())

	var zero Resource
	zero.AddData("foo", "bar")
	assert.Equal(t, 1, zero.Data().Len())
}

func TestResourceSelfLink(t *testing.T) {
	assert.Nil(t, New().SelfLink())

	self := New().SetURI("/foo").SelfLink()
	require.NotNil(t, self)
	assert.Equal(t, "/foo", self.Href())
}

func TestResourceLinks(t *testing.T) {
	r := New()
	link := NewLink("foo")
	assert.Same(t, r, r.SetLink("foo", link))

	rel, ok := r.Links("foo")
	require.True(t, ok)
	assert.False(t, rel.IsMany())
	assert.Same(t, link, rel.Single())

	_, ok = r.Links("bar")
	assert.False(t, ok)

	links := []*Link{NewLink("a"), NewLink("b")}
	r.SetLinks("bar", links)
	rel, ok = r.Links("bar")
	require.True(t, ok)
	assert.True(t, rel.IsMany())
	assert.Equal(t, links, rel.Items())

	assert.Equal(t, []string{"foo", "bar"}, r.AllLinks().Names())

	r.SetLinks("foo", nil)
	assert.Equal(t, []string{"foo", "bar"}, r.AllLinks().Names())
	rel, _ = r.Links("foo")
	assert.True(t, rel.IsMany())
	assert.Equal(t, 0, rel.Len())
}

func TestResourceLinkResource(t *testing.T) {
	r := New()
	target := New().SetURI("foo")

	require.NoError(t, r.LinkResource("foo", target))

	rel, ok := r.LinkedResources("foo")
	require.True(t, ok)
	assert.False(t, rel.IsMany())
	assert.Same(t, target, rel.Single())

	_, ok = r.LinkedResources("bar")
	assert.False(t, ok)
}

func TestResourceLinkResources(t *testing.T) {
	r := New()
	a := New().SetURI("foo")
	b := New().SetURI("bar")

	require.NoError(t, r.LinkResources("foo", []*Resource{a, b}))

	rel, ok := r.LinkedResources("foo")
	require.True(t, ok)
	assert.True(t, rel.IsMany())
	assert.Equal(t, []*Resource{a, b}, rel.Items())
}

func TestResourceLinkResourceInvalid(t *testing.T) {
	for name, tc := range map[string]func(r *Resource) error{
		"NoURI": func(r *Resource) error {
			return r.LinkResource("foo", New())
		},
		"Nil": func(r *Resource) error {
			return r.LinkResource("foo", nil)
		},
		"ManyWithOneMissingURI": func(r *Resource) error {
			return r.LinkResources("foo", []*Resource{New().SetURI("a"), New()})
		},
	} {
		t.Run(name, func(t *testing.T) {
			r := New()
			err := tc(r)
			require.Error(t, err)
			assert.Equal(t, ErrInvalidArgument, errors.Cause(err))
			assert.Equal(t, 0, r.AllLinkedResources().Len())
		})
	}
}

func TestResourceAddResource(t *testing.T) {
	r := New()
	child := New()

	assert.Same(t, r, r.AddResource("foo", child))
	rel, ok := r.Resources("foo")
	require.True(t, ok)
	assert.Same(t, child, rel.Single())

	_, ok = r.Resources("bar")
	assert.False(t, ok)

	children := []*Resource{New(), New()}
	r.AddResources("bar", children)
	rel, ok = r.Resources("bar")
	require.True(t, ok)
	assert.True(t, rel.IsMany())
	assert.Equal(t, children, rel.Items())
}

func TestRelation(t *testing.T) {
	one := One("a")
	assert.False(t, one.IsMany())
	assert.Equal(t, "a", one.Single())
	assert.Equal(t, []string{"a"}, one.Items())
	assert.Equal(t, 1, one.Len())

	src := []string{"a", "b"}
	many := Many(src)
	src[0] = "z"
	assert.True(t, many.IsMany())
	assert.Equal(t, []string{"a", "b"}, many.Items())
	assert.Equal(t, "a", many.Single())

	empty := Many[string](nil)
	assert.Equal(t, "", empty.Single())
	assert.Equal(t, 0, empty.Len())
}

func TestRelationsOrder(t *testing.T) {
	var rs Relations[int]
	rs.Set("b", One(1))
	rs.Set("a", One(2))
	rs.Set("b", Many([]int{3, 4}))

	var names []string
	var values [][]int
	rs.Each(func(name string, rel Relation[int]) {
		names = append(names, name)
		values = append(values, rel.Items())
	})
	assert.Equal(t, []string{"b", "a"}, names)
	assert.Equal(t, [][]int{{3, 4}, {2}}, values)
	assert.Equal(t, 2, rs.Len())
}

func TestLink(t *testing.T) {
	link := NewLink("/foo/{id}")
	assert.Same(t, link, link.SetName("name"))
	assert.Same(t, link, link.SetLang("lang"))
	assert.Same(t, link, link.SetTitle("title"))
	assert.Same(t, link, link.SetTemplated(true))

	assert.Equal(t, "/foo/{id}", link.Href())
	assert.Equal(t, "name", link.Name())
	assert.Equal(t, "lang", link.Lang())
	assert.Equal(t, "title", link.Title())
	assert.True(t, link.Templated())

	assert.Equal(t, MapOf(
		"href", "/foo/{id}",
		"name", "name",
		"lang", "lang",
		"title", "title",
		"templated", true,
	), link.Map())

	assert.Equal(t, MapOf("href", "bar"), NewLink("bar").Map())
}

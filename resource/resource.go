package resource

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidArgument is the cause of errors returned when a relationship can't be established,
// e.g. when linking to a resource that has no URI.
var ErrInvalidArgument = errors.New("invalid argument")

// Resource is a node in a hypermedia graph. It carries its own data, links, linked resources
// (references that are rendered as links only), and embedded resources (rendered in full).
//
// Resources are built by one goroutine and then handed to a writer. Writers never modify the
// resources they visit, so a fully built graph may be read concurrently.
type Resource struct {
	id            string
	uri           string
	title         string
	repositoryKey string
	cache         int
	lastUpdate    time.Time

	data            *OrderedMap
	links           Relations[*Link]
	linkedResources Relations[*Resource]
	resources       Relations[*Resource]
}

// New creates an empty resource.
func New() *Resource {
	return &Resource{
		data: NewOrderedMap(),
	}
}

// SetID sets the resource's identifier within its repository.
func (r *Resource) SetID(id string) *Resource {
	r.id = id
	return r
}

// ID returns the resource's identifier.
func (r *Resource) ID() string {
	return r.id
}

// SetURI makes the resource addressable. Only addressable resources have a self link, can be
// linked to, and are placed in the _embedded section by the HAL writers.
func (r *Resource) SetURI(uri string) *Resource {
	r.uri = uri
	return r
}

// URI returns the resource's URI, or an empty string if it isn't addressable.
func (r *Resource) URI() string {
	return r.uri
}

// SetTitle sets a human-readable title for the resource.
func (r *Resource) SetTitle(title string) *Resource {
	r.title = title
	return r
}

// Title returns the resource's title.
func (r *Resource) Title() string {
	return r.title
}

// SetRepositoryKey sets the slash-delimited key of the repository the resource came from, such as
// "blog/articles".
func (r *Resource) SetRepositoryKey(key string) *Resource {
	r.repositoryKey = key
	return r
}

// RepositoryKey returns the key of the repository the resource came from.
func (r *Resource) RepositoryKey() string {
	return r.repositoryKey
}

// Class returns the components of the repository key, or nil if there is no key.
func (r *Resource) Class() []string {
	if r.repositoryKey == "" {
		return nil
	}
	return strings.Split(r.repositoryKey, "/")
}

// SetCache sets the number of seconds a representation of the resource may be cached for.
func (r *Resource) SetCache(seconds int) *Resource {
	r.cache = seconds
	return r
}

// Cache returns the number of seconds the resource may be cached for. Zero means it shouldn't be.
func (r *Resource) Cache() int {
	return r.cache
}

// SetLastUpdate sets the time the resource was last modified.
func (r *Resource) SetLastUpdate(t time.Time) *Resource {
	r.lastUpdate = t
	return r
}

// LastUpdate returns the time the resource was last modified. The zero time means unknown.
func (r *Resource) LastUpdate() time.Time {
	return r.lastUpdate
}

// SetData replaces the resource's data. A nil map clears it.
func (r *Resource) SetData(data *OrderedMap) *Resource {
	if data == nil {
		data = NewOrderedMap()
	}
	r.data = data
	return r
}

// AddData sets a single data field.
func (r *Resource) AddData(key string, value any) *Resource {
	if r.data == nil {
		r.data = NewOrderedMap()
	}
	r.data.Set(key, value)
	return r
}

// Data returns the resource's own data. It is never nil.
func (r *Resource) Data() *OrderedMap {
	if r.data == nil {
		return NewOrderedMap()
	}
	return r.data
}

// SelfLink returns a link to the resource's URI, or nil if it has none.
func (r *Resource) SelfLink() *Link {
	if r.uri == "" {
		return nil
	}
	return NewLink(r.uri)
}

// SetLink stores a single link under rel, replacing anything previously stored there.
func (r *Resource) SetLink(rel string, link *Link) *Resource {
	r.links.Set(rel, One(link))
	return r
}

// SetLinks stores a sequence of links under rel, replacing anything previously stored there.
func (r *Resource) SetLinks(rel string, links []*Link) *Resource {
	r.links.Set(rel, Many(links))
	return r
}

// Links returns the links stored under rel.
func (r *Resource) Links(rel string) (Relation[*Link], bool) {
	return r.links.Get(rel)
}

// AllLinks returns every relation of links, not including the self link.
func (r *Resource) AllLinks() *Relations[*Link] {
	return &r.links
}

// LinkResource references target under rel without embedding it. The target must have a URI.
func (r *Resource) LinkResource(rel string, target *Resource) error {
	if err := validateLinkTarget(rel, target); err != nil {
		return err
	}
	r.linkedResources.Set(rel, One(target))
	return nil
}

// LinkResources references a sequence of targets under rel without embedding them. Every target
// must have a URI. If any doesn't, nothing is stored.
func (r *Resource) LinkResources(rel string, targets []*Resource) error {
	for i, target := range targets {
		if err := validateLinkTarget(rel, target); err != nil {
			return errors.Wrapf(err, "target %d", i)
		}
	}
	r.linkedResources.Set(rel, Many(targets))
	return nil
}

func validateLinkTarget(rel string, target *Resource) error {
	if target == nil {
		return errors.Wrapf(ErrInvalidArgument, "nil resource linked as %q", rel)
	} else if target.uri == "" {
		return errors.Wrapf(ErrInvalidArgument, "resource linked as %q has no uri", rel)
	}
	return nil
}

// LinkedResources returns the resources referenced under rel.
func (r *Resource) LinkedResources(rel string) (Relation[*Resource], bool) {
	return r.linkedResources.Get(rel)
}

// AllLinkedResources returns every relation of referenced resources.
func (r *Resource) AllLinkedResources() *Relations[*Resource] {
	return &r.linkedResources
}

// AddResource embeds a single resource under rel, replacing anything previously embedded there.
func (r *Resource) AddResource(rel string, resource *Resource) *Resource {
	r.resources.Set(rel, One(resource))
	return r
}

// AddResources embeds a sequence of resources under rel, replacing anything previously embedded
// there.
func (r *Resource) AddResources(rel string, resources []*Resource) *Resource {
	r.resources.Set(rel, Many(resources))
	return r
}

// Resources returns the resources embedded under rel.
func (r *Resource) Resources(rel string) (Relation[*Resource], bool) {
	return r.resources.Get(rel)
}

// AllResources returns every relation of embedded resources.
func (r *Resource) AllResources() *Relations[*Resource] {
	return &r.resources
}

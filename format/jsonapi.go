package format

import (
	"github.com/level3/level3/resource"
)

const ContentTypeJSONAPI = "application/vnd.api+json"

// NewJSONAPI creates an application/vnd.api+json formatter.
func NewJSONAPI() *JSONFormatter {
	return NewJSONFormatter(ContentTypeJSONAPI, JSONAPI{})
}

// JSONAPI represents resources as JSON:API documents.
//
// The root resource is the document's primary data. Linked and embedded resources become
// relationships with resource linkage, and embedded resources are also added to "included".
// A resource's type is its repository key and its id is its ID, falling back to its URI.
// Embedded resources that can't be identified have no linkage, so they're represented as
// attributes instead.
type JSONAPI struct{}

func (j JSONAPI) Represent(r *resource.Resource) *resource.OrderedMap {
	c := &jsonAPICompound{
		seen: map[resourceIdentifier]struct{}{
			identify(r): {},
		},
	}

	ret := resource.MapOf("data", j.resourceObject(r, c))
	if len(c.included) > 0 {
		ret.Set("included", c.included)
	}
	if self := r.SelfLink(); self != nil {
		ret.Set("links", resource.MapOf("self", self.Href()))
	}
	return ret
}

type resourceIdentifier struct {
	Type string
	Id   string
}

func identify(r *resource.Resource) resourceIdentifier {
	ret := resourceIdentifier{
		Type: r.RepositoryKey(),
		Id:   r.ID(),
	}
	if ret.Type == "" {
		ret.Type = "resources"
	}
	if ret.Id == "" {
		ret.Id = r.URI()
	}
	return ret
}

func (id resourceIdentifier) object() *resource.OrderedMap {
	return resource.MapOf("type", id.Type, "id", id.Id)
}

// jsonAPICompound collects the included resources of a compound document. Each resource is
// included once, in the order it was first reached.
type jsonAPICompound struct {
	seen     map[resourceIdentifier]struct{}
	included []any
}

func (j JSONAPI) resourceObject(r *resource.Resource, c *jsonAPICompound) *resource.OrderedMap {
	id := identify(r)
	ret := id.object()

	attributes := r.Data().Clone()
	relationships := resource.NewOrderedMap()

	r.AllLinkedResources().Each(func(rel string, targets resource.Relation[*resource.Resource]) {
		relationships.Set(rel, j.relationship(targets.Items(), targets.IsMany()))
	})

	r.AllResources().Each(func(rel string, targets resource.Relation[*resource.Resource]) {
		var identified []*resource.Resource
		var anonymous []any
		for _, target := range targets.Items() {
			if target == nil {
				continue
			} else if identify(target).Id == "" {
				obj := j.resourceObject(target, c)
				obj.Delete("type")
				obj.Delete("id")
				anonymous = append(anonymous, obj)
				continue
			}
			identified = append(identified, target)
			j.include(target, c)
		}

		if len(identified) > 0 {
			relationships.Set(rel, j.relationship(identified, targets.IsMany()))
		}
		if len(anonymous) > 0 {
			if targets.IsMany() {
				attributes.Set(rel, anonymous)
			} else {
				attributes.Set(rel, anonymous[0])
			}
		}
	})

	if attributes.Len() > 0 {
		ret.Set("attributes", attributes)
	}
	if relationships.Len() > 0 {
		ret.Set("relationships", relationships)
	}
	if links := j.links(r); links.Len() > 0 {
		ret.Set("links", links)
	}
	return ret
}

func (j JSONAPI) include(r *resource.Resource, c *jsonAPICompound) {
	id := identify(r)
	if _, ok := c.seen[id]; ok {
		return
	}
	c.seen[id] = struct{}{}
	// reserve the position before recursing so parents precede their children
	i := len(c.included)
	c.included = append(c.included, nil)
	c.included[i] = j.resourceObject(r, c)
}

func (JSONAPI) relationship(targets []*resource.Resource, many bool) *resource.OrderedMap {
	ret := resource.NewOrderedMap()
	if !many {
		if len(targets) > 0 && targets[0] != nil {
			if self := targets[0].SelfLink(); self != nil {
				ret.Set("links", resource.MapOf("related", self.Href()))
			}
			ret.Set("data", identify(targets[0]).object())
		} else {
			ret.Set("data", nil)
		}
		return ret
	}

	data := []any{}
	for _, target := range targets {
		if target != nil {
			data = append(data, identify(target).object())
		}
	}
	ret.Set("data", data)
	return ret
}

// links returns the resource's links object. Links without metadata are plain strings; the
// others are link objects. A relation with several links keeps only the first, since a links
// object holds one link per name.
func (JSONAPI) links(r *resource.Resource) *resource.OrderedMap {
	ret := resource.NewOrderedMap()
	if self := r.SelfLink(); self != nil {
		ret.Set("self", self.Href())
	}
	r.AllLinks().Each(func(rel string, links resource.Relation[*resource.Link]) {
		link := links.Single()
		if link == nil {
			return
		}
		if link.Title() == "" && link.Lang() == "" {
			ret.Set(rel, link.Href())
			return
		}
		obj := resource.MapOf("href", link.Href())
		if title := link.Title(); title != "" {
			obj.Set("title", title)
		}
		if lang := link.Lang(); lang != "" {
			obj.Set("hreflang", lang)
		}
		ret.Set(rel, obj)
	})
	return ret
}

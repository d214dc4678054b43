package format

import (
	"github.com/level3/level3/resource"
)

// Siren represents resources as Siren entities.
//
// Embedded resources become sub-entities carrying their full representation. A sub-entity
// without a class of its own inherits its parent's class with the relation name appended. Linked
// resources become bare {rel, href} sub-entities unless an embedded sub-entity already has the
// same href.
type Siren struct{}

func (s Siren) Represent(r *resource.Resource) *resource.OrderedMap {
	return s.represent(r, r.Class())
}

func (s Siren) represent(r *resource.Resource, class []string) *resource.OrderedMap {
	ret := resource.NewOrderedMap()
	if class == nil {
		ret.Set("class", nil)
	} else {
		ret.Set("class", class)
	}
	if title := r.Title(); title != "" {
		ret.Set("title", title)
	}
	ret.Set("properties", r.Data().Clone())

	if links := s.links(r); len(links) > 0 {
		ret.Set("links", links)
	}

	var entities []any
	embeddedHrefs := map[string]struct{}{}

	r.AllResources().Each(func(rel string, targets resource.Relation[*resource.Resource]) {
		for _, target := range targets.Items() {
			if target == nil {
				continue
			}

			targetClass := target.Class()
			if len(targetClass) == 0 {
				targetClass = append(append([]string{}, class...), rel)
			}

			metadata := resource.MapOf("rel", rel)
			if self := target.SelfLink(); self != nil {
				metadata.Set("href", self.Href())
				embeddedHrefs[self.Href()] = struct{}{}
			}

			entities = append(entities, metadata.Merge(s.represent(target, targetClass)))
		}
	})

	r.AllLinkedResources().Each(func(rel string, targets resource.Relation[*resource.Resource]) {
		for _, target := range targets.Items() {
			if target == nil {
				continue
			}
			self := target.SelfLink()
			if self == nil {
				continue
			}
			if _, ok := embeddedHrefs[self.Href()]; ok {
				continue
			}
			entities = append(entities, resource.MapOf(
				"rel", rel,
				"href", self.Href(),
			))
		}
	})

	if len(entities) > 0 {
		ret.Set("entities", entities)
	}

	return ret
}

func (Siren) links(r *resource.Resource) []any {
	var ret []any

	if self := r.SelfLink(); self != nil {
		ret = append(ret, resource.MapOf(
			"rel", "self",
			"href", self.Href(),
		))
	}

	r.AllLinks().Each(func(rel string, links resource.Relation[*resource.Link]) {
		for _, link := range links.Items() {
			if link == nil {
				continue
			}
			ret = append(ret, resource.MapOf(
				"rel", rel,
				"href", link.Href(),
			))
		}
	})

	return ret
}

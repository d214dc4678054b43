package format

import (
	"github.com/level3/level3/resource"
)

// HAL represents resources in the JSON Hypertext Application Language.
//
// A resource becomes its own data, followed by an "_embedded" object and a "_links" object.
// Embedded resources without a URI can't be referenced, so they are inlined under their relation
// name instead of being placed in "_embedded".
type HAL struct{}

func (h HAL) Represent(r *resource.Resource) *resource.OrderedMap {
	ret := r.Data().Clone()

	embedded := resource.NewOrderedMap()
	r.AllResources().Each(func(rel string, targets resource.Relation[*resource.Resource]) {
		if !targets.IsMany() {
			if target := targets.Single(); target == nil {
				return
			} else if target.URI() == "" {
				ret.Set(rel, h.Represent(target))
			} else {
				embedded.Set(rel, h.Represent(target))
			}
			return
		}

		var inline, addressable []any
		for _, target := range targets.Items() {
			if target == nil {
				continue
			} else if target.URI() == "" {
				inline = append(inline, h.Represent(target))
			} else {
				addressable = append(addressable, h.Represent(target))
			}
		}
		if len(inline) > 0 {
			ret.Set(rel, inline)
		}
		if len(addressable) > 0 {
			embedded.Set(rel, addressable)
		}
	})
	if embedded.Len() > 0 {
		ret.Set("_embedded", embedded)
	}

	if links := h.links(r); links.Len() > 0 {
		ret.Set("_links", links)
	}

	return ret
}

func (HAL) links(r *resource.Resource) *resource.OrderedMap {
	ret := resource.NewOrderedMap()

	if self := r.SelfLink(); self != nil {
		ret.Set("self", self.Map())
	}

	r.AllLinks().Each(func(rel string, links resource.Relation[*resource.Link]) {
		setRelation(ret, rel, links, func(link *resource.Link) *resource.OrderedMap {
			return link.Map()
		})
	})

	r.AllLinkedResources().Each(func(rel string, targets resource.Relation[*resource.Resource]) {
		setRelation(ret, rel, targets, func(target *resource.Resource) *resource.OrderedMap {
			if self := target.SelfLink(); self != nil {
				return self.Map()
			}
			return nil
		})
	})

	return ret
}

// setRelation stores rel in m as a single object or an array of objects, mirroring the arity of
// the relation. Items that are nil or map to nil are skipped, and an empty array isn't stored at all.
// If m already holds rel, the new items are appended after the existing ones.
func setRelation[T comparable](m *resource.OrderedMap, rel string, relation resource.Relation[T], fn func(T) *resource.OrderedMap) {
	var zero T
	var items []any
	for _, item := range relation.Items() {
		if item == zero {
			continue
		}
		if v := fn(item); v != nil {
			items = append(items, v)
		}
	}
	if len(items) == 0 {
		return
	}

	if existing, ok := m.Get(rel); ok {
		var merged []any
		if existing, ok := existing.([]any); ok {
			merged = append(merged, existing...)
		} else {
			merged = append(merged, existing)
		}
		m.Set(rel, append(merged, items...))
		return
	}

	if relation.IsMany() {
		m.Set(rel, items)
	} else {
		m.Set(rel, items[0])
	}
}

// Package document decodes resource graphs from YAML (or JSON) documents.
//
// A document describes one resource:
//
//	uri: /articles/1
//	repositoryKey: blog/articles
//	data:
//	  title: Hello
//	links:
//	  edit: {href: "/articles/1/edit{?v}", templated: true}
//	linked:
//	  author: {uri: /people/9}
//	embedded:
//	  comments:
//	    - uri: /comments/5
//	      data: {body: First!}
//
// Each entry under links, linked, and embedded is either a single value or a list, and the
// distinction is preserved. Key order is preserved everywhere.
package document

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/level3/level3/resource"
)

// Document is the decoded form of a resource description.
type Document struct {
	ID            string              `yaml:"id"`
	URI           string              `yaml:"uri"`
	Title         string              `yaml:"title"`
	RepositoryKey string              `yaml:"repositoryKey"`
	Cache         int                 `yaml:"cache"`
	LastUpdate    time.Time           `yaml:"lastUpdate"`
	Data          yaml.MapSlice       `yaml:"data"`
	Links         Relations[Link]     `yaml:"links"`
	Linked        Relations[Document] `yaml:"linked"`
	Embedded      Relations[Document] `yaml:"embedded"`
}

type Link struct {
	Href      string `yaml:"href"`
	Name      string `yaml:"name"`
	Lang      string `yaml:"lang"`
	Title     string `yaml:"title"`
	Templated bool   `yaml:"templated"`
}

// Relation is a single value or a list of values.
type Relation[T any] struct {
	Items []T
	Many  bool
}

func (r *Relation[T]) UnmarshalYAML(unmarshal func(any) error) error {
	var list []T
	if err := unmarshal(&list); err == nil {
		r.Items = list
		r.Many = true
		return nil
	}

	var one T
	if err := unmarshal(&one); err != nil {
		return err
	}
	r.Items = []T{one}
	r.Many = false
	return nil
}

type NamedRelation[T any] struct {
	Name     string
	Relation Relation[T]
}

// Relations is a mapping of relation names to relations that keeps the document's order.
type Relations[T any] []NamedRelation[T]

func (rs *Relations[T]) UnmarshalYAML(unmarshal func(any) error) error {
	var order yaml.MapSlice
	if err := unmarshal(&order); err != nil {
		return err
	}

	var values map[string]Relation[T]
	if err := unmarshal(&values); err != nil {
		return err
	}

	ret := make(Relations[T], 0, len(order))
	for _, item := range order {
		name := fmt.Sprint(item.Key)
		ret = append(ret, NamedRelation[T]{
			Name:     name,
			Relation: values[name],
		})
	}
	*rs = ret
	return nil
}

// Decode reads a document and builds the resource it describes.
func Decode(r io.Reader) (*resource.Resource, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "error reading document")
	}
	return DecodeBytes(buf)
}

// DecodeBytes builds the resource described by a document.
func DecodeBytes(buf []byte) (*resource.Resource, error) {
	var doc Document
	if err := yaml.Unmarshal(buf, &doc); err != nil {
		return nil, errors.Wrap(err, "error decoding document")
	}
	return doc.Resource()
}

// Resource builds the resource described by the document. Linked documents must have a URI.
func (d *Document) Resource() (*resource.Resource, error) {
	ret := resource.New().
		SetID(d.ID).
		SetURI(d.URI).
		SetTitle(d.Title).
		SetRepositoryKey(d.RepositoryKey).
		SetCache(d.Cache).
		SetLastUpdate(d.LastUpdate)

	data, err := orderedMap(d.Data)
	if err != nil {
		return nil, errors.Wrap(err, "invalid data")
	}
	ret.SetData(data)

	for _, rel := range d.Links {
		links := make([]*resource.Link, 0, len(rel.Relation.Items))
		for _, l := range rel.Relation.Items {
			if l.Href == "" {
				return nil, errors.Errorf("link %q has no href", rel.Name)
			}
			links = append(links, resource.NewLink(l.Href).
				SetName(l.Name).
				SetLang(l.Lang).
				SetTitle(l.Title).
				SetTemplated(l.Templated))
		}
		if rel.Relation.Many {
			ret.SetLinks(rel.Name, links)
		} else if len(links) == 1 {
			ret.SetLink(rel.Name, links[0])
		}
	}

	for _, rel := range d.Linked {
		targets, err := resources(rel.Relation.Items)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid linked resource %q", rel.Name)
		}
		if rel.Relation.Many {
			err = ret.LinkResources(rel.Name, targets)
		} else if len(targets) == 1 {
			err = ret.LinkResource(rel.Name, targets[0])
		}
		if err != nil {
			return nil, errors.Wrapf(err, "invalid linked resource %q", rel.Name)
		}
	}

	for _, rel := range d.Embedded {
		targets, err := resources(rel.Relation.Items)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid embedded resource %q", rel.Name)
		}
		if rel.Relation.Many {
			ret.AddResources(rel.Name, targets)
		} else if len(targets) == 1 {
			ret.AddResource(rel.Name, targets[0])
		}
	}

	return ret, nil
}

func resources(docs []Document) ([]*resource.Resource, error) {
	ret := make([]*resource.Resource, 0, len(docs))
	for i := range docs {
		r, err := docs[i].Resource()
		if err != nil {
			return nil, err
		}
		ret = append(ret, r)
	}
	return ret, nil
}

func orderedMap(ms yaml.MapSlice) (*resource.OrderedMap, error) {
	ret := resource.NewOrderedMap()
	for _, item := range ms {
		key, ok := item.Key.(string)
		if !ok {
			key = fmt.Sprint(item.Key)
		}
		v, err := value(item.Value)
		if err != nil {
			return nil, errors.Wrap(err, key)
		}
		ret.Set(key, v)
	}
	return ret, nil
}

func value(v any) (any, error) {
	switch v := v.(type) {
	case yaml.MapSlice:
		return orderedMap(v)
	case map[any]any:
		ms := make(yaml.MapSlice, 0, len(v))
		for k, item := range v {
			ms = append(ms, yaml.MapItem{Key: k, Value: item})
		}
		return orderedMap(ms)
	case []any:
		ret := make([]any, len(v))
		for i, item := range v {
			var err error
			if ret[i], err = value(item); err != nil {
				return nil, err
			}
		}
		return ret, nil
	case nil, string, bool, int, int64, uint64, float64:
		return v, nil
	default:
		return nil, errors.Errorf("unsupported value of type %T", v)
	}
}

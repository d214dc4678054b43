package format

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/level3/level3/resource"
)

// HALXML writes resources as HAL+XML: a <resource> element whose href attribute is the self link,
// containing <link> elements, the resource's data, and nested <resource> elements for embedded
// resources.
type HALXML struct{}

func (h HALXML) WriteResource(enc *xml.Encoder, r *resource.Resource, rel string) error {
	start := xml.StartElement{
		Name: xml.Name{Local: "resource"},
	}
	if self := r.SelfLink(); self != nil {
		start.Attr = append(start.Attr, xmlAttr("href", self.Href()))
	}
	if rel != "" {
		start.Attr = append(start.Attr, xmlAttr("rel", rel))
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	var err error
	r.AllLinks().Each(func(rel string, links resource.Relation[*resource.Link]) {
		for _, link := range links.Items() {
			if err == nil && link != nil {
				err = h.writeLink(enc, rel, link)
			}
		}
	})
	r.AllLinkedResources().Each(func(rel string, targets resource.Relation[*resource.Resource]) {
		for _, target := range targets.Items() {
			if target == nil {
				continue
			}
			if self := target.SelfLink(); err == nil && self != nil {
				err = h.writeLink(enc, rel, self)
			}
		}
	})
	if err != nil {
		return err
	}

	for _, item := range r.Data().Items() {
		if err := writeXMLValue(enc, item.Key, item.Value); err != nil {
			return errors.Wrapf(err, "error writing %v", item.Key)
		}
	}

	r.AllResources().Each(func(rel string, targets resource.Relation[*resource.Resource]) {
		for _, target := range targets.Items() {
			if err == nil && target != nil {
				err = h.WriteResource(enc, target, rel)
			}
		}
	})
	if err != nil {
		return err
	}

	return enc.EncodeToken(start.End())
}

func (HALXML) writeLink(enc *xml.Encoder, rel string, link *resource.Link) error {
	start := xml.StartElement{
		Name: xml.Name{Local: "link"},
		Attr: []xml.Attr{
			xmlAttr("rel", rel),
			xmlAttr("href", link.Href()),
		},
	}
	if name := link.Name(); name != "" {
		start.Attr = append(start.Attr, xmlAttr("name", name))
	}
	if lang := link.Lang(); lang != "" {
		start.Attr = append(start.Attr, xmlAttr("hreflang", lang))
	}
	if title := link.Title(); title != "" {
		start.Attr = append(start.Attr, xmlAttr("title", title))
	}
	if link.Templated() {
		start.Attr = append(start.Attr, xmlAttr("templated", "true"))
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}

func xmlAttr(name, value string) xml.Attr {
	return xml.Attr{
		Name:  xml.Name{Local: name},
		Value: value,
	}
}

// writeXMLValue writes a data value as an element. Maps nest, and slices repeat the element once
// per item.
func writeXMLValue(enc *xml.Encoder, name string, value any) error {
	switch v := value.(type) {
	case []any:
		for _, item := range v {
			if err := writeXMLValue(enc, name, item); err != nil {
				return err
			}
		}
		return nil
	case []string:
		for _, item := range v {
			if err := writeXMLValue(enc, name, item); err != nil {
				return err
			}
		}
		return nil
	}

	if !isXMLName(name) {
		return errors.Errorf("%q is not a valid element name", name)
	}
	start := xml.StartElement{
		Name: xml.Name{Local: name},
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	switch v := value.(type) {
	case *resource.OrderedMap:
		for _, item := range v.Items() {
			if err := writeXMLValue(enc, item.Key, item.Value); err != nil {
				return err
			}
		}
	case nil:
	default:
		if err := enc.EncodeToken(xml.CharData(xmlScalar(v))); err != nil {
			return err
		}
	}

	return enc.EncodeToken(start.End())
}

func xmlScalar(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}

package format

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/level3/level3/resource"
)

const (
	xmlDeclaration = `<?xml version="1.0"?>` + "\n"
	xmlIndent      = "  "

	// XMLAttributesKey holds an element's attributes when it's parsed into a map.
	XMLAttributesKey = "@attributes"

	// XMLTextKey holds the text of an element that also has attributes.
	XMLTextKey = "#text"
)

// XMLRepresenter writes a resource as XML elements. rel is the relation the resource is embedded
// as, or empty for the root.
type XMLRepresenter interface {
	WriteResource(enc *xml.Encoder, r *resource.Resource, rel string) error
}

// XMLFormatter is the base of the XML formats. Parsing is shared; rendering delegates to an
// XMLRepresenter.
type XMLFormatter struct {
	representer XMLRepresenter
}

func NewXMLFormatter(representer XMLRepresenter) *XMLFormatter {
	return &XMLFormatter{
		representer: representer,
	}
}

// NewHALXML creates an application/hal+xml formatter.
func NewHALXML() *XMLFormatter {
	return NewXMLFormatter(HALXML{})
}

func (f *XMLFormatter) ContentType() string {
	return ContentTypeHALXML
}

// FromRequest parses an XML document into a map of the root element's children.
//
// Elements that contain only text become strings, and elements that contain nothing become empty
// maps. Sibling elements sharing a name are collected into a slice. Attributes are stored in a
// map under XMLAttributesKey.
func (f *XMLFormatter) FromRequest(body []byte) (*resource.OrderedMap, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return resource.NewOrderedMap(), nil
	}

	dec := xml.NewDecoder(bytes.NewReader(body))
	var root *resource.OrderedMap
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrap(ErrMalformed, err.Error())
		}

		switch tok := tok.(type) {
		case xml.StartElement:
			if root != nil {
				return nil, errors.Wrap(ErrMalformed, "multiple root elements")
			}
			v, err := readXMLElement(dec, tok)
			if err != nil {
				return nil, errors.Wrap(ErrMalformed, err.Error())
			}
			if m, ok := v.(*resource.OrderedMap); ok {
				root = m
			} else {
				root = resource.MapOf(XMLTextKey, v)
			}
		case xml.CharData:
			if len(bytes.TrimSpace(tok)) > 0 {
				return nil, errors.Wrap(ErrMalformed, "text outside of the root element")
			}
		}
	}

	if root == nil {
		return nil, errors.Wrap(ErrMalformed, "no root element")
	}
	return root, nil
}

func readXMLElement(dec *xml.Decoder, start xml.StartElement) (any, error) {
	ret := resource.NewOrderedMap()
	if len(start.Attr) > 0 {
		attrs := resource.NewOrderedMap()
		for _, attr := range start.Attr {
			attrs.Set(attr.Name.Local, attr.Value)
		}
		ret.Set(XMLAttributesKey, attrs)
	}

	var text strings.Builder
	hasChildren := false

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		switch tok := tok.(type) {
		case xml.StartElement:
			hasChildren = true
			v, err := readXMLElement(dec, tok)
			if err != nil {
				return nil, err
			}
			name := tok.Name.Local
			if existing, ok := ret.Get(name); !ok {
				ret.Set(name, v)
			} else if list, ok := existing.([]any); ok {
				ret.Set(name, append(list, v))
			} else {
				ret.Set(name, []any{existing, v})
			}
		case xml.CharData:
			text.Write(tok)
		case xml.EndElement:
			if hasChildren || strings.TrimSpace(text.String()) == "" {
				return ret, nil
			} else if ret.Len() == 0 {
				return text.String(), nil
			}
			ret.Set(XMLTextKey, text.String())
			return ret, nil
		}
	}
}

// isXMLName reports whether name can be written as an element name without a namespace prefix.
func isXMLName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

// ToResponse renders the resource after an XML declaration. Pretty output is indented with two
// spaces.
func (f *XMLFormatter) ToResponse(r *resource.Resource, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xmlDeclaration)

	enc := xml.NewEncoder(&buf)
	if pretty {
		enc.Indent("", xmlIndent)
	}
	if err := f.representer.WriteResource(enc, r, ""); err != nil {
		return nil, errors.Wrap(err, "error encoding xml")
	}
	if err := enc.Flush(); err != nil {
		return nil, errors.Wrap(err, "error encoding xml")
	}
	return buf.Bytes(), nil
}

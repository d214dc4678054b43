package format

import (
	"bytes"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/level3/level3/resource"
)

var jsonCodec = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

const jsonIndent = "    "

// JSONFormatter is the base of the JSON formats. Parsing is shared; rendering delegates the shape
// of the document to a Representer.
type JSONFormatter struct {
	contentType string
	representer Representer
}

// NewJSONFormatter creates a JSON formatter for the given media type.
func NewJSONFormatter(contentType string, representer Representer) *JSONFormatter {
	return &JSONFormatter{
		contentType: contentType,
		representer: representer,
	}
}

// NewHALJSON creates an application/hal+json formatter.
func NewHALJSON() *JSONFormatter {
	return NewJSONFormatter(ContentTypeHALJSON, HAL{})
}

// NewSirenJSON creates an application/vnd.siren+json formatter.
func NewSirenJSON() *JSONFormatter {
	return NewJSONFormatter(ContentTypeSirenJSON, Siren{})
}

func (f *JSONFormatter) ContentType() string {
	return f.contentType
}

// FromRequest parses a JSON object, keeping the order of its members. Numbers are decoded as
// float64.
func (f *JSONFormatter) FromRequest(body []byte) (*resource.OrderedMap, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return resource.NewOrderedMap(), nil
	}

	iter := jsonCodec.BorrowIterator(body)
	defer jsonCodec.ReturnIterator(iter)

	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return nil, errors.Wrap(ErrMalformed, "expected a json object")
	}
	// a complete object never reads past its closing brace, so even io.EOF means it was truncated
	v := readJSONValue(iter)
	if iter.Error != nil {
		return nil, errors.Wrap(ErrMalformed, iter.Error.Error())
	}

	// anything but whitespace after the object is an error
	iter.WhatIsNext()
	if iter.Error != io.EOF {
		return nil, errors.Wrap(ErrMalformed, "unexpected data after json object")
	}

	return v.(*resource.OrderedMap), nil
}

func readJSONValue(iter *jsoniter.Iterator) any {
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		m := resource.NewOrderedMap()
		iter.ReadObjectCB(func(iter *jsoniter.Iterator, key string) bool {
			m.Set(key, readJSONValue(iter))
			return iter.Error == nil
		})
		return m
	case jsoniter.ArrayValue:
		ret := []any{}
		iter.ReadArrayCB(func(iter *jsoniter.Iterator) bool {
			ret = append(ret, readJSONValue(iter))
			return iter.Error == nil
		})
		return ret
	case jsoniter.StringValue:
		return iter.ReadString()
	case jsoniter.NumberValue:
		return iter.ReadFloat64()
	case jsoniter.BoolValue:
		return iter.ReadBool()
	case jsoniter.NilValue:
		iter.ReadNil()
		return nil
	default:
		iter.ReportError("readJSONValue", "unexpected character")
		return nil
	}
}

// ToResponse renders the resource. Pretty output is indented with four spaces.
func (f *JSONFormatter) ToResponse(r *resource.Resource, pretty bool) ([]byte, error) {
	v := f.representer.Represent(r)

	var buf []byte
	var err error
	if pretty {
		buf, err = jsonCodec.MarshalIndent(v, "", jsonIndent)
	} else {
		buf, err = jsonCodec.Marshal(v)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "error encoding %v", f.contentType)
	}
	return buf, nil
}

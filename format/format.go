// Package format renders resource graphs as hypermedia documents and parses request payloads.
//
// Each wire format is a Formatter. The JSON formats share one implementation and differ only in
// the Representer that shapes a resource into an ordered map; the XML format delegates to an
// XMLRepresenter that writes elements directly.
package format

import (
	"mime"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/level3/level3/resource"
)

const (
	ContentTypeHALJSON   = "application/hal+json"
	ContentTypeSirenJSON = "application/vnd.siren+json"
	ContentTypeHALXML    = "application/hal+xml"
)

// ErrMalformed is the cause of errors returned by FromRequest when a payload can't be parsed.
var ErrMalformed = errors.New("malformed payload")

// Formatter converts between a wire format and the in-memory model.
type Formatter interface {
	// ContentType returns the media type of the format.
	ContentType() string

	// FromRequest parses a request payload. Empty input yields an empty map. Input that can't be
	// parsed yields an error whose cause is ErrMalformed.
	FromRequest(body []byte) (*resource.OrderedMap, error)

	// ToResponse renders a resource graph. The pretty flag only affects whitespace.
	ToResponse(r *resource.Resource, pretty bool) ([]byte, error)
}

// Representer shapes a resource into the map a JSON format serializes.
type Representer interface {
	Represent(r *resource.Resource) *resource.OrderedMap
}

// Formatters returns one of each built-in formatter, HAL JSON first.
func Formatters() []Formatter {
	return []Formatter{
		NewHALJSON(),
		NewSirenJSON(),
		NewHALXML(),
		NewJSONAPI(),
	}
}

// ForContentType returns the formatter for the given media type. Parameters such as charset are
// ignored.
func ForContentType(contentType string, formatters []Formatter) (Formatter, bool) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, false
	}
	for _, f := range formatters {
		if f.ContentType() == mediaType {
			return f, true
		}
	}
	return nil, false
}

type acceptRange struct {
	mediaType string
	q         float64
}

func parseAccept(accept string) []acceptRange {
	var ret []acceptRange
	for _, part := range strings.Split(accept, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		mediaType, params, err := mime.ParseMediaType(part)
		if err != nil {
			continue
		}
		q := 1.0
		if s, ok := params["q"]; ok {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				q = v
			}
		}
		if q <= 0 {
			continue
		}
		ret = append(ret, acceptRange{
			mediaType: mediaType,
			q:         q,
		})
	}
	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].q > ret[j].q
	})
	return ret
}

func matchesRange(mediaType, r string) bool {
	if r == "*/*" || r == mediaType {
		return true
	}
	if strings.HasSuffix(r, "/*") {
		return strings.HasPrefix(mediaType, strings.TrimSuffix(r, "*"))
	}
	return false
}

// Negotiate picks the formatter that best satisfies an Accept header. An empty header accepts
// anything. When nothing acceptable is available, ok is false and fallback is returned.
func Negotiate(accept string, formatters []Formatter, fallback Formatter) (f Formatter, ok bool) {
	if strings.TrimSpace(accept) == "" {
		return fallback, true
	}
	for _, r := range parseAccept(accept) {
		if fallback != nil && matchesRange(fallback.ContentType(), r.mediaType) {
			return fallback, true
		}
		for _, f := range formatters {
			if matchesRange(f.ContentType(), r.mediaType) {
				return f, true
			}
		}
	}
	return fallback, false
}

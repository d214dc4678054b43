// Package level3 serves hypermedia resources over HTTP in whichever format a client asks for.
//
// Resource graphs are modeled by the resource package and rendered by the format package. This
// package ties them to net/http: it negotiates a format, applies the "expand" query parameter,
// and sets caching headers.
package level3

import (
	"io"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/level3/level3/format"
	"github.com/level3/level3/resource"
)

// ErrUnsupportedMediaType is the cause of errors returned by Read when the request's content type
// has no formatter.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

type API struct {
	config     *Config
	logger     logrus.FieldLogger
	formatters []format.Formatter
	fallback   format.Formatter
}

func NewAPI(cfg *Config) (*API, error) {
	formatters := cfg.formatters()
	for i, f := range formatters {
		if f == nil {
			return nil, errors.Errorf("formatter %d is nil", i)
		}
	}
	fallback := formatters[0]
	if cfg.DefaultContentType != "" {
		f, ok := format.ForContentType(cfg.DefaultContentType, formatters)
		if !ok {
			return nil, errors.Errorf("no formatter for default content type %v", cfg.DefaultContentType)
		}
		fallback = f
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &API{
		config:     cfg,
		logger:     logger,
		formatters: formatters,
		fallback:   fallback,
	}, nil
}

// Formatter picks a formatter for the response based on the request's Accept header. If ok is
// false, nothing acceptable is supported and the default formatter is returned.
func (api *API) Formatter(r *http.Request) (f format.Formatter, ok bool) {
	return format.Negotiate(r.Header.Get("Accept"), api.formatters, api.fallback)
}

// Expand embeds the linked resources named by the request's expand parameter. The parameter may
// be given more than once.
func (api *API) Expand(r *http.Request, res *resource.Resource) {
	for _, value := range r.URL.Query()[api.config.expandParameter()] {
		for _, path := range resource.ParseExpandPaths(value) {
			res.ExpandLinkedResourcesTree(path...)
		}
	}
}

func (api *API) pretty(r *http.Request) bool {
	if api.config.Pretty {
		return true
	}
	pretty, _ := strconv.ParseBool(r.URL.Query().Get("pretty"))
	return pretty
}

// Write expands and renders the resource as the response to r.
func (api *API) Write(w http.ResponseWriter, r *http.Request, res *resource.Resource) {
	f, ok := api.Formatter(r)
	if !ok {
		http.Error(w, http.StatusText(http.StatusNotAcceptable), http.StatusNotAcceptable)
		return
	}

	api.Expand(r, res)

	body, err := f.ToResponse(res, api.pretty(r))
	if err != nil {
		api.logger.WithFields(logrus.Fields{
			"content_type": f.ContentType(),
			"path":         r.URL.Path,
		}).Error(errors.Wrap(err, "error rendering resource"))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	header := w.Header()
	header.Set("Content-Type", f.ContentType())
	header.Set("Content-Length", strconv.Itoa(len(body)))
	if cache := res.Cache(); cache > 0 {
		header.Set("Cache-Control", "max-age="+strconv.Itoa(cache))
	}
	if lastUpdate := res.LastUpdate(); !lastUpdate.IsZero() {
		header.Set("Last-Modified", lastUpdate.UTC().Format(http.TimeFormat))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Read parses the request body with the formatter matching its Content-Type. A request without a
// Content-Type is read with the default formatter.
func (api *API) Read(r *http.Request) (*resource.OrderedMap, error) {
	f := api.fallback
	if contentType := r.Header.Get("Content-Type"); contentType != "" {
		var ok bool
		if f, ok = format.ForContentType(contentType, api.formatters); !ok {
			return nil, errors.Wrap(ErrUnsupportedMediaType, contentType)
		}
	}

	var body []byte
	if r.Body != nil {
		var err error
		if body, err = io.ReadAll(r.Body); err != nil {
			return nil, errors.Wrap(err, "error reading request body")
		}
	}

	data, err := f.FromRequest(body)
	if err != nil {
		api.logger.WithFields(logrus.Fields{
			"content_type": f.ContentType(),
			"path":         r.URL.Path,
		}).Debug(err)
		return nil, err
	}
	return data, nil
}

// Handler serves GET and HEAD requests with the resource returned by get. A nil resource results
// in a 404.
func (api *API) Handler(get func(r *http.Request) (*resource.Resource, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		res, err := get(r)
		if err != nil {
			api.logger.WithField("path", r.URL.Path).Error(errors.Wrap(err, "error getting resource"))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		} else if res == nil {
			http.NotFound(w, r)
			return
		}

		api.Write(w, r, res)
	})
}

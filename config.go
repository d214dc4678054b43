package level3

import (
	"github.com/sirupsen/logrus"

	"github.com/level3/level3/format"
)

// Config defines the formats and other parameters for an API.
type Config struct {
	Logger logrus.FieldLogger

	// The formats the API can read and write. If not given, every built-in format is supported.
	Formatters []format.Formatter

	// The content type used when a request doesn't express a preference. It must be the content
	// type of one of the formatters. If not given, the first formatter is used.
	DefaultContentType string

	// If true, responses are always pretty-printed. Otherwise clients can request it with the
	// "pretty" query parameter.
	Pretty bool

	// The name of the query parameter holding expansion paths, "expand" if not given.
	ExpandParameter string
}

func (cfg *Config) formatters() []format.Formatter {
	if len(cfg.Formatters) > 0 {
		return cfg.Formatters
	}
	return format.Formatters()
}

func (cfg *Config) expandParameter() string {
	if cfg.ExpandParameter != "" {
		return cfg.ExpandParameter
	}
	return "expand"
}

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/level3/level3/document"
	"github.com/level3/level3/format"
	"github.com/level3/level3/resource"
)

var formats = map[string]func() format.Formatter{
	"hal": func() format.Formatter {
		return format.NewHALJSON()
	},
	"siren": func() format.Formatter {
		return format.NewSirenJSON()
	},
	"xml": func() format.Formatter {
		return format.NewHALXML()
	},
	"jsonapi": func() format.Formatter {
		return format.NewJSONAPI()
	},
}

// Render reads the document at path, expands the given paths, and renders the result.
func Render(path string, f format.Formatter, expand []string, pretty bool) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r, err := document.Decode(file)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	for _, value := range expand {
		for _, p := range resource.ParseExpandPaths(value) {
			r.ExpandLinkedResourcesTree(p...)
		}
	}

	return f.ToResponse(r, pretty)
}

// Run executes the command with the given arguments, writing output to w.
func Run(w io.Writer, args ...string) []error {
	flags := pflag.NewFlagSet("level3-render", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	formatName := flags.StringP("format", "f", "hal", "the output format: hal, siren, xml, or jsonapi")
	expand := flags.StringArrayP("expand", "e", nil, "a dot-separated path of linked resources to embed")
	pretty := flags.BoolP("pretty", "p", false, "indent the output")
	if err := flags.Parse(args); err != nil {
		return []error{err}
	}

	newFormatter, ok := formats[strings.ToLower(*formatName)]
	if !ok {
		return []error{fmt.Errorf("unknown format: %v", *formatName)}
	}

	if flags.NArg() == 0 {
		return []error{fmt.Errorf("at least one document is required")}
	}

	var errs []error
	for _, path := range flags.Args() {
		output, err := Render(path, newFormatter(), *expand, *pretty)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fmt.Fprintln(w, string(output))
	}
	return errs
}

func main() {
	if errs := Run(os.Stdout, os.Args[1:]...); len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		os.Exit(1)
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/kmlgeom/internal/geo"
	"github.com/woozymasta/kmlgeom/internal/processor"
)

type Options struct {
	Input  string `short:"i" long:"in"     description:"Input KML file path. Reads from stdin if empty"`
	Output string `short:"o" long:"out"    description:"Output file path. Writes to stdout if empty"`
	Format string `short:"f" long:"format" description:"Output format" choice:"json" choice:"yaml" default:"json"`
	Strict bool   `short:"s" long:"strict" description:"Fail on invalid coordinates instead of skipping geometries"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	fc, err := decodeInput(opts.Input, opts.Strict)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// marshal
	outputData, err := json.MarshalIndent(fc, "", "  ")
	if err == nil && opts.Format == "yaml" {
		// go through a generic value so YAML keys match GeoJSON
		var generic interface{}
		if err = json.Unmarshal(outputData, &generic); err == nil {
			outputData, err = yaml.Marshal(generic)
		}
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling data: %v\n", err)
		os.Exit(1)
	}

	if opts.Output != "" {
		err = os.WriteFile(opts.Output, outputData, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Successfully converted %d features to %s (format: %s)\n", len(fc.Features), opts.Output, opts.Format)
	} else {
		fmt.Println(string(outputData))
	}
}

// decodeInput reads KML from path, or stdin when path is empty. The file is
// closed before returning so callers may exit right away.
func decodeInput(path string, strict bool) (geo.FeatureCollection, error) {
	var in io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return geo.FeatureCollection{}, errors.Wrap(err, "read input file")
		}
		defer f.Close()
		in = f
	}

	fc, err := processor.DecodeDocument(in, processor.DecodeOptions{Strict: strict})
	if err != nil {
		return geo.FeatureCollection{}, errors.Wrap(err, "decode KML")
	}
	return fc, nil
}

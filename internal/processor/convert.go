package processor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/kmlgeom/internal/geo"
)

// ErrUnsupportedExtension is returned for inputs that are neither KML nor GeoJSON.
var ErrUnsupportedExtension = errors.New("processor: unsupported file extension")

// ConvertOptions configure both conversion directions.
type ConvertOptions struct {
	// OutDir receives the outputs; empty writes next to each input.
	OutDir string
	Decode DecodeOptions
	Encode EncodeOptions
	// Minify writes compact KML.
	Minify bool
	// Force overwrites existing outputs.
	Force bool
}

// Result describes the outcome for a single input file.
type Result struct {
	Err      error
	Input    string
	Output   string
	Features int
	Skipped  bool
}

type job struct {
	Input string
	Index int
}

// ConvertFiles converts every input with a pool of concurrency workers.
// KML files become GeoJSON and GeoJSON files become KML. Results keep the
// order of inputs.
func ConvertFiles(inputs []string, concurrency int, opts ConvertOptions) []Result {
	if concurrency < 1 {
		concurrency = 1
	}

	jobs := make(chan job, len(inputs))
	results := make([]Result, len(inputs))

	go func() {
		for i, in := range inputs {
			jobs <- job{Input: in, Index: i}
		}
		close(jobs)
	}()

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				res := convertFile(j.Input, opts)
				if res.Err != nil {
					log.Error().
						Err(res.Err).
						Str("input", j.Input).
						Msg("Failed to convert file")
				}
				results[j.Index] = res
			}
		}()
	}
	wg.Wait()

	return results
}

// OutputPath returns the file an input converts to.
func OutputPath(input, outDir string) (string, error) {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(filepath.Base(input), ext)
	if outDir == "" {
		outDir = filepath.Dir(input)
	}

	switch strings.ToLower(ext) {
	case ".kml":
		return filepath.Join(outDir, base+".geojson"), nil
	case ".geojson", ".json":
		return filepath.Join(outDir, base+".kml"), nil
	}
	return "", errors.Wrapf(ErrUnsupportedExtension, "%q", ext)
}

func convertFile(input string, opts ConvertOptions) Result {
	res := Result{Input: input}

	out, err := OutputPath(input, opts.OutDir)
	if err != nil {
		res.Err = err
		return res
	}
	res.Output = out

	// Check existence if not forcing overwrite
	if !opts.Force {
		if info, err := os.Stat(out); err == nil && info.Size() > 0 {
			log.Debug().Str("output", out).Msg("Output exists, skipping")
			res.Skipped = true
			return res
		}
	}

	if strings.EqualFold(filepath.Ext(input), ".kml") {
		res.Features, res.Err = kmlToGeoJSON(input, out, opts)
	} else {
		res.Features, res.Err = geoJSONToKML(input, out, opts)
	}

	if res.Err == nil {
		log.Info().
			Str("input", input).
			Str("output", out).
			Int("features", res.Features).
			Msg("File converted")
	}
	return res
}

func kmlToGeoJSON(input, output string, opts ConvertOptions) (int, error) {
	f, err := os.Open(input)
	if err != nil {
		return 0, errors.Wrap(err, "open kml")
	}
	defer f.Close()

	fc, err := DecodeDocument(f, opts.Decode)
	if err != nil {
		return 0, err
	}

	return len(fc.Features), saveGeoJSON(filepath.Dir(output), output, fc)
}

func geoJSONToKML(input, output string, opts ConvertOptions) (int, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return 0, errors.Wrap(err, "read geojson")
	}

	var fc geo.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return 0, errors.Wrapf(err, "parse %s", input)
	}

	doc, err := EncodeDocument(fc, opts.Encode)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return 0, err
	}
	out, err := os.Create(output)
	if err != nil {
		return 0, err
	}

	// We care about write errors on close
	defer func() {
		if closeErr := out.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", output).Msg("Failed to close file")
		}
	}()

	return len(fc.Features), WriteDocument(out, doc, opts.Minify)
}

// saveGeoJSON marshals the feature collection and writes it to disk.
func saveGeoJSON(dir, path string, fc geo.FeatureCollection) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	// We care about write errors on close
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	return json.NewEncoder(f).Encode(fc)
}

package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/kmlgeom/internal/config"
	"github.com/woozymasta/kmlgeom/internal/kml"
	"github.com/woozymasta/kmlgeom/internal/logger"
	"github.com/woozymasta/kmlgeom/internal/processor"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Args struct {
		Files []string `positional-arg-name:"FILE" description:"KML, GeoJSON or JSON files to convert" required:"1"`
	} `positional-args:"yes" required:"yes"`

	ConfigFile  string `short:"c" long:"config"      env:"CONFIG_FILE" description:"Path to configuration file"`
	OutDir      string `short:"o" long:"out-dir"     env:"OUT_DIR"     description:"Output directory, next to inputs if empty"`
	Verbosity   string `short:"v" long:"verbosity"   env:"VERBOSITY"   description:"Hint output level" choice:"terse" choice:"normal" choice:"verbose"`
	Namespace   string `short:"n" long:"namespace"   env:"NAMESPACE"   description:"KML namespace prefix for written elements"`
	Concurrency int    `short:"p" long:"concurrency" env:"CONCURRENCY" description:"Concurrency" default:"4"`
	Precision   int    `long:"precision"             env:"PRECISION"   description:"Coordinate decimals, config value if negative" default:"-1"`
	Force       bool   `short:"f" long:"force"       description:"Force overwrite of existing files"`
	Strict      bool   `short:"s" long:"strict"      description:"Fail on invalid coordinates instead of skipping geometries"`
	Minify      bool   `short:"m" long:"minify"      description:"Write minified KML"`
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

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Flags override config
	if opts.Precision >= 0 {
		cfg.Precision = &opts.Precision
	}
	if opts.Verbosity != "" {
		cfg.Verbosity = opts.Verbosity
	}
	if opts.Namespace != "" {
		cfg.Namespace = opts.Namespace
	}
	cfg.Strict = cfg.Strict || opts.Strict
	cfg.Minify = cfg.Minify || opts.Minify

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid options")
	}

	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}

	verbosity, _ := kml.ParseVerbosity(cfg.Verbosity)
	convertOpts := processor.ConvertOptions{
		OutDir: opts.OutDir,
		Decode: processor.DecodeOptions{Strict: cfg.Strict},
		Encode: processor.EncodeOptions{
			Precision: cfg.PrecisionOrDefault(),
			Verbosity: verbosity,
			Namespace: cfg.Namespace,
			Hints:     cfg.Hints(),
		},
		Minify: cfg.Minify,
		Force:  opts.Force,
	}

	log.Info().
		Int("files", len(opts.Args.Files)).
		Int("concurrency", opts.Concurrency).
		Bool("strict", cfg.Strict).
		Bool("force", opts.Force).
		Msg("Starting conversion")

	results := processor.ConvertFiles(opts.Args.Files, opts.Concurrency, convertOpts)

	var converted, skipped, failed int
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed++
		case res.Skipped:
			skipped++
		default:
			converted++
		}
	}

	log.Info().
		Int("converted", converted).
		Int("skipped", skipped).
		Int("failed", failed).
		Msg("Conversion finished")

	if failed > 0 {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/kmlgeom/internal/config"
	"github.com/woozymasta/kmlgeom/internal/logger"
	"github.com/woozymasta/kmlgeom/internal/server"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"   env:"CONFIG_FILE"    description:"Path to configuration file"`
	Addr       string `short:"a" long:"addr"     env:"LISTEN_ADDRESS" description:"Address to listen on"            default:"0.0.0.0"`
	Port       int    `short:"p" long:"port"     env:"LISTEN_PORT"    description:"Port to listen on"               default:"8080"`
	MaxBody    int64  `long:"max-body"           env:"MAX_BODY_SIZE"  description:"Maximum request body in bytes"   default:"33554432"`
	Strict     bool   `short:"s" long:"strict"   env:"STRICT"         description:"Reject invalid coordinates by default"`
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

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	cfg.Strict = cfg.Strict || opts.Strict

	srvCtx := server.NewServerContext(cfg)
	if opts.MaxBody > 0 {
		srvCtx.MaxBodySize = opts.MaxBody
	}

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           srvCtx.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().
		Str("addr", listenAddr).
		Int64("max_body", srvCtx.MaxBodySize).
		Msg("Web server started")

	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

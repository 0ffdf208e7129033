package server

import (
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/kmlgeom/internal/config"
	"github.com/woozymasta/kmlgeom/internal/processor"
)

// maxBodySize limits uploaded documents.
const maxBodySize = 32 << 20

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config *config.Config
	// MaxBodySize is the upload limit in bytes.
	MaxBodySize int64
}

// NewServerContext initializes the context from the loaded configuration.
func NewServerContext(cfg *config.Config) *ServerContext {
	if cfg == nil {
		cfg = config.Default()
	}

	log.Info().
		Int("precision", cfg.PrecisionOrDefault()).
		Str("verbosity", cfg.Verbosity).
		Str("namespace", cfg.Namespace).
		Bool("strict", cfg.Strict).
		Bool("minify", cfg.Minify).
		Msg("Server context initialized")

	return &ServerContext{Config: cfg, MaxBodySize: maxBodySize}
}

// encodeOptions derives the encode settings from the configuration.
func (s *ServerContext) encodeOptions() processor.EncodeOptions {
	return processor.EncodeOptions{
		Precision: s.Config.PrecisionOrDefault(),
		Verbosity: s.Config.VerbosityLevel(),
		Namespace: s.Config.Namespace,
		Hints:     s.Config.Hints(),
	}
}

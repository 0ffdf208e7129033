// Package server handles HTTP requests and middleware.
package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/kmlgeom/internal/geo"
	"github.com/woozymasta/kmlgeom/internal/kml"
	"github.com/woozymasta/kmlgeom/internal/processor"
)

const (
	contentTypeGeoJSON = "application/geo+json"
	contentTypeKML     = "application/vnd.google-earth.kml+xml"
)

func errInvalidPrecision(raw string) error {
	return errors.Errorf("invalid precision %q", raw)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: "method not allowed"})
	return false
}

// queryBool reads a boolean query parameter, falling back to def when absent.
func queryBool(r *http.Request, key string, def bool) (bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	return strconv.ParseBool(raw)
}

// HandleHealth reports that the service is up.
func (s *ServerContext) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// HandleDecode converts a KML document in the request body to GeoJSON.
func (s *ServerContext) HandleDecode(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	strict, err := queryBool(r, "strict", s.Config.Strict)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	body := http.MaxBytesReader(w, r.Body, s.MaxBodySize)
	fc, err := processor.DecodeDocument(body, processor.DecodeOptions{Strict: strict})
	if err != nil {
		log.Debug().Err(err).Msg("Rejected KML document")
		writeError(w, http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeGeoJSON)
	_ = json.NewEncoder(w).Encode(fc)
}

// HandleEncode converts GeoJSON in the request body to a KML document.
func (s *ServerContext) HandleEncode(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	opts := s.encodeOptions()
	if raw := r.URL.Query().Get("precision"); raw != "" {
		precision, err := strconv.Atoi(raw)
		if err != nil || precision < 0 || precision > kml.MaxPrecision {
			writeError(w, http.StatusBadRequest, errInvalidPrecision(raw))
			return
		}
		opts.Precision = precision
	}
	minified, err := queryBool(r, "minify", s.Config.Minify)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var fc geo.FeatureCollection
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.MaxBodySize)).Decode(&fc); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	doc, err := processor.EncodeDocument(fc, opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var buf bytes.Buffer
	if err := processor.WriteDocument(&buf, doc, minified); err != nil {
		log.Error().Err(err).Msg("Failed to write KML document")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeKML)
	_, _ = w.Write(buf.Bytes())
}

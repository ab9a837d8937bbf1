package server

import (
	stderrors "errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/placard/pkg/buildinfo"
	"github.com/matzehuels/placard/pkg/diagram"
	"github.com/matzehuels/placard/pkg/errors"
	pio "github.com/matzehuels/placard/pkg/io"
	"github.com/matzehuels/placard/pkg/layout"
	"github.com/matzehuels/placard/pkg/pipeline"
)

// Response headers set by /v1/render.
const (
	HeaderRunID    = "X-Placard-Run-Id"
	HeaderWarnings = "X-Placard-Warnings"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:      "image/svg+xml",
	pipeline.FormatJSON:     "application/json",
	pipeline.FormatPNG:      "image/png",
	pipeline.FormatPDF:      "application/pdf",
	pipeline.FormatDOT:      "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatTopology: "image/svg+xml",
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type validateResponse struct {
	Valid    bool              `json:"valid"`
	Warnings []diagram.Warning `json:"warnings"`
}

type layoutResponse struct {
	RunID  string          `json:"run_id"`
	Layout *layout.Layout  `json:"layout"`
	Report pipeline.Report `json:"report"`
	Cached bool            `json:"cached"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Current()})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	def, err := s.decode(w, r)
	if err != nil {
		writeError(w, fromError(err))
		return
	}
	warnings, err := s.runner.Validate(r.Context(), def)
	if err != nil {
		writeError(w, fromError(err))
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{Valid: true, Warnings: nonNil(warnings)})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	def, err := s.decode(w, r)
	if err != nil {
		writeError(w, fromError(err))
		return
	}
	opts := s.pipelineOptions(r, nil)
	res, err := s.runner.ExecuteLayout(r.Context(), def, opts)
	if err != nil {
		writeError(w, fromError(err))
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{
		RunID:  res.RunID.String(),
		Layout: res.Layout,
		Report: res.Report,
		Cached: res.CacheInfo.LayoutHit,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, fromError(err))
		return
	}

	def, err := s.decode(w, r)
	if err != nil {
		writeError(w, fromError(err))
		return
	}
	opts := s.pipelineOptions(r, []string{format})
	res, err := s.runner.Execute(r.Context(), def, opts)
	if err != nil {
		writeError(w, fromError(err))
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentTypes[format])
	h.Set(HeaderRunID, res.RunID.String())
	h.Set(HeaderWarnings, strconv.Itoa(res.Report.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// pipelineOptions derives per-request options from the server defaults.
func (s *Server) pipelineOptions(r *http.Request, formats []string) pipeline.Options {
	opts := s.opts.Pipeline
	opts.Formats = formats
	q := r.URL.Query()
	opts.Refresh = q.Get("refresh") == "true"
	opts.Grid = q.Get("grid") == "true"
	opts.Detailed = q.Get("detailed") == "true"
	opts.Logger = s.logger.With("request", middleware.GetReqID(r.Context()))
	return opts
}

// decode reads the request body as a definition.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*diagram.Definition, error) {
	f, err := inputFormat(r)
	if err != nil {
		return nil, err
	}
	body := http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	defer body.Close()

	def, err := pio.Read(body, f)
	if err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", maxErr.Limit)
		}
		return nil, err
	}
	return def, nil
}

// inputFormat picks the definition format from ?input= or Content-Type.
func inputFormat(r *http.Request) (pio.Format, error) {
	if name := r.URL.Query().Get("input"); name != "" {
		f, err := pio.ParseFormat(name)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "input parameter")
		}
		return f, nil
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return pio.FormatJSON, nil
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "content type")
	}
	switch {
	case strings.HasSuffix(mt, "yaml"):
		return pio.FormatYAML, nil
	case strings.HasSuffix(mt, "toml"):
		return pio.FormatTOML, nil
	}
	return pio.FormatJSON, nil
}

func nonNil(ws []diagram.Warning) []diagram.Warning {
	if ws == nil {
		return []diagram.Warning{}
	}
	return ws
}

package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/chordwheel/pkg/errors"
	"github.com/matzehuels/chordwheel/pkg/graph"
	pkgio "github.com/matzehuels/chordwheel/pkg/io"
	"github.com/matzehuels/chordwheel/pkg/observability"
	"github.com/matzehuels/chordwheel/pkg/pipeline"
)

// Response headers set on pipeline responses.
const (
	HeaderCache       = "X-Cache"
	HeaderDatasetHash = "X-Dataset-Hash"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ds, err := readDataset(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	l, hit, err := s.runner.GenerateLayoutWithCacheInfo(r.Context(), ds, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := graph.MarshalLayout(l)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode layout"))
		return
	}

	w.Header().Set(HeaderCache, cacheStatus(hit))
	w.Header().Set(HeaderDatasetHash, pipeline.DatasetHash(ds))
	writeBytes(w, contentTypes[pipeline.FormatJSON], data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ds, err := readDataset(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), ds, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set(HeaderCache, cacheStatus(result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit))
	w.Header().Set(HeaderDatasetHash, result.DatasetHash)
	writeBytes(w, contentTypes[format], result.Artifacts[format])
}

func (s *Server) handleVisualize(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body, err := readBody(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	l, err := graph.UnmarshalLayout(body)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse layout"))
		return
	}

	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), l, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set(HeaderCache, cacheStatus(hit))
	writeBytes(w, contentTypes[format], artifacts[format])
}

// =============================================================================
// Request decoding
// =============================================================================

// options starts from the server defaults and applies the query string.
// Exactly one output format is rendered per request.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	opts.Formats = nil
	opts.Logger = nil
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
		if len(s.defaults.Formats) > 0 {
			format = s.defaults.Formats[0]
		}
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return pipeline.Options{}, err
	}
	opts.Formats = []string{format}

	setString(&opts.VizType, q, "viz")
	setString(&opts.Style, q, "style")
	setString(&opts.Engine, q, "engine")
	setString(&opts.Title, q, "title")
	setString(&opts.Palette.Positive, q, "positive")
	setString(&opts.Palette.Neutral, q, "neutral")
	setString(&opts.Palette.Negative, q, "negative")

	var err error
	for name, dst := range map[string]*float64{
		"width":        &opts.Width,
		"height":       &opts.Height,
		"scale":        &opts.Scale,
		"base_weight":  &opts.BaseWeight,
		"pad_angle":    &opts.PadAngle,
		"flow_scale":   &opts.FlowScale,
		"flow_epsilon": &opts.FlowEpsilon,
	} {
		if err = setFloat(dst, q, name); err != nil {
			return pipeline.Options{}, err
		}
	}
	if v := q.Get("seed"); v != "" {
		if opts.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return pipeline.Options{}, badParam("seed", v)
		}
	}
	if v := q.Get("interactive"); v != "" {
		interactive, err := strconv.ParseBool(v)
		if err != nil {
			return pipeline.Options{}, badParam("interactive", v)
		}
		opts.NoInteraction = !interactive
	}
	for name, dst := range map[string]*bool{"detailed": &opts.Detailed, "refresh": &opts.Refresh} {
		if v := q.Get(name); v != "" {
			if *dst, err = strconv.ParseBool(v); err != nil {
				return pipeline.Options{}, badParam(name, v)
			}
		}
	}

	if err := opts.Validate(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

func setString(dst *string, q map[string][]string, name string) {
	if v := strings.TrimSpace(first(q[name])); v != "" {
		*dst = v
	}
}

func setFloat(dst *float64, q map[string][]string, name string) error {
	v := first(q[name])
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return badParam(name, v)
	}
	*dst = f
	return nil
}

func first(vs []string) string {
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

// readDataset decodes the body in the format named by the "input" query
// parameter or the Content-Type header, defaulting to JSON.
func readDataset(r *http.Request) (graph.Dataset, error) {
	format, err := inputFormat(r)
	if err != nil {
		return graph.Dataset{}, err
	}
	body, err := readBody(r)
	if err != nil {
		return graph.Dataset{}, err
	}
	return pipeline.LoadReader(r.Context(), bytes.NewReader(body), format)
}

func inputFormat(r *http.Request) (pkgio.Format, error) {
	if name := r.URL.Query().Get("input"); name != "" {
		return pkgio.ParseFormat(name)
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return pkgio.FormatJSON, nil
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "content type %q", ct)
	}
	switch mt {
	case "application/json", "text/json":
		return pkgio.FormatJSON, nil
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return pkgio.FormatYAML, nil
	case "application/toml", "text/toml":
		return pkgio.FormatTOML, nil
	case "text/csv":
		return pkgio.FormatCSV, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported content type %q", mt)
	}
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errTooLarge(tooLarge.Limit)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body is empty")
	}
	return body, nil
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error     string      `json:"error"`
	Code      errors.Code `json:"code"`
	RequestID string      `json:"request_id,omitempty"`
}

// writeError answers with the status mapped from the error code. Internal
// errors are logged in full and reported to the client without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeErrorStatus(w, r, errors.HTTPStatus(err), err)
}

func (s *Server) writeErrorStatus(w http.ResponseWriter, r *http.Request, status int, err error) {
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "path", r.URL.Path, "error", err)
		if code == "" {
			code = errors.ErrCodeInternal
		}
		msg = http.StatusText(status)
	} else {
		s.logger.Debug("request rejected", "id", RequestID(r.Context()), "path", r.URL.Path, "error", err)
	}
	observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), err)

	writeJSON(w, status, errorResponse{
		Error:     msg,
		Code:      code,
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBytes(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func badParam(name, value string) error {
	return errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, value)
}

func errNotFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

func errMethod(method, path string) error {
	return errors.New(errors.ErrCodeUnsupported, "method %s not allowed on %s", method, path)
}

func errTooLarge(limit int64) error {
	return errors.New(errors.ErrCodeTooLarge, "request body exceeds %d bytes", limit)
}

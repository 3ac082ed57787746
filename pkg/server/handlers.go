package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/linetrace/pkg/buildinfo"
	"github.com/matzehuels/linetrace/pkg/errors"
	"github.com/matzehuels/linetrace/pkg/pipeline"
	"github.com/matzehuels/linetrace/pkg/render"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	type info struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	}
	all := s.presets.All()
	out := make([]info, 0, len(all))
	for _, p := range all {
		out = append(out, info{Name: p.Name, Description: p.Description})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleVectorize(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	jobID := uuid.NewString()

	img, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxMaskBytes))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidMask, err, "read request body"))
		return
	}
	if len(img) == 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidMask, "empty request body"))
		return
	}

	opts, format, err := s.optionsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Source = jobID
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), img, opts)
	if err != nil {
		s.logger.Error("vectorize failed", "job", jobID, "error", err)
		writeError(w, err)
		return
	}

	s.logger.Info("vectorize",
		"job", jobID,
		"format", format,
		"paths", len(result.Paths),
		"duration", time.Since(start),
		"trace_hit", result.CacheInfo.TraceHit,
		"refine_hit", result.CacheInfo.RefineHit,
		"render_hit", result.CacheInfo.RenderHit,
	)

	f, _ := render.ParseFormat(format)
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("X-Job-ID", jobID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// optionsFromQuery maps query parameters onto pipeline options. A named
// preset fills the fields the query left unset, same precedence as CLI
// flags over a preset.
func (s *Server) optionsFromQuery(q url.Values) (pipeline.Options, string, error) {
	var opts pipeline.Options

	format := strings.ToLower(strings.TrimSpace(q.Get("format")))
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return opts, "", err
	}
	opts.Formats = []string{format}

	var err error
	if opts.MinPoints, err = queryInt(q, "min_points"); err != nil {
		return opts, "", err
	}
	if opts.BridgeGap, err = queryFloat(q, "bridge_gap"); err != nil {
		return opts, "", err
	}
	opts.Traversal = q.Get("traversal")
	if opts.Threshold, err = queryInt(q, "threshold"); err != nil {
		return opts, "", err
	}
	if opts.Invert, err = queryBool(q, "invert"); err != nil {
		return opts, "", err
	}
	opts.Filters = q.Get("filters")
	if opts.MergeTolerance, err = queryFloat(q, "merge_tolerance"); err != nil {
		return opts, "", err
	}
	if opts.StrokeWidth, err = queryFloat(q, "stroke_width"); err != nil {
		return opts, "", err
	}
	if opts.Refresh, err = queryBool(q, "refresh"); err != nil {
		return opts, "", err
	}

	if name := q.Get("preset"); name != "" {
		p, err := s.presets.Get(name)
		if err != nil {
			return opts, "", err
		}
		p.Apply(&opts)
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, "", err
	}
	return opts, format, nil
}

func queryInt(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, raw)
	}
	return v, nil
}

func queryFloat(q url.Values, name string) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, raw)
	}
	return v, nil
}

func queryBool(q url.Values, name string) (bool, error) {
	raw := q.Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, raw)
	}
	return v, nil
}

// statusFromCode maps application error codes to HTTP statuses.
func statusFromCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidMask, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidFilter, errors.ErrCodeInvalidPreset, errors.ErrCodeInvalidPath,
		errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFromCode(code), errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

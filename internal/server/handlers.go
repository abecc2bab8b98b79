package server

import (
	"encoding/json"
	"io"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/matzehuels/pairquest/pkg/closest"
	"github.com/matzehuels/pairquest/pkg/errors"
	"github.com/matzehuels/pairquest/pkg/geom"
	pqio "github.com/matzehuels/pairquest/pkg/io"
	"github.com/matzehuels/pairquest/pkg/pipeline"
	"github.com/matzehuels/pairquest/pkg/points"
	"github.com/matzehuels/pairquest/pkg/render"
	"github.com/matzehuels/pairquest/pkg/report"
)

// msgNotEnoughPoints is the /closest error body for fewer than two points.
const msgNotEnoughPoints = "Not enough points"

type generateRequest struct {
	NumPoints *int    `json:"num_points"`
	Seed      *uint64 `json:"seed"`
}

type pairResult struct {
	Pair     *[2][2]float64 `json:"pair"`
	Distance *float64       `json:"distance"`
}

type closestResponse struct {
	ID         string     `json:"id"`
	BruteForce pairResult `json:"closest_pair_bruteforce"`
	DnC        pairResult `json:"closest_pair_dnc"`
	TimeBF     float64    `json:"time_bruteforce"`
	TimeDnC    float64    `json:"time_dnc"`
	Agree      bool       `json:"agree"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// handleGenerate returns integer points in the configured frame. Omitting
// the seed gives a fresh random set on every call.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeOptionalJSON(r.Body, &req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body"))
		return
	}

	opts := points.Options{Count: points.DefaultCount, Bounds: s.cfg.Bounds, Integer: true}
	if req.NumPoints != nil {
		if *req.NumPoints < 0 || *req.NumPoints > s.cfg.MaxPoints {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "num_points must be between 0 and %d", s.cfg.MaxPoints))
			return
		}
		opts.Count = *req.NumPoints
	}
	if req.Seed != nil {
		opts.Seed = *req.Seed
	} else {
		opts.Seed = rand.Uint64()
	}

	pts, err := points.Generate(opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, coords(pts))
}

// handleClosest times both solvers on every request. It bypasses the report
// cache so repeated requests get fresh timings.
func (s *Server) handleClosest(w http.ResponseWriter, r *http.Request) {
	pts, err := s.readPoints(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := errors.ValidateMinPoints(pts); err != nil {
		s.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: msgNotEnoughPoints, Code: string(errors.GetCode(err))})
		return
	}

	rep, err := report.Compare(r.Context(), pts, closest.Names())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := closestResponse{ID: rep.ID, Agree: rep.Agree}
	if run, ok := rep.Run(closest.NameBruteForce); ok {
		resp.BruteForce, resp.TimeBF = toPairResult(run), run.ElapsedMS
	}
	if run, ok := rep.Run(closest.NameDivideAndConquer); ok {
		resp.DnC, resp.TimeDnC = toPairResult(run), run.ElapsedMS
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = render.FormatSVG
	}

	pts, err := s.readPoints(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		Points:  pts,
		Formats: []string{format},
		Width:   s.cfg.Width,
		Height:  s.cfg.Height,
		Title:   q.Get("title"),
	}
	if err := parseFloatParam(q.Get("width"), &opts.Width); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := parseFloatParam(q.Get("height"), &opts.Height); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", render.ContentType(format))
	w.Header().Set("X-Cache", cacheStatus(res.CacheInfo.RenderHit))
	_, _ = w.Write(res.Artifacts[format])
}

// handleIndex renders the HTML page for a generated point set. The count and
// seed query parameters select the set.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.DefaultOptions()
	opts.Bounds = s.cfg.Bounds
	opts.Integer = true
	opts.Formats = []string{render.FormatHTML}
	opts.Width, opts.Height = s.cfg.Width, s.cfg.Height
	if v := q.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > s.cfg.MaxPoints {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "count must be an integer between 0 and %d", s.cfg.MaxPoints))
			return
		}
		opts.Count = n
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "seed must be an unsigned integer"))
			return
		}
		opts.Seed = seed
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", render.ContentType(render.FormatHTML))
	_, _ = w.Write(res.Artifacts[render.FormatHTML])
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) readPoints(w http.ResponseWriter, r *http.Request) ([]geom.Point, error) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	pts, err := pqio.ReadPoints(body, pqio.FormatJSON)
	if err != nil {
		return nil, err
	}
	if len(pts) > s.cfg.MaxPoints {
		return nil, errors.New(errors.ErrCodeInvalidInput, "too many points: %d (max %d)", len(pts), s.cfg.MaxPoints)
	}
	return pts, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "error", err, "request_id", requestIDFromContext(r.Context()))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err, "request_id", requestIDFromContext(r.Context()))
	}
	s.writeJSON(w, r, status, errorResponse{Error: msg, Code: string(errors.GetCode(err))})
}

func decodeOptionalJSON(body io.Reader, v any) error {
	err := json.NewDecoder(body).Decode(v)
	if err == io.EOF {
		return nil
	}
	return err
}

func parseFloatParam(s string, dst *float64) error {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "invalid size %q", s)
	}
	*dst = v
	return nil
}

func coords(pts []geom.Point) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}

func toPairResult(run report.Run) pairResult {
	if !run.Found {
		return pairResult{}
	}
	pair := [2][2]float64{{run.Pair.A.X, run.Pair.A.Y}, {run.Pair.B.X, run.Pair.B.Y}}
	d := run.Pair.Distance
	return pairResult{Pair: &pair, Distance: &d}
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

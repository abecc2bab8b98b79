package server

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pairquest/pkg/cache"
	"github.com/matzehuels/pairquest/pkg/geom"
	"github.com/matzehuels/pairquest/pkg/observability"
	"github.com/matzehuels/pairquest/pkg/observability/prom"
	"github.com/matzehuels/pairquest/pkg/pipeline"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	runner := pipeline.NewRunner(c, nil, logger)
	return New(runner, logger, Config{}, opts...)
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestGenerate(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/generate", `{"num_points": 25, "seed": 3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var pts [][]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pts))
	require.Len(t, pts, 25)
	for _, p := range pts {
		require.Len(t, p, 2)
		assert.Equal(t, math.Trunc(p[0]), p[0], "x should be an integer")
		assert.GreaterOrEqual(t, p[0], 20.0)
		assert.LessOrEqual(t, p[0], 780.0)
		assert.GreaterOrEqual(t, p[1], 20.0)
		assert.LessOrEqual(t, p[1], 580.0)
	}

	again := do(t, s, http.MethodPost, "/generate", `{"num_points": 25, "seed": 3}`)
	assert.Equal(t, rec.Body.String(), again.Body.String(), "same seed, same points")
}

func TestGenerateDefaults(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/generate", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var pts [][]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pts))
	assert.Len(t, pts, 50)
}

func TestGenerateRejects(t *testing.T) {
	s := newTestServer(t)
	for _, body := range []string{`{"num_points": -1}`, `{"num_points": 100000000}`, `not json`} {
		rec := do(t, s, http.MethodPost, "/generate", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestClosest(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/closest", `{"points": [[0,0],[3,4],[1,1]]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		BF struct {
			Pair     [][]float64 `json:"pair"`
			Distance float64     `json:"distance"`
		} `json:"closest_pair_bruteforce"`
		DnC struct {
			Pair     [][]float64 `json:"pair"`
			Distance float64     `json:"distance"`
		} `json:"closest_pair_dnc"`
		TimeBF  *float64 `json:"time_bruteforce"`
		TimeDnC *float64 `json:"time_dnc"`
		Agree   bool     `json:"agree"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.InDelta(t, math.Sqrt2, resp.BF.Distance, 1e-12)
	assert.Equal(t, resp.BF.Distance, resp.DnC.Distance)
	assert.ElementsMatch(t, [][]float64{{0, 0}, {1, 1}}, resp.BF.Pair)
	assert.ElementsMatch(t, [][]float64{{0, 0}, {1, 1}}, resp.DnC.Pair)
	assert.NotNil(t, resp.TimeBF)
	assert.NotNil(t, resp.TimeDnC)
	assert.True(t, resp.Agree)
}

func TestClosestRetimesEveryRequest(t *testing.T) {
	s := newTestServer(t)
	body := `{"points": [[0,0],[3,4],[1,1],[7,7]]}`

	var ids []string
	for range 2 {
		rec := do(t, s, http.MethodPost, "/closest", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotContains(t, resp, "cached")
		ids = append(ids, resp["id"].(string))
	}
	assert.NotEqual(t, ids[0], ids[1], "each request should run the solvers again")
}

func TestClosestNotEnoughPoints(t *testing.T) {
	s := newTestServer(t)
	for _, body := range []string{`{"points": []}`, `{"points": [[1,2]]}`, `[]`} {
		rec := do(t, s, http.MethodPost, "/closest", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Not enough points", resp.Error)
	}
}

func TestClosestBadPoints(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/closest", `{"points": [[1,2,3],[4,5]]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_POINTS", resp.Code)
}

func TestRender(t *testing.T) {
	s := newTestServer(t)
	body := `{"points": [[100,100],[400,500],[130,140]]}`

	rec := do(t, s, http.MethodPost, "/render?format=svg", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<svg"))
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	// Reports carry their own ID, so a second request only reuses the
	// artifact once the report itself is cached.
	second := do(t, s, http.MethodPost, "/render?format=svg", body)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))

	html := do(t, s, http.MethodPost, "/render?format=html&width=400&height=300", body)
	require.Equal(t, http.StatusOK, html.Code)
	assert.Contains(t, html.Body.String(), `width="400" height="300"`)
}

func TestRenderBadFormat(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/render?format=gif", `{"points": [[1,1],[2,2]]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/render?width=-3", `{"points": [[1,1],[2,2]]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIndex(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/?count=20&seed=9", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "<canvas")

	rec = do(t, s, http.MethodGet, "/?count=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIndexCount(t *testing.T) {
	s := newTestServer(t)
	card := func(n string) string {
		return `<div class="label">Total Points</div><div class="value">` + n + `</div>`
	}

	rec := do(t, s, http.MethodGet, "/?count=0", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), card("0"))

	rec = do(t, s, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), card("50"))
}

func TestGenerateZeroPoints(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/generate", `{"num_points": 0, "seed": 5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHealthAndHeaders(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Server"), "pairquest/"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "6f1c2a5e-3b8d-4a7e-9c1f-2d4b6a8e0c13")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "6f1c2a5e-3b8d-4a7e-9c1f-2d4b6a8e0c13", rec.Header().Get("X-Request-ID"))
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	prom.New(reg).Register()
	t.Cleanup(observability.Reset)

	s := newTestServer(t, WithMetrics(reg))
	do(t, s, http.MethodPost, "/closest", `{"points": [[0,0],[1,1]]}`)

	rec := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "pairquest_http_requests_total")
	assert.Contains(t, body, `route="/closest"`)
	assert.Contains(t, body, "pairquest_solve_duration_seconds")
}

func TestMetricsDisabled(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeShutdown(t *testing.T) {
	s := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestCoords(t *testing.T) {
	assert.Equal(t, [][2]float64{{1, 2}}, coords([]geom.Point{geom.Pt(1, 2)}))
	assert.Empty(t, coords(nil))
}

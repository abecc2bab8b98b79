package render

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pairquest/pkg/closest"
	"github.com/matzehuels/pairquest/pkg/errors"
	"github.com/matzehuels/pairquest/pkg/geom"
	"github.com/matzehuels/pairquest/pkg/observability"
	"github.com/matzehuels/pairquest/pkg/report"
)

func sampleInput() Input {
	pts := []geom.Point{geom.Pt(100, 100), geom.Pt(400, 500), geom.Pt(130, 140)}
	pair := geom.NewPair(pts[0], pts[2])
	rep := &report.Report{
		ID:    "test",
		Count: len(pts),
		Runs: []report.Run{
			{Solver: closest.NameBruteForce, Label: "Brute Force", Found: true, Pair: &pair, Elapsed: 3 * time.Millisecond, ElapsedMS: 3},
			{Solver: closest.NameDivideAndConquer, Label: "Divide & Conquer", Found: true, Pair: &pair, Elapsed: time.Millisecond, ElapsedMS: 1},
		},
		Agree: true,
	}
	return Input{Points: pts, Report: rep}
}

func TestToDOTGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "dot", []byte(ToDOT(sampleInput())))
}

func TestToDOTWithoutReport(t *testing.T) {
	dot := ToDOT(Input{Points: []geom.Point{geom.Pt(1, 2)}})
	assert.Contains(t, dot, `p0 [pos="1,-2!"];`)
	assert.NotContains(t, dot, "--")
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(sampleInput(), Options{}))

	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Equal(t, 5, strings.Count(svg, "<circle"), "3 points plus 2 highlighted")
	assert.Contains(t, svg, `<line x1="100" y1="100" x2="130" y2="140"`)
	assert.Contains(t, svg, "d = 50.0000")
	assert.Contains(t, svg, `viewBox="0 0 800 600"`)
}

func TestRenderSVGEscapesTitle(t *testing.T) {
	svg := string(RenderSVG(Input{}, Options{Title: "<a&b>"}))
	assert.Contains(t, svg, "<title>&lt;a&amp;b&gt;</title>")
}

func TestRenderHTML(t *testing.T) {
	page, err := RenderHTML(sampleInput(), Options{})
	require.NoError(t, err)
	html := string(page)

	assert.Contains(t, html, `<canvas id="plot" width="800" height="600">`)
	assert.Contains(t, html, "Total Points")
	assert.Contains(t, html, "Brute Force Time")
	assert.Contains(t, html, "Divide &amp; Conquer Time")
	assert.Contains(t, html, "50.0000")
	assert.Contains(t, html, "Divide &amp; Conquer is 3.0x faster")
	assert.NotContains(t, html, "Solvers disagree")
}

func TestRenderHTMLNoPair(t *testing.T) {
	page, err := RenderHTML(Input{Points: []geom.Point{geom.Pt(5, 5)}}, Options{Title: "<script>"})
	require.NoError(t, err)
	html := string(page)

	assert.Contains(t, html, "n/a")
	assert.Regexp(t, `const pair = \s*null\s*;`, html)
	assert.NotContains(t, html, "<title><script>")
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(sampleInput())
	require.NoError(t, err)

	var doc struct {
		Points [][]float64     `json:"points"`
		Report json.RawMessage `json:"report"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, [][]float64{{100, 100}, {400, 500}, {130, 140}}, doc.Points)
	assert.NotEmpty(t, doc.Report)
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(context.Background(), "gif", sampleInput(), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestValidateFormats(t *testing.T) {
	assert.NoError(t, ValidateFormats([]string{"html", "png"}))
	assert.Error(t, ValidateFormats([]string{"html", "bmp"}))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", ContentType(FormatPNG))
	assert.Equal(t, "image/svg+xml", ContentType(FormatSVG))
	assert.Contains(t, ContentType(FormatHTML), "text/html")
}

func TestRenderPNG(t *testing.T) {
	data, err := Render(context.Background(), FormatPNG, sampleInput(), Options{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), "PNG signature")
}

func TestRenderPDF(t *testing.T) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		t.Skip("rsvg-convert not installed")
	}
	data, err := Render(context.Background(), FormatPDF, sampleInput(), Options{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

type recordingRenderHooks struct {
	mu       sync.Mutex
	started  [][]string
	finished int
	lastErr  error
}

func (h *recordingRenderHooks) OnRenderStart(_ context.Context, formats []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started = append(h.started, formats)
}

func (h *recordingRenderHooks) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.finished++
	h.lastErr = err
}

func TestRenderEmitsHooks(t *testing.T) {
	hooks := &recordingRenderHooks{}
	observability.SetRenderHooks(hooks)
	t.Cleanup(observability.Reset)

	_, err := Render(context.Background(), FormatSVG, sampleInput(), Options{})
	require.NoError(t, err)
	_, err = Render(context.Background(), "gif", sampleInput(), Options{})
	require.Error(t, err)

	assert.Equal(t, [][]string{{"svg"}, {"gif"}}, hooks.started)
	assert.Equal(t, 2, hooks.finished)
	assert.Error(t, hooks.lastErr)
}

func TestProject(t *testing.T) {
	t.Run("inside canvas is unchanged", func(t *testing.T) {
		pts := []geom.Point{geom.Pt(20, 20), geom.Pt(780, 580)}
		assert.Equal(t, pts, project(pts, 800, 600))
	})

	t.Run("outside canvas is fitted", func(t *testing.T) {
		pts := []geom.Point{geom.Pt(-1000, -1000), geom.Pt(1000, 1000), geom.Pt(0, 0)}
		out := project(pts, 800, 600)
		canvas := geom.Rect{MaxX: 800, MaxY: 600}
		for _, p := range out {
			assert.True(t, canvas.Contains(p), "%v outside canvas", p)
		}
		assert.InDelta(t, 400, out[2].X, 1e-9)
		assert.InDelta(t, 300, out[2].Y, 1e-9)
	})

	t.Run("single far point is centred", func(t *testing.T) {
		out := project([]geom.Point{geom.Pt(5000, 5000)}, 800, 600)
		assert.Equal(t, geom.Pt(400, 300), out[0])
	})
}

func TestPairIndicesDuplicates(t *testing.T) {
	pts := []geom.Point{geom.Pt(1, 1), geom.Pt(7, 7), geom.Pt(1, 1)}
	i, j, ok := pairIndices(pts, geom.NewPair(geom.Pt(1, 1), geom.Pt(1, 1)))
	require.True(t, ok)
	assert.Equal(t, 0, i)
	assert.Equal(t, 2, j)
}

func TestNum(t *testing.T) {
	for in, want := range map[float64]string{0: "0", 100: "100", -100: "-100", 1.5: "1.5", 1.256: "1.26", -0.001: "0"} {
		assert.Equal(t, want, num(in), "num(%v)", in)
	}
}

package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/matzehuels/pairquest/pkg/closest"
	"github.com/matzehuels/pairquest/pkg/geom"
)

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

type pageData struct {
	Title    string
	Width    float64
	Height   float64
	Points   []geom.Point
	Pair     []geom.Point
	Count    int
	Cards    []statCard
	Speedup  string
	Agree    bool
	HasAgree bool

	PointColor, PairColor, LineColor string
}

type statCard struct {
	Label string
	Value string
}

// RenderHTML produces a standalone page drawing the points on a canvas with
// the closest pair highlighted and a card per statistic.
func RenderHTML(in Input, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	pts := project(in.Points, opts.Width, opts.Height)

	data := pageData{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Points:     pts,
		Count:      len(in.Points),
		PointColor: colorPoint,
		PairColor:  colorPair,
		LineColor:  colorLine,
	}
	if data.Points == nil {
		data.Points = []geom.Point{}
	}
	data.Cards = append(data.Cards, statCard{"Total Points", fmt.Sprint(len(in.Points))})

	if rep := in.Report; rep != nil {
		for _, name := range closest.Names() {
			if run, ok := rep.Run(name); ok {
				data.Cards = append(data.Cards, statCard{run.Label + " Time", fmtMS(run.ElapsedMS)})
			}
		}
		data.HasAgree = true
		data.Agree = rep.Agree
		if x, ok := rep.Speedup(); ok {
			data.Speedup = fmt.Sprintf("%.1fx", x)
		}
	}

	if pair, ok := bestPair(in); ok {
		if i, j, ok := pairIndices(in.Points, pair); ok {
			data.Pair = []geom.Point{pts[i], pts[j]}
		}
		data.Cards = append(data.Cards, statCard{"Closest Distance", fmt.Sprintf("%.4f", pair.Distance)})
	} else {
		data.Cards = append(data.Cards, statCard{"Closest Distance", "n/a"})
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: system-ui, sans-serif; background: #f3f4f6; color: #111827; margin: 2rem; }
  h1 { font-size: 1.5rem; }
  canvas { background: #fff; border: 1px solid #d1d5db; border-radius: 8px; }
  .cards { display: flex; gap: 1rem; margin: 1rem 0; flex-wrap: wrap; }
  .card { background: #fff; border-radius: 8px; padding: 0.75rem 1rem; min-width: 10rem; box-shadow: 0 1px 2px rgba(0,0,0,.08); }
  .card .label { font-size: 0.8rem; color: #6b7280; }
  .card .value { font-size: 1.25rem; font-weight: 600; }
  .banner { background: #ecfdf5; color: #065f46; padding: 0.5rem 1rem; border-radius: 8px; display: inline-block; }
  .banner.warn { background: #fef2f2; color: #991b1b; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="cards">
{{- range .Cards}}
  <div class="card"><div class="label">{{.Label}}</div><div class="value">{{.Value}}</div></div>
{{- end}}
</div>
{{- if .Speedup}}
<p class="banner">Divide &amp; Conquer is {{.Speedup}} faster</p>
{{- end}}
{{- if and .HasAgree (not .Agree)}}
<p class="banner warn">Solvers disagree on the minimum distance</p>
{{- end}}
<canvas id="plot" width="{{.Width}}" height="{{.Height}}"></canvas>
<script>
  const points = {{.Points}};
  const pair = {{.Pair}};
  const ctx = document.getElementById("plot").getContext("2d");
  function dot(p, r, color) {
    ctx.beginPath();
    ctx.arc(p.x, p.y, r, 0, 2 * Math.PI);
    ctx.fillStyle = color;
    ctx.fill();
  }
  points.forEach(p => dot(p, 4, {{.PointColor}}));
  if (pair) {
    ctx.beginPath();
    ctx.moveTo(pair[0].x, pair[0].y);
    ctx.lineTo(pair[1].x, pair[1].y);
    ctx.strokeStyle = {{.LineColor}};
    ctx.lineWidth = 2;
    ctx.stroke();
    pair.forEach(p => dot(p, 6, {{.PairColor}}));
  }
</script>
</body>
</html>
`

package render

import (
	"encoding/json"

	"github.com/matzehuels/pairquest/pkg/geom"
	"github.com/matzehuels/pairquest/pkg/report"
)

type jsonDoc struct {
	Points [][2]float64   `json:"points"`
	Report *report.Report `json:"report,omitempty"`
}

// RenderJSON writes the points in the {"points": [[x, y], ...]} layout
// accepted by the io package, with the report alongside.
func RenderJSON(in Input) ([]byte, error) {
	doc := jsonDoc{Points: pairsOf(in.Points), Report: in.Report}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func pairsOf(pts []geom.Point) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}

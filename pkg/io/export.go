package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/pairquest/pkg/errors"
	"github.com/matzehuels/pairquest/pkg/geom"
	"github.com/matzehuels/pairquest/pkg/report"
)

func toRaw(points []geom.Point) [][]float64 {
	raw := make([][]float64, len(points))
	for i, p := range points {
		raw[i] = []float64{p.X, p.Y}
	}
	return raw
}

// WritePoints encodes points in the given format and writes them to w.
// The output can be read back with [ReadPoints].
func WritePoints(points []geom.Point, w io.Writer, format string) error {
	f := pointFile{Points: toRaw(points)}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	default:
		return errors.ValidateChoice(errors.ErrCodeInvalidFormat, "point format", format, Formats)
	}
	return nil
}

// ExportPoints writes points to path, choosing the format from its extension.
func ExportPoints(points []geom.Point, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WritePoints(points, f, format)
}

// WriteReport encodes a comparison report as indented JSON.
func WriteReport(r *report.Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportReport writes a report to a JSON file at path.
func ExportReport(r *report.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteReport(r, f)
}

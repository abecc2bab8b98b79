package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/pairquest/pkg/errors"
	"github.com/matzehuels/pairquest/pkg/geom"
)

// Point file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the supported point file formats.
var Formats = []string{FormatJSON, FormatYAML}

// pointFile is the on-disk layout of a point set.
type pointFile struct {
	Points [][]float64 `json:"points" yaml:"points"`
}

// FormatFromPath returns the point format implied by path's extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer point format from %q (use .json, .yaml or .yml)", path)
	}
}

// ReadPoints decodes a point set from r in the given format.
//
// ReadPoints returns an error if the data is malformed, an entry does not
// have exactly two coordinates, or a coordinate is not finite. It does not
// close r.
func ReadPoints(r io.Reader, format string) ([]geom.Point, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var raw [][]float64
	switch format {
	case FormatJSON:
		raw, err = decodeJSON(data)
	case FormatYAML:
		var f pointFile
		err = yaml.Unmarshal(data, &f)
		raw = f.Points
	default:
		return nil, errors.ValidateChoice(errors.ErrCodeInvalidFormat, "point format", format, Formats)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPoints, err, "decode %s", format)
	}

	pts := make([]geom.Point, len(raw))
	for i, xy := range raw {
		if len(xy) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidPoints, "point %d: want [x, y], got %d values", i, len(xy))
		}
		pts[i] = geom.Pt(xy[0], xy[1])
	}
	if err := errors.ValidatePoints(pts); err != nil {
		return nil, err
	}
	return pts, nil
}

// decodeJSON accepts either {"points": [...]} or a bare array.
func decodeJSON(data []byte) ([][]float64, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var raw [][]float64
		err := json.Unmarshal(trimmed, &raw)
		return raw, err
	}
	var f pointFile
	err := json.Unmarshal(trimmed, &f)
	return f.Points, err
}

// ImportPoints reads a point file at path, choosing the format from its
// extension.
func ImportPoints(path string) ([]geom.Point, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPoints(f, format)
}

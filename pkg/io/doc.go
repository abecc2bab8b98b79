// Package io reads and writes point sets and comparison reports.
//
// # Point Formats
//
// JSON (the default) stores points as [x, y] arrays under a "points" key:
//
//	{
//	  "points": [[120, 85], [431.5, 290], [122, 88]]
//	}
//
// A bare array of [x, y] pairs is also accepted on input, matching what the
// HTTP /generate endpoint returns:
//
//	[[120, 85], [431.5, 290], [122, 88]]
//
// YAML uses the same shape:
//
//	points:
//	  - [120, 85]
//	  - [431.5, 290]
//
// The format is chosen from the file extension (.json, .yaml, .yml) by
// [ImportPoints] and [ExportPoints], or passed explicitly to [ReadPoints] and
// [WritePoints].
//
// # Validation
//
// Readers reject entries that are not two-element arrays and coordinates
// that are NaN or infinite, since the solvers do not check their input.
// Duplicate and collinear points are kept as-is.
//
// # Reports
//
// [WriteReport] encodes a report.Report as indented JSON for consumption by
// other tools.
package io

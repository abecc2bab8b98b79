// Package pkg provides the libraries behind pairquest, a closest-pair-of-points
// harness.
//
// # Overview
//
// pairquest finds the two closest points of a 2D point set twice, once with an
// O(n²) brute-force scan and once with O(n log n) divide and conquer, checks
// that both agree, times them, and renders the result. The pkg directory is
// organized into three areas:
//
//  1. Core: [geom], [closest]
//  2. Harness: [points], [report], [render], [pipeline]
//  3. Infrastructure: [cache], [config], [errors], [io], [observability], [buildinfo]
//
// # Architecture
//
// The data flow through a pipeline run:
//
//	points file or seeded generator
//	         ↓
//	    [points] / [io] (point set)
//	         ↓
//	    [report] (run each [closest] solver, time it, cross-check)
//	         ↓
//	    [render] (HTML, SVG, PNG, PDF, DOT, JSON)
//
// [pipeline] wires these stages together with a [cache] in front of the solve
// and render stages. The CLI and the HTTP server both go through it.
//
// # Quick Start
//
//	pts, _ := points.Generate(points.Options{Count: 1000, Seed: 7})
//	pair, ok := closest.DivideAndConquer(pts)
//	if ok {
//	    fmt.Println(pair)
//	}
//
// Compare the solvers and draw the result:
//
//	rep, err := report.Compare(ctx, pts, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page, _ := render.Render(ctx, render.FormatHTML, render.Input{Points: pts, Report: rep}, render.Options{})
//
// # Testing
//
//	go test ./pkg/...                 # All tests
//	go test -bench . ./pkg/closest    # Solver benchmarks
//	go test -run Example ./pkg/...    # Examples only
//
// Set PAIRQUEST_TEST_REDIS_URL to also run the Redis cache tests.
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/pairquest/pkg/geom
// [closest]: https://pkg.go.dev/github.com/matzehuels/pairquest/pkg/closest
// [points]: https://pkg.go.dev/github.com/matzehuels/pairquest/pkg/points
// [report]: https://pkg.go.dev/github.com/matzehuels/pairquest/pkg/report
// [render]: https://pkg.go.dev/github.com/matzehuels/pairquest/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/pairquest/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/pairquest/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/pairquest/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/pairquest/pkg/errors
// [io]: https://pkg.go.dev/github.com/matzehuels/pairquest/pkg/io
// [observability]: https://pkg.go.dev/github.com/matzehuels/pairquest/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/pairquest/pkg/buildinfo
package pkg

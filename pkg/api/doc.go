// Package api provides the HTTP REST API server for the protovet linting service.
//
// # Overview
//
// This package exposes the lint and format engines over REST. A submitted proto
// source is always answered with a full report; only malformed requests produce
// error statuses.
//
// # Architecture
//
// The API is built on gorilla/mux with a small set of endpoints:
//
//   - POST /api/v1/validate: Lint proto source and return the issue report
//   - POST /api/v1/format: Rewrite proto source into canonical layout
//   - GET  /api/v1/rules: List the rule catalog
//   - GET  /healthz, /readyz: Kubernetes probes
//   - GET  /metrics: Prometheus exposition
//
// Both lint endpoints accept either a JSON body with a "content" field or a
// multipart upload with a "file" field.
//
// # Key Types
//
// Server is the main API server:
//
//	server, err := api.NewServer(cfg, logger, metrics, version)
//	if err != nil {
//		log.Fatal(err)
//	}
//	http.ListenAndServe(cfg.Server.Addr(), server)
//
// Results for repeated content are memoized in an LRU cache keyed by the
// SHA-256 of the source, since validation and formatting are pure.
//
// # Related Packages
//
//   - pkg/lint: Validation engine
//   - pkg/format: Canonical formatter
//   - pkg/httputil: Shared request/response helpers and middleware
package api

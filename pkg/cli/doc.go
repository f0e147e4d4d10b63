// Package cli provides the protovet command-line interface.
//
// # Overview
//
// This package implements the `protovet` CLI tool for linting proto files,
// rewriting them into canonical layout, and inspecting the rule catalog.
//
// # Commands
//
// lint: Check proto files for style and structure issues
//
//	protovet lint \
//		--dir ./proto \
//		--format text \
//		--fail-on-error
//
// Machine-readable output:
//
//	protovet lint --dir ./proto --format json
//	protovet lint --dir ./proto --format github  # GitHub Actions annotations
//
// fmt: Reformat proto files
//
//	protovet fmt --dir ./proto --write
//	protovet fmt --dir ./proto --check  # CI mode, fails on drift
//
// rules: List the rule catalog
//
//	protovet rules
//	protovet rules --format json
//
// # Configuration
//
// A .protovet.yaml file in the target directory (or passed via --config)
// adjusts reporting:
//
//	max_line_length: 100
//	ignore:
//	  - package-declaration
//
// # Related Packages
//
//   - pkg/lint: Validation engine
//   - pkg/format: Canonical formatter
package cli

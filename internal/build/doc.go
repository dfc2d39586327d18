// Package build turns discovered day units into runnable artifacts.
//
// The Orchestrator is the single entry point for all build paths (CLI,
// daemon, tests): it resolves a target selection against a TargetMap and
// fans the per-unit build actions out to a Builder. Units are independent;
// a failing unit never aborts its siblings, and the per-unit outcomes are
// identical at any concurrency degree.
package build

// Package metrics provides observability hooks for aocbuild.
//
// It follows the Null Object pattern: components receive a Recorder through
// dependency injection and default to NoopRecorder, so metrics collection
// needs no nil checks at call sites. The Prometheus implementation is
// activated by the daemon, which serves it over /metrics.
package metrics

// Package metrics exposes the progress of a scan to Prometheus and samples
// runtime memory statistics for the dashboard.
//
// A Recorder is an orchestration.BatchReporter that keeps its own registry,
// so several scans in one process (tests, for instance) never collide on
// metric registration. A Server publishes that registry on /metrics.
package metrics

// Package orchestration partitions batches of candidates across concurrent
// workers, joins them, and drives the batch loop that advances the scan
// frontier. It decouples the engine from presentation via the BatchReporter
// interface.
package orchestration

// Package format provides pure formatting helpers for durations, large
// decimal numbers, rates and byte sizes, shared by the line output and the
// dashboard.
package format

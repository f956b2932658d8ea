// Package logging provides a unified logging interface for the Collatz
// checker. It abstracts the underlying logging implementation, allowing
// consistent structured logging across components.
//
// The default backend is zerolog writing JSON lines to stderr, so that the
// batch report on stdout stays clean. NewStdLog bridges libraries that
// only accept a *log.Logger, such as net/http, into the same stream.
package logging

// Package bignum provides the arbitrary-precision integer abstraction used by
// the Collatz verifier, together with a registry of interchangeable backends.
//
// The default backend wraps math/big. A GMP backend is compiled in with the
// "gmp" build tag (go build -tags=gmp) and requires libgmp on the system.
//
// Values have explicit ownership: arithmetic methods mutate the receiver in
// place and Clone returns an independent copy. An Int must not be shared
// between goroutines that mutate it.
package bignum

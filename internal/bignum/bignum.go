package bignum

import (
	"fmt"
	"sort"
	"sync"

	apperrors "github.com/agbru/collatzcheck/internal/errors"
)

// Int is a mutable, arbitrary-precision non-negative integer.
//
// Preconditions are programming errors, not runtime conditions: Halve on an
// odd value panics.
type Int interface {
	// Clone returns an independent copy of the value.
	Clone() Int
	// CmpUint64 compares the value with x and returns -1, 0 or +1.
	CmpUint64(x uint64) int
	// IsEven reports whether the value is divisible by two.
	IsEven() bool
	// Halve divides the value by two in place. The value must be even.
	Halve()
	// MulUint64 multiplies the value by x in place.
	MulUint64(x uint64)
	// AddUint64 adds x to the value in place.
	AddUint64(x uint64)
	// Add adds y to the value in place. y is not modified.
	Add(y Int)
	// BitLen returns the length of the absolute value in bits.
	BitLen() int
	// String formats the value in base 10.
	String() string
}

// Backend constructs Int values for one arbitrary-precision implementation.
type Backend interface {
	// Name returns the registry key of the backend (e.g. "big").
	Name() string
	// Parse builds a value from its decimal representation. Only non-empty
	// strings of ASCII digits denoting a value greater than zero are accepted;
	// anything else yields an error matching apperrors.ErrInvalidNumber.
	Parse(s string) (Int, error)
	// FromUint64 builds a value from a native integer.
	FromUint64(x uint64) Int
}

// DefaultBackend is the registry key of the backend used when none is
// configured.
const DefaultBackend = "big"

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Backend)
)

// Register makes a backend available under its name. It is meant to be
// called from init functions; registering the same name twice panics.
func Register(b Backend) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[b.Name()]; dup {
		panic("bignum: backend registered twice: " + b.Name())
	}
	registry[b.Name()] = b
}

// Get returns the backend registered under name.
func Get(name string) (Backend, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if b, ok := registry[name]; ok {
		return b, nil
	}
	return nil, apperrors.ValidationError{
		Field:   "backend",
		Message: fmt.Sprintf("unknown backend %q (available: %v)", name, listLocked()),
	}
}

// Default returns the math/big backend.
func Default() Backend {
	b, err := Get(DefaultBackend)
	if err != nil {
		panic(err)
	}
	return b
}

// List returns the names of all registered backends in sorted order.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return listLocked()
}

func listLocked() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// validateDecimal checks the textual form accepted by every backend's Parse:
// a non-empty run of ASCII digits. Positivity is checked by the caller once
// the value is built.
func validateDecimal(s string) error {
	if s == "" {
		return apperrors.InvalidNumber("start", "empty input")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return apperrors.InvalidNumber("start", "%q is not a sequence of decimal digits", s)
		}
	}
	return nil
}

// errNotPositive is returned by Parse for an all-zero input.
func errNotPositive(s string) error {
	return apperrors.InvalidNumber("start", "%q is not greater than zero", s)
}

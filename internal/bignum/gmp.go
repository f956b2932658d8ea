//go:build gmp

// GMP-backed values, conditionally compiled with the "gmp" build tag so the
// default build stays portable on systems without libgmp.
//
// System Requirements for GMP:
//   - Linux: sudo apt-get install libgmp-dev (Debian/Ubuntu)
//   - macOS: brew install gmp

package bignum

import (
	"github.com/ncw/gmp"
)

func init() {
	Register(gmpBackend{})
}

type gmpBackend struct{}

func (gmpBackend) Name() string { return "gmp" }

func (gmpBackend) Parse(s string) (Int, error) {
	if err := validateDecimal(s); err != nil {
		return nil, err
	}
	v, ok := new(gmp.Int).SetString(s, 10)
	if !ok || v.Sign() <= 0 {
		return nil, errNotPositive(s)
	}
	return newGMPInt(v), nil
}

func (gmpBackend) FromUint64(x uint64) Int {
	return newGMPInt(new(gmp.Int).SetUint64(x))
}

// gmpInt adapts *gmp.Int to Int, reusing scratch for small operands.
// scratch is allocated separately because gmp attaches a finalizer to every
// Int it initializes.
type gmpInt struct {
	v       *gmp.Int
	scratch *gmp.Int
}

func newGMPInt(v *gmp.Int) *gmpInt {
	return &gmpInt{v: v, scratch: new(gmp.Int)}
}

func (z *gmpInt) Clone() Int {
	return newGMPInt(new(gmp.Int).Set(z.v))
}

func (z *gmpInt) CmpUint64(x uint64) int {
	z.scratch.SetUint64(x)
	return z.v.Cmp(z.scratch)
}

func (z *gmpInt) IsEven() bool {
	return z.v.Bit(0) == 0
}

func (z *gmpInt) Halve() {
	if z.v.Bit(0) != 0 {
		panic("bignum: Halve on odd value " + z.v.String())
	}
	z.v.Rsh(z.v, 1)
}

func (z *gmpInt) MulUint64(x uint64) {
	z.scratch.SetUint64(x)
	z.v.Mul(z.v, z.scratch)
}

func (z *gmpInt) AddUint64(x uint64) {
	z.scratch.SetUint64(x)
	z.v.Add(z.v, z.scratch)
}

func (z *gmpInt) Add(y Int) {
	if g, ok := y.(*gmpInt); ok {
		z.v.Add(z.v, g.v)
		return
	}
	other, _ := new(gmp.Int).SetString(y.String(), 10)
	z.v.Add(z.v, other)
}

func (z *gmpInt) BitLen() int { return z.v.BitLen() }

func (z *gmpInt) String() string { return z.v.String() }

package bignum

import (
	"math/big"
)

func init() {
	Register(bigBackend{})
}

// bigBackend builds values backed by the standard library's math/big.
type bigBackend struct{}

func (bigBackend) Name() string { return "big" }

func (bigBackend) Parse(s string) (Int, error) {
	if err := validateDecimal(s); err != nil {
		return nil, err
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errNotPositive(s)
	}
	if v.Sign() <= 0 {
		return nil, errNotPositive(s)
	}
	return &bigInt{v: v}, nil
}

func (bigBackend) FromUint64(x uint64) Int {
	return &bigInt{v: new(big.Int).SetUint64(x)}
}

// bigInt adapts *big.Int to Int. scratch holds the small operand of
// MulUint64/AddUint64 so that the hot loop does not allocate per step.
type bigInt struct {
	v       *big.Int
	scratch big.Int
}

// Big returns the math/big view of a value built by any backend.
func Big(x Int) *big.Int {
	if b, ok := x.(*bigInt); ok {
		return new(big.Int).Set(b.v)
	}
	v, _ := new(big.Int).SetString(x.String(), 10)
	return v
}

func (z *bigInt) Clone() Int {
	return &bigInt{v: new(big.Int).Set(z.v)}
}

func (z *bigInt) CmpUint64(x uint64) int {
	if !z.v.IsUint64() {
		return z.v.Sign()
	}
	u := z.v.Uint64()
	switch {
	case u < x:
		return -1
	case u > x:
		return 1
	}
	return 0
}

func (z *bigInt) IsEven() bool {
	return z.v.Bit(0) == 0
}

func (z *bigInt) Halve() {
	if z.v.Bit(0) != 0 {
		panic("bignum: Halve on odd value " + z.v.String())
	}
	z.v.Rsh(z.v, 1)
}

func (z *bigInt) MulUint64(x uint64) {
	z.scratch.SetUint64(x)
	z.v.Mul(z.v, &z.scratch)
}

func (z *bigInt) AddUint64(x uint64) {
	z.scratch.SetUint64(x)
	z.v.Add(z.v, &z.scratch)
}

func (z *bigInt) Add(y Int) {
	if b, ok := y.(*bigInt); ok {
		z.v.Add(z.v, b.v)
		return
	}
	z.v.Add(z.v, Big(y))
}

func (z *bigInt) BitLen() int { return z.v.BitLen() }

func (z *bigInt) String() string { return z.v.String() }

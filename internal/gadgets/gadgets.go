// Package gadgets is the primitive gate library shared by every statute
// circuit: boolean algebra, bit-decomposition range comparators and the
// branchless selector pattern. All comparators take an explicit bit width n
// and require both operands to fit in n bits; an operand that does not
// decompose makes the constraint system unsatisfiable rather than wrapping
// around the field modulus.
package gadgets

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
)

// IsZero returns 1 iff x == 0.
func IsZero(api frontend.API, x frontend.Variable) frontend.Variable {
	return api.IsZero(x)
}

// IsEqual returns 1 iff x == y.
func IsEqual(api frontend.API, x, y frontend.Variable) frontend.Variable {
	return api.IsZero(api.Sub(x, y))
}

// Not inverts a boolean indicator.
func Not(api frontend.API, b frontend.Variable) frontend.Variable {
	return api.Sub(1, b)
}

// Or combines two boolean indicators as a + b - ab.
func Or(api frontend.API, a, b frontend.Variable) frontend.Variable {
	return api.Sub(api.Add(a, b), api.Mul(a, b))
}

// FitsInBits constrains x to the range [0, 2^n) by bit decomposition.
func FitsInBits(api frontend.API, x frontend.Variable, n int) {
	_ = api.ToBinary(x, n)
}

func pow2(n int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(n))
}

// LessThan returns 1 iff x < y. Both operands must fit in n bits; the
// comparison reads the top bit of the biased difference x + 2^n - y.
func LessThan(api frontend.API, x, y frontend.Variable, n int) frontend.Variable {
	d := api.Sub(api.Add(x, pow2(n)), y)
	bits := api.ToBinary(d, n+1)
	return api.Sub(1, bits[n])
}

// LessEqThan returns 1 iff x <= y.
func LessEqThan(api frontend.API, x, y frontend.Variable, n int) frontend.Variable {
	return LessThan(api, x, api.Add(y, 1), n)
}

// GreaterThan returns 1 iff x > y.
func GreaterThan(api frontend.API, x, y frontend.Variable, n int) frontend.Variable {
	return LessThan(api, y, x, n)
}

// GreaterEqThan returns 1 iff x >= y.
func GreaterEqThan(api frontend.API, x, y frontend.Variable, n int) frontend.Variable {
	return LessEqThan(api, y, x, n)
}

// Min returns the smaller of x and y.
func Min(api frontend.API, x, y frontend.Variable, n int) frontend.Variable {
	lt := LessThan(api, x, y, n)
	return api.Select(lt, x, y)
}

// ClampSub returns max(x-y, 0). The comparator gates the raw difference so a
// negative result never reaches the field as a wrapped value.
func ClampSub(api frontend.API, x, y frontend.Variable, n int) frontend.Variable {
	ge := GreaterEqThan(api, x, y, n)
	return api.Mul(ge, api.Sub(x, y))
}

// ClampMax returns min(x, cap) with the comparator itself constrained, so a
// witness exceeding the cap cannot smuggle the raw value through. n must
// cover the largest raw x the caller can produce, not just the cap:
// an undersized comparator makes honest over-cap values unsatisfiable
// instead of clamping them.
func ClampMax(api frontend.API, x frontend.Variable, cap uint64, n int) frontend.Variable {
	le := LessEqThan(api, x, cap, n)
	return api.Select(le, x, cap)
}

package gadgets

import "github.com/consensys/gnark/frontend"

// Select returns Σ selectors[i]·values[i] and enforces Σ selectors[i] = 1,
// so exactly one branch can contribute. This is the multiplexer behind every
// bracket, tier and custody branch.
func Select(api frontend.API, selectors, values []frontend.Variable) frontend.Variable {
	if len(selectors) != len(values) {
		panic("gadgets: selector/value arity mismatch")
	}
	sum := frontend.Variable(0)
	acc := frontend.Variable(0)
	for i := range selectors {
		api.AssertIsBoolean(selectors[i])
		sum = api.Add(sum, selectors[i])
		acc = api.Add(acc, api.Mul(selectors[i], values[i]))
	}
	api.AssertIsEqual(sum, 1)
	return acc
}

// OneHot builds the indicator group {index == k} for k in [0, n). Feeding it
// to Select also pins index to that range via the sum-to-one constraint.
func OneHot(api frontend.API, index frontend.Variable, n int) []frontend.Variable {
	sel := make([]frontend.Variable, n)
	for k := 0; k < n; k++ {
		sel[k] = IsEqual(api, index, k)
	}
	return sel
}

// AssertMonotonePrefix enforces that a group of boolean indicators is
// non-increasing: once a bit is 0, every later bit must be 0. Cumulative
// bracket indicators form such a prefix.
func AssertMonotonePrefix(api frontend.API, bits []frontend.Variable) {
	for i := 0; i+1 < len(bits); i++ {
		api.AssertIsEqual(api.Mul(bits[i+1], api.Sub(1, bits[i])), 0)
	}
}

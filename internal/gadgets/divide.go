package gadgets

import (
	"errors"
	"math/big"
	"math/bits"

	"github.com/consensys/gnark/constraint/solver"
	"github.com/consensys/gnark/frontend"
)

func init() {
	solver.RegisterHint(floorDivHint)
}

// floorDivHint witnesses the quotient and remainder of an integer division.
// Both outputs are untrusted and re-constrained by FloorDiv.
func floorDivHint(_ *big.Int, inputs, outputs []*big.Int) error {
	if len(inputs) != 2 || len(outputs) != 2 {
		return errors.New("floorDivHint: expects 2 inputs and 2 outputs")
	}
	if inputs[1].Sign() == 0 {
		return errors.New("floorDivHint: division by zero")
	}
	outputs[0].QuoRem(inputs[0], inputs[1], outputs[1])
	return nil
}

// FloorDiv returns floor(num/den) for a fixed non-zero denominator. The
// quotient and remainder come from a hint and are bound by
//
//	num = den·q + r,  r < den,  q < 2^numBits
//
// so a prover cannot substitute any other pair.
func FloorDiv(api frontend.API, num frontend.Variable, den uint64, numBits int) frontend.Variable {
	if den == 0 {
		panic("gadgets: zero denominator")
	}
	res, err := api.Compiler().NewHint(floorDivHint, 2, num, den)
	if err != nil {
		panic(err)
	}
	q, r := res[0], res[1]
	api.AssertIsEqual(num, api.Add(api.Mul(q, den), r))
	FitsInBits(api, q, numBits)
	denBits := bits.Len64(den)
	api.AssertIsEqual(LessThan(api, r, den, denBits), 1)
	return q
}

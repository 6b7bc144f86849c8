package gadgets

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"
)

type muxCircuit struct {
	Index frontend.Variable
	Out   frontend.Variable `gnark:",public"`
}

func (c *muxCircuit) Define(api frontend.API) error {
	values := []frontend.Variable{11, 22, 33, 44}
	sel := OneHot(api, c.Index, len(values))
	api.AssertIsEqual(Select(api, sel, values), c.Out)
	return nil
}

func TestSelectOneHot(t *testing.T) {
	assert := test.NewAssert(t)

	for i, want := range []uint64{11, 22, 33, 44} {
		w := muxCircuit{Index: i, Out: want}
		assert.ProverSucceeded(new(muxCircuit), &w,
			test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
	}
}

// An index outside the table leaves every indicator at 0; the sum-to-one
// constraint must then reject the witness.
func TestSelectRejectsOutOfRangeIndex(t *testing.T) {
	assert := test.NewAssert(t)
	w := muxCircuit{Index: 4, Out: 0}
	assert.ProverFailed(new(muxCircuit), &w,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

/* raw selector group: the prover supplies the indicators directly ────*/

type rawSelectorCircuit struct {
	Sel [3]frontend.Variable
	Out frontend.Variable `gnark:",public"`
}

func (c *rawSelectorCircuit) Define(api frontend.API) error {
	values := []frontend.Variable{100, 200, 300}
	api.AssertIsEqual(Select(api, c.Sel[:], values), c.Out)
	return nil
}

// Activating two branches at once would let a prover sum their effects;
// the group constraint must make that witness unsatisfiable.
func TestSelectorGroupRejectsDoubleActivation(t *testing.T) {
	assert := test.NewAssert(t)

	ok := rawSelectorCircuit{Sel: [3]frontend.Variable{0, 1, 0}, Out: 200}
	assert.ProverSucceeded(new(rawSelectorCircuit), &ok,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))

	two := rawSelectorCircuit{Sel: [3]frontend.Variable{1, 1, 0}, Out: 300}
	assert.ProverFailed(new(rawSelectorCircuit), &two,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))

	none := rawSelectorCircuit{Sel: [3]frontend.Variable{0, 0, 0}, Out: 0}
	assert.ProverFailed(new(rawSelectorCircuit), &none,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

type prefixCircuit struct {
	Bits [4]frontend.Variable
}

func (c *prefixCircuit) Define(api frontend.API) error {
	for i := range c.Bits {
		api.AssertIsBoolean(c.Bits[i])
	}
	AssertMonotonePrefix(api, c.Bits[:])
	return nil
}

func TestMonotonePrefix(t *testing.T) {
	assert := test.NewAssert(t)

	ok := prefixCircuit{Bits: [4]frontend.Variable{1, 1, 0, 0}}
	assert.ProverSucceeded(new(prefixCircuit), &ok,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))

	gap := prefixCircuit{Bits: [4]frontend.Variable{1, 0, 1, 0}}
	assert.ProverFailed(new(prefixCircuit), &gap,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

package circuits_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/test"

	"github.com/yourorg/fiscalzk/circuits"
	"github.com/yourorg/fiscalzk/pkg/tables"
)

func meansAssignment(p tables.MeansPolicy, income, expenses, assets, liabilities, dependents, eligible, valid uint64) *circuits.MeansTestCircuit {
	c := circuits.NewMeansTestCircuit(p)
	c.Eligible = eligible
	c.Valid = valid
	c.MonthlyIncome = income
	c.MonthlyExpenses = expenses
	c.Assets = assets
	c.Liabilities = liabilities
	c.Dependents = dependents
	return c
}

func TestMeansEligibility(t *testing.T) {
	assert := test.NewAssert(t)
	p := tables.DefaultMeans()

	// 12·(250k-150k) + (500k-100k)/10 = 1.24M < 3M·1.2 -> eligible.
	w := meansAssignment(p, 250_000, 150_000, 500_000, 100_000, 2, 1, 1)
	assert.ProverSucceeded(circuits.NewMeansTestCircuit(p), w,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))

	// 12·400k = 4.8M >= 3M, no dependents -> not eligible.
	w = meansAssignment(p, 400_000, 0, 0, 0, 0, 0, 1)
	assert.ProverSucceeded(circuits.NewMeansTestCircuit(p), w,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

// Exactly at the threshold is not under it.
func TestMeansThresholdBoundary(t *testing.T) {
	assert := test.NewAssert(t)
	p := tables.DefaultMeans()

	// 12·250,000 = 3,000,000 = base threshold, zero dependents.
	w := meansAssignment(p, 250_000, 0, 0, 0, 0, 0, 1)
	assert.ProverSucceeded(circuits.NewMeansTestCircuit(p), w,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))

	// One unit of expenses tips it under.
	w = meansAssignment(p, 250_000, 1, 0, 0, 0, 1, 1)
	assert.ProverSucceeded(circuits.NewMeansTestCircuit(p), w,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

// The threshold rises 10% per dependent.
func TestMeansDependentAdjustment(t *testing.T) {
	assert := test.NewAssert(t)
	p := tables.DefaultMeans()

	// 3.5M resources: over the base threshold but under 3M·(10+2)/10.
	w := meansAssignment(p, 291_700, 0, 0, 0, 2, 1, 1)
	assert.ProverSucceeded(circuits.NewMeansTestCircuit(p), w,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))

	w = meansAssignment(p, 291_700, 0, 0, 0, 0, 0, 1)
	assert.ProverSucceeded(circuits.NewMeansTestCircuit(p), w,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

// A witness with liabilities above assets has no satisfying assignment:
// the wrapped net worth cannot bit-decompose, whatever the outputs claim.
func TestMeansInconsistentNetWorthUnsatisfiable(t *testing.T) {
	assert := test.NewAssert(t)
	p := tables.DefaultMeans()

	for _, eligible := range []uint64{0, 1} {
		w := meansAssignment(p, 250_000, 150_000, 100_000, 500_000, 0, eligible, 1)
		assert.ProverFailed(circuits.NewMeansTestCircuit(p), w,
			test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
	}
}

func TestMeansExpensesAboveIncomeUnsatisfiable(t *testing.T) {
	assert := test.NewAssert(t)
	p := tables.DefaultMeans()

	w := meansAssignment(p, 100_000, 150_000, 0, 0, 0, 0, 1)
	assert.ProverFailed(circuits.NewMeansTestCircuit(p), w,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

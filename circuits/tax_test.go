package circuits_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/test"

	"github.com/yourorg/fiscalzk/circuits"
	"github.com/yourorg/fiscalzk/pkg/tables"
	"github.com/yourorg/fiscalzk/pkg/witness"
)

func taxAssignment(tb tables.TaxTable, income, deductions, dependents, filing, taxOwed, bracket uint64) *circuits.TaxCircuit {
	c := circuits.NewTaxCircuit(tb)
	c.TaxOwed = taxOwed
	c.Bracket = bracket
	c.Valid = 1
	c.Income = income
	c.Deductions = deductions
	c.Dependents = dependents
	c.FilingStatus = filing
	return c
}

// Statutory scenario: 1.5M income, 200k deductions, two dependents, single.
// Tiers 2-3 yield 30,000 + 15,000; the 20,000 dependent credit leaves 25,000.
func TestTaxScenario(t *testing.T) {
	assert := test.NewAssert(t)
	tb := tables.DefaultTax()

	w := taxAssignment(tb, 1_500_000, 200_000, 2, 0, 25_000, 2)
	assert.ProverSucceeded(circuits.NewTaxCircuit(tb), w,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

// The circuit must agree with the closed-form progressive sum at every
// ceiling, one unit either side, and far beyond the top tier.
func TestTaxMatchesClosedFormAtBoundaries(t *testing.T) {
	assert := test.NewAssert(t)
	tb := tables.DefaultTax()

	incomes := []uint64{0}
	for _, b := range tb.Brackets[:len(tb.Brackets)-1] {
		incomes = append(incomes, b.Ceiling-1, b.Ceiling, b.Ceiling+1)
	}
	top := tb.Brackets[len(tb.Brackets)-2].Ceiling
	incomes = append(incomes, 10*top)

	for _, income := range incomes {
		wantTax, wantBracket := closedFormTax(income, tb)
		gotTax, gotBracket := witness.TaxFromTable(income, tb)
		if gotTax != wantTax || gotBracket != wantBracket {
			t.Fatalf("income %d: evaluator (%d,%d) != closed form (%d,%d)",
				income, gotTax, gotBracket, wantTax, wantBracket)
		}

		w := taxAssignment(tb, income, 0, 0, 0, wantTax, wantBracket)
		assert.ProverSucceeded(circuits.NewTaxCircuit(tb), w,
			test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
	}
}

// closedFormTax is an independent rendering of the progressive sum: full
// tiers below the income plus the partial top slice, floored per tier.
func closedFormTax(income uint64, tb tables.TaxTable) (tax, bracket uint64) {
	lower := uint64(0)
	for i, b := range tb.Brackets {
		if income <= lower {
			break
		}
		upper := min(income, b.Ceiling)
		tax += (upper - lower) * b.RateBps / tables.BpsDenom
		if i > 0 {
			bracket = uint64(i)
		}
		lower = b.Ceiling
	}
	return tax, bracket
}

// Income exactly at a ceiling belongs wholly to the lower tier.
func TestTaxCeilingTieBreak(t *testing.T) {
	assert := test.NewAssert(t)
	tb := tables.DefaultTax()

	// 600,000 taxed entirely at 0%, bracket indicator stays at tier 0.
	w := taxAssignment(tb, 600_000, 0, 0, 0, 0, 0)
	assert.ProverSucceeded(circuits.NewTaxCircuit(tb), w,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))

	// One unit over pays 5 bps-floored units into tier 1.
	w = taxAssignment(tb, 600_001, 0, 0, 0, 0, 1)
	assert.ProverSucceeded(circuits.NewTaxCircuit(tb), w,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

// Joint filers get a doubled per-dependent credit.
func TestTaxJointFilingCredit(t *testing.T) {
	assert := test.NewAssert(t)
	tb := tables.DefaultTax()

	// taxable 1.3M -> base 45,000; 2 dependents joint -> credit 40,000.
	w := taxAssignment(tb, 1_500_000, 200_000, 2, 1, 5_000, 2)
	assert.ProverSucceeded(circuits.NewTaxCircuit(tb), w,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

// The credit clamps at zero rather than going negative.
func TestTaxCreditClampsAtZero(t *testing.T) {
	assert := test.NewAssert(t)
	tb := tables.DefaultTax()

	// taxable 700,000 -> base 5,000; credit 40,000 swallows it.
	w := taxAssignment(tb, 700_000, 0, 2, 1, 0, 1)
	assert.ProverSucceeded(circuits.NewTaxCircuit(tb), w,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

// Deductions above income must be unsatisfiable, not merely flagged.
func TestTaxRejectsNegativeTaxable(t *testing.T) {
	assert := test.NewAssert(t)
	tb := tables.DefaultTax()

	w := taxAssignment(tb, 100_000, 200_000, 0, 0, 0, 0)
	assert.ProverFailed(circuits.NewTaxCircuit(tb), w,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

// A prover cannot claim a different tax than the table yields.
func TestTaxRejectsWrongOutput(t *testing.T) {
	assert := test.NewAssert(t)
	tb := tables.DefaultTax()

	w := taxAssignment(tb, 1_500_000, 200_000, 2, 0, 24_999, 2)
	assert.ProverFailed(circuits.NewTaxCircuit(tb), w,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

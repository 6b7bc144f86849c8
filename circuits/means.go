package circuits

import (
	"github.com/consensys/gnark/frontend"

	"github.com/yourorg/fiscalzk/internal/gadgets"
	"github.com/yourorg/fiscalzk/pkg/tables"
)

// MeansTestCircuit proves means-tested eligibility: annualized disposable
// income plus a tenth of net worth must stay under a threshold that rises
// 10% per dependent. Only the eligibility bit and a consistency flag are
// revealed.
//
// Public signal order: Eligible, Valid.
type MeansTestCircuit struct {
	Eligible frontend.Variable `gnark:",public"`
	Valid    frontend.Variable `gnark:",public"`

	MonthlyIncome   frontend.Variable
	MonthlyExpenses frontend.Variable
	Assets          frontend.Variable
	Liabilities     frontend.Variable
	Dependents      frontend.Variable

	policy tables.MeansPolicy
}

func NewMeansTestCircuit(p tables.MeansPolicy) *MeansTestCircuit {
	return &MeansTestCircuit{policy: p}
}

func (c *MeansTestCircuit) Define(api frontend.API) error {
	gadgets.FitsInBits(api, c.MonthlyIncome, AmountBits)
	gadgets.FitsInBits(api, c.MonthlyExpenses, AmountBits)
	gadgets.FitsInBits(api, c.Assets, AmountBits)
	gadgets.FitsInBits(api, c.Liabilities, AmountBits)
	gadgets.FitsInBits(api, c.Dependents, CountBits)

	// Expenses above income are an inconsistent household statement: hard
	// failure, no eligibility either way.
	api.AssertIsEqual(gadgets.GreaterEqThan(api, c.MonthlyIncome, c.MonthlyExpenses, AmountBits), 1)
	disposable := api.Sub(c.MonthlyIncome, c.MonthlyExpenses)

	// Net worth underflow is likewise unsatisfiable (the decomposition
	// below has no solution for a wrapped difference), and the indicator is
	// additionally multiplied into the eligibility bit so no variant of
	// this circuit can report eligible=true from assets < liabilities.
	assetsOK := gadgets.GreaterEqThan(api, c.Assets, c.Liabilities, AmountBits)
	netWorth := api.Sub(c.Assets, c.Liabilities)
	gadgets.FitsInBits(api, netWorth, AmountBits)

	annualized := api.Mul(disposable, 12)
	tenthNetWorth := gadgets.FloorDiv(api, netWorth, 10, AmountBits)
	resources := api.Add(annualized, tenthNetWorth)

	// threshold · (10 + dependents) / 10, floored
	scaled := api.Mul(c.policy.BaseThresholdUnits, api.Add(10, c.Dependents))
	threshold := gadgets.FloorDiv(api, scaled, 10, ProductBits)

	under := gadgets.LessThan(api, resources, threshold, ProductBits)
	api.AssertIsEqual(c.Eligible, api.Mul(under, assetsOK))
	api.AssertIsEqual(c.Valid, assetsOK)
	return nil
}

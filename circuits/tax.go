package circuits

import (
	"github.com/consensys/gnark/frontend"

	"github.com/yourorg/fiscalzk/internal/gadgets"
	"github.com/yourorg/fiscalzk/pkg/tables"
)

// TaxCircuit proves a progressive income-tax computation. The bracket table
// is baked in at circuit-definition time; only the final tax, the reached
// bracket and the validity flag are revealed.
//
// Public signal order: TaxOwed, Bracket, Valid.
type TaxCircuit struct {
	TaxOwed frontend.Variable `gnark:",public"`
	Bracket frontend.Variable `gnark:",public"`
	Valid   frontend.Variable `gnark:",public"`

	Income       frontend.Variable
	Deductions   frontend.Variable
	Dependents   frontend.Variable
	FilingStatus frontend.Variable // 0 single, 1 joint

	table tables.TaxTable
}

// NewTaxCircuit binds a validated bracket table to a fresh circuit. The same
// constructor serves as compile blueprint and as assignment scaffold.
func NewTaxCircuit(tb tables.TaxTable) *TaxCircuit {
	return &TaxCircuit{table: tb}
}

func (c *TaxCircuit) Define(api frontend.API) error {
	gadgets.FitsInBits(api, c.Income, AmountBits)
	gadgets.FitsInBits(api, c.Deductions, AmountBits)
	gadgets.FitsInBits(api, c.Dependents, CountBits)
	api.AssertIsBoolean(c.FilingStatus)

	// Deductions above income make the witness unsatisfiable, not merely
	// flagged: negative taxable income has no field representation.
	api.AssertIsEqual(gadgets.GreaterEqThan(api, c.Income, c.Deductions, AmountBits), 1)
	taxable := api.Sub(c.Income, c.Deductions)

	// Per-tier amounts via cumulative ceilings: the slice of taxable income
	// inside tier i is min(taxable, ceil_i) - min(taxable, ceil_{i-1}).
	// A value exactly at a ceiling stays entirely in the lower tier.
	baseTax := frontend.Variable(0)
	prevCapped := frontend.Variable(0)
	bracket := frontend.Variable(0)
	entered := make([]frontend.Variable, 0, len(c.table.Brackets)-1)
	for i, row := range c.table.Brackets {
		capped := gadgets.Min(api, taxable, row.Ceiling, AmountBits)
		span := api.Sub(capped, prevCapped)
		tierTax := gadgets.FloorDiv(api, api.Mul(span, row.RateBps), tables.BpsDenom, ProductBits)
		baseTax = api.Add(baseTax, tierTax)
		if i > 0 {
			in := gadgets.GreaterThan(api, taxable, c.table.Brackets[i-1].Ceiling, AmountBits)
			entered = append(entered, in)
			bracket = api.Add(bracket, in)
		}
		prevCapped = capped
	}
	gadgets.AssertMonotonePrefix(api, entered)
	api.AssertIsEqual(c.Bracket, bracket)

	// Flat per-dependent credit, doubled for joint filers, clamped at zero.
	perDependent := api.Mul(c.table.DependentCreditUnits, api.Add(1, c.FilingStatus))
	credit := api.Mul(perDependent, c.Dependents)
	tax := gadgets.ClampSub(api, baseTax, credit, ProductBits)
	api.AssertIsEqual(c.TaxOwed, tax)

	// The clamp pins the tax at >= 0, and every range assumption above is a
	// hard constraint, so a satisfiable witness is always valid.
	api.AssertIsEqual(c.Valid, 1)
	return nil
}

package circuits

import (
	"math/bits"

	"github.com/consensys/gnark/frontend"

	"github.com/yourorg/fiscalzk/internal/gadgets"
	"github.com/yourorg/fiscalzk/pkg/tables"
)

// DivorceCircuit proves a settlement apportionment: alimony on the higher
// income, child support multiplexed on custody, and an asset split composed
// from boolean bonuses with a constrained clamp at 100%.
//
// LongMarriage and SmallIncomeGap are computed off-circuit by the witness
// generator. They are untrusted hints: each gets a defining constraint tying
// it to the comparator it claims to summarize, so a lying hint is
// unsatisfiable rather than quietly believed.
//
// Public signal order: AlimonyOwed, ChildSupportOwed, AssetSplitBpsA, Valid.
type DivorceCircuit struct {
	AlimonyOwed      frontend.Variable `gnark:",public"`
	ChildSupportOwed frontend.Variable `gnark:",public"`
	AssetSplitBpsA   frontend.Variable `gnark:",public"`
	Valid            frontend.Variable `gnark:",public"`

	IncomeA       frontend.Variable
	IncomeB       frontend.Variable
	MarriageYears frontend.Variable
	Children      frontend.Variable
	CustodyWithA  frontend.Variable // 1 if spouse A has primary custody

	// Attested facts feeding the asset-split bonuses.
	CareerSacrifice frontend.Variable
	ChronicIllness  frontend.Variable
	SoleCaregiver   frontend.Variable

	// Hinted booleans, re-validated below.
	LongMarriage   frontend.Variable
	SmallIncomeGap frontend.Variable

	policy tables.DivorcePolicy
}

func NewDivorceCircuit(p tables.DivorcePolicy) *DivorceCircuit {
	return &DivorceCircuit{policy: p}
}

func (c *DivorceCircuit) Define(api frontend.API) error {
	p := c.policy

	gadgets.FitsInBits(api, c.IncomeA, AmountBits)
	gadgets.FitsInBits(api, c.IncomeB, AmountBits)
	gadgets.FitsInBits(api, c.MarriageYears, YearBits)
	gadgets.FitsInBits(api, c.Children, CountBits)
	api.AssertIsBoolean(c.CustodyWithA)
	api.AssertIsBoolean(c.CareerSacrifice)
	api.AssertIsBoolean(c.ChronicIllness)
	api.AssertIsBoolean(c.SoleCaregiver)

	// Higher earner pays alimony; custody decides who pays child support.
	aHigher := gadgets.GreaterEqThan(api, c.IncomeA, c.IncomeB, AmountBits)
	highIncome := api.Select(aHigher, c.IncomeA, c.IncomeB)
	lowIncome := api.Select(aHigher, c.IncomeB, c.IncomeA)

	// Defining constraints for the hints.
	lm := gadgets.GreaterEqThan(api, c.MarriageYears, 10, YearBits)
	api.AssertIsEqual(c.LongMarriage, lm)
	sg := gadgets.GreaterEqThan(api, api.Mul(2, lowIncome), highIncome, AmountBits+1)
	api.AssertIsEqual(c.SmallIncomeGap, sg)

	// Alimony: base rate, raised for a long marriage, lowered when the
	// incomes are already close.
	alimonyBps := api.Add(p.AlimonyBaseBps, api.Mul(p.AlimonyAdjustBps, lm))
	alimonyBps = api.Sub(alimonyBps, api.Mul(p.AlimonyAdjustBps, sg))
	alimony := gadgets.FloorDiv(api, api.Mul(highIncome, alimonyBps), tables.BpsDenom, ProductBits)
	alimonyCap := gadgets.FloorDiv(api, api.Mul(highIncome, p.AlimonyCapBps), tables.BpsDenom, ProductBits)
	alimonyOK := gadgets.LessEqThan(api, alimony, alimonyCap, ProductBits)
	api.AssertIsEqual(c.AlimonyOwed, alimony)

	// Child support flows from the non-custodial parent, one rate slice per
	// child, with a constrained cap. The clamp comparator covers the
	// maximum raw value, a full 5-bit child count times the per-child rate.
	payerIncome := api.Select(c.CustodyWithA, c.IncomeB, c.IncomeA)
	csRawBits := bits.Len64(p.ChildSupportPerChildBps * (1<<CountBits - 1))
	csBps := gadgets.ClampMax(api, api.Mul(p.ChildSupportPerChildBps, c.Children), p.ChildSupportCapBps, csRawBits)
	childSupport := gadgets.FloorDiv(api, api.Mul(payerIncome, csBps), tables.BpsDenom, ProductBits)
	csCap := gadgets.FloorDiv(api, api.Mul(payerIncome, p.ChildSupportCapBps), tables.BpsDenom, ProductBits)
	childSupportOK := gadgets.LessEqThan(api, childSupport, csCap, ProductBits)
	api.AssertIsEqual(c.ChildSupportOwed, childSupport)

	// Asset split: four independent bonuses added to the base share, then
	// clamped at 100%. The clamp is a comparator+select, so a witness that
	// skips it cannot push the share past the cap.
	bonuses := api.Add(api.Add(lm, c.CareerSacrifice), api.Add(c.ChronicIllness, c.SoleCaregiver))
	rawSplit := api.Add(p.SplitBaseBps, api.Mul(p.SplitBonusBps, bonuses))
	split := gadgets.ClampMax(api, rawSplit, tables.BpsDenom, 14)
	api.AssertIsEqual(c.AssetSplitBpsA, split)

	// Validity: four independent range checks multiplied together.
	splitFloorOK := gadgets.GreaterEqThan(api, split, p.SplitBaseBps, 14)
	splitCeilOK := gadgets.LessEqThan(api, split, tables.BpsDenom, 14)
	valid := api.Mul(api.Mul(alimonyOK, childSupportOK), api.Mul(splitFloorOK, splitCeilOK))
	api.AssertIsEqual(c.Valid, valid)
	return nil
}

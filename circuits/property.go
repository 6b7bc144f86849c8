package circuits

import (
	"math/bits"

	"github.com/consensys/gnark/frontend"

	"github.com/yourorg/fiscalzk/internal/gadgets"
	"github.com/yourorg/fiscalzk/pkg/tables"
)

// PropertyCircuit proves a property-transfer tax: a capital-gains exemption
// that grows with the holding period, two discrete bonuses, a per-type rate
// table, a fraud ratio check and a buyer/seller distinctness check.
//
// Public signal order: TransferTax, Valid.
type PropertyCircuit struct {
	TransferTax frontend.Variable `gnark:",public"`
	Valid       frontend.Variable `gnark:",public"`

	OriginalPrice frontend.Variable
	CurrentPrice  frontend.Variable
	HoldingYears  frontend.Variable
	PropertyType  frontend.Variable // index into the policy rate table
	FirstProperty frontend.Variable
	SeniorCitizen frontend.Variable
	BuyerID       frontend.Variable
	SellerID      frontend.Variable

	policy tables.TransferPolicy
}

func NewPropertyCircuit(p tables.TransferPolicy) *PropertyCircuit {
	return &PropertyCircuit{policy: p}
}

func (c *PropertyCircuit) Define(api frontend.API) error {
	p := c.policy

	gadgets.FitsInBits(api, c.OriginalPrice, AmountBits)
	gadgets.FitsInBits(api, c.CurrentPrice, AmountBits)
	gadgets.FitsInBits(api, c.HoldingYears, YearBits)
	api.AssertIsBoolean(c.FirstProperty)
	api.AssertIsBoolean(c.SeniorCitizen)

	// Exemption: continuous in holding years up to a cap, plus two discrete
	// bonuses, re-clamped to 100%. Both clamps are constrained; the raw
	// sums never reach the rate arithmetic. The first comparator must cover
	// the maximum raw value, a full 7-bit holding period times the per-year
	// rate, not just the cap.
	holdingRawBits := bits.Len64(p.HoldingBpsPerYear * (1<<YearBits - 1))
	holdingBps := gadgets.ClampMax(api, api.Mul(p.HoldingBpsPerYear, c.HoldingYears), p.HoldingBpsCap, holdingRawBits)
	rawExemption := api.Add(holdingBps,
		api.Add(api.Mul(p.FirstPropertyBps, c.FirstProperty), api.Mul(p.SeniorCitizenBps, c.SeniorCitizen)))
	exemption := gadgets.ClampMax(api, rawExemption, tables.BpsDenom, 14)

	// Taxable gain: clamped at zero for a loss, then reduced by the
	// exempted share.
	gain := gadgets.ClampSub(api, c.CurrentPrice, c.OriginalPrice, AmountBits)
	keepBps := api.Sub(tables.BpsDenom, exemption)
	taxableGain := gadgets.FloorDiv(api, api.Mul(gain, keepBps), tables.BpsDenom, ProductBits)

	// Rate multiplexed on property type; the selector group pins the type
	// to the table range.
	rates := make([]frontend.Variable, len(p.RatesBps))
	for i, r := range p.RatesBps {
		rates[i] = r
	}
	typeSel := gadgets.OneHot(api, c.PropertyType, len(rates))
	rate := gadgets.Select(api, typeSel, rates)
	tax := gadgets.FloorDiv(api, api.Mul(taxableGain, rate), tables.BpsDenom, ProductBits)
	api.AssertIsEqual(c.TransferTax, tax)

	// A sale at 10x the original price or more is flagged, not proven
	// valid; a self-sale likewise.
	fraudOK := gadgets.LessThan(api, c.CurrentPrice, api.Mul(10, c.OriginalPrice), AmountBits+4)
	distinctParties := gadgets.Not(api, gadgets.IsEqual(api, c.BuyerID, c.SellerID))
	api.AssertIsEqual(c.Valid, api.Mul(fraudOK, distinctParties))
	return nil
}

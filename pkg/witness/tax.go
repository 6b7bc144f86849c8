package witness

import (
	"fmt"

	"github.com/yourorg/fiscalzk/circuits"
	"github.com/yourorg/fiscalzk/pkg/tables"
)

// EvaluateTax computes the full tax witness. Deductions above income are a
// constraint violation: the circuit has no satisfying assignment for them.
func EvaluateTax(in TaxInputs, tb tables.TaxTable) (*Bundle, error) {
	if err := tb.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if err := checkAmount("income", in.Income); err != nil {
		return nil, err
	}
	if err := checkAmount("deductions", in.Deductions); err != nil {
		return nil, err
	}
	if err := checkCount("dependents", in.Dependents); err != nil {
		return nil, err
	}
	if in.Deductions > in.Income {
		log.Error().Str("event", "constraint_violation").
			Str("circuit", "tax").Msg("deductions exceed income")
		return nil, fmt.Errorf("%w: deductions exceed income", ErrConstraintViolation)
	}

	taxable := in.Income - in.Deductions
	baseTax, bracket := TaxFromTable(taxable, tb)
	perDependent := tb.DependentCreditUnits * (1 + boolToUint(in.FilingJoint))
	credit := perDependent * in.Dependents
	tax := uint64(0)
	if baseTax > credit {
		tax = baseTax - credit
	}

	asn := circuits.NewTaxCircuit(tb)
	asn.TaxOwed = tax
	asn.Bracket = bracket
	asn.Valid = 1
	asn.Income = in.Income
	asn.Deductions = in.Deductions
	asn.Dependents = in.Dependents
	asn.FilingStatus = boolToUint(in.FilingJoint)

	return assemble("tax", cacheKey(tb.Version, tb.Fingerprint()), tb.Version,
		circuits.NewTaxCircuit(tb), asn, u64s(tax, bracket, 1))
}

// TaxFromTable is the closed-form mirror of the circuit's per-tier
// arithmetic: floor division per tier, bracket as the count of tiers
// entered, a value exactly at a ceiling staying in the lower tier.
func TaxFromTable(taxable uint64, tb tables.TaxTable) (tax, bracket uint64) {
	prevCapped := uint64(0)
	for i, row := range tb.Brackets {
		capped := min(taxable, row.Ceiling)
		span := capped - prevCapped
		tax += span * row.RateBps / tables.BpsDenom
		if i > 0 && taxable > tb.Brackets[i-1].Ceiling {
			bracket++
		}
		prevCapped = capped
	}
	return tax, bracket
}

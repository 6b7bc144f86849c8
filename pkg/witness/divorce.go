package witness

import (
	"fmt"

	"github.com/yourorg/fiscalzk/circuits"
	"github.com/yourorg/fiscalzk/pkg/tables"
)

// EvaluateDivorce computes the settlement witness, including the two hinted
// booleans the circuit re-validates. The hints are ordinary derived values
// here; the circuit treats them as untrusted input either way.
func EvaluateDivorce(in DivorceInputs, p tables.DivorcePolicy) (*Bundle, error) {
	if p.AlimonyAdjustBps > p.AlimonyBaseBps {
		return nil, fmt.Errorf("%w: alimony adjustment exceeds base rate", ErrMalformedInput)
	}
	if err := checkAmount("incomeA", in.IncomeA); err != nil {
		return nil, err
	}
	if err := checkAmount("incomeB", in.IncomeB); err != nil {
		return nil, err
	}
	if err := checkYears("marriageYears", in.MarriageYears); err != nil {
		return nil, err
	}
	if err := checkCount("children", in.Children); err != nil {
		return nil, err
	}

	high, low := in.IncomeA, in.IncomeB
	if in.IncomeB > in.IncomeA {
		high, low = in.IncomeB, in.IncomeA
	}
	longMarriage := in.MarriageYears >= 10
	smallGap := 2*low >= high

	alimonyBps := p.AlimonyBaseBps
	if longMarriage {
		alimonyBps += p.AlimonyAdjustBps
	}
	if smallGap {
		alimonyBps -= p.AlimonyAdjustBps
	}
	alimony := high * alimonyBps / tables.BpsDenom

	payerIncome := in.IncomeA
	if in.CustodyWithA {
		payerIncome = in.IncomeB
	}
	csBps := min(p.ChildSupportPerChildBps*in.Children, p.ChildSupportCapBps)
	childSupport := payerIncome * csBps / tables.BpsDenom

	bonuses := boolToUint(longMarriage) + boolToUint(in.CareerSacrifice) +
		boolToUint(in.ChronicIllness) + boolToUint(in.SoleCaregiver)
	split := min(p.SplitBaseBps+p.SplitBonusBps*bonuses, tables.BpsDenom)

	asn := circuits.NewDivorceCircuit(p)
	asn.AlimonyOwed = alimony
	asn.ChildSupportOwed = childSupport
	asn.AssetSplitBpsA = split
	asn.Valid = 1
	asn.IncomeA = in.IncomeA
	asn.IncomeB = in.IncomeB
	asn.MarriageYears = in.MarriageYears
	asn.Children = in.Children
	asn.CustodyWithA = boolToUint(in.CustodyWithA)
	asn.CareerSacrifice = boolToUint(in.CareerSacrifice)
	asn.ChronicIllness = boolToUint(in.ChronicIllness)
	asn.SoleCaregiver = boolToUint(in.SoleCaregiver)
	asn.LongMarriage = boolToUint(longMarriage)
	asn.SmallIncomeGap = boolToUint(smallGap)

	return assemble("divorce", cacheKey(p.Version, p.Fingerprint()), p.Version,
		circuits.NewDivorceCircuit(p), asn, u64s(alimony, childSupport, split, 1))
}

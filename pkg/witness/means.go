package witness

import (
	"fmt"

	"github.com/yourorg/fiscalzk/circuits"
	"github.com/yourorg/fiscalzk/pkg/tables"
)

// EvaluateMeans computes the means-test witness. Households reporting
// expenses above income or liabilities above assets are inconsistent and
// rejected here; the circuit is unsatisfiable for both, so no proof of
// eligibility can ever come out of such a statement.
func EvaluateMeans(in MeansInputs, p tables.MeansPolicy) (*Bundle, error) {
	for name, v := range map[string]uint64{
		"monthlyIncome":   in.MonthlyIncome,
		"monthlyExpenses": in.MonthlyExpenses,
		"assets":          in.Assets,
		"liabilities":     in.Liabilities,
	} {
		if err := checkAmount(name, v); err != nil {
			return nil, err
		}
	}
	if err := checkCount("dependents", in.Dependents); err != nil {
		return nil, err
	}
	if in.MonthlyExpenses > in.MonthlyIncome {
		log.Error().Str("event", "constraint_violation").
			Str("circuit", "means").Msg("expenses exceed income")
		return nil, fmt.Errorf("%w: expenses exceed income", ErrConstraintViolation)
	}
	if in.Liabilities > in.Assets {
		log.Error().Str("event", "constraint_violation").
			Str("circuit", "means").Msg("liabilities exceed assets")
		return nil, fmt.Errorf("%w: liabilities exceed assets", ErrConstraintViolation)
	}

	disposable := in.MonthlyIncome - in.MonthlyExpenses
	netWorth := in.Assets - in.Liabilities
	resources := disposable*12 + netWorth/10
	threshold := p.BaseThresholdUnits * (10 + in.Dependents) / 10
	eligible := boolToUint(resources < threshold)

	asn := circuits.NewMeansTestCircuit(p)
	asn.Eligible = eligible
	asn.Valid = 1
	asn.MonthlyIncome = in.MonthlyIncome
	asn.MonthlyExpenses = in.MonthlyExpenses
	asn.Assets = in.Assets
	asn.Liabilities = in.Liabilities
	asn.Dependents = in.Dependents

	return assemble("means", cacheKey(p.Version, p.Fingerprint()), p.Version,
		circuits.NewMeansTestCircuit(p), asn, u64s(eligible, 1))
}

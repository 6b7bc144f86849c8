package witness

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/yourorg/fiscalzk/circuits"
)

// PublicAssignment rebuilds a public-only circuit assignment from the wire
// format, for verification without any private data. The signal order is
// the one frozen per circuit version.
func PublicAssignment(pf PublicFile) (frontend.Circuit, error) {
	vals := make([]*big.Int, len(pf.Signals))
	for i, s := range pf.Signals {
		v, err := parseFieldElement(fmt.Sprintf("signals[%d]", i), s)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}

	need := func(n int) error {
		if len(vals) != n {
			return fmt.Errorf("%w: circuit %s expects %d public signals, got %d",
				ErrMalformedInput, pf.Circuit, n, len(vals))
		}
		return nil
	}

	switch pf.Circuit {
	case "tax":
		if err := need(3); err != nil {
			return nil, err
		}
		return &circuits.TaxCircuit{TaxOwed: vals[0], Bracket: vals[1], Valid: vals[2]}, nil
	case "means":
		if err := need(2); err != nil {
			return nil, err
		}
		return &circuits.MeansTestCircuit{Eligible: vals[0], Valid: vals[1]}, nil
	case "divorce":
		if err := need(4); err != nil {
			return nil, err
		}
		return &circuits.DivorceCircuit{
			AlimonyOwed:      vals[0],
			ChildSupportOwed: vals[1],
			AssetSplitBpsA:   vals[2],
			Valid:            vals[3],
		}, nil
	case "property":
		if err := need(2); err != nil {
			return nil, err
		}
		return &circuits.PropertyCircuit{TransferTax: vals[0], Valid: vals[1]}, nil
	case "payment":
		if err := need(2); err != nil {
			return nil, err
		}
		return &circuits.PaymentCircuit{Commitment: vals[0], Valid: vals[1]}, nil
	case "paybatch":
		if err := need(3); err != nil {
			return nil, err
		}
		if pf.BatchSize <= 0 || pf.BatchSize > MaxBatchSize {
			return nil, fmt.Errorf("%w: batchSize=%d", ErrMalformedInput, pf.BatchSize)
		}
		return &circuits.BatchPaymentCircuit{
			Commitment: vals[0],
			Total:      vals[1],
			AllValid:   vals[2],
			Amounts:    make([]frontend.Variable, pf.BatchSize),
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown circuit %q", ErrMalformedInput, pf.Circuit)
	}
}

package witness

import (
	"fmt"
	"math/big"

	"github.com/yourorg/fiscalzk/circuits"
	"github.com/yourorg/fiscalzk/pkg/tables"
)

// EvaluatePayment computes the payment witness and the MiMC commitment that
// binds the proof to the unrevealed payment. A zero amount is rejected
// before evaluation regardless of every other field.
func EvaluatePayment(in PaymentInputs, p tables.PaymentPolicy) (*Bundle, error) {
	if in.Amount == 0 {
		return nil, fmt.Errorf("%w: zero payment amount", ErrMalformedInput)
	}
	if err := checkAmount("amount", in.Amount); err != nil {
		return nil, err
	}
	if err := checkAmount("dailyCumulative", in.DailyCumulative); err != nil {
		return nil, err
	}
	sender, err := parseFieldElement("sender", in.Sender)
	if err != nil {
		return nil, err
	}
	recipient, err := parseFieldElement("recipient", in.Recipient)
	if err != nil {
		return nil, err
	}
	salt, err := saltOrRandom(in.Salt)
	if err != nil {
		return nil, err
	}

	amount := new(big.Int).SetUint64(in.Amount)
	commitment := Commit(sender, recipient, amount, salt)

	valid := boolToUint(in.Amount >= p.MinAmount &&
		in.Amount <= p.MaxAmount &&
		in.DailyCumulative+in.Amount <= p.DailyLimit &&
		sender.Cmp(recipient) != 0)

	asn := circuits.NewPaymentCircuit(p)
	asn.Commitment = commitment
	asn.Valid = valid
	asn.Sender = sender
	asn.Recipient = recipient
	asn.Amount = in.Amount
	asn.DailyCumulative = in.DailyCumulative
	asn.Salt = salt

	signals := []*big.Int{commitment, new(big.Int).SetUint64(valid)}
	return assemble("payment", cacheKey(p.Version, p.Fingerprint()), p.Version,
		circuits.NewPaymentCircuit(p), asn, signals)
}

// MaxBatchSize bounds the batch variant so the running total stays inside
// the widened range check.
const MaxBatchSize = 1 << circuits.CountBits

// EvaluateBatchPayment computes the batch witness. The batch size is part
// of the circuit identity: each size is a separate compiled circuit.
func EvaluateBatchPayment(in BatchPaymentInputs, p tables.PaymentPolicy) (*Bundle, error) {
	n := len(in.Amounts)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrMalformedInput)
	}
	if n > MaxBatchSize {
		return nil, fmt.Errorf("%w: batch of %d exceeds %d", ErrOutOfRange, n, MaxBatchSize)
	}
	salt, err := saltOrRandom(in.Salt)
	if err != nil {
		return nil, err
	}

	total := uint64(0)
	allValid := uint64(1)
	elems := make([]*big.Int, 0, n+1)
	for i, amt := range in.Amounts {
		if err := checkAmount(fmt.Sprintf("amounts[%d]", i), amt); err != nil {
			return nil, err
		}
		if amt < p.MinAmount {
			allValid = 0
		}
		total += amt
		elems = append(elems, new(big.Int).SetUint64(amt))
	}
	elems = append(elems, salt)
	commitment := Commit(elems...)

	asn := circuits.NewBatchPaymentCircuit(p, n)
	asn.Commitment = commitment
	asn.Total = total
	asn.AllValid = allValid
	for i, amt := range in.Amounts {
		asn.Amounts[i] = amt
	}
	asn.Salt = salt

	fp := p.Fingerprint()
	key := fmt.Sprintf("%s-b%d-%x", p.Version, n, fp[:4])
	signals := []*big.Int{commitment, new(big.Int).SetUint64(total), new(big.Int).SetUint64(allValid)}
	return assemble("paybatch", key, p.Version,
		circuits.NewBatchPaymentCircuit(p, n), asn, signals)
}

func saltOrRandom(s string) (*big.Int, error) {
	if s == "" {
		return RandomSalt()
	}
	return parseFieldElement("salt", s)
}

package circuits

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"

	"github.com/yourorg/fiscalzk/internal/gadgets"
	"github.com/yourorg/fiscalzk/pkg/tables"
)

// PaymentCircuit proves a single payment satisfies the policy bounds while
// revealing only a MiMC commitment to the payment fields and the validity
// bit. The salt keeps the commitment unlinkable across proofs.
//
// Public signal order: Commitment, Valid.
type PaymentCircuit struct {
	Commitment frontend.Variable `gnark:",public"`
	Valid      frontend.Variable `gnark:",public"`

	Sender          frontend.Variable
	Recipient       frontend.Variable
	Amount          frontend.Variable
	DailyCumulative frontend.Variable
	Salt            frontend.Variable

	policy tables.PaymentPolicy
}

func NewPaymentCircuit(p tables.PaymentPolicy) *PaymentCircuit {
	return &PaymentCircuit{policy: p}
}

func (c *PaymentCircuit) Define(api frontend.API) error {
	p := c.policy

	gadgets.FitsInBits(api, c.Amount, AmountBits)
	gadgets.FitsInBits(api, c.DailyCumulative, AmountBits)

	nonZero := gadgets.Not(api, gadgets.IsZero(api, c.Amount))
	aboveMin := gadgets.GreaterEqThan(api, c.Amount, p.MinAmount, AmountBits)
	belowMax := gadgets.LessEqThan(api, c.Amount, p.MaxAmount, AmountBits)
	underLimit := gadgets.LessEqThan(api, api.Add(c.DailyCumulative, c.Amount), p.DailyLimit, AmountBits+1)
	distinctParties := gadgets.Not(api, gadgets.IsEqual(api, c.Sender, c.Recipient))

	valid := api.Mul(api.Mul(nonZero, distinctParties), api.Mul(api.Mul(aboveMin, belowMax), underLimit))
	api.AssertIsEqual(c.Valid, valid)

	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	h.Write(c.Sender, c.Recipient, c.Amount, c.Salt)
	api.AssertIsEqual(c.Commitment, h.Sum())
	return nil
}

// BatchPaymentCircuit validates a fixed-size batch: each amount is checked
// against the policy floor, the total accumulates by repeated addition and
// per-item validity combines through a running product, keeping the
// constraint count linear in the batch size.
//
// Public signal order: Commitment, Total, AllValid.
type BatchPaymentCircuit struct {
	Commitment frontend.Variable `gnark:",public"`
	Total      frontend.Variable `gnark:",public"`
	AllValid   frontend.Variable `gnark:",public"`

	Amounts []frontend.Variable
	Salt    frontend.Variable

	policy tables.PaymentPolicy
}

// NewBatchPaymentCircuit sizes the batch at definition time; each batch size
// is its own compiled circuit.
func NewBatchPaymentCircuit(p tables.PaymentPolicy, n int) *BatchPaymentCircuit {
	return &BatchPaymentCircuit{policy: p, Amounts: make([]frontend.Variable, n)}
}

func (c *BatchPaymentCircuit) Define(api frontend.API) error {
	p := c.policy

	total := frontend.Variable(0)
	allValid := frontend.Variable(1)
	for _, amt := range c.Amounts {
		gadgets.FitsInBits(api, amt, AmountBits)
		itemOK := gadgets.GreaterEqThan(api, amt, p.MinAmount, AmountBits)
		allValid = api.Mul(allValid, itemOK)
		total = api.Add(total, amt)
	}
	gadgets.FitsInBits(api, total, AmountBits+CountBits)
	api.AssertIsEqual(c.Total, total)
	api.AssertIsEqual(c.AllValid, allValid)

	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	h.Write(c.Amounts...)
	h.Write(c.Salt)
	api.AssertIsEqual(c.Commitment, h.Sum())
	return nil
}

// Package tables holds the statutory rate tables and policy constants the
// circuits are compiled against. Tables are plain Go values baked in at
// circuit-definition time; they are never part of a per-request witness.
// Each table carries a version string and a keccak fingerprint so that
// proving and verifying keys are bound to exact table contents.
package tables

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// NoCeiling marks an unbounded top tier. It equals the largest amount the
// circuits' 48-bit range checks admit, so the top tier reuses the same
// min/clamp path as every other tier.
const NoCeiling = uint64(1)<<48 - 1

// BpsDenom is the basis-point denominator used by every rate in a table.
const BpsDenom = 10000

// Bracket is one progressive tier: amounts up to Ceiling (in the smallest
// currency unit) are taxed at RateBps.
type Bracket struct {
	Ceiling uint64 `json:"ceilingInSmallestUnit"`
	RateBps uint64 `json:"rateBasisPoints"`
}

// TaxTable is an ordered progressive bracket table plus the flat
// per-dependent credit.
type TaxTable struct {
	Version              string
	Brackets             []Bracket
	DependentCreditUnits uint64
}

// Validate checks the structural invariants: at least one tier, strictly
// increasing ceilings, an unbounded top tier and rates within 100%.
func (t TaxTable) Validate() error {
	if len(t.Brackets) == 0 {
		return fmt.Errorf("table %s: no brackets", t.Version)
	}
	prev := uint64(0)
	for i, b := range t.Brackets {
		if i > 0 && b.Ceiling <= prev {
			return fmt.Errorf("table %s: ceiling %d not increasing at tier %d", t.Version, b.Ceiling, i)
		}
		if b.RateBps > BpsDenom {
			return fmt.Errorf("table %s: rate %d over 100%% at tier %d", t.Version, b.RateBps, i)
		}
		prev = b.Ceiling
	}
	if t.Brackets[len(t.Brackets)-1].Ceiling != NoCeiling {
		return fmt.Errorf("table %s: top tier must be unbounded", t.Version)
	}
	return nil
}

// Fingerprint binds the version string and every row into a single digest.
func (t TaxTable) Fingerprint() [32]byte {
	buf := []byte(t.Version)
	buf = appendU64(buf, t.DependentCreditUnits)
	for _, b := range t.Brackets {
		buf = appendU64(buf, b.Ceiling)
		buf = appendU64(buf, b.RateBps)
	}
	return digest(buf)
}

// MeansPolicy parameterizes the means-test circuit. The threshold rises 10%
// per dependent in-circuit.
type MeansPolicy struct {
	Version            string
	BaseThresholdUnits uint64
}

func (p MeansPolicy) Fingerprint() [32]byte {
	return digest(appendU64([]byte(p.Version), p.BaseThresholdUnits))
}

// DivorcePolicy parameterizes the settlement circuit. All rates are basis
// points of the relevant spouse's income.
type DivorcePolicy struct {
	Version                 string
	AlimonyBaseBps          uint64 // base rate on the higher income
	AlimonyAdjustBps        uint64 // added for a long marriage, removed for a small gap
	AlimonyCapBps           uint64 // hard ceiling on alimony
	ChildSupportPerChildBps uint64
	ChildSupportCapBps      uint64
	SplitBaseBps            uint64 // petitioner's base share of marital assets
	SplitBonusBps           uint64 // per qualifying bonus, clamped at 100%
}

func (p DivorcePolicy) Fingerprint() [32]byte {
	buf := []byte(p.Version)
	for _, v := range []uint64{
		p.AlimonyBaseBps, p.AlimonyAdjustBps, p.AlimonyCapBps,
		p.ChildSupportPerChildBps, p.ChildSupportCapBps,
		p.SplitBaseBps, p.SplitBonusBps,
	} {
		buf = appendU64(buf, v)
	}
	return digest(buf)
}

// TransferPolicy parameterizes the property-transfer circuit. RatesBps is
// indexed by property type; the selector group pins the type to this range.
type TransferPolicy struct {
	Version           string
	RatesBps          []uint64 // by property type: residential, commercial, land
	HoldingBpsPerYear uint64
	HoldingBpsCap     uint64
	FirstPropertyBps  uint64
	SeniorCitizenBps  uint64
}

func (p TransferPolicy) Fingerprint() [32]byte {
	buf := []byte(p.Version)
	for _, r := range p.RatesBps {
		buf = appendU64(buf, r)
	}
	for _, v := range []uint64{p.HoldingBpsPerYear, p.HoldingBpsCap, p.FirstPropertyBps, p.SeniorCitizenBps} {
		buf = appendU64(buf, v)
	}
	return digest(buf)
}

// PaymentPolicy parameterizes payment validation, single and batch.
type PaymentPolicy struct {
	Version    string
	MinAmount  uint64
	MaxAmount  uint64
	DailyLimit uint64
}

func (p PaymentPolicy) Fingerprint() [32]byte {
	buf := []byte(p.Version)
	for _, v := range []uint64{p.MinAmount, p.MaxAmount, p.DailyLimit} {
		buf = appendU64(buf, v)
	}
	return digest(buf)
}

func appendU64(buf []byte, v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(buf, b[:]...)
}

func digest(buf []byte) [32]byte {
	var out [32]byte
	copy(out[:], crypto.Keccak256(buf))
	return out
}

// DefaultTax is the statutory progressive table: 0% to 600k, 5% to 1.2M,
// 15% to 2.4M, 20% to 3.6M, 35% above, with a 10,000-unit credit per
// dependent (doubled for joint filers in-circuit).
func DefaultTax() TaxTable {
	return TaxTable{
		Version: "tax-v1",
		Brackets: []Bracket{
			{Ceiling: 600_000, RateBps: 0},
			{Ceiling: 1_200_000, RateBps: 500},
			{Ceiling: 2_400_000, RateBps: 1500},
			{Ceiling: 3_600_000, RateBps: 2000},
			{Ceiling: NoCeiling, RateBps: 3500},
		},
		DependentCreditUnits: 10_000,
	}
}

// DefaultMeans gives a 3M-unit base eligibility threshold.
func DefaultMeans() MeansPolicy {
	return MeansPolicy{Version: "means-v1", BaseThresholdUnits: 3_000_000}
}

// DefaultDivorce: alimony 20% of the higher income, +/-10% adjustments,
// capped at 50%; child support 10% per child capped at 40%; asset split
// 50% base plus 15% per bonus, clamped at 100%.
func DefaultDivorce() DivorcePolicy {
	return DivorcePolicy{
		Version:                 "divorce-v1",
		AlimonyBaseBps:          2000,
		AlimonyAdjustBps:        1000,
		AlimonyCapBps:           5000,
		ChildSupportPerChildBps: 1000,
		ChildSupportCapBps:      4000,
		SplitBaseBps:            5000,
		SplitBonusBps:           1500,
	}
}

// DefaultTransfer: 20% residential, 35% commercial, 30% land; capital-gains
// exemption grows 5% per holding year up to 60%, +30% first property,
// +20% senior citizen, all re-clamped at 100%.
func DefaultTransfer() TransferPolicy {
	return TransferPolicy{
		Version:           "property-v1",
		RatesBps:          []uint64{2000, 3500, 3000},
		HoldingBpsPerYear: 500,
		HoldingBpsCap:     6000,
		FirstPropertyBps:  3000,
		SeniorCitizenBps:  2000,
	}
}

// DefaultPayment bounds a single payment to [100, 10M] units under a 50M
// daily limit.
func DefaultPayment() PaymentPolicy {
	return PaymentPolicy{
		Version:    "payment-v1",
		MinAmount:  100,
		MaxAmount:  10_000_000,
		DailyLimit: 50_000_000,
	}
}

package witness

import (
	"fmt"
	"math/big"

	bn254fr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
	backendwitness "github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/frontend"

	"github.com/yourorg/fiscalzk/circuits"
)

// MaxAmount is the largest monetary value any circuit accepts; anything
// larger is rejected here, before field arithmetic can wrap it.
const MaxAmount = uint64(1)<<circuits.AmountBits - 1

// Bundle packages one evaluated witness for the proving backend: the full
// and public-only gnark witnesses, the compile blueprint, and the ordered
// public-signal strings of the wire format.
type Bundle struct {
	Circuit   string
	Version   string
	Key       string // artifact cache key: version + table fingerprint
	Blueprint frontend.Circuit
	Full      backendwitness.Witness
	Public    backendwitness.Witness
	Signals   []string
}

// PublicFile is the JSON document the prover CLI writes next to a proof and
// the verifier CLI consumes. Signal order is fixed per circuit version;
// reordering without a version bump breaks verification.
type PublicFile struct {
	Circuit   string   `json:"circuit"`
	Version   string   `json:"version"`
	BatchSize int      `json:"batchSize,omitempty"`
	Signals   []string `json:"signals"`
}

// TaxInputs are the private inputs of the progressive-tax circuit.
type TaxInputs struct {
	Income      uint64 `json:"income"`
	Deductions  uint64 `json:"deductions"`
	Dependents  uint64 `json:"dependents"`
	FilingJoint bool   `json:"filingJoint"`
}

// MeansInputs are the private inputs of the means-test circuit.
type MeansInputs struct {
	MonthlyIncome   uint64 `json:"monthlyIncome"`
	MonthlyExpenses uint64 `json:"monthlyExpenses"`
	Assets          uint64 `json:"assets"`
	Liabilities     uint64 `json:"liabilities"`
	Dependents      uint64 `json:"dependents"`
}

// DivorceInputs are the private inputs of the settlement circuit. The two
// hinted booleans are derived here, not supplied by the caller.
type DivorceInputs struct {
	IncomeA         uint64 `json:"incomeA"`
	IncomeB         uint64 `json:"incomeB"`
	MarriageYears   uint64 `json:"marriageYears"`
	Children        uint64 `json:"children"`
	CustodyWithA    bool   `json:"custodyWithA"`
	CareerSacrifice bool   `json:"careerSacrifice"`
	ChronicIllness  bool   `json:"chronicIllness"`
	SoleCaregiver   bool   `json:"soleCaregiver"`
}

// PropertyInputs are the private inputs of the property-transfer circuit.
// Party identifiers are decimal field elements.
type PropertyInputs struct {
	OriginalPrice uint64 `json:"originalPrice"`
	CurrentPrice  uint64 `json:"currentPrice"`
	HoldingYears  uint64 `json:"holdingYears"`
	PropertyType  uint64 `json:"propertyType"`
	FirstProperty bool   `json:"firstProperty"`
	SeniorCitizen bool   `json:"seniorCitizen"`
	BuyerID       string `json:"buyerId"`
	SellerID      string `json:"sellerId"`
}

// PaymentInputs are the private inputs of the payment-validation circuit.
// An empty salt draws a fresh random field element.
type PaymentInputs struct {
	Sender          string `json:"sender"`
	Recipient       string `json:"recipient"`
	Amount          uint64 `json:"amount"`
	DailyCumulative uint64 `json:"dailyCumulative"`
	Salt            string `json:"salt,omitempty"`
}

// BatchPaymentInputs are the private inputs of the batch variant.
type BatchPaymentInputs struct {
	Amounts []uint64 `json:"amounts"`
	Salt    string   `json:"salt,omitempty"`
}

func checkAmount(name string, v uint64) error {
	if v > MaxAmount {
		return fmt.Errorf("%w: %s=%d exceeds %d", ErrOutOfRange, name, v, MaxAmount)
	}
	return nil
}

func checkCount(name string, v uint64) error {
	if v >= 1<<circuits.CountBits {
		return fmt.Errorf("%w: %s=%d exceeds %d", ErrOutOfRange, name, v, uint64(1)<<circuits.CountBits-1)
	}
	return nil
}

func checkYears(name string, v uint64) error {
	if v >= 1<<circuits.YearBits {
		return fmt.Errorf("%w: %s=%d exceeds %d", ErrOutOfRange, name, v, uint64(1)<<circuits.YearBits-1)
	}
	return nil
}

// parseFieldElement parses a decimal field element, rejecting anything that
// is not a canonical representative of the BN254 scalar field.
func parseFieldElement(name, s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: %s is empty", ErrMalformedInput, name)
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s is not a decimal field element", ErrMalformedInput, name)
	}
	if v.Cmp(bn254fr.Modulus()) >= 0 {
		return nil, fmt.Errorf("%w: %s exceeds the field modulus", ErrOutOfRange, name)
	}
	return v, nil
}

func boolToUint(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// Package circuits defines the five statute circuits. Each circuit is a
// fixed arithmetic program over the BN254 scalar field: every legal branch
// is compiled into boolean indicators and selector sums, so the constraint
// system accepts exactly the witnesses of a correct computation and nothing
// about an input leaks beyond the declared public signals.
package circuits

import "github.com/consensys/gnark-crypto/ecc"

func Curve() ecc.ID { return ecc.BN254 }

const (
	// AmountBits bounds every monetary signal. The largest representable
	// legal amount is 10^14 smallest units (~2^46.5); one extra bit of
	// headroom gives 48. Far below the 253-bit field, so biased-difference
	// comparisons cannot wrap.
	AmountBits = 48

	// ProductBits bounds amount × basis-point products (48 + 14 bits,
	// rounded up), used for quotient range checks after rate division.
	ProductBits = 64

	// YearBits bounds year counts (marriage duration, holding period).
	YearBits = 7

	// CountBits bounds person counts (dependents, children).
	CountBits = 5
)

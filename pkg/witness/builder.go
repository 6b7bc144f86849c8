// Package witness evaluates the full signal graph of a statute circuit from
// caller-supplied private inputs. Evaluation is pure, synchronous and
// deterministic: every intermediate the circuit constrains (hints, clamps,
// floor quotients, commitments) is re-derived here exactly as the circuit
// defines it, and anything that cannot form a valid witness is rejected
// before field arithmetic, never silently wrapped into a provable lie.
package witness

import (
	"fmt"
	"math/big"

	bn254fr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
	gcmimc "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/consensys/gnark/frontend"

	"github.com/yourorg/fiscalzk/circuits"
)

// Commit hashes field elements with the native MiMC that mirrors the
// in-circuit hash, element per block.
func Commit(elems ...*big.Int) *big.Int {
	h := gcmimc.NewMiMC()
	for _, e := range elems {
		var fe bn254fr.Element
		fe.SetBigInt(e)
		b := fe.Bytes()
		_, _ = h.Write(b[:])
	}
	return new(big.Int).SetBytes(h.Sum(nil))
}

// RandomSalt draws a uniform field element for commitment blinding.
func RandomSalt() (*big.Int, error) {
	var fe bn254fr.Element
	if _, err := fe.SetRandom(); err != nil {
		return nil, fmt.Errorf("%w: sampling salt: %v", ErrMalformedInput, err)
	}
	return fe.BigInt(new(big.Int)), nil
}

// assemble materializes the gnark witnesses and the ordered public-signal
// strings from a complete assignment.
func assemble(circuitName, key, version string, blueprint, assignment frontend.Circuit, signals []*big.Int) (*Bundle, error) {
	full, err := frontend.NewWitness(assignment, circuits.Curve().ScalarField())
	if err != nil {
		return nil, fmt.Errorf("%w: building witness: %v", ErrMalformedInput, err)
	}
	public, err := full.Public()
	if err != nil {
		return nil, fmt.Errorf("%w: extracting public witness: %v", ErrMalformedInput, err)
	}
	strs := make([]string, len(signals))
	for i, s := range signals {
		strs[i] = s.String()
	}
	return &Bundle{
		Circuit:   circuitName,
		Version:   version,
		Key:       key,
		Blueprint: blueprint,
		Full:      full,
		Public:    public,
		Signals:   strs,
	}, nil
}

func cacheKey(version string, fp [32]byte) string {
	return fmt.Sprintf("%s-%x", version, fp[:4])
}

func u64s(vs ...uint64) []*big.Int {
	out := make([]*big.Int, len(vs))
	for i, v := range vs {
		out[i] = new(big.Int).SetUint64(v)
	}
	return out
}

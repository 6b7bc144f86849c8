// Package backend adapts the statute circuits to the Groth16 prover. It
// owns the versioned setup artifacts (constraint system, proving and
// verifying keys) and exposes a cancellable prove and a pure verify. No
// curve or pairing arithmetic lives here; that is gnark's job.
package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/consensys/gnark/backend/groth16"
	backendwitness "github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/rs/zerolog"

	"github.com/yourorg/fiscalzk/circuits"
	"github.com/yourorg/fiscalzk/pkg/witness"
)

// ErrBackendFailure marks infrastructure trouble (I/O, key mismatch,
// cancellation): witness-independent and retryable, unlike a constraint
// violation.
var ErrBackendFailure = errors.New("proof backend failure")

var log = zerolog.New(os.Stderr).With().Timestamp().Str("component", "backend").Logger()

// Artifact ties one circuit version (including its table fingerprint) to a
// compiled constraint system and its Groth16 keys. Immutable after Setup;
// safe for concurrent provers.
type Artifact struct {
	CircuitID string
	CS        constraint.ConstraintSystem
	PK        groth16.ProvingKey
	VK        groth16.VerifyingKey
}

// Setup compiles the blueprint and loads or creates the Groth16 keys for
// it. Keys are cached on disk under the circuit ID, so a changed table
// (hence a changed ID) can never silently reuse stale keys.
func Setup(circuitID string, blueprint frontend.Circuit, dir string) (*Artifact, error) {
	cs, err := frontend.Compile(circuits.Curve().ScalarField(), r1cs.NewBuilder, blueprint)
	if err != nil {
		return nil, fmt.Errorf("%w: compiling %s: %v", ErrBackendFailure, circuitID, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}
	pkPath := filepath.Join(dir, circuitID+"_pk.bin")
	vkPath := filepath.Join(dir, circuitID+"_vk.bin")

	if pk, vk, err := loadKeys(pkPath, vkPath); err == nil {
		log.Debug().Str("circuit", circuitID).Msg("reusing cached keys")
		return &Artifact{CircuitID: circuitID, CS: cs, PK: pk, VK: vk}, nil
	}

	log.Info().Str("circuit", circuitID).Int("constraints", cs.GetNbConstraints()).
		Msg("running one-time setup")
	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return nil, fmt.Errorf("%w: setup for %s: %v", ErrBackendFailure, circuitID, err)
	}
	if err := storeKeys(pkPath, vkPath, pk, vk); err != nil {
		return nil, err
	}
	return &Artifact{CircuitID: circuitID, CS: cs, PK: pk, VK: vk}, nil
}

func loadKeys(pkPath, vkPath string) (groth16.ProvingKey, groth16.VerifyingKey, error) {
	pkBytes, err := os.ReadFile(pkPath)
	if err != nil {
		return nil, nil, err
	}
	vkBytes, err := os.ReadFile(vkPath)
	if err != nil {
		return nil, nil, err
	}
	pk := groth16.NewProvingKey(circuits.Curve())
	if _, err := pk.ReadFrom(bytes.NewReader(pkBytes)); err != nil {
		return nil, nil, err
	}
	vk := groth16.NewVerifyingKey(circuits.Curve())
	if _, err := vk.ReadFrom(bytes.NewReader(vkBytes)); err != nil {
		return nil, nil, err
	}
	return pk, vk, nil
}

func storeKeys(pkPath, vkPath string, pk groth16.ProvingKey, vk groth16.VerifyingKey) error {
	var buf bytes.Buffer
	if _, err := pk.WriteTo(&buf); err != nil {
		return fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}
	if err := os.WriteFile(pkPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}
	buf.Reset()
	if _, err := vk.WriteTo(&buf); err != nil {
		return fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}
	if err := os.WriteFile(vkPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}
	return nil
}

// Prove runs the Groth16 prover on a fully materialized witness. The
// context bounds the only long-running step; cancellation leaves no partial
// state. A prover failure on a well-formed witness is a constraint
// violation, not a backend fault, and is logged as such.
func (a *Artifact) Prove(ctx context.Context, full backendwitness.Witness) (groth16.Proof, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}

	type result struct {
		proof groth16.Proof
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		proof, err := groth16.Prove(a.CS, a.PK, full)
		ch <- result{proof, err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrBackendFailure, ctx.Err())
	case r := <-ch:
		if r.err != nil {
			log.Error().Str("event", "constraint_violation").
				Str("circuit", a.CircuitID).Err(r.err).
				Msg("prover rejected witness")
			return nil, fmt.Errorf("%w: %v", witness.ErrConstraintViolation, r.err)
		}
		return r.proof, nil
	}
}

// Verify checks a proof against public signals only. Pure: no I/O, no
// state, deterministic for fixed inputs.
func (a *Artifact) Verify(proof groth16.Proof, public backendwitness.Witness) error {
	return groth16.Verify(proof, a.VK, public)
}

// WriteProof and ReadProof serialize proofs with gnark's canonical encoding.
func WriteProof(path string, proof groth16.Proof) error {
	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}
	return nil
}

func ReadProof(path string) (groth16.Proof, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}
	proof := groth16.NewProof(circuits.Curve())
	if _, err := proof.ReadFrom(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}
	return proof, nil
}

// ReadVerifyingKey loads a serialized verifying key for standalone
// verification.
func ReadVerifyingKey(path string) (groth16.VerifyingKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}
	vk := groth16.NewVerifyingKey(circuits.Curve())
	if _, err := vk.ReadFrom(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendFailure, err)
	}
	return vk, nil
}

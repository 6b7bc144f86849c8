package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yourorg/fiscalzk/pkg/tables"
	"github.com/yourorg/fiscalzk/pkg/witness"
)

// The means circuit is the smallest of the family, so it carries the
// backend round-trip tests.
func meansBundle(t *testing.T) *witness.Bundle {
	t.Helper()
	b, err := witness.EvaluateMeans(witness.MeansInputs{
		MonthlyIncome:   250_000,
		MonthlyExpenses: 150_000,
		Assets:          500_000,
		Liabilities:     100_000,
		Dependents:      2,
	}, tables.DefaultMeans())
	require.NoError(t, err)
	return b
}

func TestSetupProveVerify(t *testing.T) {
	dir := t.TempDir()
	b := meansBundle(t)

	art, err := Setup(b.Key, b.Blueprint, dir)
	require.NoError(t, err)
	require.NotNil(t, art.CS)
	require.NotNil(t, art.PK)
	require.NotNil(t, art.VK)

	proof, err := art.Prove(context.Background(), b.Full)
	require.NoError(t, err)
	require.NoError(t, art.Verify(proof, b.Public))
}

func TestSetupReusesCachedKeys(t *testing.T) {
	dir := t.TempDir()
	b := meansBundle(t)

	first, err := Setup(b.Key, b.Blueprint, dir)
	require.NoError(t, err)

	pkPath := filepath.Join(dir, b.Key+"_pk.bin")
	info, err := os.Stat(pkPath)
	require.NoError(t, err)

	// Second setup must load the stored keys rather than regenerate them,
	// and the reloaded keys must still prove and verify.
	second, err := Setup(b.Key, b.Blueprint, dir)
	require.NoError(t, err)

	after, err := os.Stat(pkPath)
	require.NoError(t, err)
	require.Equal(t, info.ModTime(), after.ModTime())

	proof, err := second.Prove(context.Background(), b.Full)
	require.NoError(t, err)
	require.NoError(t, first.Verify(proof, b.Public))
}

func TestProveCanceledContext(t *testing.T) {
	dir := t.TempDir()
	b := meansBundle(t)

	art, err := Setup(b.Key, b.Blueprint, dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = art.Prove(ctx, b.Full)
	require.ErrorIs(t, err, ErrBackendFailure)
}

func TestProofSerializationRoundTrip(t *testing.T) {
	dir := t.TempDir()
	b := meansBundle(t)

	art, err := Setup(b.Key, b.Blueprint, dir)
	require.NoError(t, err)
	proof, err := art.Prove(context.Background(), b.Full)
	require.NoError(t, err)

	path := filepath.Join(dir, "means_proof.bin")
	require.NoError(t, WriteProof(path, proof))

	loaded, err := ReadProof(path)
	require.NoError(t, err)
	require.NoError(t, art.Verify(loaded, b.Public))

	vk, err := ReadVerifyingKey(filepath.Join(dir, b.Key+"_vk.bin"))
	require.NoError(t, err)
	require.NotNil(t, vk)
}

func TestReadProofMissingFile(t *testing.T) {
	_, err := ReadProof(filepath.Join(t.TempDir(), "absent.bin"))
	require.ErrorIs(t, err, ErrBackendFailure)
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yourorg/fiscalzk/pkg/backend"
	"github.com/yourorg/fiscalzk/pkg/tables"
	"github.com/yourorg/fiscalzk/pkg/witness"
)

// contextKey is a custom type for context keys to avoid conflicts
type contextKey string

const startTimeKey contextKey = "start"

func main() {
	var (
		circuitName string
		inputPath   string
		outDir      string
		timeout     time.Duration
	)

	rootCmd := &cobra.Command{
		Use:   "prover",
		Short: "Generate a Groth16 proof of a statute computation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if outDir == "" {
				_ = godotenv.Load()
				outDir = os.Getenv("FISCALZK_ARTIFACTS")
				if outDir == "" {
					outDir = "./"
				}
			}

			raw, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("reading input file: %w", err)
			}

			// -----------------------------------------------------------------
			// Witness bundle
			// -----------------------------------------------------------------
			bundle, batchSize, err := evaluate(circuitName, raw)
			if err != nil {
				return err
			}

			// -----------------------------------------------------------------
			// Compile + trusted setup (cached per circuit version and table)
			// -----------------------------------------------------------------
			art, err := backend.Setup(bundle.Key, bundle.Blueprint, outDir)
			if err != nil {
				return err
			}

			// -----------------------------------------------------------------
			// Prove
			// -----------------------------------------------------------------
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			proof, err := art.Prove(ctx, bundle.Full)
			if err != nil {
				return err
			}

			// -----------------------------------------------------------------
			// Outputs
			// -----------------------------------------------------------------
			proofPath := filepath.Join(outDir, bundle.Circuit+"_proof.bin")
			publicPath := filepath.Join(outDir, bundle.Circuit+"_public.json")

			if err := backend.WriteProof(proofPath, proof); err != nil {
				return err
			}
			pub := witness.PublicFile{
				Circuit:   bundle.Circuit,
				Version:   bundle.Version,
				BatchSize: batchSize,
				Signals:   bundle.Signals,
			}
			jsonBytes, _ := json.MarshalIndent(pub, "", "  ")
			if err := os.WriteFile(publicPath, jsonBytes, 0o644); err != nil {
				return err
			}

			fmt.Printf("circuit %s (%s): proof written to %s\n", bundle.Circuit, bundle.Key, proofPath)
			fmt.Printf("proof done in %s\n", time.Since(cmd.Context().Value(startTimeKey).(time.Time)))
			return nil
		},
	}

	rootCmd.Flags().StringVar(&circuitName, "circuit", "", "tax|means|divorce|property|payment|paybatch")
	rootCmd.Flags().StringVar(&inputPath, "input", "", "JSON file with the circuit's private inputs")
	rootCmd.Flags().StringVar(&outDir, "outdir", "", "Artifact directory (default $FISCALZK_ARTIFACTS or ./)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "Optional proving timeout, e.g. 90s")
	_ = rootCmd.MarkFlagRequired("circuit")
	_ = rootCmd.MarkFlagRequired("input")

	rootCmd.SetContext(context.WithValue(context.Background(), startTimeKey, time.Now()))
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func evaluate(circuitName string, raw []byte) (*witness.Bundle, int, error) {
	switch circuitName {
	case "tax":
		var in witness.TaxInputs
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", witness.ErrMalformedInput, err)
		}
		b, err := witness.EvaluateTax(in, tables.DefaultTax())
		return b, 0, err
	case "means":
		var in witness.MeansInputs
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", witness.ErrMalformedInput, err)
		}
		b, err := witness.EvaluateMeans(in, tables.DefaultMeans())
		return b, 0, err
	case "divorce":
		var in witness.DivorceInputs
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", witness.ErrMalformedInput, err)
		}
		b, err := witness.EvaluateDivorce(in, tables.DefaultDivorce())
		return b, 0, err
	case "property":
		var in witness.PropertyInputs
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", witness.ErrMalformedInput, err)
		}
		b, err := witness.EvaluateProperty(in, tables.DefaultTransfer())
		return b, 0, err
	case "payment":
		var in witness.PaymentInputs
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", witness.ErrMalformedInput, err)
		}
		b, err := witness.EvaluatePayment(in, tables.DefaultPayment())
		return b, 0, err
	case "paybatch":
		var in witness.BatchPaymentInputs
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", witness.ErrMalformedInput, err)
		}
		b, err := witness.EvaluateBatchPayment(in, tables.DefaultPayment())
		return b, len(in.Amounts), err
	default:
		return nil, 0, fmt.Errorf("%w: unknown circuit %q", witness.ErrMalformedInput, circuitName)
	}
}

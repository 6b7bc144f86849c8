package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/spf13/cobra"

	"github.com/yourorg/fiscalzk/circuits"
	"github.com/yourorg/fiscalzk/pkg/backend"
	"github.com/yourorg/fiscalzk/pkg/witness"
)

func main() {
	var proofPath, publicPath, vkPath string

	cmd := &cobra.Command{
		Use:   "verifier",
		Short: "Verify a Groth16 proof of a statute computation",
		RunE: func(cmd *cobra.Command, args []string) error {
			jBytes, err := os.ReadFile(publicPath)
			if err != nil {
				return err
			}
			var pub witness.PublicFile
			if err := json.Unmarshal(jBytes, &pub); err != nil {
				return fmt.Errorf("%w: %v", witness.ErrMalformedInput, err)
			}

			proof, err := backend.ReadProof(proofPath)
			if err != nil {
				return err
			}
			vk, err := backend.ReadVerifyingKey(vkPath)
			if err != nil {
				return err
			}

			pubAssign, err := witness.PublicAssignment(pub)
			if err != nil {
				return err
			}
			pubWit, err := frontend.NewWitness(
				pubAssign,
				circuits.Curve().ScalarField(),
				frontend.PublicOnly(),
			)
			if err != nil {
				return err
			}

			if err := groth16.Verify(proof, vk, pubWit); err != nil {
				return fmt.Errorf("verification failed: %w", err)
			}
			fmt.Printf("proof verified: circuit %s version %s\n", pub.Circuit, pub.Version)
			return nil
		},
	}

	cmd.Flags().StringVar(&proofPath, "proof", "", "<circuit>_proof.bin")
	cmd.Flags().StringVar(&publicPath, "public", "", "<circuit>_public.json")
	cmd.Flags().StringVar(&vkPath, "vk", "", "<circuitKey>_vk.bin")
	_ = cmd.MarkFlagRequired("proof")
	_ = cmd.MarkFlagRequired("public")
	_ = cmd.MarkFlagRequired("vk")

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

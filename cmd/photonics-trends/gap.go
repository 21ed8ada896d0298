// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joels-spie/photonics-trends-app/internal/output"
)

var gapCmd = &cobra.Command{
	Use:   "gap",
	Short: "Find growing topics where a target publisher is under-represented",
	Long: `Gap scores every catalog topic for opportunity relative to a target
publisher: topics must clear a minimum volume and growth screen, and the
target's share of recent output must fall below the configured ceiling.
Higher scores mean faster-growing topics with less incumbent presence.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := emergingRequestFromFlags(cmd)
		if err != nil {
			return err
		}
		target, _ := cmd.Flags().GetString("target")

		eng, store, err := buildEngine()
		if err != nil {
			return err
		}
		defer store.Close()

		res, err := eng.GapAnalysis(cmd.Context(), req, target)
		if err != nil {
			return err
		}
		return output.FormatGapAnalysis(os.Stdout, res, outputCfg(cmd))
	},
}

func init() {
	addEmergingFlags(gapCmd)
	gapCmd.Flags().String("target", "", "target publisher name or alias (required)")
	gapCmd.MarkFlagRequired("target")
	rootCmd.AddCommand(gapCmd)
}

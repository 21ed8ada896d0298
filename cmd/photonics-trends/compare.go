// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joels-spie/photonics-trends-app/internal/output"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare publisher volumes and market share within a topic",
	Long: `Compare fetches the full matched universe for a topic or ad-hoc query and
reports per-year volumes, market share, and growth for each requested
publisher. Shares are fractions of the whole universe, so the requested
subset need not sum to one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := requestFromFlags(cmd)
		if err != nil {
			return err
		}

		eng, store, err := buildEngine()
		if err != nil {
			return err
		}
		defer store.Close()

		res, err := eng.ComparePublishers(cmd.Context(), req)
		if err != nil {
			return err
		}
		return output.FormatComparison(os.Stdout, res, outputCfg(cmd))
	},
}

func init() {
	addRequestFlags(compareCmd)
	rootCmd.AddCommand(compareCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joels-spie/photonics-trends-app/internal/output"
)

var institutionsCmd = &cobra.Command{
	Use:   "institutions",
	Short: "Rank institutions and countries active in a topic",
	Long: `Institutions ranks research institutions by first-listed affiliation across
the matched record set, with a country rollup over all affiliations. Crossref
affiliation coverage is sparse, so results are best-effort and flagged when
coverage is low.`,
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

		res, err := eng.Institutions(cmd.Context(), req)
		if err != nil {
			return err
		}
		return output.FormatInstitutions(os.Stdout, res, outputCfg(cmd))
	},
}

func init() {
	addRequestFlags(institutionsCmd)
	rootCmd.AddCommand(institutionsCmd)
}

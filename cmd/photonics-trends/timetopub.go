// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joels-spie/photonics-trends-app/internal/output"
)

var timeToPubCmd = &cobra.Command{
	Use:   "timetopub",
	Short: "Measure editorial lag for a topic or ad-hoc query",
	Long: `Timetopub reports mean days from record creation to publication and from
acceptance to publication, with per-year trends. Records missing either date
or with implausible lags are excluded from the means; coverage rates report
how much of the matched set contributed.`,
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

		res, err := eng.TimeToPublication(cmd.Context(), req)
		if err != nil {
			return err
		}
		return output.FormatTimeToPub(os.Stdout, res, outputCfg(cmd))
	},
}

func init() {
	addRequestFlags(timeToPubCmd)
	rootCmd.AddCommand(timeToPubCmd)
}

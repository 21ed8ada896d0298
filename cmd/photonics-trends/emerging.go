// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joels-spie/photonics-trends-app/internal/engine"
	"github.com/joels-spie/photonics-trends-app/internal/output"
)

var emergingCmd = &cobra.Command{
	Use:   "emerging",
	Short: "Rank all catalog topics by recent growth",
	Long: `Emerging runs the fetch-and-match pipeline once per configured topic and
ranks topics by compound growth over the recent lookback window. Topics with
fewer than two recent publication years are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := emergingRequestFromFlags(cmd)
		if err != nil {
			return err
		}

		eng, store, err := buildEngine()
		if err != nil {
			return err
		}
		defer store.Close()

		res, err := eng.EmergingTopics(cmd.Context(), req)
		if err != nil {
			return err
		}
		return output.FormatEmergingTopics(os.Stdout, res, outputCfg(cmd))
	},
}

// addEmergingFlags registers the flags shared by the catalog-wide commands.
func addEmergingFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", defaultFrom(), "publication date range start (YYYY-MM-DD)")
	cmd.Flags().String("until", defaultUntil(), "publication date range end (YYYY-MM-DD)")
	cmd.Flags().Int("lookback", 0, "recent window in years (0 = configured default)")
	cmd.Flags().Int("max-records", 0, "maximum records per topic (0 = configured default)")
	cmd.Flags().Bool("refresh", false, "bypass the response cache and re-fetch")
}

func emergingRequestFromFlags(cmd *cobra.Command) (engine.EmergingRequest, error) {
	var req engine.EmergingRequest
	var err error

	from, _ := cmd.Flags().GetString("from")
	if req.FromDate, err = parseDate(from, "--from"); err != nil {
		return engine.EmergingRequest{}, err
	}
	until, _ := cmd.Flags().GetString("until")
	if req.UntilDate, err = parseDate(until, "--until"); err != nil {
		return engine.EmergingRequest{}, err
	}

	req.LookbackYears, _ = cmd.Flags().GetInt("lookback")
	req.MaxRecordsPerTopic, _ = cmd.Flags().GetInt("max-records")
	req.RefreshCache, _ = cmd.Flags().GetBool("refresh")
	return req, nil
}

func init() {
	addEmergingFlags(emergingCmd)
	rootCmd.AddCommand(emergingCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joels-spie/photonics-trends-app/internal/output"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze publication trends for a topic or ad-hoc query",
	Long: `Analyze fetches matching works from Crossref, filters them against the
topic definition, and reports yearly volumes, growth, top publishers, and
top journals for the matched set.`,
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

		res, err := eng.AnalyzeTopic(cmd.Context(), req)
		if err != nil {
			return err
		}

		label := req.TopicKey
		if label == "" {
			label = req.AdHocQuery
		}
		return output.FormatTopicAnalysis(os.Stdout, res, label, outputCfg(cmd))
	},
}

func init() {
	addRequestFlags(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}

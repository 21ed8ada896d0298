// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joels-spie/photonics-trends-app/internal/output"
	"github.com/joels-spie/photonics-trends-app/internal/registry"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the loaded topic and publisher catalogs",
	Long: `Config prints the topic and publisher catalogs loaded from the catalog
directory, after validation. Use --json for the raw definitions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.Load(viper.GetString("catalog_dir"))
		if err != nil {
			return err
		}
		return output.FormatCatalog(os.Stdout, reg.Topics(), reg.Publishers(), outputCfg(cmd))
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

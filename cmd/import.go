package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chronomaps/atlas-cli/internal/geojson"
	"github.com/chronomaps/atlas-cli/internal/shape"
)

var importCmd = &cobra.Command{
	Use:   "import <shapefile>",
	Short: "Convert a shapefile to GeoJSON",
	Long:  "Reads an ESRI shapefile, converts attribute columns to feature properties and geometries to GeoJSON, and writes a feature collection ready for the cleanup pipeline.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = strings.TrimSuffix(input, ".shp") + ".geojson"
		}

		coll, err := shape.Import(input)
		if err != nil {
			return err
		}

		if err := geojson.Save(output, coll); err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "imported %d features -> %s\n", len(coll.Features), output)
		return nil
	},
}

func init() {
	importCmd.Flags().StringP("output", "o", "", "output path (default: <shapefile>.geojson)")
	rootCmd.AddCommand(importCmd)
}

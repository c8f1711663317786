package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/chronomaps/atlas-cli/internal/viewport"
)

var viewportCmd = &cobra.Command{
	Use:   "viewport <input>",
	Short: "Compute per-region viewports for a dataset",
	Long:  "Groups features by region, reports feature counts and bounding boxes, and estimates the map center and zoom for each region. Prints JSON.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		coll, err := loadCollection(ctx, args[0])
		if err != nil {
			return err
		}

		regionKey, _ := cmd.Flags().GetString("region-key")
		if regionKey == "" {
			regionKey = cfg.Clean.RegionKey
		}

		size := viewport.Size{
			Width:  cfg.Viewport.Width,
			Height: cfg.Viewport.Height,
		}
		if w, _ := cmd.Flags().GetInt("width"); w > 0 {
			size.Width = w
		}
		if h, _ := cmd.Flags().GetInt("height"); h > 0 {
			size.Height = h
		}

		regions := viewport.Regions(coll.Features, regionKey, size)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(regions)
	},
}

func init() {
	viewportCmd.Flags().String("region-key", "", "property naming each feature's region")
	viewportCmd.Flags().Int("width", 0, "viewport width in pixels")
	viewportCmd.Flags().Int("height", 0, "viewport height in pixels")
	rootCmd.AddCommand(viewportCmd)
}

package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chronomaps/atlas-cli/internal/fetcher"
	"github.com/chronomaps/atlas-cli/internal/geojson"
	"github.com/chronomaps/atlas-cli/internal/upload"
	"github.com/chronomaps/atlas-cli/pkg/mapbox"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <input>",
	Short: "Publish a cleaned dataset to Mapbox",
	Long:  "Upserts every feature of the collection into a Mapbox dataset through the Datasets API, creating the dataset when no ID is given.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		input := args[0]

		if cfg.Mapbox.Username == "" || cfg.Mapbox.Token == "" {
			return eris.New("mapbox upload requires ATLAS_MAPBOX_USERNAME and ATLAS_MAPBOX_TOKEN")
		}

		coll, err := loadCollection(ctx, input)
		if err != nil {
			return err
		}

		datasetID, _ := cmd.Flags().GetString("dataset")

		// Generated feature IDs are written back after the upload so
		// re-uploads stay stable; a remote input has nowhere to write to
		// unless --output names a local path.
		writeBack, _ := cmd.Flags().GetString("output")
		if writeBack == "" && !fetcher.Remote(input) {
			writeBack = input
		}

		var opts []mapbox.Option
		if cfg.Mapbox.BaseURL != "" {
			opts = append(opts, mapbox.WithBaseURL(cfg.Mapbox.BaseURL))
		}
		client := mapbox.NewClient(cfg.Mapbox.Username, cfg.Mapbox.Token, opts...)

		summary, err := upload.New(client).Upload(ctx, datasetID, coll)
		if err != nil {
			return err
		}

		if writeBack != "" {
			if err := geojson.Save(writeBack, coll); err != nil {
				return err
			}
		} else {
			zap.L().Warn("remote input, generated feature IDs not written back",
				zap.String("input", input))
		}

		fmt.Fprintf(os.Stderr, "uploaded %d features to dataset %s (%d failed)\n",
			summary.Uploaded, summary.DatasetID, summary.Failed)
		return nil
	},
}

func init() {
	uploadCmd.Flags().String("dataset", "", "existing dataset ID (omit to create a new dataset)")
	uploadCmd.Flags().StringP("output", "o", "", "where to save the collection with generated feature IDs (default: rewrite a local input)")
	rootCmd.AddCommand(uploadCmd)
}

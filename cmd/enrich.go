package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/chronomaps/atlas-cli/internal/enrich"
	"github.com/chronomaps/atlas-cli/internal/fetcher"
	"github.com/chronomaps/atlas-cli/internal/geojson"
	"github.com/chronomaps/atlas-cli/pkg/wikipedia"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich <input>",
	Short: "Link features to Wikipedia articles",
	Long:  "Looks up each feature title on Wikipedia (English and German by default), picks the strongest article, and writes the page URL into the feature properties.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		input := args[0]

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			if fetcher.Remote(input) {
				return eris.New("enriching a remote dataset requires --output")
			}
			output = input
		}

		coll, err := loadCollection(ctx, input)
		if err != nil {
			return err
		}
		overwrite, _ := cmd.Flags().GetBool("overwrite")

		client := wikipedia.NewClient(
			cfg.Fetch.UserAgent,
			wikipedia.WithLanguages(cfg.Wikipedia.Languages...),
		)
		e := enrich.New(client, enrich.Options{
			TitleKey:     cfg.Clean.TitleKey,
			WikipediaKey: cfg.Clean.WikipediaKey,
			Overwrite:    overwrite,
			Concurrency:  cfg.Wikipedia.Concurrency,
		})

		summary, err := e.Enrich(ctx, coll)
		if err != nil {
			return err
		}

		if err := geojson.Save(output, coll); err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "linked %d features (%d already linked, %d not found) -> %s\n",
			summary.Linked, summary.Skipped, summary.NotFound, output)
		return nil
	},
}

func init() {
	enrichCmd.Flags().StringP("output", "o", "", "output path (default: rewrite the input)")
	enrichCmd.Flags().Bool("overwrite", false, "replace existing Wikipedia links")
	rootCmd.AddCommand(enrichCmd)
}

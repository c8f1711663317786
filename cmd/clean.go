package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chronomaps/atlas-cli/internal/geojson"
	"github.com/chronomaps/atlas-cli/internal/report"
)

var cleanCmd = &cobra.Command{
	Use:   "clean <input>",
	Short: "Run the full cleanup pipeline on a dataset",
	Long:  "Repairs titles and encodings, prunes properties, standardizes colors, strips altitude, computes viewports, and writes the cleaned collection plus review reports.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		input := args[0]

		output, _ := cmd.Flags().GetString("output")
		reportDir, _ := cmd.Flags().GetString("reports")
		noStore, _ := cmd.Flags().GetBool("no-store")

		if output == "" {
			output = derivedOutput(input)
		}

		var recordRun func(stats json.RawMessage, runErr error)
		if !noStore {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			if err := st.Migrate(ctx); err != nil {
				return err
			}

			run, err := st.CreateRun(ctx, input)
			if err != nil {
				return err
			}
			recordRun = func(stats json.RawMessage, runErr error) {
				if runErr != nil {
					if err := st.FailRun(ctx, run.ID, runErr.Error()); err != nil {
						zap.L().Warn("record failed run", zap.Error(err))
					}
					return
				}
				if err := st.CompleteRun(ctx, run.ID, stats); err != nil {
					zap.L().Warn("record completed run", zap.Error(err))
				}
			}
		} else {
			recordRun = func(json.RawMessage, error) {}
		}

		coll, err := loadCollection(ctx, input)
		if err != nil {
			recordRun(nil, err)
			return err
		}

		cl, err := buildCleaner()
		if err != nil {
			recordRun(nil, err)
			return err
		}

		res := cl.Clean(coll)

		if err := geojson.Save(output, coll); err != nil {
			recordRun(nil, err)
			return eris.Wrapf(err, "write %s", output)
		}

		if reportDir != "" {
			w := report.NewWriter(reportDir, input)
			files, err := w.WriteAll(res)
			if err != nil {
				recordRun(nil, err)
				return err
			}
			for _, f := range files {
				fmt.Fprintf(os.Stderr, "report: %s\n", f)
			}
		}

		stats, err := json.Marshal(res)
		if err != nil {
			return eris.Wrap(err, "marshal run stats")
		}
		recordRun(stats, nil)

		fmt.Fprintf(os.Stderr, "cleaned %d features -> %s\n", res.TotalFeatures, output)
		return nil
	},
}

// derivedOutput names the cleaned file next to the input.
func derivedOutput(input string) string {
	if i := strings.LastIndex(input, ".geojson"); i > 0 {
		return input[:i] + ".cleaned.geojson"
	}
	return input + ".cleaned.geojson"
}

func init() {
	cleanCmd.Flags().StringP("output", "o", "", "output path (default: <input>.cleaned.geojson)")
	cleanCmd.Flags().String("reports", "", "directory for review reports (omit to skip reports)")
	cleanCmd.Flags().Bool("no-store", false, "do not record this run in the history database")
	rootCmd.AddCommand(cleanCmd)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chronomaps/atlas-cli/internal/dedupe"
	"github.com/chronomaps/atlas-cli/pkg/notion"
)

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates <input>",
	Short: "Find probable duplicate features by title similarity",
	Long:  "Clusters feature titles that match exactly after normalization or exceed the similarity threshold, and optionally files each group as a Notion review task.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		input := args[0]

		coll, err := loadCollection(ctx, input)
		if err != nil {
			return err
		}

		threshold, _ := cmd.Flags().GetFloat64("threshold")
		if threshold == 0 {
			threshold = cfg.Clean.SimilarityThreshold
		}

		titleKey := cfg.Clean.TitleKey
		labels := make([]string, len(coll.Features))
		for i, f := range coll.Features {
			labels[i] = f.StringProp(titleKey)
		}

		clusters := dedupe.Clusters(labels, threshold)
		kept := clusters[:0]
		for _, c := range clusters {
			if dedupe.Normalize(c.Labels[0]) != "" {
				kept = append(kept, c)
			}
		}
		clusters = kept

		if len(clusters) == 0 {
			fmt.Fprintln(os.Stderr, "No probable duplicates found.")
			return nil
		}

		for _, c := range clusters {
			fmt.Printf("%q matches:\n", c.Labels[0])
			for i := 1; i < len(c.Labels); i++ {
				fmt.Printf("  - %q (feature %d)\n", c.Labels[i], c.Indexes[i])
			}
		}

		useNotion, _ := cmd.Flags().GetBool("notion")
		if !useNotion {
			return nil
		}
		return fileReviewTasks(cmd, input, clusters)
	},
}

// fileReviewTasks pushes one review task per duplicate group to the
// configured Notion database.
func fileReviewTasks(cmd *cobra.Command, input string, clusters []dedupe.Cluster) error {
	if cfg.Notion.Token == "" || cfg.Notion.ReviewDB == "" {
		return fmt.Errorf("notion review sink requires ATLAS_NOTION_TOKEN and ATLAS_NOTION_REVIEW_DB")
	}

	client := notion.NewClient(cfg.Notion.Token)
	filed := 0
	for _, c := range clusters {
		task := notion.ReviewTask{
			Title:   fmt.Sprintf("Possible duplicate: %s", c.Labels[0]),
			Source:  input,
			Matches: c.Labels,
		}
		created, err := notion.FileReviewTask(cmd.Context(), client, cfg.Notion.ReviewDB, task)
		if err != nil {
			return err
		}
		if created {
			filed++
		}
	}

	fmt.Fprintf(os.Stderr, "filed %d review tasks (%d groups already filed)\n", filed, len(clusters)-filed)
	return nil
}

func init() {
	duplicatesCmd.Flags().Float64("threshold", 0, "similarity threshold in (0,1]")
	duplicatesCmd.Flags().Bool("notion", false, "file each duplicate group as a Notion review task")
	rootCmd.AddCommand(duplicatesCmd)
}

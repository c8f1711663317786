// Package report writes the operator review files a cleanup run produces:
// a plain-text summary, duplicate and suspicious-text review lists, regional
// metadata, and an xlsx workbook bundling the same tables.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/chronomaps/atlas-cli/internal/cleaner"
)

// Writer emits report files into a directory.
type Writer struct {
	dir   string
	input string
}

// NewWriter creates a Writer rooted at dir; input names the dataset in
// report headers.
func NewWriter(dir, input string) *Writer {
	return &Writer{dir: dir, input: input}
}

// WriteAll writes every report the result calls for and returns the paths
// written. Empty sections produce no file.
func (w *Writer) WriteAll(res *cleaner.Result) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "report: create dir %s", w.dir)
	}

	var paths []string
	steps := []struct {
		name  string
		write func(string) error
		skip  bool
	}{
		{"cleanup_summary.txt", w.writeSummary(res), false},
		{"potential_duplicates.txt", w.writeDuplicates(res), len(res.Duplicates) == 0},
		{"unicode_errors_review.txt", w.writeSuspicious(res), len(res.Suspicious) == 0},
		{"missing_wikipedia.txt", w.writeMissingWikipedia(res), len(res.MissingWikipedia) == 0},
		{"regional_metadata.json", w.writeRegional(res), len(res.Regions) == 0},
		{"cleanup_report.xlsx", w.writeWorkbook(res), false},
	}
	for _, step := range steps {
		if step.skip {
			continue
		}
		path := filepath.Join(w.dir, step.name)
		if err := step.write(path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	zap.L().Info("reports written",
		zap.String("dir", w.dir),
		zap.Int("files", len(paths)),
	)
	return paths, nil
}

func header(b *strings.Builder, title string) {
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
}

func (w *Writer) writeSummary(res *cleaner.Result) func(string) error {
	return func(path string) error {
		var b strings.Builder
		header(&b, w.input+" Cleanup Summary")
		fmt.Fprintf(&b, "Total features processed: %d\n\n", res.TotalFeatures)

		b.WriteString("Changes made:\n")
		fmt.Fprintf(&b, "- Newline fixes in titles: %d\n", res.NewlineFixes)
		fmt.Fprintf(&b, "- Text repairs in titles: %d\n", res.TextFixes)
		fmt.Fprintf(&b, "- Altitude coordinates removed: %d\n", res.AltitudeStripped)
		fmt.Fprintf(&b, "- Potential duplicate groups found: %d\n", len(res.Duplicates))
		fmt.Fprintf(&b, "- Features skipped (no coordinates): %d\n", len(res.Skipped))
		fmt.Fprintf(&b, "- Features filtered (incomplete): %d\n", len(res.FilteredOut))
		fmt.Fprintf(&b, "- Unique regions: %d\n\n", len(res.Regions))

		if len(res.ColorFixes) > 0 {
			b.WriteString("Color changes:\n")
			for change, count := range res.ColorFixes {
				fmt.Fprintf(&b, "- %s: %d occurrences\n", change, count)
			}
			b.WriteString("\n")
		}
		if len(res.FieldsRemoved) > 0 {
			b.WriteString("Fields removed:\n")
			for field, count := range res.FieldsRemoved {
				fmt.Fprintf(&b, "- %s: %d occurrences\n", field, count)
			}
		}
		return writeFile(path, b.String())
	}
}

func (w *Writer) writeDuplicates(res *cleaner.Result) func(string) error {
	return func(path string) error {
		var b strings.Builder
		header(&b, "Potential Duplicates Requiring Manual Review")
		fmt.Fprintf(&b, "Found %d groups of potential duplicates:\n\n", len(res.Duplicates))

		for i, group := range res.Duplicates {
			fmt.Fprintf(&b, "Group %d:\n", i+1)
			for _, entry := range group {
				fmt.Fprintf(&b, "  - Title: %s\n", entry.Title)
				if len(entry.Coordinates) == 2 {
					fmt.Fprintf(&b, "    Coordinates: [%g, %g]\n", entry.Coordinates[0], entry.Coordinates[1])
				}
				fmt.Fprintf(&b, "    Feature Index: %d\n", entry.FeatureIndex)
			}
			b.WriteString("\n")
		}
		return writeFile(path, b.String())
	}
}

func (w *Writer) writeSuspicious(res *cleaner.Result) func(string) error {
	return func(path string) error {
		var b strings.Builder
		header(&b, "Text Requiring Manual Review")
		fmt.Fprintf(&b, "Found %d titles with unrecognized characters:\n\n", len(res.Suspicious))

		for _, s := range res.Suspicious {
			fmt.Fprintf(&b, "Index %d:\n", s.Index)
			fmt.Fprintf(&b, "  Original: %q\n", s.Original)
			fmt.Fprintf(&b, "  Current:  %q\n", s.Current)
			fmt.Fprintf(&b, "  Runes:    %q\n\n", s.Runes)
		}
		return writeFile(path, b.String())
	}
}

func (w *Writer) writeMissingWikipedia(res *cleaner.Result) func(string) error {
	return func(path string) error {
		var b strings.Builder
		header(&b, "Titles Without Wikipedia Articles")
		fmt.Fprintf(&b, "Found %d entries without Wikipedia links:\n\n", len(res.MissingWikipedia))

		for _, gap := range res.MissingWikipedia {
			fmt.Fprintf(&b, "Title: %s\n", gap.Title)
			if len(gap.Coordinates) == 2 {
				fmt.Fprintf(&b, "Coordinates: [%g, %g]\n", gap.Coordinates[0], gap.Coordinates[1])
			}
			b.WriteString("\n")
		}
		return writeFile(path, b.String())
	}
}

func (w *Writer) writeRegional(res *cleaner.Result) func(string) error {
	return func(path string) error {
		data, err := json.MarshalIndent(res.Regions, "", "  ")
		if err != nil {
			return eris.Wrap(err, "report: marshal regional metadata")
		}
		return writeFile(path, string(data)+"\n")
	}
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return eris.Wrapf(err, "report: write %s", path)
	}
	return nil
}

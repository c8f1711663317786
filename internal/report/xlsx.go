package report

import (
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/chronomaps/atlas-cli/internal/cleaner"
)

// writeWorkbook bundles the review tables into one xlsx file so operators
// can sort and annotate them in a spreadsheet.
func (w *Writer) writeWorkbook(res *cleaner.Result) func(string) error {
	return func(path string) error {
		f := xlsx.NewFile()

		if err := addSummarySheet(f, w.input, res); err != nil {
			return err
		}
		if err := addDuplicatesSheet(f, res); err != nil {
			return err
		}
		if err := addRegionsSheet(f, res); err != nil {
			return err
		}
		if err := addSkippedSheet(f, res); err != nil {
			return err
		}

		if err := f.Save(path); err != nil {
			return eris.Wrapf(err, "report: save workbook %s", path)
		}
		return nil
	}
}

func addStringRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().Value = v
	}
}

func addSummarySheet(f *xlsx.File, input string, res *cleaner.Result) error {
	sheet, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "report: add summary sheet")
	}
	addStringRow(sheet, "Dataset", input)
	addStringRow(sheet, "Total features", strconv.Itoa(res.TotalFeatures))
	addStringRow(sheet, "Newline fixes", strconv.Itoa(res.NewlineFixes))
	addStringRow(sheet, "Text repairs", strconv.Itoa(res.TextFixes))
	addStringRow(sheet, "Altitude stripped", strconv.Itoa(res.AltitudeStripped))
	addStringRow(sheet, "Duplicate groups", strconv.Itoa(len(res.Duplicates)))
	addStringRow(sheet, "Skipped features", strconv.Itoa(len(res.Skipped)))
	addStringRow(sheet, "Regions", strconv.Itoa(len(res.Regions)))
	return nil
}

func addDuplicatesSheet(f *xlsx.File, res *cleaner.Result) error {
	sheet, err := f.AddSheet("Duplicates")
	if err != nil {
		return eris.Wrap(err, "report: add duplicates sheet")
	}
	addStringRow(sheet, "Group", "Title", "Longitude", "Latitude", "Feature Index")
	for i, group := range res.Duplicates {
		for _, entry := range group {
			lon, lat := "", ""
			if len(entry.Coordinates) == 2 {
				lon = fmt.Sprintf("%g", entry.Coordinates[0])
				lat = fmt.Sprintf("%g", entry.Coordinates[1])
			}
			addStringRow(sheet, strconv.Itoa(i+1), entry.Title, lon, lat, strconv.Itoa(entry.FeatureIndex))
		}
	}
	return nil
}

func addRegionsSheet(f *xlsx.File, res *cleaner.Result) error {
	sheet, err := f.AddSheet("Regions")
	if err != nil {
		return eris.Wrap(err, "report: add regions sheet")
	}
	addStringRow(sheet, "Region", "Features", "Longitude", "Latitude", "Zoom")
	for _, r := range res.Regions {
		addStringRow(sheet,
			r.Region,
			strconv.Itoa(r.FeatureCount),
			fmt.Sprintf("%.6f", r.View.Longitude),
			fmt.Sprintf("%.6f", r.View.Latitude),
			strconv.Itoa(r.View.Zoom),
		)
	}
	return nil
}

func addSkippedSheet(f *xlsx.File, res *cleaner.Result) error {
	sheet, err := f.AddSheet("Skipped")
	if err != nil {
		return eris.Wrap(err, "report: add skipped sheet")
	}
	addStringRow(sheet, "Index", "Title", "Reason")
	for _, s := range res.Skipped {
		addStringRow(sheet, strconv.Itoa(s.Index), s.Title, s.Reason)
	}
	for _, s := range res.FilteredOut {
		addStringRow(sheet, strconv.Itoa(s.Index), s.Title, s.Reason)
	}
	return nil
}

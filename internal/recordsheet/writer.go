package recordsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"dataquality/internal/domain"
)

// BOM is the UTF-8 byte order mark, written first so Excel on Windows detects the encoding.
var BOM = []byte{0xEF, 0xBB, 0xBF}

const runsSheet = "Runs"

// runColumns is the export header row.
var runColumns = []string{
	"Run ID",
	"Batch ID",
	"Row",
	"Source",
	ColConcessionName,
	ColCompanyName,
	ColCVENumber,
	ColRegion,
	ColSentimentScore,
	"Status",
	"Errors",
	"Duration (ms)",
	"Submitted By",
	"Created At",
}

// WriteRunsCSV writes runs as CSV with a BOM and a header row.
func WriteRunsCSV(w io.Writer, runs []domain.ValidationRun) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(runColumns); err != nil {
		return err
	}
	for i := range runs {
		if err := cw.Write(runToRow(&runs[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRunsXLSX writes runs as a single-sheet workbook.
func WriteRunsXLSX(w io.Writer, runs []domain.ValidationRun) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", runsSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	header := make([]interface{}, len(runColumns))
	for i, c := range runColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(runsSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range runs {
		row := runToRow(&runs[i])
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		// Keep the score numeric so it sorts and filters as a number.
		cells[8] = runs[i].SentimentScore

		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(runsSheet, axis, &cells); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(runsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}

	return f.Write(w)
}

func runToRow(run *domain.ValidationRun) []string {
	row := make([]string, len(runColumns))
	row[0] = run.ID.String()
	if run.BatchID != nil {
		row[1] = run.BatchID.String()
	}
	if run.RowNumber != nil {
		row[2] = strconv.Itoa(*run.RowNumber)
	}
	row[3] = string(run.Source)
	row[4] = run.ConcessionName
	row[5] = run.CompanyName
	if run.CVENumber != nil {
		row[6] = *run.CVENumber
	}
	row[7] = run.Region
	row[8] = strconv.FormatFloat(run.SentimentScore, 'g', -1, 64)
	row[9] = string(run.Status)
	row[10] = strings.Join(run.ErrorMessages(), "; ")
	row[11] = strconv.FormatInt(run.DurationMs, 10)
	row[12] = run.SubmittedBy
	row[13] = run.CreatedAt.Format(time.RFC3339)
	return row
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename makes name safe for a Content-Disposition header,
// truncated to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "export"
	}
	return s
}

// BuildFilename returns {sanitized_prefix}_{YYYY-MM-DD}.{ext}.
func BuildFilename(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(prefix), time.Now().Format("2006-01-02"), ext)
}

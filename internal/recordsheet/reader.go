// Package recordsheet reads concession records from CSV and XLSX batches and
// exports validation runs back to spreadsheets.
package recordsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"dataquality/internal/domain"
)

// Column headers of a record sheet, in canonical order.
const (
	ColConcessionName = "Concession Name"
	ColCompanyName    = "Company Name"
	ColCVENumber      = "CVE Number"
	ColRegion         = "Region"
	ColSentimentScore = "Sentiment Score"
)

var recordColumns = []string{ColConcessionName, ColCompanyName, ColCVENumber, ColRegion, ColSentimentScore}

// ErrMissingColumn is returned when the header row lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// Row is one data row of a sheet. Number is the 1-based line in the sheet,
// counting the header as line 1. Err is set when the row could not be
// turned into a record; Record is zero in that case.
type Row struct {
	Number int
	Record domain.ConcessionRecord
	Err    error
}

// Read parses a sheet, choosing the format from the filename extension.
func Read(filename string, r io.Reader) ([]Row, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case string(domain.BatchFileCSV):
		return ReadCSV(r)
	case string(domain.BatchFileXLSX):
		return ReadXLSX(r)
	default:
		return nil, domain.ErrUnsupportedFileType
	}
}

// ReadCSV parses a CSV record sheet. A leading UTF-8 BOM is ignored.
func ReadCSV(r io.Reader) ([]Row, error) {
	lines, err := readCSVLines(r)
	if err != nil {
		return nil, err
	}
	return parseLines(lines)
}

func readCSVLines(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	lines, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(lines) > 0 && len(lines[0]) > 0 {
		lines[0][0] = strings.TrimPrefix(lines[0][0], string(BOM))
	}
	return lines, nil
}

// ReadXLSX parses the first worksheet of an XLSX record sheet.
func ReadXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	lines, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	return parseLines(lines)
}

func parseLines(lines [][]string) ([]Row, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	index, err := headerIndex(lines[0])
	if err != nil {
		return nil, err
	}

	var rows []Row
	for i, line := range lines[1:] {
		if blankLine(line) {
			continue
		}
		row := Row{Number: i + 2}
		row.Record, row.Err = parseRecord(line, index)
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	return rows, nil
}

func headerIndex(header []string) (map[string]int, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := byName[key]; !dup {
			byName[key] = i
		}
	}

	index := make(map[string]int, len(recordColumns))
	var missing []string
	for _, col := range recordColumns {
		i, ok := byName[strings.ToLower(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		index[col] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return index, nil
}

func parseRecord(line []string, index map[string]int) (domain.ConcessionRecord, error) {
	cell := func(col string) string { return cellAt(line, index[col]) }

	rawScore := cell(ColSentimentScore)
	score, err := strconv.ParseFloat(rawScore, 64)
	if err != nil {
		return domain.ConcessionRecord{}, fmt.Errorf("%w: sentiment score %q is not a number", domain.ErrInvalidRecord, rawScore)
	}

	var cve *string
	if v := cell(ColCVENumber); v != "" {
		cve = &v
	}

	return domain.NewConcessionRecord(
		cell(ColConcessionName),
		cell(ColCompanyName),
		cve,
		cell(ColRegion),
		score,
	), nil
}

func blankLine(line []string) bool {
	for _, c := range line {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

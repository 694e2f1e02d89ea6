package recordsheet

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"dataquality/internal/domain"
)

// ReadRegions parses a region master sheet with "Code" and "Name" columns.
// Codes are upper-cased; later rows override earlier ones with the same code.
func ReadRegions(filename string, r io.Reader) ([]domain.Region, error) {
	var lines [][]string
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		var err error
		if lines, err = readCSVLines(r); err != nil {
			return nil, err
		}
	case ".xlsx":
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("opening xlsx: %w", err)
		}
		defer f.Close()
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, domain.ErrEmptyBatch
		}
		if lines, err = f.GetRows(sheets[0]); err != nil {
			return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
		}
	default:
		return nil, domain.ErrUnsupportedFileType
	}

	if len(lines) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	codeCol, nameCol := -1, -1
	for i, h := range lines[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "code":
			codeCol = i
		case "name":
			nameCol = i
		}
	}
	if codeCol < 0 || nameCol < 0 {
		return nil, fmt.Errorf("%w: Code, Name", ErrMissingColumn)
	}

	index := make(map[string]int)
	var regions []domain.Region
	for n, line := range lines[1:] {
		if blankLine(line) {
			continue
		}
		code := strings.ToUpper(cellAt(line, codeCol))
		name := cellAt(line, nameCol)
		if code == "" || name == "" {
			return nil, fmt.Errorf("line %d: %w", n+2, errRegionIncomplete)
		}
		if i, ok := index[code]; ok {
			regions[i].Name = name
			continue
		}
		index[code] = len(regions)
		regions = append(regions, domain.Region{Code: code, Name: name})
	}
	if len(regions) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	return regions, nil
}

var errRegionIncomplete = errors.New("region needs both code and name")

func cellAt(line []string, i int) string {
	if i >= len(line) {
		return ""
	}
	return strings.TrimSpace(line[i])
}
